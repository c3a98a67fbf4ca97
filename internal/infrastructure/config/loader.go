package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"spellbook/assets"
	"spellbook/internal/domain"
	"spellbook/internal/pkg/filesystem"
	"spellbook/internal/ports"
)

// FileLoader loads YAML configuration from ~/.spellbook/config.yaml
// (overridable via SPELLBOOK_CONFIG). A missing file yields the embedded
// defaults; Load never writes anything to disk.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		data = assets.DefaultConfig
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, domain.NewConfigError("cannot parse %s: %v", path, err)
	}

	cfg, err = applyEnv(hydrateDefaults(cfg))
	if err != nil {
		return domain.Config{}, err
	}
	return resolvePaths(cfg), nil
}

// Path returns the config file location currently in effect.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("SPELLBOOK_CONFIG"); custom != "" {
		return filesystem.ExpandHome(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".spellbook", "config.yaml")
}

// Init writes the embedded default config to Path. An existing file is
// left alone unless force is set.
func (l *FileLoader) Init(force bool) (string, error) {
	path := l.Path()
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return path, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, assets.DefaultConfig, domain.SecureFilePermissions); err != nil {
		return path, fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.History.Source == "" {
		cfg.History.Source = domain.DefaultHistorySource
	}
	if cfg.Library.Root == "" {
		cfg.Library.Root = domain.DefaultLibraryRoot
	}
	if cfg.History.MaxCount == nil {
		cfg.History.MaxCount = lo.ToPtr(domain.DefaultMaxCount)
	}
	return cfg
}

func applyEnv(cfg domain.Config) (domain.Config, error) {
	if source := os.Getenv("SPELLBOOK_HISTFILE"); source != "" {
		cfg.History.Source = source
	}
	if root := os.Getenv("SPELLBOOK_ROOT"); root != "" {
		cfg.Library.Root = root
	}
	if raw := os.Getenv("SPELLBOOK_MAX_COUNT"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, domain.NewConfigError("SPELLBOOK_MAX_COUNT must be an integer, got %q", raw)
		}
		if count <= 0 {
			return cfg, domain.NewConfigError("SPELLBOOK_MAX_COUNT must be positive, got %d", count)
		}
		cfg.History.MaxCount = &count
	}
	return cfg, nil
}

func resolvePaths(cfg domain.Config) domain.Config {
	cfg.History.Source = filesystem.ExpandHome(cfg.History.Source)
	cfg.Library.Root = filesystem.ExpandHome(cfg.Library.Root)
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
