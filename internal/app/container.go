package app

import (
	"context"
	"io"

	configapp "spellbook/internal/application/config"
	"spellbook/internal/application/pipeline"
	"spellbook/internal/application/status"
	"spellbook/internal/domain"
	"spellbook/internal/infrastructure/archive"
	"spellbook/internal/infrastructure/config"
	"spellbook/internal/infrastructure/corpus"
	"spellbook/internal/infrastructure/effects"
	"spellbook/internal/infrastructure/ledger"
	"spellbook/internal/infrastructure/liblock"
	"spellbook/internal/infrastructure/silence"
	"spellbook/internal/pkg/logger"
	"spellbook/internal/ports"
)

// Container wires up application services with infrastructure adapters.
// Components that write are built per command because the effects mode
// (real or dry-run) is only known after flag parsing.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
}

// Options configure container construction.
type Options struct {
	ConfigPath string
	Verbose    bool
}

// BuildContainer loads and validates configuration, then constructs the
// dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := configapp.Validate(cfg); err != nil {
		return nil, err
	}

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         logger.NewZap(opts.Verbose),
	}, nil
}

// Effects returns the write capability for the requested mode.
func (c *Container) Effects(dryRun bool) ports.Effects {
	if dryRun {
		return effects.NewDryRun()
	}
	return effects.Real{}
}

// ArchiveStore builds the archive store for one command invocation.
func (c *Container) ArchiveStore(fs ports.Effects) *archive.Store {
	return archive.NewStore(c.Config.ArchivesPath(), fs, c.Logger)
}

// SilenceStore builds the exclusion set store.
func (c *Container) SilenceStore(fs ports.Effects) *silence.Store {
	return silence.NewStore(c.Config.SilencePath(), fs, c.Logger)
}

// RunLedger opens the ledger for a real run. Dry runs and disabled
// bookkeeping get a no-op ledger. An unopenable ledger degrades to the
// no-op with a warning; the run itself must not die over bookkeeping.
func (c *Container) RunLedger(fs ports.Effects) (ports.RunLedger, func()) {
	if fs.DryRun() || !c.Config.LedgerEnabled() {
		return ledger.Disabled{}, func() {}
	}
	store, err := ledger.Open(c.Config.LedgerPath())
	if err != nil {
		c.Logger.Warn("run ledger unavailable", map[string]interface{}{"error": err.Error()})
		return ledger.Disabled{}, func() {}
	}
	return store, func() { _ = store.Close() }
}

// Pipeline assembles the archival pipeline for one run. The returned
// closer releases the ledger.
func (c *Container) Pipeline(fs ports.Effects, progress io.Writer) (*pipeline.Service, func()) {
	archives := c.ArchiveStore(fs)
	runLedger, closeLedger := c.RunLedger(fs)
	service := &pipeline.Service{
		Config:      c.Config,
		FS:          fs,
		Logger:      c.Logger,
		Ledger:      runLedger,
		Archives:    archives,
		Silence:     c.SilenceStore(fs),
		Combiner:    corpus.NewCombiner(archives, fs, c.Logger),
		Synthesizer: corpus.NewSynthesizer(fs, c.Logger),
		Composer:    corpus.NewComposer(fs, c.Logger),
		Lock:        liblock.Acquire,
		Progress:    progress,
	}
	return service, closeLedger
}

// StatusService assembles the diagnostics service. Status never writes,
// so it always reads through dry-run effects.
func (c *Container) StatusService() *status.Service {
	fs := c.Effects(true)
	return &status.Service{
		Config:   c.Config,
		Archives: c.ArchiveStore(fs),
		Silence:  c.SilenceStore(fs),
	}
}
