// Package effects provides the ports.Effects adapters. Real mutates the
// filesystem; DryRun journals the operations it was asked to perform.
package effects

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"spellbook/internal/ports"
)

// Real applies filesystem operations directly. Writes go through a
// temporary file in the target directory followed by a rename, so readers
// never observe a partial artifact.
type Real struct{}

var _ ports.Effects = Real{}

// DryRun implements ports.Effects.
func (Real) DryRun() bool { return false }

// Journal implements ports.Effects.
func (Real) Journal() []string { return nil }

// MkdirAll implements ports.Effects.
func (Real) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// WriteFile implements ports.Effects.
func (Real) WriteFile(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".spellbook-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		return discardTemp(tmp, fmt.Errorf("failed to write %s: %w", path, err))
	}
	return commitTemp(tmp, path, perm)
}

// CopyFile implements ports.Effects.
func (Real) CopyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".spellbook-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", dst, err)
	}
	if _, err := io.Copy(tmp, in); err != nil {
		return discardTemp(tmp, fmt.Errorf("failed to copy %s: %w", src, err))
	}
	return commitTemp(tmp, dst, perm)
}

func commitTemp(tmp *os.File, path string, perm fs.FileMode) error {
	if err := tmp.Chmod(perm); err != nil {
		return discardTemp(tmp, fmt.Errorf("failed to set permissions on %s: %w", path, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to finish writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func discardTemp(tmp *os.File, err error) error {
	tmp.Close()
	os.Remove(tmp.Name())
	return err
}
