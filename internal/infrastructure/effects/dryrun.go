package effects

import (
	"fmt"
	"io/fs"
	"sync"

	"github.com/dustin/go-humanize"

	"spellbook/internal/ports"
)

// DryRun records every requested operation instead of performing it.
type DryRun struct {
	mu  sync.Mutex
	ops []string
}

var _ ports.Effects = (*DryRun)(nil)

// NewDryRun creates an empty journal.
func NewDryRun() *DryRun {
	return &DryRun{}
}

// DryRun implements ports.Effects.
func (*DryRun) DryRun() bool { return true }

// Journal implements ports.Effects.
func (d *DryRun) Journal() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	ops := make([]string, len(d.ops))
	copy(ops, d.ops)
	return ops
}

// MkdirAll implements ports.Effects.
func (d *DryRun) MkdirAll(path string, _ fs.FileMode) error {
	d.record("create directory %s", path)
	return nil
}

// WriteFile implements ports.Effects.
func (d *DryRun) WriteFile(path string, data []byte, _ fs.FileMode) error {
	d.record("write %s (%s)", path, humanize.Bytes(uint64(len(data))))
	return nil
}

// CopyFile implements ports.Effects.
func (d *DryRun) CopyFile(src, dst string, _ fs.FileMode) error {
	d.record("copy %s to %s", src, dst)
	return nil
}

func (d *DryRun) record(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = append(d.ops, fmt.Sprintf(format, args...))
}
