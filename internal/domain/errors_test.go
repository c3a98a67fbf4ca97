package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"spellbook/internal/domain"
)

func TestIsSourceNotFound(t *testing.T) {
	base := &domain.SourceNotFoundError{Path: "/tmp/history", Err: errors.New("no such file")}

	if !domain.IsSourceNotFound(base) {
		t.Error("expected direct SourceNotFoundError to match")
	}
	if !domain.IsSourceNotFound(fmt.Errorf("create archive: %w", base)) {
		t.Error("expected wrapped SourceNotFoundError to match")
	}
	if domain.IsSourceNotFound(errors.New("something else")) {
		t.Error("expected unrelated error not to match")
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := domain.NewConfigError("max_count must be positive, got %d", -1)

	want := "invalid configuration: max_count must be positive, got -1"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestErrNoCorpusMessage(t *testing.T) {
	if domain.ErrNoCorpus.Error() != "No corpus found" {
		t.Errorf("got %q", domain.ErrNoCorpus.Error())
	}
}
