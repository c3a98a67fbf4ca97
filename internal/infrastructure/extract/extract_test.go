package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spellbook/internal/domain"
	"spellbook/internal/infrastructure/effects"
)

func TestRank(t *testing.T) {
	tests := []struct {
		name     string
		commands []string
		maxCount int
		want     domain.RankedList
	}{
		{
			name: "orders by descending frequency",
			commands: []string{
				"git status", "ls -la", "git status", "cd /tmp", "git status",
			},
			maxCount: 10,
			want:     domain.RankedList{"git status", "cd /tmp", "ls -la"},
		},
		{
			name:     "ties break by ascending command text",
			commands: []string{"beta", "alpha", "beta", "alpha", "gamma"},
			maxCount: 10,
			want:     domain.RankedList{"alpha", "beta", "gamma"},
		},
		{
			name: "truncates to maxCount after ranking",
			commands: []string{
				"a", "a", "a", "b", "b", "c",
			},
			maxCount: 2,
			want:     domain.RankedList{"a", "b"},
		},
		{
			name:     "whitespace differences are distinct commands",
			commands: []string{"ls -la", "ls  -la", "ls -la"},
			maxCount: 10,
			want:     domain.RankedList{"ls -la", "ls  -la"},
		},
		{
			name:     "empty input",
			commands: nil,
			maxCount: 10,
			want:     domain.RankedList{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(tt.commands, tt.maxCount)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "alpha\nbeta\n", string(FormatList(domain.RankedList{"alpha", "beta"})))
	assert.Empty(t, FormatList(nil))
}

func TestWriteList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")

	err := WriteList(effects.Real{}, path, domain.RankedList{"git status", "ls"})

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "git status\nls\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}
