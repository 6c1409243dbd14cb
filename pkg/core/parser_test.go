package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChecklist(t *testing.T) {
	content := `# Checklist configuration
paths:
  "src/**":
    - Add tests
    - Update the changelog
  "docs/**":
    - Update README
  "*.md":
    - Spellcheck
  "scripts/**":
other: ignored
`

	checklist, err := ParseChecklist([]byte(content))
	require.NoError(t, err)
	require.Len(t, checklist, 4)

	// Document order is kept, not sorted
	assert.Equal(t, "src/**", checklist[0].Pattern)
	assert.Equal(t, []string{"Add tests", "Update the changelog"}, checklist[0].Items)
	assert.Equal(t, "docs/**", checklist[1].Pattern)
	assert.Equal(t, []string{"Update README"}, checklist[1].Items)
	assert.Equal(t, "*.md", checklist[2].Pattern)
	assert.Equal(t, "scripts/**", checklist[3].Pattern)
	assert.Empty(t, checklist[3].Items)
}

func TestParseChecklist_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{
			name:    "empty document",
			content: "",
			target:  ErrMissingPaths,
		},
		{
			name:    "no paths key",
			content: "checks:\n  a: [b]\n",
			target:  ErrMissingPaths,
		},
		{
			name:    "null paths",
			content: "paths:\n",
			target:  ErrMissingPaths,
		},
		{
			name:    "paths is a list",
			content: "paths:\n  - src/**\n",
		},
		{
			name:    "items is a scalar",
			content: "paths:\n  src/**: Add tests\n",
		},
		{
			name:    "document is a list",
			content: "- paths\n",
		},
		{
			name:    "oversized brace range",
			content: "paths:\n  v{1..100000000}/*: [Check it]\n",
		},
		{
			name:    "invalid yaml",
			content: "paths: [unclosed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseChecklist([]byte(tt.content))
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestLoadChecklist(t *testing.T) {
	tempDir := t.TempDir()
	tempFile := filepath.Join(tempDir, "checklist.yml")

	err := os.WriteFile(tempFile, []byte("paths:\n  docs/**:\n    - Update README\n"), 0644)
	require.NoError(t, err)

	checklist, err := LoadChecklist(tempFile)
	require.NoError(t, err)
	assert.Equal(t, ChecklistMap{{Pattern: "docs/**", Items: []string{"Update README"}}}, checklist)

	_, err = LoadChecklist(filepath.Join(tempDir, "missing.yml"))
	assert.ErrorContains(t, err, "failed to read checklist file")
}

func TestParseCompareCommits(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []CompareSpec
		wantErr bool
	}{
		{
			name: "empty input",
			raw:  "",
		},
		{
			name: "whitespace input",
			raw:  "  \n",
		},
		{
			name: "two comparisons",
			raw:  `[{"owner":"o","repo":"r","base":"main","head":"feature"},{"owner":"o","repo":"lib","base":"v1.0.0","head":"v1.1.0"}]`,
			want: []CompareSpec{
				{Owner: "o", Repo: "r", Base: "main", Head: "feature"},
				{Owner: "o", Repo: "lib", Base: "v1.0.0", Head: "v1.1.0"},
			},
		},
		{
			name:    "missing head",
			raw:     `[{"owner":"o","repo":"r","base":"main"}]`,
			wantErr: true,
		},
		{
			name:    "not json",
			raw:     "main...feature",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompareCommits(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCompare)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
