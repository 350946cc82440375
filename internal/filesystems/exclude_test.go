package filesystems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcluder(t *testing.T) {
	mfs := NewMemoryFS()
	mfs.AddFile("repo/.gitignore", []byte("# generated\nrendered/\n*.tmp.yaml\n"))

	tests := []struct {
		name     string
		cfg      ExcludeConfig
		path     string
		isDir    bool
		excluded bool
	}{
		{"vcs dir always skipped", ExcludeConfig{}, ".git", true, true},
		{"nested vcs dir", ExcludeConfig{}, "charts/.git", true, true},
		{"root never skipped", ExcludeConfig{Patterns: []string{"*"}}, ".", true, false},
		{"plain file kept", ExcludeConfig{}, "deploy/web.yaml", false, false},
		{"gitignore ignored unless enabled", ExcludeConfig{}, "rendered", true, false},
		{"gitignore dir pattern", ExcludeConfig{UseGitignore: true}, "rendered", true, true},
		{"gitignore dir pattern needs dir", ExcludeConfig{UseGitignore: true}, "rendered", false, false},
		{"gitignore glob", ExcludeConfig{UseGitignore: true}, "charts/api.tmp.yaml", false, true},
		{"explicit pattern", ExcludeConfig{Patterns: []string{"charts/vendor"}}, "charts/vendor", true, true},
		{"explicit glob", ExcludeConfig{Patterns: []string{"*-test.yaml"}}, "k8s/pod-test.yaml", false, true},
		{
			"explicit negation re-includes",
			ExcludeConfig{UseGitignore: true, Patterns: []string{"!keep.tmp.yaml"}},
			"keep.tmp.yaml", false, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			excluder, err := NewExcluder(mfs, "repo", tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.excluded, excluder.Excluded(tt.path, tt.isDir))
		})
	}
}

func TestExcluderMissingGitignore(t *testing.T) {
	excluder, err := NewExcluder(NewMemoryFS(), "repo", ExcludeConfig{UseGitignore: true})
	require.NoError(t, err)
	assert.False(t, excluder.Excluded("deploy.yaml", false))
}

func TestNilExcluder(t *testing.T) {
	var excluder *Excluder
	assert.False(t, excluder.Excluded("anything", true))
}
