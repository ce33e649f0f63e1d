package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/nblint/pkg/lint/rules"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"), "")
	writeFile(t, filepath.Join(dir, "b.txt"), "")
	writeFile(t, filepath.Join(dir, "sub", "c.py"), "")
	writeFile(t, filepath.Join(dir, ".git", "hooks.py"), "")
	writeFile(t, filepath.Join(dir, "node_modules", "x.py"), "")
	writeFile(t, filepath.Join(dir, ".venv", "lib", "y.py"), "")

	tests := []struct {
		name    string
		cfg     Config
		paths   []string
		want    []string
		skipped int
	}{
		{
			name:    "defaults",
			paths:   []string{dir},
			want:    []string{"a.py", "sub/c.py"},
			skipped: 3,
		},
		{
			name:  "custom include",
			cfg:   Config{Include: []string{"*.txt"}},
			paths: []string{dir},
			want:  []string{"b.txt"},
		},
		{
			name:  "nothing excluded",
			cfg:   Config{Exclude: []string{}},
			paths: []string{dir},
			want:  []string{".git/hooks.py", ".venv/lib/y.py", "a.py", "node_modules/x.py", "sub/c.py"},
		},
		{
			name:  "exclude by file glob",
			cfg:   Config{Exclude: []string{"a.*"}},
			paths: []string{dir},
			want:  []string{".git/hooks.py", ".venv/lib/y.py", "node_modules/x.py", "sub/c.py"},
		},
		{
			name:  "explicit file bypasses include",
			paths: []string{filepath.Join(dir, "b.txt")},
			want:  []string{"b.txt"},
		},
		{
			name:  "duplicates collapse",
			paths: []string{dir, filepath.Join(dir, "a.py"), filepath.Join(dir, "sub")},
			want:  []string{"a.py", "sub/c.py"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, nil, tt.cfg)
			res, err := e.Discover(tt.paths)
			require.NoError(t, err)

			want := make([]string, len(tt.want))
			for i, rel := range tt.want {
				want[i] = filepath.Join(dir, filepath.FromSlash(rel))
			}
			assert.Equal(t, want, res.Files)
			if tt.skipped > 0 {
				assert.Equal(t, tt.skipped, res.Skipped)
			}
		})
	}
}

func TestDiscover_MissingPath(t *testing.T) {
	e := newTestEngine(t, nil, Config{})
	_, err := e.Discover([]string{filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat")
}

func TestMatchAny(t *testing.T) {
	assert.True(t, matchAny([]string{"*.py"}, "x.py"))
	assert.False(t, matchAny([]string{"*.py"}, "x.pyc"))
	assert.False(t, matchAny([]string{"[bad"}, "x.py"))
	assert.False(t, matchAny(nil, "x.py"))
}

func TestMatchesFile(t *testing.T) {
	e := New(rules.NewDefaultRegistry(), nil, Config{Exclude: []string{"scratch_*.py", ".git"}})

	assert.True(t, e.MatchesFile("etl.py"))
	assert.False(t, e.MatchesFile("scratch_1.py"))
	assert.False(t, e.MatchesFile("notes.md"))
	assert.True(t, e.SkipsDir(".git"))
	assert.False(t, e.SkipsDir("jobs"))
}
