package stamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcluderMatch(t *testing.T) {
	e, err := NewExcluder([]string{"*.tmp", ".git/", "build/*", "**/cache/**", ""})
	require.NoError(t, err)

	tests := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{"notes.tmp", false, true},
		{"docs/notes.tmp", false, true},
		{"docs/notes.txt", false, false},
		{".git", true, true},
		{"sub/.git", true, true},
		{".git", false, false},
		{"build/out.bin", false, true},
		{"build", true, false},
		{"src/build/out.bin", false, false},
		{"a/cache/b/c.dat", false, true},
		{"cache.dat", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Match(tt.path, tt.isDir))
		})
	}
}

func TestExcluderInvalidPattern(t *testing.T) {
	_, err := NewExcluder([]string{"[unclosed"})
	assert.Error(t, err)
}

func TestExcluderNil(t *testing.T) {
	var e *Excluder
	assert.False(t, e.Match("anything", true))

	empty, err := NewExcluder(nil)
	require.NoError(t, err)
	assert.False(t, empty.Match("anything", false))
}
