package scratch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatesDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "scratch")
	d, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, path, d.Path())
	assert.DirExists(t, path)
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	assert.True(t, strings.HasPrefix(DefaultPath(), os.TempDir()))
}

func TestWrite(t *testing.T) {
	t.Parallel()

	d, err := New(t.TempDir())
	require.NoError(t, err)

	p1, err := d.Write("photo_no_bg.gif", []byte("gif-1"))
	require.NoError(t, err)
	p2, err := d.Write("photo_no_bg.gif", []byte("gif-2"))
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2, "same input name must not collide")
	assert.True(t, strings.HasSuffix(p1, "photo_no_bg.gif"))

	data, err := os.ReadFile(p1)
	require.NoError(t, err)
	assert.Equal(t, []byte("gif-1"), data)
}

// age backdates a file past the sweep shield.
func age(t *testing.T, path string) {
	t.Helper()
	old := time.Now().Add(-2 * minSweepAge)
	require.NoError(t, os.Chtimes(path, old, old))
}

func TestSweep(t *testing.T) {
	t.Parallel()

	d, err := New(t.TempDir())
	require.NoError(t, err)

	p1, err := d.Write("a_no_bg.gif", []byte("x"))
	require.NoError(t, err)
	p2, err := d.Write("b_no_bg.gif", []byte("y"))
	require.NoError(t, err)
	age(t, p1)
	age(t, p2)

	// Unrelated file must survive the sweep.
	other := filepath.Join(d.Path(), "keep.txt")
	require.NoError(t, os.WriteFile(other, []byte("keep"), 0o644))
	age(t, other)

	assert.Equal(t, 2, d.Sweep())
	assert.FileExists(t, other)

	matches, err := filepath.Glob(filepath.Join(d.Path(), "*"+Suffix))
	require.NoError(t, err)
	assert.Empty(t, matches)

	assert.Equal(t, 0, d.Sweep())
}

func TestSweep_KeepsFreshArtifacts(t *testing.T) {
	t.Parallel()

	d, err := New(t.TempDir())
	require.NoError(t, err)

	fresh, err := d.Write("now_no_bg.gif", []byte("in flight"))
	require.NoError(t, err)
	stale, err := d.Write("old_no_bg.gif", []byte("leftover"))
	require.NoError(t, err)
	age(t, stale)

	assert.Equal(t, 1, d.Sweep())
	assert.FileExists(t, fresh)
	assert.NoFileExists(t, stale)
}
