package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindTextures(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.JPG", "sun.png", "notes.txt", "c.jpeg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0755))

	planets, sun, err := FindTextures(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.JPG"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "c.jpeg"),
	}, planets)
	assert.Equal(t, filepath.Join(dir, "sun.png"), sun)
}

func TestFindTexturesMissingDir(t *testing.T) {
	planets, sun, err := FindTextures(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, planets)
	assert.Empty(t, sun)

	planets, _, err = FindTextures("")
	require.NoError(t, err)
	assert.Empty(t, planets)
}
