package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	assert.NoError(t, os.MkdirAll(filepath.Join(src, "nested", "deep"), 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(src, "top.txt"), []byte("top"), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(src, "nested", "deep", "leaf.txt"), []byte("leaf"), 0o600))
	assert.NoError(t, os.Symlink("top.txt", filepath.Join(src, "link")))

	dst := filepath.Join(t.TempDir(), "copy")
	assert.NoError(t, copyTree(src, dst))

	content, err := os.ReadFile(filepath.Join(dst, "top.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "top", string(content))

	info, err := os.Stat(filepath.Join(dst, "nested", "deep", "leaf.txt"))
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	target, err := os.Readlink(filepath.Join(dst, "link"))
	assert.NoError(t, err)
	assert.Equal(t, "top.txt", target)
}

func TestCopyTree_MissingSource(t *testing.T) {
	err := copyTree(filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "copy"))
	assert.Error(t, err)
}

func TestMoveFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "archive.7z")
	assert.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))
	dst := filepath.Join(t.TempDir(), "archive.7z")

	assert.NoError(t, moveFile(src, dst))

	content, err := os.ReadFile(dst)
	assert.NoError(t, err)
	assert.Equal(t, "payload", string(content))

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}
