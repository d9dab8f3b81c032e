package filesystem

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingInvalidator struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingInvalidator) Invalidate(p string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, p)
}

func newTestOperations() (*Operations, *recordingInvalidator) {
	inv := &recordingInvalidator{}
	return NewOperations(nil, inv, nil), inv
}

func TestRename(t *testing.T) {
	root := exampleTree(t)
	ops, inv := newTestOperations()

	src := filepath.Join(root, "notes.txt")
	dst := filepath.Join(root, "sub", "renamed.txt")
	require.NoError(t, ops.Rename(src, dst))

	assert.NoFileExists(t, src)
	assert.FileExists(t, dst)
	assert.Equal(t, []string{root, filepath.Join(root, "sub")}, inv.paths)
}

func TestRenameErrors(t *testing.T) {
	root := exampleTree(t)
	ops, inv := newTestOperations()

	err := ops.Rename(filepath.Join(root, "missing"), filepath.Join(root, "x"))
	assert.ErrorIs(t, err, ErrNotFound)

	err = ops.Rename(filepath.Join(root, "notes.txt"), filepath.Join(root, "sub"))
	assert.ErrorIs(t, err, ErrExists)

	assert.Empty(t, inv.paths)
}

func TestMoveIntoDirectory(t *testing.T) {
	root := exampleTree(t)
	ops, inv := newTestOperations()

	final, err := ops.Move(filepath.Join(root, "notes.txt"), filepath.Join(root, "sub"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "sub", "notes.txt"), final)
	assert.FileExists(t, final)
	assert.Len(t, inv.paths, 2)
}

func TestMoveToNewPath(t *testing.T) {
	root := exampleTree(t)
	ops, _ := newTestOperations()

	final, err := ops.Move(filepath.Join(root, "sub"), filepath.Join(root, "moved"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "moved"), final)
	assert.FileExists(t, filepath.Join(root, "moved", "foo.py"))
}

func TestMoveErrors(t *testing.T) {
	root := exampleTree(t)
	writeTree(t, root, map[string]string{"sub/notes.txt": "dup"})
	ops, _ := newTestOperations()

	_, err := ops.Move(filepath.Join(root, "missing"), root)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ops.Move(filepath.Join(root, "notes.txt"), filepath.Join(root, "sub"))
	assert.ErrorIs(t, err, ErrExists)

	_, err = ops.Move(root, filepath.Join(root, "sub"))
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestCreateFolder(t *testing.T) {
	root := t.TempDir()
	ops, inv := newTestOperations()

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, ops.CreateFolder(nested))
	assert.DirExists(t, nested)
	assert.Equal(t, []string{filepath.Join(root, "a", "b")}, inv.paths)

	// existing directories are fine
	require.NoError(t, ops.CreateFolder(nested))
}

func TestDelete(t *testing.T) {
	root := exampleTree(t)
	ops, inv := newTestOperations()

	err := ops.Delete([]string{
		filepath.Join(root, "notes.txt"),
		filepath.Join(root, "sub"),
		filepath.Join(root, "ghost"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoFileExists(t, filepath.Join(root, "notes.txt"))
	assert.NoDirExists(t, filepath.Join(root, "sub"))
	assert.Equal(t, []string{root, root}, inv.paths)

	require.NoError(t, ops.Delete(nil))
}

func TestOperationsWithoutInvalidator(t *testing.T) {
	root := t.TempDir()
	ops := NewOperations(nil, nil, nil)
	require.NoError(t, ops.CreateFolder(filepath.Join(root, "x")))

	f, err := os.Create(filepath.Join(root, "x", "f"))
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.NoError(t, ops.Delete([]string{filepath.Join(root, "x")}))
}

func TestInvalidatorFunc(t *testing.T) {
	var got string
	InvalidatorFunc(func(p string) { got = p }).Invalidate("/tmp/x")
	assert.Equal(t, "/tmp/x", got)
}
