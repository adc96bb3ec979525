package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiskBlobStoreRequiresRoot(t *testing.T) {
	_, err := NewDiskBlobStore("", "/uploads")
	assert.Error(t, err)
}

func TestPutWritesAndResolves(t *testing.T) {
	store, err := NewDiskBlobStore(t.TempDir(), "/uploads/")
	require.NoError(t, err)

	result, err := store.Put([]byte("hello"), PutInput{
		Folder:       "project-3",
		OriginalName: "brief.pdf",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.URL, "/uploads/project-3/"))
	assert.True(t, strings.HasSuffix(result.Key, "_brief.pdf"))
}

func TestPutUniqueNames(t *testing.T) {
	store, err := NewDiskBlobStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	first, err := store.Put([]byte("one"), PutInput{Folder: "p", OriginalName: "same.txt"})
	require.NoError(t, err)

	second, err := store.Put([]byte("two"), PutInput{Folder: "p", OriginalName: "same.txt"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
}

func TestPutSanitizesTraversal(t *testing.T) {
	root := t.TempDir()

	store, err := NewDiskBlobStore(root, "/uploads")
	require.NoError(t, err)

	result, err := store.Put([]byte("data"), PutInput{
		Folder:       "../outside",
		OriginalName: "../../etc/passwd",
	})
	require.NoError(t, err)

	path := filepath.Join(root, filepath.FromSlash(result.Key))
	assert.True(t, strings.HasPrefix(path, root))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestDeleteRemovesBlob(t *testing.T) {
	root := t.TempDir()

	store, err := NewDiskBlobStore(root, "/uploads")
	require.NoError(t, err)

	result, err := store.Put([]byte("bytes"), PutInput{Folder: "p", OriginalName: "doc.txt"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(result.URL))

	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(result.Key)))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteRejectsForeignURL(t *testing.T) {
	store, err := NewDiskBlobStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.Error(t, store.Delete("https://elsewhere.example.com/file.txt"))
	assert.Error(t, store.Delete("/uploads/../../../etc/passwd"))
}
