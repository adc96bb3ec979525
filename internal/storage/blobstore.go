// Package storage holds the binary object storage capability. The portal only
// keeps metadata; bytes live behind a BlobStore.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type PutInput struct {
	Folder       string
	OriginalName string
	ContentType  string
}

type PutResult struct {
	URL string
	Key string
}

type BlobStore interface {
	Put(data []byte, in PutInput) (PutResult, error)
	Delete(url string) error
}

// DiskBlobStore stores blobs under a local directory served as static files.
// Keys preserve the original extension so document types survive round trips.
type DiskBlobStore struct {
	root    string
	baseURL string
}

func NewDiskBlobStore(root, baseURL string) (*DiskBlobStore, error) {
	if root == "" {
		return nil, errors.New("storage root must not be empty")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	return &DiskBlobStore{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *DiskBlobStore) Put(data []byte, in PutInput) (PutResult, error) {
	folder := sanitizeSegment(in.Folder)
	if folder == "" {
		folder = "misc"
	}

	key := folder + "/" + uniqueName(in.OriginalName)
	path := filepath.Join(s.root, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return PutResult{}, fmt.Errorf("create blob folder: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return PutResult{}, fmt.Errorf("write blob: %w", err)
	}

	return PutResult{
		URL: s.baseURL + "/" + key,
		Key: key,
	}, nil
}

func (s *DiskBlobStore) Delete(url string) error {
	key := strings.TrimPrefix(url, s.baseURL+"/")

	if key == url || strings.Contains(key, "..") {
		return fmt.Errorf("url %q is not managed by this store", url)
	}

	path := filepath.Join(s.root, filepath.FromSlash(key))

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob: %w", err)
	}

	return nil
}

// uniqueName prefixes the sanitized original name with random hex so repeated
// uploads of the same file never collide.
func uniqueName(original string) string {
	buf := make([]byte, 8)
	rand.Read(buf)

	name := sanitizeSegment(original)
	if name == "" {
		name = "blob"
	}

	return hex.EncodeToString(buf) + "_" + name
}

func sanitizeSegment(s string) string {
	s = filepath.Base(strings.TrimSpace(s))
	if s == "." || s == string(filepath.Separator) {
		return ""
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	return strings.Trim(b.String(), ".")
}
