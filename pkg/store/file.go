package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

// FileBackend stores each key as a small JSON file under a directory.
// Files are sharded by the first two hex characters of the key's SHA-256 so a
// single directory never grows large.
type FileBackend struct {
	dir string
}

// NewFileBackend creates a file backend rooted at dir, creating it if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileBackend{dir: dir}, nil
}

// fileEntry is the on-disk record. Key is kept for inspection only.
type fileEntry struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Get reads the entry for key. A corrupt entry is removed and reported as a miss.
func (f *FileBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := f.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Key != key {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return []byte(entry.Value), true, nil
}

// Set writes the entry for key atomically through a temp file and rename.
// data must be valid JSON.
func (f *FileBackend) Set(ctx context.Context, key string, data []byte) error {
	entry := fileEntry{Key: key, Value: json.RawMessage(data), UpdatedAt: time.Now().UTC()}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := f.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes the entry for key.
func (f *FileBackend) Delete(ctx context.Context, key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Dir returns the root directory.
func (f *FileBackend) Dir() string {
	return f.dir
}

// Close does nothing for the file backend.
func (f *FileBackend) Close() error {
	return nil
}

func (f *FileBackend) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(f.dir, hash[:2], hash[2:]+".json")
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

var _ Backend = (*FileBackend)(nil)
