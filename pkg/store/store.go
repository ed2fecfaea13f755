// Package store persists concept-map state as JSON values under namespaced keys.
//
// A [Store] wraps a byte-oriented [Backend] and never reports failure to its
// callers: [Load] falls back to the supplied default when a key is absent,
// when its value cannot be decoded, or when the backend errors, and
// [Store.Save] logs and swallows write failures. In-memory state owned by the
// caller stays authoritative for the session even when persistence is gone.
//
// # Keys
//
// Stored keys have the form "<namespace>:<key>". Concept maps use
// [KnownKey] and [CollapsedKey] for the key part, giving
// "<namespace>:<mapId>:known" and "<namespace>:<mapId>:collapsed".
//
// # Backends
//
//   - [MemoryBackend]: process-local map, used by tests and --store memory
//   - [FileBackend]: one JSON file per key under a directory (default)
//   - [NullBackend]: storage disabled, every load falls back
//   - [RedisBackend], [MongoBackend], [SQLiteBackend]: shared stores
//
// [Open] selects a backend from a DSN string.
package store

import (
	"bytes"
	"context"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"

	"github.com/matzehuels/conceptmap/pkg/observability"
)

// DefaultNamespace prefixes every key written by the concept map.
const DefaultNamespace = "dod:conceptmap"

// Backend stores raw bytes by key.
type Backend interface {
	// Get returns the stored bytes and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases connections or handles held by the backend.
	Close() error
}

// Store is the JSON key-value service shared by all concept-map components.
type Store struct {
	backend Backend
	logger  *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report swallowed failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New wraps backend. A nil backend behaves like [NullBackend].
func New(backend Backend, opts ...Option) *Store {
	if backend == nil {
		backend = NewNullBackend()
	}
	s := &Store{backend: backend, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key joins a namespace and a key with ':'. An empty namespace leaves key as is.
func Key(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}

// Load returns the value stored under namespace and key, decoded into T, or
// fallback if the key is absent, the value is empty or malformed, or the
// backend fails. A stored JSON null decodes to the zero value of T.
// Load never returns an error.
func Load[T any](ctx context.Context, s *Store, namespace, key string, fallback T) T {
	if s == nil {
		return fallback
	}
	full := Key(namespace, key)

	data, ok, err := s.backend.Get(ctx, full)
	if err != nil {
		s.logger.Debug("store load failed", "key", full, "err", err)
		observability.Store().OnError(ctx, "load", err)
		return fallback
	}
	if !ok {
		observability.Store().OnMiss(ctx, full)
		return fallback
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		observability.Store().OnMiss(ctx, full)
		return fallback
	}

	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		s.logger.Debug("store value malformed", "key", full, "err", err)
		observability.Store().OnError(ctx, "decode", err)
		return fallback
	}
	observability.Store().OnHit(ctx, full)
	return v
}

// Save encodes value as JSON and stores it under namespace and key. Failures
// are logged at debug level and otherwise ignored.
func (s *Store) Save(ctx context.Context, namespace, key string, value any) {
	if s == nil {
		return
	}
	full := Key(namespace, key)

	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Debug("store encode failed", "key", full, "err", err)
		observability.Store().OnError(ctx, "encode", err)
		return
	}
	if err := s.backend.Set(ctx, full, data); err != nil {
		s.logger.Debug("store save failed", "key", full, "err", err)
		observability.Store().OnError(ctx, "save", err)
		return
	}
	observability.Store().OnSave(ctx, full, len(data))
}

// Delete removes the value under namespace and key, ignoring failures.
func (s *Store) Delete(ctx context.Context, namespace, key string) {
	if s == nil {
		return
	}
	full := Key(namespace, key)
	if err := s.backend.Delete(ctx, full); err != nil {
		s.logger.Debug("store delete failed", "key", full, "err", err)
		observability.Store().OnError(ctx, "delete", err)
	}
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// KnownKey returns the key part under which a map's known set is stored.
func KnownKey(mapID string) string {
	return mapID + ":known"
}

// CollapsedKey returns the key part under which a map's collapsed set is stored.
func CollapsedKey(mapID string) string {
	return mapID + ":collapsed"
}
