package store

import (
	"context"
	"strings"

	"github.com/matzehuels/conceptmap/pkg/errors"
)

// Backend kinds recognised by [Open].
const (
	KindMemory = "memory"
	KindNull   = "null"
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindRedis  = "redis"
	KindMongo  = "mongo"
)

// Kind returns the backend kind a DSN selects, or "" if it is not recognised.
func Kind(dsn string) string {
	switch {
	case dsn == "" || dsn == KindFile || strings.HasPrefix(dsn, "file:"):
		return KindFile
	case dsn == KindMemory:
		return KindMemory
	case dsn == KindNull || dsn == "none":
		return KindNull
	case strings.HasPrefix(dsn, "sqlite:"):
		return KindSQLite
	case strings.HasPrefix(dsn, "redis://"), strings.HasPrefix(dsn, "rediss://"):
		return KindRedis
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		return KindMongo
	default:
		return ""
	}
}

// Open creates the backend described by dsn:
//
//	""  or "file"          file backend in defaultDir
//	"file:/path/to/dir"    file backend in the given directory
//	"memory"               in-memory backend
//	"null" or "none"       storage disabled
//	"sqlite:/path/db"      SQLite database
//	"redis://host:6379/0"  Redis
//	"mongodb://host:27017" MongoDB (database "conceptmap", collection "state")
func Open(ctx context.Context, dsn, defaultDir string) (Backend, error) {
	var (
		b   Backend
		err error
	)
	switch Kind(dsn) {
	case KindFile:
		dir := strings.TrimPrefix(strings.TrimPrefix(dsn, KindFile), ":")
		if dir == "" {
			dir = defaultDir
		}
		if dir == "" {
			return nil, errors.New(errors.ErrCodeStoreUnavailable, "no directory for file store")
		}
		b, err = NewFileBackend(dir)
	case KindMemory:
		b = NewMemoryBackend()
	case KindNull:
		b = NewNullBackend()
	case KindSQLite:
		b, err = NewSQLiteBackend(ctx, strings.TrimPrefix(dsn, "sqlite:"))
	case KindRedis:
		b, err = NewRedisBackend(ctx, dsn)
	case KindMongo:
		b, err = NewMongoBackend(ctx, dsn, "", "")
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unrecognised store %q", dsn)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "open %s store", Kind(dsn))
	}
	return b, nil
}
