package kvstore

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Options selects and parameterises a backend.
type Options struct {
	Backend     string
	SQLitePath  string
	PostgresDSN string
	S3          S3Config
	Capacity    int64
}

// Open builds the backend named by o.Backend.
func Open(ctx context.Context, o Options) (Store, error) {
	switch o.Backend {
	case BackendMemory:
		return NewMemoryStore(o.Capacity), nil
	case "", BackendSQLite:
		return OpenSQLite(ctx, o.SQLitePath, o.Capacity)
	case BackendPostgres:
		return OpenPostgres(ctx, o.PostgresDSN, o.Capacity)
	case BackendS3:
		return OpenS3(ctx, o.S3, o.Capacity)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", o.Backend)
	}
}
