// Package kvstore is the storage port of notekeeper: a string-keyed,
// string-valued store with a fixed byte capacity.
//
// # Overview
//
// Every backend implements Store. An entry costs len(key)+len(value) bytes;
// a Set that would push the total past the capacity fails with
// ErrQuotaExceeded and leaves the store unchanged. A capacity <= 0 disables
// the check.
//
// Backends
//
//   - MemoryStore    process-local map, used by tests and the "memory" backend
//   - SQLStore       SQLite (modernc.org/sqlite) or PostgreSQL (pgx) table,
//     schema applied with embedded goose migrations
//   - S3Store        one object per key under a prefix of an S3 bucket
//
// Open selects a backend from configuration.
//
// # Concurrency
//
// Operations are read-modify-write on single keys. Nothing coordinates two
// processes sharing one backing store; the last writer wins.
package kvstore
