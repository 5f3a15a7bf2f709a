package kvstore

import (
	"context"
	"errors"
)

// ErrQuotaExceeded is returned by Set when the write would exceed capacity.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is the key-value contract FileStore and AccountStore depend on.
type Store interface {
	// Get returns the value under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error

	// Delete removes key. Removing an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Has reports whether key is present without loading its value.
	Has(ctx context.Context, key string) (bool, error)

	// Keys lists all keys in ascending order.
	Keys(ctx context.Context) ([]string, error)

	// Usage reports bytes used and the configured capacity.
	Usage(ctx context.Context) (Usage, error)

	Close() error
}

// Usage describes how much of a store's capacity is taken.
type Usage struct {
	Used     int64
	Capacity int64
}

// Bounded reports whether the store enforces a capacity.
func (u Usage) Bounded() bool {
	return u.Capacity > 0
}

// Free returns the remaining bytes, or -1 for an unbounded store.
func (u Usage) Free() int64 {
	if !u.Bounded() {
		return -1
	}
	if u.Used >= u.Capacity {
		return 0
	}
	return u.Capacity - u.Used
}

// EntrySize is the number of bytes an entry is charged against capacity.
func EntrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}

// fits reports whether an entry of size n can be added on top of used bytes.
func fits(capacity, used, n int64) bool {
	return capacity <= 0 || used+n <= capacity
}
