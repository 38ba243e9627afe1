// Package lock provides per-key mutual exclusion for the booking critical
// section. Memory serves a single process; Redis coordinates several
// instances sharing one database.
package lock

import (
	"context"
	"errors"
)

// Locker serializes work on a key. Lock blocks until the key is free or ctx
// ends; the returned unlock func is safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// ErrEmptyKey is returned when Lock is called without a key.
var ErrEmptyKey = errors.New("lock: empty key")
