package storage

import (
	"errors"

	"github.com/nats-io/nats.go/jetstream"
)

// Common storage errors.
var (
	// ErrNotFound is returned when no document is stored under a key.
	ErrNotFound = errors.New("document not found")
)

func isNotFound(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound)
}
