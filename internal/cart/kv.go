package cart

import (
	"context"
	"errors"
)

// KeyValueStore is the durability port for session state. Consumers define
// this interface, not the Redis implementation. Every key names exactly one
// session's data; there is deliberately no bulk-delete operation.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrKeyNotFound = errors.New("key not found")
