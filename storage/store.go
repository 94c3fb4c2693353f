package storage

import "context"

// Store holds the status document of a comms server: a single JSON object
// keyed by peer address.
type Store interface {
	Set(ctx context.Context, key []byte, value interface{}) error
	Get(ctx context.Context, key []byte) ([]byte, error)

	Backup() ([]byte, error)

	ListenToUpdates() <-chan *Update

	Close() error
}

// Update is sent to listeners whenever a key is written. Value is the raw
// JSON of the key after the write.
type Update struct {
	Key   []byte
	Value []byte
}
