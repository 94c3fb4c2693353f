package storage

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	UpdateBufferSize = 255
)

var ErrEmptyKey = errors.New("Store keys cannot be empty")

type InmemoryStore struct {
	valuesMu sync.RWMutex
	values   []byte

	mu          sync.Mutex
	updateChans []chan *Update

	// stop willl be closed when Close() is called
	stop     chan struct{}
	stopOnce sync.Once
}

func NewInmemoryStore() *InmemoryStore {
	return &InmemoryStore{
		values:      []byte(""),
		stop:        make(chan struct{}),
		updateChans: make([]chan *Update, 0),
	}
}

func (i *InmemoryStore) Close() error {
	i.stopOnce.Do(func() {
		close(i.stop)

		i.mu.Lock()
		defer i.mu.Unlock()

		for _, updateChan := range i.updateChans {
			close(updateChan)
		}
		i.updateChans = nil
	})

	return nil
}

func (i *InmemoryStore) Set(ctx context.Context, key []byte, value interface{}) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}

	path := EscapeKey(string(key))

	i.valuesMu.Lock()
	values, err := sjson.SetBytes(i.values, setPath(path), value)
	if err != nil {
		i.valuesMu.Unlock()
		return err
	}
	i.values = values
	raw := []byte(gjson.GetBytes(i.values, path).Raw)
	i.valuesMu.Unlock()

	if !i.isRunning() {
		return nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	for _, updateChan := range i.updateChans {
		select {
		case updateChan <- &Update{Key: key, Value: raw}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// Get returns the raw JSON stored under key, or nil if there is none.
func (i *InmemoryStore) Get(ctx context.Context, key []byte) ([]byte, error) {
	i.valuesMu.RLock()
	defer i.valuesMu.RUnlock()

	result := gjson.GetBytes(i.values, EscapeKey(string(key)))
	if !result.Exists() {
		return nil, nil
	}

	return []byte(result.Raw), nil
}

func (i *InmemoryStore) ListenToUpdates() <-chan *Update {
	i.mu.Lock()
	defer i.mu.Unlock()

	updateChan := make(chan *Update, UpdateBufferSize)
	if !i.isRunning() {
		close(updateChan)
		return updateChan
	}

	i.updateChans = append(i.updateChans, updateChan)

	return updateChan
}

func (i *InmemoryStore) Backup() ([]byte, error) {
	i.valuesMu.RLock()
	defer i.valuesMu.RUnlock()

	if len(i.values) == 0 {
		return []byte("{}"), nil
	}

	backup := make([]byte, len(i.values))
	copy(backup, i.values)

	return backup, nil
}

// isRunning returns true if Close has not been called
func (i *InmemoryStore) isRunning() bool {
	select {
	case <-i.stop:
		return false

	default:
		return true
	}
}

var pathEscaper = strings.NewReplacer(
	`\`, `\\`,
	".", `\.`,
	"*", `\*`,
	"?", `\?`,
	"|", `\|`,
	"#", `\#`,
	"@", `\@`,
	":", `\:`,
	"[", `\[`,
	"]", `\]`,
	"{", `\{`,
	"}", `\}`,
)

// EscapeKey turns a peer address into a single gjson path component, so that
// 197.0.0.1 is one key rather than four nested ones, and [::1]:80 is a key
// rather than a multipath.
func EscapeKey(key string) string {
	return pathEscaper.Replace(key)
}

// setPath forces sjson to write an object key, otherwise an all digit
// address like 1 would become an array index.
func setPath(escaped string) string {
	return ":" + escaped
}

var _ Store = (*InmemoryStore)(nil)
