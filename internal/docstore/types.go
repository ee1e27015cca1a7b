package docstore

import (
	"database/sql"
	"errors"
	"sync"
)

var (
	// ErrUnavailable wraps every failure talking to the backing store.
	ErrUnavailable = errors.New("document store unavailable")
	// ErrInvalidKey is returned by ValidateKey.
	ErrInvalidKey = errors.New("invalid document key")
)

// Memory keeps the document tree in process.
type Memory struct {
	mu   sync.RWMutex
	root map[string]any
}

// SQL flattens the document tree into one row per leaf.
type SQL struct {
	db *sql.DB
	mu sync.Mutex
}
