package storage

import (
	"fmt"
	"path/filepath"
)

// KV is a minimal string key-value store, the local equivalent of browser
// localStorage. Get reports ok=false for absent keys.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open returns the backend named by backend rooted at dataDir
func Open(backend, dataDir string) (KV, error) {
	switch backend {
	case "", BackendFile:
		return NewFileKV(filepath.Join(dataDir, "store"))
	case BackendSQLite:
		return NewSQLiteKV(filepath.Join(dataDir, "smartnote.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
