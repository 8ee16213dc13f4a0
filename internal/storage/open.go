package storage

import (
	"errors"
	"strings"
)

// ForPath picks the backend for a storage path: a .json path gets the flat
// store, anything else the structured SQLite store.
func ForPath(path string) Provider {
	if strings.HasSuffix(path, ".json") {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}

// FallbackPath is the flat-store sibling used when the structured store
// cannot be opened.
func FallbackPath(path string) string {
	return path + ".json"
}

// OpenWithFallback loads the store for path. When the structured store is
// unavailable (corrupt or unopenable, not merely uninitialized), it falls
// back to the flat sibling store, initializing it on first use. warn carries
// the primary store's failure so the caller can log the degradation; err is
// only set when no store could be opened.
func OpenWithFallback(path string) (p Provider, warn error, err error) {
	primary := ForPath(path)
	loadErr := primary.Load()
	if loadErr == nil {
		return primary, nil, nil
	}
	if !errors.Is(loadErr, ErrStorageUnavailable) {
		return nil, nil, loadErr
	}
	if _, isFlat := primary.(*JSONStore); isFlat {
		return nil, nil, loadErr
	}

	fb := NewJSONStore(FallbackPath(path))
	if ferr := fb.Load(); ferr != nil {
		if ierr := fb.Init(); ierr != nil {
			return nil, nil, loadErr
		}
	}
	return fb, loadErr, nil
}
