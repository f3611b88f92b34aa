package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// WriteTimeout bounds a single state write from a synchronous store operation.
const WriteTimeout = 5 * time.Second

// LoadJSON decodes key into v. found is false when the key has never been written.
func LoadJSON(ctx context.Context, kv KV, key string, v any) (found bool, err error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// SaveJSON encodes v and writes it under key, bounded by WriteTimeout.
func SaveJSON(kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), WriteTimeout)
	defer cancel()
	return kv.Set(ctx, key, data)
}
