// Package kv is the durable key/value layer the cart and order stores persist
// through. Every backend stores opaque byte values under string keys; callers
// own the encoding.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	// Get returns ErrNotFound when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Key joins a namespace and a fixed name, e.g. Key("shopper-1", "cart").
func Key(namespace, name string) string {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return name
	}
	return namespace + ":" + name
}

type Options struct {
	Driver      string
	DataDir     string
	RedisAddr   string
	PostgresURL string
}

// Open builds the backend selected by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", "file":
		s, err := NewFileStore(opts.DataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		s, err := DialRedis(ctx, opts.RedisAddr)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := DialPostgres(ctx, opts.PostgresURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("kv: unknown driver %q", opts.Driver)
	}
}
