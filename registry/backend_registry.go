/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/cfstress/config"
	"github.com/suparena/cfstress/datastore"
	"github.com/suparena/cfstress/errors"
)

// OpenFunc opens a client session for the given store settings.
type OpenFunc func(ctx context.Context, cfg config.Store) (datastore.Client, error)

var (
	backendRegistry = make(map[string]OpenFunc)
	mu              sync.RWMutex
)

// RegisterBackend registers an opener under name.
// If a backend is already registered for the name, it panics to prevent accidental overrides.
func RegisterBackend(name string, fn OpenFunc) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := backendRegistry[name]; exists {
		panic(fmt.Sprintf("backend registry: backend %q already registered", name))
	}
	backendRegistry[name] = fn
}

// GetOpenFunc returns the opener registered for name.
func GetOpenFunc(name string) (OpenFunc, error) {
	mu.RLock()
	defer mu.RUnlock()

	fn, ok := backendRegistry[name]
	if !ok {
		return nil, errors.NewConfigurationError("store.backend",
			fmt.Sprintf("no backend registered as %q (have %v)", name, namesLocked()))
	}
	return fn, nil
}

// Open opens a session with the backend named by cfg.Backend.
func Open(ctx context.Context, cfg config.Store) (datastore.Client, error) {
	fn, err := GetOpenFunc(cfg.Backend)
	if err != nil {
		return nil, err
	}
	return fn(ctx, cfg)
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	mu.RLock()
	defer mu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(backendRegistry))
	for name := range backendRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
