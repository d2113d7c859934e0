// SPDX-License-Identifier: MIT
// Package: builder
//
// api.go - public entry point and the Constructor type.

package builder

import (
	"fmt"

	"github.com/muffato/pywaltrap/core"
)

// Constructor applies a deterministic mutation to s using the resolved
// configuration. Constructors validate their parameters first and return
// sentinel errors; they never panic.
type Constructor func(s *core.EdgeStore, cfg builderConfig) error

// Build creates an empty store, resolves bopts and applies cons in order.
// The first constructor error is returned wrapped as "Build: %w".
//
// Complexity: O(len(bopts)) plus the cost of each constructor.
func Build(bopts []BuilderOption, cons ...Constructor) (*core.EdgeStore, error) {
	s := core.NewEdgeStore()
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(s, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	return s, nil
}

// Apply runs cons against an existing store.
func Apply(s *core.EdgeStore, bopts []BuilderOption, cons ...Constructor) error {
	if s == nil {
		return fmt.Errorf("Apply: nil store: %w", ErrConstructFailed)
	}
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return fmt.Errorf("Apply: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(s, cfg); err != nil {
			return fmt.Errorf("Apply: %w", err)
		}
	}

	return nil
}
