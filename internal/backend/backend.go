// Package backend persists array schema blobs keyed by array URI.
//
// The backend treats the blob as opaque bytes; interpreting them is the
// schema layer's job.
package backend

import (
	"errors"
	"fmt"

	"github.com/gridstore/gridstore/internal/config"
)

// ErrNotFound is returned by Fetch when no array exists at the URI.
var ErrNotFound = errors.New("array not found")

// ErrExists is returned by Materialize when the URI is already taken.
var ErrExists = errors.New("array already exists")

// Backend stores persisted schemas.
type Backend interface {
	// Materialize writes the blob for a new array. Fails with ErrExists
	// if an array is already materialized at uri.
	Materialize(uri string, blob []byte) error

	// Fetch returns the persisted blob for uri, or ErrNotFound.
	Fetch(uri string) ([]byte, error)

	// List returns the URIs of all materialized arrays, sorted.
	List() ([]string, error)

	// Close releases backend resources.
	Close() error
}

// Open creates the backend selected by cfg.
func Open(cfg config.Config) (Backend, error) {
	switch cfg.Backend.Type {
	case config.BackendBolt:
		return OpenBolt(cfg.Backend.Path)
	case config.BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend type %q", cfg.Backend.Type)
	}
}
