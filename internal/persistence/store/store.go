// Package store keeps encoded saves in named slots.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a slot holds no save.
var ErrNotFound = errors.New("save slot not found")

// Slot is one stored save with the metadata needed to list it.
type Slot struct {
	Name            string
	SaveID          string
	Version         int
	SavedAt         time.Time
	PlayTimeSeconds float64
	Blob            []byte
}

// Store is implemented by SQLite and Memory.
type Store interface {
	Put(ctx context.Context, s Slot) error
	Get(ctx context.Context, name string) (Slot, error)
	List(ctx context.Context) ([]Slot, error)
	Delete(ctx context.Context, name string) error
	Close() error
}
