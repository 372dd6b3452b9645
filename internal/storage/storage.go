// Package storage defines the durable object store used for reference audio.
package storage

import (
	"context"
	"errors"
)

//go:generate mockgen -source=storage.go -destination=../mocks/storage/mock_storage.go -package=mock_storage

// ErrObjectExists is returned when a write-once upload targets an existing name.
var ErrObjectExists = errors.New("object already exists")

// ObjectStore uploads immutable objects and returns their public URL.
type ObjectStore interface {
	// Upload writes data under name and returns a publicly resolvable URL.
	// It never overwrites an existing object.
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
}
