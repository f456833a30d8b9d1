// Package conceptconfig stores the YAML documents psychic concepts are bound from
package conceptconfig

//go:generate mockgen -destination=mock/mock_repository.go -package=conceptconfigmock github.com/KirkDiggler/psychics/internal/repositories/concept_config Repository

import (
	"context"
	"regexp"

	"github.com/KirkDiggler/psychics/internal/errors"
)

// Repository defines the interface for concept configuration storage
type Repository interface {
	// List returns every stored concept name, sorted
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Get retrieves the document of one concept
	// Returns errors.InvalidArgument for invalid names
	// Returns errors.NotFound if the concept doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put creates or replaces the document of one concept
	// Returns errors.InvalidArgument for invalid names or empty documents
	// Returns errors.Internal for storage failures
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Delete removes one concept
	// Returns errors.InvalidArgument for invalid names
	// Returns errors.NotFound if the concept doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// ListInput defines the input for listing concepts
type ListInput struct{}

// ListOutput defines the output for listing concepts
type ListOutput struct {
	Names []string
}

// GetInput defines the input for getting a concept document
type GetInput struct {
	Name string
}

// GetOutput defines the output for getting a concept document
type GetOutput struct {
	Name string
	Data []byte
}

// PutInput defines the input for storing a concept document
type PutInput struct {
	Name string
	Data []byte
}

// PutOutput defines the output for storing a concept document
type PutOutput struct {
	Created bool
}

// DeleteInput defines the input for deleting a concept
type DeleteInput struct {
	Name string
}

// DeleteOutput defines the output for deleting a concept
type DeleteOutput struct{}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateName checks a concept name is usable as a file name and Redis key
func ValidateName(name string) error {
	if name == "" {
		return errors.InvalidArgument(errNameEmpty)
	}
	if !namePattern.MatchString(name) {
		return errors.InvalidArgumentf("invalid concept name %q", name).WithMeta("name", name)
	}
	return nil
}

const (
	errNameEmpty = "concept name cannot be empty"
	errDataEmpty = "concept document cannot be empty"
)
