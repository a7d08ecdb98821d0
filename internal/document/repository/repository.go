package repository

import (
	"context"
	"errors"

	"github.com/tiernote/tiernote/internal/document"
)

var (
	// ErrNotFound is returned when no document exists for a requested id.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateID is returned when Add sees an id that already exists.
	// A colliding id is a hard error, never a silent overwrite.
	ErrDuplicateID = errors.New("document id already exists")
)

// Filter narrows List results. Zero value matches everything.
type Filter struct {
	Classification document.Classification
	// Tags matches documents carrying at least one of these tags.
	Tags []string
}

// Repository is the sole owner of the persisted document collection.
// Add must be atomic with respect to concurrent Add calls: implementations
// either insert records individually or serialize the critical section.
type Repository interface {
	Add(ctx context.Context, doc *document.Document) error
	GetByID(ctx context.Context, id string) (*document.Document, error)
	List(ctx context.Context, f Filter) ([]*document.Document, error)
}

func matches(d *document.Document, f Filter) bool {
	if f.Classification != "" && d.Classification != f.Classification {
		return false
	}
	if len(f.Tags) > 0 && !d.HasAnyTag(f.Tags) {
		return false
	}
	return true
}
