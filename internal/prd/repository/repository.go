package repository

import (
	"context"
	"errors"

	"github.com/prdforge/prdforge/backend/go-services/internal/prd"
)

var (
	ErrNotFound = errors.New("document not found")
)

// Repository persists PRD documents. Update writes only the mutable fields
// (title, markdown, content, updated_at); owner, description and
// created_at are fixed at Create.
type Repository interface {
	Create(ctx context.Context, d *prd.Document) (string, error)
	Get(ctx context.Context, id string) (*prd.Document, error)
	// ListByOwner returns the owner's documents, newest first.
	ListByOwner(ctx context.Context, owner string) ([]*prd.Document, error)
	Update(ctx context.Context, d *prd.Document) error
	Delete(ctx context.Context, id string) error
}
