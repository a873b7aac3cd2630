package book

import (
	"context"

	"bookstore-api/internal/domain"
)

// ListFilter narrows List results. Zero values mean no filtering.
type ListFilter struct {
	Category string
	Trending *bool
}

type Repository interface {
	Create(ctx context.Context, book domain.Book) (*domain.Book, error)
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Book, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Book, error)
	Update(ctx context.Context, book domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, book domain.Book) (*domain.Book, error)
}
