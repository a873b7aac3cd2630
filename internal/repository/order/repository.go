package order

import (
	"context"

	"bookstore-api/internal/domain"
)

type Repository interface {
	// Append writes a new immutable order and fills in its id and timestamp.
	Append(ctx context.Context, order *domain.Order) error
	// FindByEmail returns the shopper's orders, most recent first.
	FindByEmail(ctx context.Context, email string) ([]domain.Order, error)
}
