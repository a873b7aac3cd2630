package cart

import (
	"context"

	"bookstore-api/internal/domain"
)

type Repository interface {
	// Load returns the cart owned by key, or domain.ErrNotFound when absent.
	Load(ctx context.Context, owner domain.OwnerKey) (*domain.Cart, error)
	// Save persists the cart and its full item set in one transaction,
	// creating the cart row on first save.
	Save(ctx context.Context, cart *domain.Cart) error
	// Delete removes the cart owned by key. Deleting an absent cart is a no-op.
	Delete(ctx context.Context, owner domain.OwnerKey) error
}
