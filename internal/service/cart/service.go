package cart

import (
	"context"
	"errors"

	"bookstore-api/internal/domain"
	cartrepo "bookstore-api/internal/repository/cart"
)

// Service is the cart engine: it owns quantity policy, price snapshots, and
// the merge-on-login flow. Catalog and persistence are injected collaborators.
type Service struct {
	carts cartStore
	books catalog
}

type cartStore interface {
	Load(ctx context.Context, owner domain.OwnerKey) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, owner domain.OwnerKey) error
}

type catalog interface {
	GetByID(ctx context.Context, id string) (*domain.Book, error)
}

func New(carts cartrepo.Repository, books catalog) *Service {
	return &Service{carts: carts, books: books}
}

// MergeItem is one guest-cart line presented at login. Only the reference and
// quantity are trusted; the snapshot is re-taken from the live catalog.
type MergeItem struct {
	BookID   string `json:"bookId"`
	Quantity int    `json:"quantity"`
}

// Load returns the owner's cart, or a fresh empty unsaved cart when none
// exists. Absence is not an error.
func (s *Service) Load(ctx context.Context, owner domain.OwnerKey) (*domain.Cart, error) {
	cart, err := s.carts.Load(ctx, owner)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewCart(owner), nil
		}
		return nil, domain.Transient(err)
	}
	return cart, nil
}

// AddItem snapshots the book at its current catalog price and adds it to the
// cart, additive-with-cap when the book is already a line item.
func (s *Service) AddItem(ctx context.Context, owner domain.OwnerKey, bookID string, quantity int) (*domain.Cart, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		// A catalog timeout is retryable, never "book not found".
		return nil, domain.Transient(err)
	}

	cart, err := s.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	cart.Add(domain.SnapshotItem(*book, quantity))

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, domain.Transient(err)
	}
	return cart, nil
}

// UpdateQuantity clamps the requested quantity into [1, 99] for an existing
// line. Returns ErrNotFound when the book is not in the cart.
func (s *Service) UpdateQuantity(ctx context.Context, owner domain.OwnerKey, bookID string, quantity int) (*domain.Cart, error) {
	cart, err := s.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if err := cart.SetQuantity(bookID, quantity); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, domain.Transient(err)
	}
	return cart, nil
}

// RemoveItem drops the line for bookID. Removing an absent item is a no-op.
func (s *Service) RemoveItem(ctx context.Context, owner domain.OwnerKey, bookID string) (*domain.Cart, error) {
	cart, err := s.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	cart.Remove(bookID)

	// Nothing persisted and nothing to remove: keep the cart lazy.
	if cart.ID == "" {
		return cart, nil
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, domain.Transient(err)
	}
	return cart, nil
}

// Clear empties the cart. Idempotent.
func (s *Service) Clear(ctx context.Context, owner domain.OwnerKey) (*domain.Cart, error) {
	cart, err := s.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	cart.Clear()

	if cart.ID == "" {
		return cart, nil
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, domain.Transient(err)
	}
	return cart, nil
}

// Merge folds a guest cart into the user's cart at login. Each guest line is
// re-resolved against the catalog; books that vanished are skipped silently,
// so a partial guest cart still merges. Quantity conflicts use the same
// additive-with-cap rule as AddItem. The guest cart is deleted afterwards.
func (s *Service) Merge(ctx context.Context, userID, sessionID string, guestItems []MergeItem) (*domain.Cart, error) {
	cart, err := s.Load(ctx, domain.UserKey(userID))
	if err != nil {
		return nil, err
	}

	for _, guest := range guestItems {
		book, err := s.books.GetByID(ctx, guest.BookID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, domain.Transient(err)
		}
		cart.Add(domain.SnapshotItem(*book, guest.Quantity))
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, domain.Transient(err)
	}

	if sessionID != "" {
		if err := s.carts.Delete(ctx, domain.SessionKey(sessionID)); err != nil {
			return nil, domain.Transient(err)
		}
	}
	return cart, nil
}
