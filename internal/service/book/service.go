package book

import (
	"context"
	"errors"

	"bookstore-api/internal/domain"
	bookrepo "bookstore-api/internal/repository/book"
	"bookstore-api/internal/validate"
)

// Service is the catalog: read lookups for the cart/order core and CRUD for
// the admin dashboard.
type Service struct {
	repo bookrepo.Repository
}

func New(repo bookrepo.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author"`
	Description   string `json:"description" validate:"required"`
	Category      string `json:"category" validate:"required"`
	Trending      bool   `json:"trending"`
	CoverImage    string `json:"coverImage" validate:"required"`
	NewPriceCents int64  `json:"newPriceCents" validate:"min=0"`
	OldPriceCents int64  `json:"oldPriceCents" validate:"min=0"`
}

func (in Input) toBook() domain.Book {
	return domain.Book{
		Title:         in.Title,
		Author:        in.Author,
		Description:   in.Description,
		Category:      in.Category,
		Trending:      in.Trending,
		CoverImage:    in.CoverImage,
		NewPriceCents: in.NewPriceCents,
		OldPriceCents: in.OldPriceCents,
	}
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Book, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, in.toBook())
	if err != nil {
		return nil, domain.Transient(err)
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.Transient(err)
	}
	return book, nil
}

// GetByIDs resolves the given ids, omitting any that no longer exist. Used to
// enrich order lines for the order-detail view.
func (s *Service) GetByIDs(ctx context.Context, ids []string) ([]domain.Book, error) {
	books, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, domain.Transient(err)
	}
	return books, nil
}

func (s *Service) List(ctx context.Context, filter bookrepo.ListFilter) ([]domain.Book, error) {
	books, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, domain.Transient(err)
	}
	return books, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Book, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	book := in.toBook()
	book.ID = id
	updated, err := s.repo.Update(ctx, book)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.Transient(err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return domain.Transient(err)
	}
	return nil
}

func checkInput(in Input) error {
	if err := validate.Check(in); err != nil {
		var fe validate.FieldErrors
		if errors.As(err, &fe) {
			return domain.NewValidationError(fe.Fields()...)
		}
		return err
	}
	return nil
}
