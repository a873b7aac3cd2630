package order

import (
	"context"
	"errors"
	"strings"

	"bookstore-api/internal/domain"
	orderrepo "bookstore-api/internal/repository/order"
	"bookstore-api/internal/validate"
)

// Service turns a cart snapshot plus shipping details into an immutable order.
// It never touches the cart; clearing after checkout is the caller's explicit
// action.
type Service struct {
	orders orderStore
}

type orderStore interface {
	Append(ctx context.Context, order *domain.Order) error
	FindByEmail(ctx context.Context, email string) ([]domain.Order, error)
}

func New(orders orderrepo.Repository) *Service {
	return &Service{orders: orders}
}

type SubmitInput struct {
	Name    string       `json:"name" validate:"required"`
	Email   string       `json:"email" validate:"required,email"`
	Phone   string       `json:"phone" validate:"required"`
	Address AddressInput `json:"address"`
	Items   []LineInput  `json:"items" validate:"required,min=1,dive"`
}

type AddressInput struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Country string `json:"country" validate:"required"`
	Zipcode string `json:"zipcode" validate:"required"`
}

// LineInput is one cart line at submission time. PriceCents is the snapshot
// price the shopper saw, not a fresh catalog read; the order total locks it in.
type LineInput struct {
	BookID     string `json:"bookId" validate:"required"`
	Title      string `json:"title"`
	PriceCents int64  `json:"priceCents" validate:"min=0"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

// Submit validates the shipping details and writes exactly one order. On
// validation failure no partial order is created. Submit has no deduplication
// key; retrying after an ambiguous failure is the caller's decision.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.Order, error) {
	if err := validate.Check(in); err != nil {
		var fe validate.FieldErrors
		if errors.As(err, &fe) {
			return nil, domain.NewValidationError(fe.Fields()...)
		}
		return nil, err
	}

	lines := make([]domain.OrderLine, 0, len(in.Items))
	var totalCents int64
	for _, item := range in.Items {
		lines = append(lines, domain.OrderLine{
			BookID:     item.BookID,
			Title:      item.Title,
			PriceCents: item.PriceCents,
			Quantity:   item.Quantity,
		})
		totalCents += item.PriceCents * int64(item.Quantity)
	}

	order := &domain.Order{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.ToLower(strings.TrimSpace(in.Email)),
		Phone: strings.TrimSpace(in.Phone),
		Address: domain.Address{
			Street:  in.Address.Street,
			City:    in.Address.City,
			State:   in.Address.State,
			Country: in.Address.Country,
			Zipcode: in.Address.Zipcode,
		},
		Lines:      lines,
		TotalCents: totalCents,
	}

	if err := s.orders.Append(ctx, order); err != nil {
		return nil, domain.Transient(err)
	}
	return order, nil
}

// ListByEmail returns the shopper's orders, most recent first. Orders are
// associated by email string, not a user foreign key.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	orders, err := s.orders.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, domain.Transient(err)
	}
	return orders, nil
}
