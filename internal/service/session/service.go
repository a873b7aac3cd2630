package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid session id")

// Service issues guest session identifiers. Session ids are opaque UUIDs the
// storefront persists client-side; validating one only checks its shape, so
// guest carts survive server restarts.
type Service struct{}

func New() *Service {
	return &Service{}
}

type Session struct {
	ID       string    `json:"sessionId"`
	IssuedAt time.Time `json:"issuedAt"`
}

func (s *Service) Issue() Session {
	return Session{
		ID:       uuid.NewString(),
		IssuedAt: time.Now().UTC(),
	}
}

func (s *Service) Validate(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidSession
	}
	return nil
}
