package stats

import (
	"context"

	"bookstore-api/internal/domain"
	statsrepo "bookstore-api/internal/repository/stats"
)

type Service struct {
	repo statsrepo.Repository
}

func New(repo statsrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Overview(ctx context.Context) (*statsrepo.Overview, error) {
	ov, err := s.repo.Overview(ctx)
	if err != nil {
		return nil, domain.Transient(err)
	}
	return ov, nil
}
