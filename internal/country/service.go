package country

import (
	"context"

	"countrypulse/internal/adapters"
	"countrypulse/internal/domain"
)

// Service is the read/delete side of the store. Single-country lookups go
// through the cache; the refresh pipeline clears it after every commit.
type Service struct {
	repo  adapters.CountryRepository
	cache adapters.CountryCache
}

func NewService(repo adapters.CountryRepository, cache adapters.CountryCache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) List(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, name string) (domain.Country, error) {
	if c, ok := s.cache.Get(name); ok {
		return c, nil
	}
	c, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return domain.Country{}, err
	}
	s.cache.Set(name, c)
	return c, nil
}

func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.repo.DeleteByName(ctx, name); err != nil {
		return err
	}
	s.cache.Delete(name)
	return nil
}

func (s *Service) Status(ctx context.Context) (Status, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return Status{}, err
	}
	last, ok, err := s.repo.LastRefreshedAt(ctx)
	if err != nil {
		return Status{}, err
	}
	status := Status{Total: total}
	if ok {
		status.LastRefreshedAt = &last
	}
	return status, nil
}
