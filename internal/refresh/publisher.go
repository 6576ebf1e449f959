package refresh

import (
	"context"
	"fmt"

	"countrypulse/internal/adapters"
	"countrypulse/internal/domain"
)

const topCountriesLimit = 5

// SnapshotPublisher regenerates the summary artifact from already-committed
// aggregate data. It must only run after a successful persist.
type SnapshotPublisher interface {
	Publish(ctx context.Context, total int64, refreshedAt string) (string, error)
}

type Publisher struct {
	repo     adapters.CountryRepository
	renderer adapters.Renderer
	store    adapters.SnapshotStore
}

func NewPublisher(repo adapters.CountryRepository, renderer adapters.Renderer, store adapters.SnapshotStore) *Publisher {
	return &Publisher{repo: repo, renderer: renderer, store: store}
}

func (p *Publisher) Publish(ctx context.Context, total int64, refreshedAt string) (string, error) {
	top, err := p.repo.TopByGDP(ctx, topCountriesLimit)
	if err != nil {
		return "", &domain.PublishError{Err: fmt.Errorf("failed to select top countries: %w", err)}
	}

	blob, err := p.renderer.Render(total, top, refreshedAt)
	if err != nil {
		return "", &domain.PublishError{Err: err}
	}

	path, err := p.store.Write(blob)
	if err != nil {
		return "", &domain.PublishError{Err: err}
	}
	return path, nil
}
