package adapters

import (
	"context"
	"time"

	"countrypulse/internal/domain"
)

type CountriesClient interface {
	FetchCountries(ctx context.Context) ([]domain.RawCountry, error)
}

type RatesClient interface {
	FetchExchangeRates(ctx context.Context) (map[string]float64, error)
}

// CountryRepository is the durable store behind the pipeline and the read API.
// ApplyRefresh is the persistence coordinator: one transaction for the whole
// batch plus the metadata key, total row count read after commit.
type CountryRepository interface {
	ApplyRefresh(ctx context.Context, records []domain.Country, refreshedAt time.Time) (int64, error)
	List(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error)
	GetByName(ctx context.Context, name string) (domain.Country, error)
	DeleteByName(ctx context.Context, name string) error
	Count(ctx context.Context) (int64, error)
	TopByGDP(ctx context.Context, limit int) ([]domain.Country, error)
	LastRefreshedAt(ctx context.Context) (string, bool, error)
}

type CountryCache interface {
	Get(name string) (domain.Country, bool)
	Set(name string, c domain.Country)
	Delete(name string)
	Clear()
}

// Renderer turns aggregate refresh data into an opaque byte blob.
type Renderer interface {
	Render(total int64, top []domain.Country, refreshedAt string) ([]byte, error)
}

// SnapshotStore holds a single named artifact, fully replaced on every write.
type SnapshotStore interface {
	Write(blob []byte) (string, error)
	Exists() bool
	Path() string
}
