package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"countrypulse/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const metadataKeyLastRefreshed = "last_refreshed_at"

const countryColumns = `id, name, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at`

type CountryRepository struct {
	pool *pgxpool.Pool
}

func NewCountryRepository(pool *pgxpool.Pool) *CountryRepository {
	return &CountryRepository{pool: pool}
}

// ApplyRefresh upserts the whole batch plus the refresh metadata key inside
// one transaction. Any failure rolls back every change; readers never see a
// partial batch. The returned total is the committed table count, read after
// commit.
func (r *CountryRepository) ApplyRefresh(ctx context.Context, records []domain.Country, refreshedAt time.Time) (int64, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const selectQ = `select id from countries where lower(name) = lower($1)`
	const insertQ = `
        insert into countries (name, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at)
        values ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	const updateQ = `
        update countries
        set name = $1, capital = $2, region = $3, population = $4, currency_code = $5,
            exchange_rate = $6, estimated_gdp = $7, flag_url = $8, last_refreshed_at = $9
        where id = $10`

	for _, rec := range records {
		var id int64
		err = tx.QueryRow(ctx, selectQ, rec.Name).Scan(&id)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			if _, err = tx.Exec(ctx, insertQ,
				rec.Name, rec.Capital, rec.Region, rec.Population, rec.CurrencyCode,
				rec.ExchangeRate, rec.EstimatedGDP, rec.FlagURL, refreshedAt,
			); err != nil {
				return 0, fmt.Errorf("failed to insert country %q: %w", rec.Name, err)
			}
		case err != nil:
			return 0, fmt.Errorf("failed to look up country %q: %w", rec.Name, err)
		default:
			if _, err = tx.Exec(ctx, updateQ,
				rec.Name, rec.Capital, rec.Region, rec.Population, rec.CurrencyCode,
				rec.ExchangeRate, rec.EstimatedGDP, rec.FlagURL, refreshedAt, id,
			); err != nil {
				return 0, fmt.Errorf("failed to update country %q: %w", rec.Name, err)
			}
		}
	}

	const metaQ = `
        insert into metadata (key_name, value_text) values ($1, $2)
        on conflict (key_name) do update set value_text = excluded.value_text`
	if _, err = tx.Exec(ctx, metaQ, metadataKeyLastRefreshed, refreshedAt.UTC().Format(time.RFC3339)); err != nil {
		return 0, fmt.Errorf("failed to upsert refresh metadata: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return r.Count(ctx)
}

func (r *CountryRepository) List(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error) {
	q := `select ` + countryColumns + ` from countries`
	args := make([]any, 0, 2)

	if filter.Region != "" {
		args = append(args, filter.Region)
		q += fmt.Sprintf(" where region = $%d", len(args))
	}
	if filter.CurrencyCode != "" {
		args = append(args, filter.CurrencyCode)
		if len(args) == 1 {
			q += " where"
		} else {
			q += " and"
		}
		q += fmt.Sprintf(" currency_code = $%d", len(args))
	}

	switch filter.Sort {
	case domain.SortGDPAsc:
		q += " order by estimated_gdp asc nulls last"
	case domain.SortGDPDesc:
		q += " order by estimated_gdp desc nulls last"
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	return scanCountries(rows)
}

func (r *CountryRepository) GetByName(ctx context.Context, name string) (domain.Country, error) {
	q := `select ` + countryColumns + ` from countries where lower(name) = lower($1)`

	var c domain.Country
	if err := r.pool.QueryRow(ctx, q, name).Scan(
		&c.ID, &c.Name, &c.Capital, &c.Region, &c.Population,
		&c.CurrencyCode, &c.ExchangeRate, &c.EstimatedGDP, &c.FlagURL, &c.LastRefreshedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Country{}, domain.ErrCountryNotFound
		}
		return domain.Country{}, fmt.Errorf("failed to select country %q: %w", name, err)
	}
	return c, nil
}

func (r *CountryRepository) DeleteByName(ctx context.Context, name string) error {
	tag, err := r.pool.Exec(ctx, `delete from countries where lower(name) = lower($1)`, name)
	if err != nil {
		return fmt.Errorf("failed to delete country %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCountryNotFound
	}
	return nil
}

func (r *CountryRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `select count(*) from countries`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count countries: %w", err)
	}
	return total, nil
}

// TopByGDP returns up to limit rows with the largest estimated GDP, null
// values excluded. Ordering among equal values follows store order.
func (r *CountryRepository) TopByGDP(ctx context.Context, limit int) ([]domain.Country, error) {
	q := `select ` + countryColumns + ` from countries where estimated_gdp is not null order by estimated_gdp desc limit $1`

	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top countries: %w", err)
	}
	defer rows.Close()

	return scanCountries(rows)
}

// LastRefreshedAt returns the stored refresh timestamp. The second return is
// false when no refresh has ever succeeded.
func (r *CountryRepository) LastRefreshedAt(ctx context.Context) (string, bool, error) {
	var value string
	err := r.pool.QueryRow(ctx, `select value_text from metadata where key_name = $1`, metadataKeyLastRefreshed).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to select refresh metadata: %w", err)
	}
	return value, true, nil
}

func scanCountries(rows pgx.Rows) ([]domain.Country, error) {
	countries := make([]domain.Country, 0, 64)
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Capital, &c.Region, &c.Population,
			&c.CurrencyCode, &c.ExchangeRate, &c.EstimatedGDP, &c.FlagURL, &c.LastRefreshedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating countries: %w", err)
	}
	return countries, nil
}
