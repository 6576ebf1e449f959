package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"countrypulse/internal/domain"
)

// CountriesClient fetches the country reference list from the REST countries
// source. Any transport failure, non-2xx status or undecodable body is
// collapsed into SourceUnavailableError tagged "countries".
type CountriesClient struct {
	http *http.Client
	url  string
}

func NewCountriesClient(httpClient *http.Client, url string) *CountriesClient {
	return &CountriesClient{http: httpClient, url: url}
}

func (c *CountriesClient) FetchCountries(ctx context.Context) ([]domain.RawCountry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, unavailable(domain.SourceCountries, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, unavailable(domain.SourceCountries, fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, unavailable(domain.SourceCountries, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, resp.Status))
	}

	var raws []domain.RawCountry
	if err = json.NewDecoder(resp.Body).Decode(&raws); err != nil {
		return nil, unavailable(domain.SourceCountries, fmt.Errorf("failed to decode response: %w", err))
	}

	return raws, nil
}

func unavailable(source domain.Source, err error) error {
	return &domain.SourceUnavailableError{Source: source, Err: err}
}
