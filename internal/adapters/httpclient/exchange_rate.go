package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"countrypulse/internal/domain"
)

// ExchangeRateClient fetches the rate table relative to the base currency.
// A response without a usable "rates" mapping is just as unusable as a
// transport failure, so both classify as SourceUnavailableError "exchange".
type ExchangeRateClient struct {
	http *http.Client
	url  string
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func NewExchangeRateClient(httpClient *http.Client, url string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, url: url}
}

func (c *ExchangeRateClient) FetchExchangeRates(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, unavailable(domain.SourceExchange, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, unavailable(domain.SourceExchange, fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, unavailable(domain.SourceExchange, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, resp.Status))
	}

	var body ratesResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, unavailable(domain.SourceExchange, fmt.Errorf("failed to decode response: %w", err))
	}

	if body.Rates == nil {
		return nil, unavailable(domain.SourceExchange, fmt.Errorf("response carries no rates mapping"))
	}

	return body.Rates, nil
}
