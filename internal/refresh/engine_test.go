package refresh

import (
	"testing"
	"time"

	"countrypulse/internal/domain"

	"github.com/stretchr/testify/require"
)

// fixedMultiplier returns a constant and counts how often it was drawn.
type fixedMultiplier struct {
	value int
	calls int
}

func (m *fixedMultiplier) Multiplier() int {
	m.calls++
	return m.value
}

var testInstant = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestReconcile_NoCurrency_GDPZero(t *testing.T) {
	cases := []struct {
		name string
		raw  domain.RawCountry
	}{
		{name: "currencies absent", raw: domain.RawCountry{Name: "Atlantis", Population: 100}},
		{name: "currencies empty", raw: domain.RawCountry{Name: "Atlantis", Population: 100, Currencies: []domain.RawCurrency{}}},
		{name: "first code empty", raw: domain.RawCountry{Name: "Atlantis", Population: 100, Currencies: []domain.RawCurrency{{Name: "Shells"}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &fixedMultiplier{value: 1500}
			rec := Reconcile(tc.raw, map[string]float64{"USD": 1}, testInstant, m)

			require.Nil(t, rec.CurrencyCode)
			require.Nil(t, rec.ExchangeRate)
			require.NotNil(t, rec.EstimatedGDP)
			require.Zero(t, *rec.EstimatedGDP)
			require.Zero(t, m.calls, "multiplier must not be drawn without a currency code")
		})
	}
}

func TestReconcile_UnknownCode_GDPNull(t *testing.T) {
	m := &fixedMultiplier{value: 1500}
	raw := domain.RawCountry{Name: "Testland", Population: 1000, Currencies: []domain.RawCurrency{{Code: "TST"}}}

	rec := Reconcile(raw, map[string]float64{"USD": 1}, testInstant, m)

	require.NotNil(t, rec.CurrencyCode)
	require.Equal(t, "TST", *rec.CurrencyCode)
	require.Nil(t, rec.ExchangeRate)
	require.Nil(t, rec.EstimatedGDP)
	require.Zero(t, m.calls, "multiplier must not be drawn for an unknown code")
}

func TestReconcile_ZeroRate_GDPNull(t *testing.T) {
	m := &fixedMultiplier{value: 1500}
	raw := domain.RawCountry{Name: "Testland", Population: 1000, Currencies: []domain.RawCurrency{{Code: "TST"}}}

	rec := Reconcile(raw, map[string]float64{"TST": 0}, testInstant, m)

	require.NotNil(t, rec.ExchangeRate)
	require.Zero(t, *rec.ExchangeRate)
	require.Nil(t, rec.EstimatedGDP)
	require.Zero(t, m.calls, "multiplier must not be drawn when the rate is zero")
}

func TestReconcile_ValidRate_DerivesGDP(t *testing.T) {
	m := &fixedMultiplier{value: 1500}
	raw := domain.RawCountry{
		Name:       "Testland",
		Capital:    "Testville",
		Region:     "Testregion",
		Population: 1000,
		Flag:       "https://flags.example/tst.svg",
		Currencies: []domain.RawCurrency{{Code: "TST"}, {Code: "ALT"}},
	}

	rec := Reconcile(raw, map[string]float64{"TST": 2, "ALT": 4}, testInstant, m)

	require.Equal(t, "Testland", rec.Name)
	require.Equal(t, "Testville", *rec.Capital)
	require.Equal(t, "Testregion", *rec.Region)
	require.Equal(t, "https://flags.example/tst.svg", *rec.FlagURL)
	require.Equal(t, "TST", *rec.CurrencyCode, "first currency entry wins")
	require.InDelta(t, 2, *rec.ExchangeRate, 1e-9)
	require.NotNil(t, rec.EstimatedGDP)
	require.InDelta(t, 1000*1500/2.0, *rec.EstimatedGDP, 1e-9)
	require.Equal(t, 1, m.calls)
	require.True(t, rec.LastRefreshedAt.Equal(testInstant))
}

func TestReconcile_OptionalFieldsAbsent(t *testing.T) {
	m := &fixedMultiplier{value: 1000}
	raw := domain.RawCountry{Name: "Testland", Currencies: []domain.RawCurrency{{Code: "TST"}}}

	rec := Reconcile(raw, map[string]float64{"TST": 2}, testInstant, m)

	require.Nil(t, rec.Capital)
	require.Nil(t, rec.Region)
	require.Nil(t, rec.FlagURL)
	require.Zero(t, rec.Population)
	require.NotNil(t, rec.EstimatedGDP)
	require.Zero(t, *rec.EstimatedGDP, "zero population with a valid rate gives zero gdp")
}

func TestReconcile_RandomMultiplierStaysInRange(t *testing.T) {
	source := NewMultiplierSource()
	raw := domain.RawCountry{Name: "Testland", Population: 1000, Currencies: []domain.RawCurrency{{Code: "TST"}}}
	rates := map[string]float64{"TST": 2}

	for range 200 {
		rec := Reconcile(raw, rates, testInstant, source)
		require.NotNil(t, rec.EstimatedGDP)
		// gdp = 1000 * m / 2 with m in [1000, 2000]
		require.GreaterOrEqual(t, *rec.EstimatedGDP, 500000.0)
		require.LessOrEqual(t, *rec.EstimatedGDP, 1000000.0)
	}
}
