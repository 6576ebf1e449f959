package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"countrypulse/internal/country"
	"countrypulse/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct{ mock.Mock }

func (m *MockService) List(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error) {
	args := m.Called(ctx, filter)
	countries, _ := args.Get(0).([]domain.Country)
	return countries, args.Error(1)
}

func (m *MockService) Get(ctx context.Context, name string) (domain.Country, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(domain.Country)
	return c, args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockService) Status(ctx context.Context) (country.Status, error) {
	args := m.Called(ctx)
	status, _ := args.Get(0).(country.Status)
	return status, args.Error(1)
}

type MockRefresher struct{ mock.Mock }

func (m *MockRefresher) Run(ctx context.Context) (domain.RefreshResult, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(domain.RefreshResult)
	return result, args.Error(1)
}

type MockSnapshotStore struct{ mock.Mock }

func (m *MockSnapshotStore) Write(blob []byte) (string, error) {
	args := m.Called(blob)
	return args.String(0), args.Error(1)
}

func (m *MockSnapshotStore) Exists() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockSnapshotStore) Path() string {
	args := m.Called()
	return args.String(0)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type errorJSON struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// --- Refresh ---

func TestHandler_Refresh_Success(t *testing.T) {
	mockService := new(MockService)
	mockRefresher := new(MockRefresher)
	h := NewCountryHandler(mockService, mockRefresher, new(MockSnapshotStore))

	mockRefresher.On("Run", mock.Anything).
		Return(domain.RefreshResult{Total: 250, LastRefreshedAt: "2025-06-01T12:00:00Z"}, nil).Once()

	rr := httptest.NewRecorder()
	h.Refresh(rr, httptest.NewRequest(http.MethodPost, "/countries/refresh", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp RefreshResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, int64(250), resp.TotalCountries)
	require.Equal(t, "2025-06-01T12:00:00Z", resp.LastRefreshedAt)
	mockRefresher.AssertExpectations(t)
}

func TestHandler_Refresh_SourceUnavailable(t *testing.T) {
	cases := []struct {
		name        string
		source      domain.Source
		wantDetails string
	}{
		{name: "countries", source: domain.SourceCountries, wantDetails: "Could not fetch data from Rest Countries API"},
		{name: "exchange", source: domain.SourceExchange, wantDetails: "Could not fetch data from Exchange Rates API"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockRefresher := new(MockRefresher)
			h := NewCountryHandler(new(MockService), mockRefresher, new(MockSnapshotStore))

			mockRefresher.On("Run", mock.Anything).
				Return(domain.RefreshResult{}, &domain.SourceUnavailableError{Source: tc.source, Err: errors.New("timeout")}).Once()

			rr := httptest.NewRecorder()
			h.Refresh(rr, httptest.NewRequest(http.MethodPost, "/countries/refresh", nil))

			require.Equal(t, http.StatusServiceUnavailable, rr.Code)
			var ej errorJSON
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
			require.Equal(t, "External data source unavailable", ej.Error)
			require.Equal(t, tc.wantDetails, ej.Details)
		})
	}
}

func TestHandler_Refresh_PersistenceError_GenericFailure(t *testing.T) {
	mockRefresher := new(MockRefresher)
	h := NewCountryHandler(new(MockService), mockRefresher, new(MockSnapshotStore))

	mockRefresher.On("Run", mock.Anything).
		Return(domain.RefreshResult{}, &domain.PersistenceError{Err: errors.New("constraint violation on countries_name_lower_idx")}).Once()

	rr := httptest.NewRecorder()
	h.Refresh(rr, httptest.NewRequest(http.MethodPost, "/countries/refresh", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "Internal server error", ej.Error)
	require.NotContains(t, rr.Body.String(), "constraint", "internal detail must not leak")
}

// --- GetOne ---

func TestHandler_GetOne_Success(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService, new(MockRefresher), new(MockSnapshotStore))

	code := "EUR"
	mockService.On("Get", mock.Anything, "france").
		Return(domain.Country{ID: 1, Name: "France", CurrencyCode: &code}, nil).Once()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/countries/france", nil), "name", "france")
	rr := httptest.NewRecorder()
	h.GetOne(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var view country.View
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	require.Equal(t, "France", view.Name)
	require.NotNil(t, view.CurrencyCode)
	require.Equal(t, "EUR", *view.CurrencyCode)
	require.Nil(t, view.Capital)
}

func TestHandler_GetOne_NotFound(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService, new(MockRefresher), new(MockSnapshotStore))

	mockService.On("Get", mock.Anything, "atlantis").Return(domain.Country{}, domain.ErrCountryNotFound).Once()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/countries/atlantis", nil), "name", "atlantis")
	rr := httptest.NewRecorder()
	h.GetOne(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "Country not found", ej.Error)
}

// --- Delete ---

func TestHandler_Delete_Success(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService, new(MockRefresher), new(MockSnapshotStore))

	mockService.On("Delete", mock.Anything, "France").Return(nil).Once()

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/countries/France", nil), "name", "France")
	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp DeleteResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.True(t, resp.Success)
}

func TestHandler_Delete_NotFound(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService, new(MockRefresher), new(MockSnapshotStore))

	mockService.On("Delete", mock.Anything, "Atlantis").Return(domain.ErrCountryNotFound).Once()

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/countries/Atlantis", nil), "name", "Atlantis")
	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

// --- Status ---

func TestHandler_Status_NeverRefreshed_NullTimestamp(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService, new(MockRefresher), new(MockSnapshotStore))

	mockService.On("Status", mock.Anything).Return(country.Status{Total: 0}, nil).Once()

	rr := httptest.NewRecorder()
	h.Status(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"total_countries": 0, "last_refreshed_at": null}`, rr.Body.String())
}

// --- List ---

func TestHandler_List_FilterMapping(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService, new(MockRefresher), new(MockSnapshotStore))

	want := domain.CountryFilter{Region: "Europe", CurrencyCode: "EUR", Sort: domain.SortGDPDesc}
	mockService.On("List", mock.Anything, want).Return([]domain.Country{{Name: "France"}}, nil).Once()

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/countries?region=Europe&currency=EUR&sort=gdp_desc", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var views []country.View
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &views))
	require.Len(t, views, 1)
	mockService.AssertExpectations(t)
}

func TestHandler_List_UnknownSortIgnored(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService, new(MockRefresher), new(MockSnapshotStore))

	want := domain.CountryFilter{}
	mockService.On("List", mock.Anything, want).Return([]domain.Country{}, nil).Once()

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/countries?sort=population_desc", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	mockService.AssertExpectations(t)
}

// --- Image ---

func TestHandler_Image_NotFoundBeforeFirstPublish(t *testing.T) {
	snapshots := new(MockSnapshotStore)
	h := NewCountryHandler(new(MockService), new(MockRefresher), snapshots)

	snapshots.On("Exists").Return(false).Once()

	rr := httptest.NewRecorder()
	h.Image(rr, httptest.NewRequest(http.MethodGet, "/countries/image", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "Summary image not found", ej.Error)
}
