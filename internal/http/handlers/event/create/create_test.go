package create

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/event-aggregator/internal/geocoding"
	"github.com/magabrotheeeer/event-aggregator/internal/models"
	eventsvc "github.com/magabrotheeeer/event-aggregator/internal/services/event"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, draft eventsvc.Draft, source eventsvc.CoordinateSource) (*models.Event, error) {
	args := m.Called(ctx, draft, source)
	if e := args.Get(0); e != nil {
		return e.(*models.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const geocodedBody = `{"title":"Concert","description":"Open air","location":"5 rue de Rivoli, Paris",` +
	`"date":"2026-09-01","type":"music","participants":100,"price":15,"creator":"alice"}`

const clientBody = `{"title":"Concert","description":"Open air",` +
	`"location":{"latitude":48.85,"longitude":2.35},` +
	`"date":"2026-09-01","type":"music","participants":100,"price":15,"creator":"alice"}`

func TestServeHTTP_GeocodedSuccess(t *testing.T) {
	mockService := new(MockService)
	mockService.On("Create", mock.Anything, mock.MatchedBy(func(d eventsvc.Draft) bool {
		return d.Address == "5 rue de Rivoli, Paris"
	}), eventsvc.SourceGeocoded).Return(&models.Event{Title: "Concert"}, nil)

	handler := New(discardLogger(), mockService, eventsvc.SourceGeocoded)

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(geocodedBody))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"result":true`)
	assert.Contains(t, rr.Body.String(), `"newEvent"`)
	mockService.AssertExpectations(t)
}

func TestServeHTTP_ClientCoordinates(t *testing.T) {
	mockService := new(MockService)
	mockService.On("Create", mock.Anything, mock.MatchedBy(func(d eventsvc.Draft) bool {
		return d.Latitude == 48.85 && d.Longitude == 2.35
	}), eventsvc.SourceClient).Return(&models.Event{Title: "Concert"}, nil)

	handler := New(discardLogger(), mockService, eventsvc.SourceClient)

	req := httptest.NewRequest(http.MethodPost, "/events/handle", strings.NewReader(clientBody))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	mockService.AssertExpectations(t)
}

func TestServeHTTP_Errors(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		source         eventsvc.CoordinateSource
		serviceErr     error
		expectedStatus int
		expectedJSON   string
	}{
		{
			name:           "Пропущено обязательное поле",
			body:           `{"title":"Concert","location":"Paris","date":"2026-09-01","type":"music","participants":100,"price":15}`,
			source:         eventsvc.SourceGeocoded,
			expectedStatus: http.StatusBadRequest,
			expectedJSON:   `{"error":"Missing or empty fields"}`,
		},
		{
			name:           "Адрес не найден",
			body:           geocodedBody,
			source:         eventsvc.SourceGeocoded,
			serviceErr:     geocoding.ErrAddressNotFound,
			expectedStatus: http.StatusBadRequest,
			expectedJSON:   `{"error":"Address not found"}`,
		},
		{
			name:           "Невалидная дата",
			body:           geocodedBody,
			source:         eventsvc.SourceGeocoded,
			serviceErr:     eventsvc.ErrInvalidDate,
			expectedStatus: http.StatusBadRequest,
			expectedJSON:   `{"error":"Invalid date"}`,
		},
		{
			name:           "Координаты вне диапазона",
			body:           clientBody,
			source:         eventsvc.SourceClient,
			serviceErr:     eventsvc.ErrCoordinatesOutOfRange,
			expectedStatus: http.StatusBadRequest,
			expectedJSON:   `{"error":"Coordinates out of range"}`,
		},
		{
			name:           "Ошибка сервиса",
			body:           geocodedBody,
			source:         eventsvc.SourceGeocoded,
			serviceErr:     assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedJSON:   `{"error":"Server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			if tt.serviceErr != nil {
				mockService.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.serviceErr)
			}

			handler := New(discardLogger(), mockService, tt.source)

			req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedStatus, rr.Code)
			assert.JSONEq(t, tt.expectedJSON, rr.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}

func TestServeHTTP_ZeroPricePassesFieldCheck(t *testing.T) {
	body := `{"title":"Free show","description":"Street art","location":"Paris",` +
		`"date":"2026-09-01","type":"art","participants":0,"price":0,"creator":"alice"}`

	mockService := new(MockService)
	mockService.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(&models.Event{Title: "Free show"}, nil)

	handler := New(discardLogger(), mockService, eventsvc.SourceGeocoded)

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	mockService.AssertExpectations(t)
}
