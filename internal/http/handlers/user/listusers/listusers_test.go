package listusers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/event-aggregator/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServeHTTP_ReturnsArray(t *testing.T) {
	mockService := new(MockService)
	mockService.On("List", mock.Anything).Return([]models.User{
		{Username: "alice", Email: "alice@example.com"},
		{Username: "bob", Email: "bob@example.com"},
	}, nil)

	handler := New(discardLogger(), mockService)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"alice"`)
	assert.Contains(t, rr.Body.String(), `"bob"`)
	assert.True(t, rr.Body.String()[0] == '[')
}

func TestServeHTTP_EmptyStoreGivesEmptyArray(t *testing.T) {
	mockService := new(MockService)
	mockService.On("List", mock.Anything).Return(nil, nil)

	handler := New(discardLogger(), mockService)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestServeHTTP_StorageError(t *testing.T) {
	mockService := new(MockService)
	mockService.On("List", mock.Anything).Return(nil, assert.AnError)

	handler := New(discardLogger(), mockService)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"result":false,"error":"Server error"}`, rr.Body.String())
}
