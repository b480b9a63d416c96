package rename

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	usersvc "github.com/magabrotheeeer/event-aggregator/internal/services/user"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Rename(ctx context.Context, token, username string) error {
	args := m.Called(ctx, token, username)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Put("/users/rename/{token}", h.ServeHTTP)
	return r
}

func TestServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		body           string
		mockSetup      func(m *MockService)
		expectedStatus int
		expectedJSON   string
	}{
		{
			name: "Успешная смена имени",
			url:  "/users/rename/sessiontoken",
			body: `{"username":"newalice"}`,
			mockSetup: func(m *MockService) {
				m.On("Rename", mock.Anything, "sessiontoken", "newalice").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedJSON:   `{"message":"Username updated successfully."}`,
		},
		{
			name: "Токен не найден или имя не изменилось",
			url:  "/users/rename/unknown",
			body: `{"username":"newalice"}`,
			mockSetup: func(m *MockService) {
				m.On("Rename", mock.Anything, "unknown", "newalice").Return(usersvc.ErrNothingToUpdate)
			},
			expectedStatus: http.StatusNotFound,
			expectedJSON:   `{"message":"User not found or username unchanged."}`,
		},
		{
			name: "Ошибка сервиса",
			url:  "/users/rename/sessiontoken",
			body: `{"username":"newalice"}`,
			mockSetup: func(m *MockService) {
				m.On("Rename", mock.Anything, "sessiontoken", "newalice").Return(assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedJSON:   `{"message":"Server error"}`,
		},
		{
			// Сервис не вызывается, аккаунт не переименовывается в пустую строку.
			name:           "Пустое имя пользователя",
			url:            "/users/rename/sessiontoken",
			body:           `{"username":""}`,
			mockSetup:      func(_ *MockService) {},
			expectedStatus: http.StatusNotFound,
			expectedJSON:   `{"message":"User not found or username unchanged."}`,
		},
		{
			name:           "Имя из одних пробелов",
			url:            "/users/rename/sessiontoken",
			body:           `{"username":"   "}`,
			mockSetup:      func(_ *MockService) {},
			expectedStatus: http.StatusNotFound,
			expectedJSON:   `{"message":"User not found or username unchanged."}`,
		},
		{
			name:           "Тело без поля username",
			url:            "/users/rename/sessiontoken",
			body:           `{}`,
			mockSetup:      func(_ *MockService) {},
			expectedStatus: http.StatusNotFound,
			expectedJSON:   `{"message":"User not found or username unchanged."}`,
		},
		{
			name:           "Невалидный JSON",
			url:            "/users/rename/sessiontoken",
			body:           `{"username":`,
			mockSetup:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedJSON:   `{"message":"invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.mockSetup(mockService)

			router := newRouter(New(discardLogger(), mockService))

			req := httptest.NewRequest(http.MethodPut, tt.url, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedStatus, rr.Code)
			assert.JSONEq(t, tt.expectedJSON, rr.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
