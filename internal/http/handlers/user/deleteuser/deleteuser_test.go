package deleteuser

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/event-aggregator/internal/http/middlewarectx"
	usersvc "github.com/magabrotheeeer/event-aggregator/internal/services/user"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Delete(ctx context.Context, token, username string) error {
	args := m.Called(ctx, token, username)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Delete("/users/{username}/delete", h.ServeHTTP)
	return r
}

func TestServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		token          string
		mockSetup      func(m *MockService)
		expectedStatus int
		expectedJSON   string
	}{
		{
			name:  "Успешное удаление аккаунта",
			url:   "/users/alice/delete",
			token: "sessiontoken",
			mockSetup: func(m *MockService) {
				m.On("Delete", mock.Anything, "sessiontoken", "alice").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedJSON:   `{"result":true,"message":"Account deleted successfully"}`,
		},
		{
			name:  "Неизвестный токен",
			url:   "/users/alice/delete",
			token: "stale",
			mockSetup: func(m *MockService) {
				m.On("Delete", mock.Anything, "stale", "alice").Return(usersvc.ErrInvalidToken)
			},
			expectedStatus: http.StatusForbidden,
			expectedJSON:   `{"result":false,"error":"Invalid token"}`,
		},
		{
			name:  "Попытка удалить чужой аккаунт",
			url:   "/users/bob/delete",
			token: "alicetoken",
			mockSetup: func(m *MockService) {
				m.On("Delete", mock.Anything, "alicetoken", "bob").Return(usersvc.ErrNotOwner)
			},
			expectedStatus: http.StatusForbidden,
			expectedJSON:   `{"result":false,"error":"You can only delete your own account"}`,
		},
		{
			name:  "Ошибка хранилища",
			url:   "/users/alice/delete",
			token: "sessiontoken",
			mockSetup: func(m *MockService) {
				m.On("Delete", mock.Anything, "sessiontoken", "alice").Return(assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedJSON:   `{"result":false,"error":"Server error, deletion failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.mockSetup(mockService)

			router := newRouter(New(discardLogger(), mockService))

			req := httptest.NewRequest(http.MethodDelete, tt.url, nil)
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.Token, tt.token))
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedStatus, rr.Code)
			assert.JSONEq(t, tt.expectedJSON, rr.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
