// Package middlewarectx содержит HTTP middleware, кладущие данные запроса
// в контекст: bearer-токен аккаунта и ограничение частоты запросов.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/event-aggregator/internal/http/response"
	"github.com/magabrotheeeer/event-aggregator/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// Token — ключ для bearer-токена аккаунта в контексте.
const Token Key = "token"

// BearerToken возвращает middleware, извлекающее bearer-токен из
// заголовка Authorization. Токен здесь не проверяется — только его
// наличие: валидность решает бизнес-логика по данным хранилища.
// Отсутствие токена — HTTP 403 с ответом "No token provided".
func BearerToken(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.BearerToken"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if tokenStr == "" {
				log.Error("missing authorization header", sl.Err(errNoToken))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Err("No token provided"))
				return
			}

			ctx := context.WithValue(r.Context(), Token, tokenStr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var errNoToken = errors.New("no token provided")
