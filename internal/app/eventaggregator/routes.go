// Package eventaggregator предоставляет маршруты для основного приложения.
package eventaggregator

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	eventcreate "github.com/magabrotheeeer/event-aggregator/internal/http/handlers/event/create"
	eventjoin "github.com/magabrotheeeer/event-aggregator/internal/http/handlers/event/join"
	eventlist "github.com/magabrotheeeer/event-aggregator/internal/http/handlers/event/list"
	eventremove "github.com/magabrotheeeer/event-aggregator/internal/http/handlers/event/remove"
	"github.com/magabrotheeeer/event-aggregator/internal/http/handlers/user/deleteuser"
	"github.com/magabrotheeeer/event-aggregator/internal/http/handlers/user/listusers"
	"github.com/magabrotheeeer/event-aggregator/internal/http/handlers/user/rename"
	"github.com/magabrotheeeer/event-aggregator/internal/http/handlers/user/signin"
	"github.com/magabrotheeeer/event-aggregator/internal/http/handlers/user/signup"
	"github.com/magabrotheeeer/event-aggregator/internal/http/handlers/user/updatepicture"
	"github.com/magabrotheeeer/event-aggregator/internal/http/middlewarectx"
	eventsvc "github.com/magabrotheeeer/event-aggregator/internal/services/event"
	usersvc "github.com/magabrotheeeer/event-aggregator/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, userService *usersvc.Service, eventService *eventsvc.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", listusers.New(logger, userService).ServeHTTP)
		r.Post("/signup", signup.New(logger, userService).ServeHTTP)
		r.Post("/signin", signin.New(logger, userService).ServeHTTP)
		r.Put("/rename/{token}", rename.New(logger, userService).ServeHTTP)
		r.Put("/{username}/updatePicture", updatepicture.New(logger, userService).ServeHTTP)

		// Удаление требует токен в заголовке Authorization.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.BearerToken(logger))
			r.Delete("/{username}/delete", deleteuser.New(logger, userService).ServeHTTP)
		})
	})

	r.Route("/events", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Get("/", eventlist.New(logger, eventService).ServeHTTP)
		r.Post("/", eventcreate.New(logger, eventService, eventsvc.SourceGeocoded).ServeHTTP)
		r.Post("/handle", eventcreate.New(logger, eventService, eventsvc.SourceClient).ServeHTTP)
		r.Put("/events/{id}", eventjoin.New(logger, eventService).ServeHTTP)
		r.Delete("/{eventTitle}", eventremove.New(logger, eventService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
