// Package handler implements the HTTP handlers for the cadastral query
// service. All handlers are methods on Server; methods are split into
// route-specific files (health.go, auth.go, query.go) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avasiliev/cadastral-service/internal/domain"
	"github.com/avasiliev/cadastral-service/internal/service"
)

// QueryServicer defines the business operations the query handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or the external verifier.
type QueryServicer interface {
	Submit(ctx context.Context, q domain.Query) (domain.Query, error)
	History(ctx context.Context, f domain.HistoryFilter) ([]domain.Query, error)
}

// AuthServicer defines the account operations the auth handlers depend on.
type AuthServicer interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (service.TokenInfo, error)
}

// Pinger reports whether the database is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	queries QueryServicer
	auth    AuthServicer
	db      Pinger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(queries QueryServicer, auth AuthServicer, db Pinger) *Server {
	return &Server{queries: queries, auth: auth, db: db}
}

// Routes builds the chi router for the API. requireAuth guards the query
// endpoints; the health and auth endpoints stay public.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/ping", s.Ping)
	r.Post("/auth/register", s.Register)
	r.Post("/auth/login", s.Login)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/query", s.SubmitQuery)
		r.Get("/history", s.GetHistory)
	})

	return r
}
