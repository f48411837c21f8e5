package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hongminglow/vi-sinh-loi-be/internal/auth"
	"github.com/hongminglow/vi-sinh-loi-be/internal/config"
	"github.com/hongminglow/vi-sinh-loi-be/internal/http/handlers"
	"github.com/hongminglow/vi-sinh-loi-be/internal/http/respond"
	"github.com/hongminglow/vi-sinh-loi-be/internal/middleware"
	"github.com/hongminglow/vi-sinh-loi-be/internal/notify"
	"github.com/hongminglow/vi-sinh-loi-be/internal/otp"
	"github.com/hongminglow/vi-sinh-loi-be/internal/storage"
	"github.com/hongminglow/vi-sinh-loi-be/internal/wallet"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Users   storage.UserStore
	Wallets *wallet.Service
	OTP     *otp.Service
	Hub     *notify.Hub
	Stats   func() notify.Stats
	Log     *zap.Logger
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewRouter(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return &Server{inner: httpServer}
}

// NewRouter builds the full route tree. Everything under /api and /ws requires a bearer token.
func NewRouter(cfg config.Config, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Logging(deps.Log))
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	handlers.NewHealthHandler(time.Now(), cfg.StorageDriver, deps.Stats).Register(r)
	handlers.NewAuthHandler(deps.Users, deps.Wallets, tokens, int64(cfg.JWTTTL.Seconds()), deps.Log).Register(r)

	guard := middleware.RequireOTP(cfg.OTPRequired, deps.OTP, deps.Log)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens))
		if deps.Hub != nil {
			handlers.NewNotificationsHandler(deps.Hub).Register(r)
		}
		r.Route("/api", func(r chi.Router) {
			handlers.NewWalletHandler(deps.Wallets, guard, deps.Log).Register(r)
			if deps.OTP != nil {
				handlers.NewOTPHandler(deps.OTP, deps.Log).Register(r)
			}
		})
	})
	return r
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
