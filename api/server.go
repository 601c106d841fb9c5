package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/Indie-Creator-Community/reward-system/service"
)

// DefaultTimeout bounds every request; a persistence call that exceeds it
// surfaces as a retryable unavailable error rather than hanging the caller.
const DefaultTimeout = 15 * time.Second

// NewRouter sets up the HTTP router exposing the RPC procedure surface.
func NewRouter(users service.UserService, ledger service.LedgerService) http.Handler {
	h := &Handler{users: users, ledger: ledger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(DefaultTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/user.getByDiscordId", h.getByDiscordID)
		r.Get("/user.getByEmail", h.getByEmail)
		r.Get("/user.getByAccount", h.getByAccount)
		r.Get("/user.getAll", h.getAll)
		r.Post("/user.create", h.create)
		r.Post("/user.sendCoinsByUserId", h.sendCoinsByUserID)
		r.Post("/user.sendCoinsByGithubId", h.sendCoinsByGithubID)
		r.Post("/user.payCoinsByUserId", h.payCoinsByUserID)
	})

	return r
}

// NewServer wraps the router in an http.Server bound to addr.
func NewServer(addr string, users service.UserService, ledger service.LedgerService) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(users, ledger),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// requestLogger logs each request with structured fields.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
			"reqId":    middleware.GetReqID(r.Context()),
		}).Info("http request")
	})
}
