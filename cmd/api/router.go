package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/crucial707/blog-api/internal/auth"
	"github.com/crucial707/blog-api/internal/config"
	"github.com/crucial707/blog-api/internal/handlers"
	"github.com/crucial707/blog-api/internal/middleware"
	"github.com/crucial707/blog-api/internal/repo"
	"github.com/crucial707/blog-api/internal/respond"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires every handler against db. All dependencies are built here
// once and passed into the handler structs.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	authSvc := auth.NewService([]byte(cfg.JWTSecret), cfg.BcryptCost)

	authHandler := &handlers.AuthHandler{
		UserRepo:     repo.NewUserRepo(db, authSvc),
		Auth:         authSvc,
		RegisterTTL:  cfg.RegisterTokenTTL,
		LoginTTL:     cfg.LoginTokenTTL,
		CookieSecure: cfg.CookieSecure,
	}
	postHandler := &handlers.PostHandler{Repo: repo.NewPostRepo(db)}
	commentHandler := &handlers.CommentHandler{Repo: repo.NewCommentRepo(db)}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(cfg.MaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			respond.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public
	limiter := middleware.AuthRateLimiter(cfg.AuthRatePerMin)
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})
	r.Post("/logout", authHandler.Logout)
	r.Get("/posts", postHandler.ListPosts)
	r.Get("/users/{userId}/posts", postHandler.ListUserPosts)

	// Mutations: enforced when RequireAuth, otherwise open but still
	// attributed to the caller when a valid session is present.
	session := middleware.OptionalAuth(authSvc)
	if cfg.RequireAuth {
		session = middleware.RequireAuth(authSvc)
	}
	r.Group(func(r chi.Router) {
		r.Use(session)
		r.Post("/posts", postHandler.CreatePost)
		r.Delete("/posts/{postId}", postHandler.DeletePost)
		r.Post("/posts/{postId}/comments", commentHandler.CreateComment)
		r.Delete("/comments/{commentId}", commentHandler.DeleteComment)
	})

	return r
}
