package main

import (
	"moviehub/proj/internal/lib/metrics"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const activationURL = "PUT '/api/v1/accounts/activation/'"

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.Metrics)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)
	router.Method(http.MethodGet, "/metrics", metrics.Handler(app.metrics))
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", app.getReviews)
			r.Get("/movie/{movieId}", app.getMovieReviews)
			r.Get("/user/{authorId}", app.getUserReviews)
			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthenticatedUser)
				r.Post("/", app.createReview)
				r.Put("/{id}", app.updateReview)
				r.Delete("/{id}", app.deleteReview)
			})
		})
		r.Route("/movies", func(r chi.Router) {
			r.Get("/trending", app.getTrendingMovies)
			r.Get("/search", app.searchMovies)
			r.Get("/{id}", app.getMovie)
		})
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/activation/new-token", app.getNewActivationToken)
			r.Put("/activation", app.activateAccount)
			r.Post("/login", app.login)
			r.Post("/signup", app.signup)
		})
	})
	return router
}
