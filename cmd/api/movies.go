package main

import (
	"errors"
	"moviehub/proj/internal/services/catalog"
	"net/http"
	"strings"
)

type searchMoviesInput struct {
	Query string `schema:"query"`
	Page  int    `schema:"page"`
}

func (app *Application) getTrendingMovies(w http.ResponseWriter, r *http.Request) {
	page, err := app.Services.Catalog.Trending(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "Failed to fetch trending movies")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": page.Results, "total_results": page.TotalResults}, "")
}

func (app *Application) searchMovies(w http.ResponseWriter, r *http.Request) {
	var input searchMoviesInput
	if err := app.decodeQuery(r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if strings.TrimSpace(input.Query) == "" {
		app.Http.BadRequest(w, r, "Search query is required")
		return
	}
	page, err := app.Services.Catalog.Search(r.Context(), input.Query, input.Page)
	if err != nil {
		app.Http.ServerError(w, r, err, "Failed to search movies")
		return
	}
	app.Http.Ok(w, r, envelop{
		"movies":        page.Results,
		"page":          page.Page,
		"total_pages":   page.TotalPages,
		"total_results": page.TotalResults,
	}, "")
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	movie, err := app.Services.Catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrMovieNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "Failed to fetch movie details")
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}
