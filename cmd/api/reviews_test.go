package main

import (
	"encoding/json"
	"fmt"
	"moviehub/proj/internal/domain/models"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	request.RemoteAddr = "127.0.0.1:54321"
	if token != "" {
		request.Header.Set("Authorization", token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeData(t *testing.T, recorder *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	if dst != nil {
		require.NoError(t, json.Unmarshal(resp.Data, dst))
	}
}

func TestCreateReviewRequiresAuthentication(t *testing.T) {
	app, _ := NewTestApplication(t)
	router := app.routes()
	recorder := doRequest(t, router, http.MethodPost, "/api/v1/reviews", "",
		`{"movieId":550,"movieTitle":"Fight Club","rating":9,"comment":"Great film"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCreateReviewValidation(t *testing.T) {
	app, _ := NewTestApplication(t)
	router := app.routes()
	token := bearerToken(t, 1)
	tests := []struct {
		name string
		body string
	}{
		{"rating too high", `{"movieId":550,"movieTitle":"Fight Club","rating":11,"comment":"ok"}`},
		{"rating zero", `{"movieId":550,"movieTitle":"Fight Club","rating":0,"comment":"ok"}`},
		{"rating negative", `{"movieId":550,"movieTitle":"Fight Club","rating":-1,"comment":"ok"}`},
		{"rating non-integer", `{"movieId":550,"movieTitle":"Fight Club","rating":7.5,"comment":"ok"}`},
		{"comment blank", `{"movieId":550,"movieTitle":"Fight Club","rating":7,"comment":"   "}`},
		{"comment missing", `{"movieId":550,"movieTitle":"Fight Club","rating":7}`},
		{"movie title missing", `{"movieId":550,"rating":7,"comment":"ok"}`},
		{"empty body", ``},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := doRequest(t, router, http.MethodPost, "/api/v1/reviews", token, tc.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestReviewLifecycleOverHTTP(t *testing.T) {
	app, _ := NewTestApplication(t)
	router := app.routes()
	alice := bearerToken(t, 1)

	recorder := doRequest(t, router, http.MethodPost, "/api/v1/reviews", alice,
		`{"movieId":550,"movieTitle":"Fight Club","rating":9,"comment":"Great film"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	var created struct {
		Review models.Review `json:"review"`
	}
	decodeData(t, recorder, &created)
	assert.NotZero(t, created.Review.ID)
	assert.False(t, created.Review.CreatedAt.IsZero())
	assert.Equal(t, 9, created.Review.Rating)
	assert.Equal(t, int64(1), created.Review.AuthorID)
	assert.Equal(t, "alice", created.Review.AuthorName)

	reviewPath := fmt.Sprintf("/api/v1/reviews/%d", created.Review.ID)
	recorder = doRequest(t, router, http.MethodPut, reviewPath, alice,
		`{"rating":10,"comment":"Even better on rewatch"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	var updated struct {
		Review models.Review `json:"review"`
	}
	decodeData(t, recorder, &updated)
	assert.Equal(t, 10, updated.Review.Rating)
	assert.Equal(t, int64(550), updated.Review.MovieID)
	assert.Equal(t, created.Review.CreatedAt, updated.Review.CreatedAt)

	recorder = doRequest(t, router, http.MethodDelete, reviewPath, alice, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var deleted struct {
		ID int64 `json:"id"`
	}
	decodeData(t, recorder, &deleted)
	assert.Equal(t, created.Review.ID, deleted.ID)

	recorder = doRequest(t, router, http.MethodDelete, reviewPath, alice, "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestUpdateReviewForbiddenForNonAuthor(t *testing.T) {
	app, _ := NewTestApplication(t)
	router := app.routes()

	recorder := doRequest(t, router, http.MethodPost, "/api/v1/reviews", bearerToken(t, 1),
		`{"movieId":550,"movieTitle":"Fight Club","rating":9,"comment":"Great film"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	var created struct {
		Review models.Review `json:"review"`
	}
	decodeData(t, recorder, &created)

	bob := bearerToken(t, 2)
	reviewPath := fmt.Sprintf("/api/v1/reviews/%d", created.Review.ID)
	recorder = doRequest(t, router, http.MethodPut, reviewPath, bob, `{"rating":1,"comment":"mine now"}`)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	recorder = doRequest(t, router, http.MethodDelete, reviewPath, bob, "")
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = doRequest(t, router, http.MethodGet, "/api/v1/reviews/movie/550", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var listing struct {
		Reviews []models.Review `json:"reviews"`
	}
	decodeData(t, recorder, &listing)
	require.Len(t, listing.Reviews, 1)
	assert.Equal(t, 9, listing.Reviews[0].Rating, "failed mutations must leave the record unchanged")
}

func TestGetMovieReviewsAggregate(t *testing.T) {
	app, _ := NewTestApplication(t)
	router := app.routes()
	alice := bearerToken(t, 1)
	for _, rating := range []int{8, 6, 10} {
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/reviews", alice,
			fmt.Sprintf(`{"movieId":550,"movieTitle":"Fight Club","rating":%d,"comment":"review"}`, rating))
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	recorder := doRequest(t, router, http.MethodGet, "/api/v1/reviews/movie/550", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var data struct {
		Reviews       []models.Review `json:"reviews"`
		AverageRating json.RawMessage `json:"averageRating"`
		Count         int             `json:"count"`
	}
	decodeData(t, recorder, &data)
	assert.Equal(t, 3, data.Count)
	assert.Equal(t, "8.0", string(data.AverageRating))
	require.Len(t, data.Reviews, 3)
	assert.Equal(t, 10, data.Reviews[0].Rating, "newest review first")
	assert.Equal(t, 8, data.Reviews[2].Rating, "oldest review last")
}

func TestGetMovieReviewsEmpty(t *testing.T) {
	app, _ := NewTestApplication(t)
	router := app.routes()
	recorder := doRequest(t, router, http.MethodGet, "/api/v1/reviews/movie/603", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var data struct {
		Reviews       []models.Review `json:"reviews"`
		AverageRating json.RawMessage `json:"averageRating"`
		Count         int             `json:"count"`
	}
	decodeData(t, recorder, &data)
	assert.Equal(t, 0, data.Count)
	assert.Equal(t, `"N/A"`, string(data.AverageRating))
	assert.Empty(t, data.Reviews)
}

func TestGetUserReviews(t *testing.T) {
	app, _ := NewTestApplication(t)
	router := app.routes()
	recorder := doRequest(t, router, http.MethodPost, "/api/v1/reviews", bearerToken(t, 1),
		`{"movieId":550,"movieTitle":"Fight Club","rating":9,"comment":"Great film"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	recorder = doRequest(t, router, http.MethodPost, "/api/v1/reviews", bearerToken(t, 2),
		`{"movieId":603,"movieTitle":"The Matrix","rating":8,"comment":"Classic"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = doRequest(t, router, http.MethodGet, "/api/v1/reviews/user/2", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var data struct {
		Reviews []models.Review `json:"reviews"`
	}
	decodeData(t, recorder, &data)
	require.Len(t, data.Reviews, 1)
	assert.Equal(t, "bob", data.Reviews[0].AuthorName)
}

func TestGetAllReviews(t *testing.T) {
	app, _ := NewTestApplication(t)
	router := app.routes()
	alice := bearerToken(t, 1)
	for _, movie := range []string{`{"movieId":550,"movieTitle":"Fight Club","rating":9,"comment":"first"}`,
		`{"movieId":603,"movieTitle":"The Matrix","rating":8,"comment":"second"}`} {
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/reviews", alice, movie)
		require.Equal(t, http.StatusCreated, recorder.Code)
	}
	recorder := doRequest(t, router, http.MethodGet, "/api/v1/reviews", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var data struct {
		Reviews []models.Review `json:"reviews"`
	}
	decodeData(t, recorder, &data)
	require.Len(t, data.Reviews, 2)
	assert.Equal(t, "second", data.Reviews[0].Comment, "newest first")
}
