package main

import (
	"errors"
	"moviehub/proj/internal/lib/validator"
	"moviehub/proj/internal/services/reviews"
	"net/http"
)

type createReviewInput struct {
	MovieID     int64   `json:"movieId" validate:"required,gt=0" errorMsg:"A valid movie ID is required"`
	MovieTitle  string  `json:"movieTitle" validate:"required,notblank"`
	MoviePoster *string `json:"moviePoster"`
	Rating      int     `json:"rating" validate:"required,gte=1,lte=10" errorMsg:"Rating must be an integer between 1 and 10"`
	Comment     string  `json:"comment" validate:"required,notblank" errorMsg:"Comment must not be empty"`
}

type updateReviewInput struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=10" errorMsg:"Rating must be an integer between 1 and 10"`
	Comment string `json:"comment" validate:"required,notblank" errorMsg:"Comment must not be empty"`
}

func (app *Application) getReviews(w http.ResponseWriter, r *http.Request) {
	reviewsList, err := app.Services.Reviews.List(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"reviews": reviewsList}, "")
}

func (app *Application) getMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	movieReviews, err := app.Services.Reviews.ForMovie(r.Context(), movieID)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{
		"reviews":       movieReviews.Reviews,
		"averageRating": movieReviews.AverageRating,
		"count":         movieReviews.Count,
	}, "")
}

func (app *Application) getUserReviews(w http.ResponseWriter, r *http.Request) {
	authorID, ok := app.extractIDParam(w, r, "authorId")
	if !ok {
		return
	}
	reviewsList, err := app.Services.Reviews.ForAuthor(r.Context(), authorID)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"reviews": reviewsList}, "")
}

func (app *Application) createReview(w http.ResponseWriter, r *http.Request) {
	var input createReviewInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := validator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.ValidationFailed(w, r, validationErrs)
		return
	}
	user := userFromContext(r)
	review, err := app.Services.Reviews.Submit(r.Context(), reviews.CreateReviewParams{
		MovieID:     input.MovieID,
		MovieTitle:  input.MovieTitle,
		MoviePoster: input.MoviePoster,
		AuthorID:    user.ID,
		AuthorName:  user.Username,
		Rating:      input.Rating,
		Comment:     input.Comment,
	})
	if err != nil {
		app.reviewError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"review": review}, "Review submitted")
}

func (app *Application) updateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	var input updateReviewInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := validator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.ValidationFailed(w, r, validationErrs)
		return
	}
	user := userFromContext(r)
	review, err := app.Services.Reviews.Edit(r.Context(), id, user.ID, input.Rating, input.Comment)
	if err != nil {
		app.reviewError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "Review updated")
}

func (app *Application) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	user := userFromContext(r)
	if err := app.Services.Reviews.Remove(r.Context(), id, user.ID); err != nil {
		app.reviewError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"id": id}, "Review deleted")
}

func (app *Application) reviewError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reviews.ErrInvalidReview):
		app.Http.BadRequest(w, r, err.Error())
	case errors.Is(err, reviews.ErrReviewNotFound):
		app.Http.NotFound(w, r, err.Error())
	case errors.Is(err, reviews.ErrForbidden):
		app.Http.Forbidden(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
