package main

import (
	"errors"
	"moviehub/proj/internal/lib/validator"
	"moviehub/proj/internal/services/auth"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type signupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8" errorMsg:"Password must be at least 8 characters long"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type activationInput struct {
	Token string `json:"token" validate:"required"`
}

type newActivationTokenInput struct {
	Email string `json:"email" validate:"required,email"`
}

func (app *Application) signup(w http.ResponseWriter, r *http.Request) {
	var input signupInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := validator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	userID, err := app.Services.Auth.Signup(r.Context(), input.Email, input.Username, input.Password, activationURL)
	if err != nil {
		if grpcErr, ok := status.FromError(err); ok {
			switch grpcErr.Code() {
			case codes.InvalidArgument:
				app.handlegRPCError(w, r, grpcErr, http.StatusBadRequest)
				return
			case codes.AlreadyExists:
				app.Http.Conflict(w, r, "User with that email already exists")
				return
			}
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(
		w, r,
		envelop{"user_id": userID},
		"Account created. Check your email for the activation token.",
	)
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := validator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	tokens, err := app.Services.Auth.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		if grpcErr, ok := status.FromError(err); ok {
			switch grpcErr.Code() {
			case codes.InvalidArgument:
				app.handlegRPCError(w, r, grpcErr, http.StatusBadRequest)
				return
			case codes.NotFound, codes.Unauthenticated:
				app.Http.Unauthorized(w, r, "Invalid email or password")
				return
			}
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"tokens": tokens}, "")
}

func (app *Application) activateAccount(w http.ResponseWriter, r *http.Request) {
	var input activationInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := validator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	user, err := app.Services.Auth.ActivateAccount(r.Context(), input.Token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			app.Http.NotFound(w, r, "Invalid activation token")
		case errors.Is(err, auth.ErrUserAlreadyActivated):
			app.Http.Conflict(w, r, err.Error())
		case errors.Is(err, auth.ErrInvalidData):
			app.Http.BadRequest(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"user_id": user.ID, "is_active": user.IsActive}, "Account activated")
}

func (app *Application) getNewActivationToken(w http.ResponseWriter, r *http.Request) {
	var input newActivationTokenInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := validator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	if err := app.Services.Auth.GetNewActivationToken(r.Context(), input.Email, activationURL); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			app.Http.NotFound(w, r, "User with that email not found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "A new activation token was sent to your email")
}
