package auth

import (
	"context"
	"html/template"
	"log/slog"
	"moviehub/proj/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TokensDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type GetUserParams struct {
	ID       int64
	Email    string
	IsActive bool
}

type SignupData struct {
	UserID          int64
	ActivationToken string
}

// SsoProvider is the external identity provider; user records and credentials
// live there, never in this service.
type SsoProvider interface {
	Register(ctx context.Context, email, username, password string) (*SignupData, error)
	Login(ctx context.Context, email, password string) (*TokensDTO, error)
	GetUser(ctx context.Context, params GetUserParams) (*models.User, error)
	ActivateUser(ctx context.Context, activationToken string) (*models.User, error)
	NewActivationToken(ctx context.Context, email string) (string, error)
}

type TaskExecutor interface {
	Add(task func())
}

type AuthService struct {
	log          *slog.Logger
	appSecret    string
	Mailer       MailProvider
	sso          SsoProvider
	taskExecutor TaskExecutor
}

func New(
	log *slog.Logger,
	appSecret string,
	mailer MailProvider,
	ssoProvider SsoProvider,
	taskExecutor TaskExecutor,
) *AuthService {
	return &AuthService{
		log:          log,
		appSecret:    appSecret,
		Mailer:       mailer,
		sso:          ssoProvider,
		taskExecutor: taskExecutor,
	}
}

type activationEmailData struct {
	activationURL   string
	username        string
	userID          int64
	activationToken string
}

func (a *AuthService) sendActivationEmail(email string, data activationEmailData) {
	a.log.Info("sending activation email")
	err := a.Mailer.Send(
		email,
		"user_welcome.html",
		map[string]any{
			"activationURL":   template.URL(data.activationURL),
			"username":        data.username,
			"userID":          data.userID,
			"activationToken": data.activationToken,
		})
	if err != nil {
		a.log.Error("Error sending activation email", "errMsg", err.Error())
	}
}

func (a *AuthService) Signup(ctx context.Context, email, username, password, activationURL string) (int64, error) {
	const op = "auth.AuthService.Signup"
	log := a.log.With("op", op, "email", email)
	data, err := a.sso.Register(ctx, email, username, password)
	if err != nil {
		log.Error("Error calling Sso.Register", "errMsg", err.Error())
		return 0, err
	}
	a.taskExecutor.Add(func() {
		a.sendActivationEmail(email, activationEmailData{
			activationURL:   activationURL,
			username:        username,
			userID:          data.UserID,
			activationToken: data.ActivationToken,
		})
	})
	return data.UserID, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (*TokensDTO, error) {
	const op = "auth.AuthService.Login"
	log := a.log.With("op", op, "email", email)
	resp, err := a.sso.Login(ctx, email, password)
	if err != nil {
		log.Error("Error calling Sso.Login", "errMsg", err.Error())
		return nil, err
	}
	return resp, nil
}

func (a *AuthService) GetUser(ctx context.Context, params GetUserParams) (*models.User, error) {
	return a.sso.GetUser(ctx, params)
}

func (a *AuthService) ActivateAccount(ctx context.Context, activationToken string) (*models.User, error) {
	const op = "auth.AuthService.ActivateAccount"
	user, err := a.sso.ActivateUser(ctx, activationToken)
	if err != nil {
		a.log.With("op", op).Info("activation failed", "errMsg", err.Error())
		return nil, err
	}
	return user, nil
}

func (a *AuthService) GetNewActivationToken(ctx context.Context, email string, activationURL string) error {
	user, err := a.sso.GetUser(ctx, GetUserParams{Email: email})
	if err != nil {
		return err
	}
	newToken, err := a.sso.NewActivationToken(ctx, user.Email)
	if err != nil {
		return err
	}
	a.taskExecutor.Add(func() {
		a.sendActivationEmail(user.Email, activationEmailData{
			activationURL:   activationURL,
			username:        user.Username,
			userID:          user.ID,
			activationToken: newToken,
		})
	})
	return nil
}

// VerifyToken checks the access token's signature and expiry locally and
// returns the user id from the uid claim. Tokens are issued by the SSO with
// the shared app secret, so no round-trip is needed here.
func (a *AuthService) VerifyToken(token string) (int64, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(a.appSecret), nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return int64(uid), nil
}
