package services

import (
	"log/slog"
	"moviehub/proj/internal/clients/sso/grpc"
	"moviehub/proj/internal/clients/tmdb"
	"moviehub/proj/internal/config"
	"moviehub/proj/internal/mails"
	"moviehub/proj/internal/services/auth"
	"moviehub/proj/internal/services/catalog"
	"moviehub/proj/internal/services/reviews"
	"moviehub/proj/internal/storage/postgres"
	"moviehub/proj/internal/storage/postgres/models"
)

type Services struct {
	Auth    *auth.AuthService
	Reviews *reviews.ReviewService
	Catalog *catalog.CatalogService
}

func New(log *slog.Logger, cfg *config.Config, storage *postgres.Storage, taskExecutor auth.TaskExecutor) *Services {
	mailer := mails.New(
		cfg.SMTPServer.Host,
		cfg.SMTPServer.Port,
		cfg.SMTPServer.Timeout,
		cfg.SMTPServer.Username,
		cfg.SMTPServer.Password,
		cfg.SMTPServer.Sender,
		cfg.SMTPServer.RetriesCount,
	)
	sso, err := grpc.New(
		log,
		cfg.AppID,
		cfg.Clients.SSO.Addr,
		cfg.Clients.SSO.RetryTimeout,
		cfg.Clients.SSO.RetriesCount,
	)
	if err != nil {
		panic(err)
	}
	catalogClient, err := tmdb.New(
		log,
		cfg.Catalog.BaseURL,
		cfg.Catalog.APIKey,
		cfg.Catalog.Timeout,
		cfg.Catalog.Rps,
	)
	if err != nil {
		panic(err)
	}
	dbModels := models.New(storage)
	return &Services{
		Auth:    auth.New(log, cfg.AppSecret, mailer, sso, taskExecutor),
		Reviews: reviews.New(log, dbModels.Review),
		Catalog: catalog.New(log, catalogClient),
	}
}
