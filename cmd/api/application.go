package main

import (
	"log/slog"
	"moviehub/proj/internal/config"
	"moviehub/proj/internal/lib/metrics"
	"moviehub/proj/internal/lib/validator"
	"moviehub/proj/internal/services"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
)

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	Services  *services.Services
	validator *govalidator.Validate
	metrics   *prometheus.Registry
}

func NewApplication(cfg *config.Config, log *slog.Logger, services *services.Services) *Application {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validator.ValidateNotBlank); err != nil {
		panic(err)
	}
	return &Application{
		cfg:       cfg,
		log:       log,
		validator: v,
		Services:  services,
		metrics:   metrics.NewRegistry(),
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
