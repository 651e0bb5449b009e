package catalog

import (
	"context"
	"errors"
	"log/slog"
	"moviehub/proj/internal/clients/tmdb"
	"moviehub/proj/internal/domain/models"
)

// CatalogProvider is the external movie-metadata source. The service holds no
// state of its own: every call is a pass-through with error mapping.
type CatalogProvider interface {
	Trending(ctx context.Context) (*models.CatalogPage, error)
	Search(ctx context.Context, query string, page int) (*models.CatalogPage, error)
	Movie(ctx context.Context, id int64) (*models.CatalogMovie, error)
}

type CatalogService struct {
	log    *slog.Logger
	client CatalogProvider
}

func New(log *slog.Logger, client CatalogProvider) *CatalogService {
	return &CatalogService{
		log:    log,
		client: client,
	}
}

func (s *CatalogService) Trending(ctx context.Context) (*models.CatalogPage, error) {
	const op = "catalog.CatalogService.Trending"
	page, err := s.client.Trending(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return page, nil
}

func (s *CatalogService) Search(ctx context.Context, query string, pageNum int) (*models.CatalogPage, error) {
	const op = "catalog.CatalogService.Search"
	page, err := s.client.Search(ctx, query, pageNum)
	if err != nil {
		s.log.With("op", op, "query", query).Error(err.Error())
		return nil, err
	}
	return page, nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*models.CatalogMovie, error) {
	const op = "catalog.CatalogService.Get"
	log := s.log.With("op", op, "id", id)
	movie, err := s.client.Movie(ctx, id)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}
