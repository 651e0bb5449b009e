package models

import (
	"context"
	"errors"
	"moviehub/proj/internal/domain/models"
	"moviehub/proj/internal/storage"
	"moviehub/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewModel struct {
	DB *pgxpool.Pool
}

// Newest first; id breaks created_at ties in insertion order.
const reviewsOrder = "ORDER BY created_at DESC, id ASC"

func (m *ReviewModel) Insert(ctx context.Context, review *models.Review) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO reviews (movie_id, movie_title, movie_poster, author_id, author_name, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING *`,
		review.MovieID,
		review.MovieTitle,
		review.MoviePoster,
		review.AuthorID,
		review.AuthorName,
		review.Rating,
		review.Comment,
	)
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		var pgxErr *pgconn.PgError
		if errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrConflictCode {
			return nil, storage.ErrConflict
		}
		return nil, err
	}
	return &created, nil
}

func (m *ReviewModel) Get(ctx context.Context, id int64) (*models.Review, error) {
	rows, err := m.DB.Query(ctx, "SELECT * FROM reviews WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (m *ReviewModel) List(ctx context.Context) ([]models.Review, error) {
	rows, _ := m.DB.Query(ctx, "SELECT * FROM reviews "+reviewsOrder)
	return collectReviews(rows)
}

func (m *ReviewModel) ListForMovie(ctx context.Context, movieID int64) ([]models.Review, error) {
	rows, _ := m.DB.Query(ctx, "SELECT * FROM reviews WHERE movie_id = $1 "+reviewsOrder, movieID)
	return collectReviews(rows)
}

func (m *ReviewModel) ListForAuthor(ctx context.Context, authorID int64) ([]models.Review, error) {
	rows, _ := m.DB.Query(ctx, "SELECT * FROM reviews WHERE author_id = $1 "+reviewsOrder, authorID)
	return collectReviews(rows)
}

// Update replaces rating and comment only; every other column is immutable
// after insert.
func (m *ReviewModel) Update(ctx context.Context, id int64, rating int, comment string) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		"UPDATE reviews SET rating = $1, comment = $2 WHERE id = $3 RETURNING *",
		rating,
		comment,
		id,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (m *ReviewModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM reviews WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func collectReviews(rows pgx.Rows) ([]models.Review, error) {
	reviews, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
