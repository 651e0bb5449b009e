package reviews

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"moviehub/proj/internal/domain/fields"
	"moviehub/proj/internal/domain/models"
	"moviehub/proj/internal/storage"
	"strings"
)

type ReviewsStorage interface {
	Insert(ctx context.Context, review *models.Review) (*models.Review, error)
	Get(ctx context.Context, id int64) (*models.Review, error)
	List(ctx context.Context) ([]models.Review, error)
	ListForMovie(ctx context.Context, movieID int64) ([]models.Review, error)
	ListForAuthor(ctx context.Context, authorID int64) ([]models.Review, error)
	Update(ctx context.Context, id int64, rating int, comment string) (*models.Review, error)
	Delete(ctx context.Context, id int64) error
}

type ReviewService struct {
	log     *slog.Logger
	storage ReviewsStorage
}

func New(log *slog.Logger, storage ReviewsStorage) *ReviewService {
	return &ReviewService{
		log:     log,
		storage: storage,
	}
}

type CreateReviewParams struct {
	MovieID     int64
	MovieTitle  string
	MoviePoster *string
	AuthorID    int64
	AuthorName  string
	Rating      int
	Comment     string
}

type MovieReviews struct {
	Reviews       []models.Review      `json:"reviews"`
	AverageRating fields.AverageRating `json:"averageRating"`
	Count         int                  `json:"count"`
}

// AggregateRatings returns the arithmetic mean of ratings rounded to one
// decimal place, and the rating count. The zero average stands for "no
// ratings" (see fields.AverageRating).
func AggregateRatings(ratings []int) (fields.AverageRating, int) {
	if len(ratings) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))
	return fields.AverageRating(math.Round(avg*10) / 10), len(ratings)
}

func validateContent(rating int, comment string) error {
	if rating < 1 || rating > 10 {
		return fmt.Errorf("%w: rating must be an integer between 1 and 10", ErrInvalidReview)
	}
	if strings.TrimSpace(comment) == "" {
		return fmt.Errorf("%w: comment must not be empty", ErrInvalidReview)
	}
	return nil
}

func (s *ReviewService) Submit(ctx context.Context, params CreateReviewParams) (*models.Review, error) {
	const op = "reviews.ReviewService.Submit"
	log := s.log.With("op", op, "movie_id", params.MovieID, "author_id", params.AuthorID)
	if params.MovieID < 1 {
		return nil, fmt.Errorf("%w: movie id is required", ErrInvalidReview)
	}
	if strings.TrimSpace(params.MovieTitle) == "" {
		return nil, fmt.Errorf("%w: movie title is required", ErrInvalidReview)
	}
	if params.AuthorID < 1 || strings.TrimSpace(params.AuthorName) == "" {
		return nil, fmt.Errorf("%w: review author is required", ErrInvalidReview)
	}
	if err := validateContent(params.Rating, params.Comment); err != nil {
		return nil, err
	}
	review, err := s.storage.Insert(ctx, &models.Review{
		MovieID:     params.MovieID,
		MovieTitle:  params.MovieTitle,
		MoviePoster: params.MoviePoster,
		AuthorID:    params.AuthorID,
		AuthorName:  params.AuthorName,
		Rating:      params.Rating,
		Comment:     strings.TrimSpace(params.Comment),
	})
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Get(ctx context.Context, id int64) (*models.Review, error) {
	const op = "reviews.ReviewService.Get"
	log := s.log.With("op", op, "id", id)
	review, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review not found")
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) List(ctx context.Context) ([]models.Review, error) {
	const op = "reviews.ReviewService.List"
	reviews, err := s.storage.List(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return reviews, nil
}

// ForMovie lists a movie's reviews newest first and derives the rating
// aggregate on every read, so edits and deletes are never reflected stale.
func (s *ReviewService) ForMovie(ctx context.Context, movieID int64) (*MovieReviews, error) {
	const op = "reviews.ReviewService.ForMovie"
	log := s.log.With("op", op, "movie_id", movieID)
	reviews, err := s.storage.ListForMovie(ctx, movieID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	ratings := make([]int, 0, len(reviews))
	for _, r := range reviews {
		ratings = append(ratings, r.Rating)
	}
	avg, count := AggregateRatings(ratings)
	return &MovieReviews{Reviews: reviews, AverageRating: avg, Count: count}, nil
}

func (s *ReviewService) ForAuthor(ctx context.Context, authorID int64) ([]models.Review, error) {
	const op = "reviews.ReviewService.ForAuthor"
	reviews, err := s.storage.ListForAuthor(ctx, authorID)
	if err != nil {
		s.log.With("op", op, "author_id", authorID).Error(err.Error())
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) Edit(ctx context.Context, id int64, authorID int64, rating int, comment string) (*models.Review, error) {
	const op = "reviews.ReviewService.Edit"
	log := s.log.With("op", op, "id", id, "author_id", authorID)
	review, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.AuthorID != authorID {
		log.Warn("edit rejected: author mismatch", "owner_id", review.AuthorID)
		return nil, ErrForbidden
	}
	if err := validateContent(rating, comment); err != nil {
		return nil, err
	}
	updated, err := s.storage.Update(ctx, id, rating, strings.TrimSpace(comment))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *ReviewService) Remove(ctx context.Context, id int64, authorID int64) error {
	const op = "reviews.ReviewService.Remove"
	log := s.log.With("op", op, "id", id, "author_id", authorID)
	review, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if review.AuthorID != authorID {
		log.Warn("delete rejected: author mismatch", "owner_id", review.AuthorID)
		return ErrForbidden
	}
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrReviewNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
