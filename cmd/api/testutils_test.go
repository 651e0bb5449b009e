package main

import (
	"context"
	"io"
	"log/slog"
	"moviehub/proj/internal/config"
	"moviehub/proj/internal/domain/models"
	"moviehub/proj/internal/services"
	"moviehub/proj/internal/services/auth"
	"moviehub/proj/internal/services/reviews"
	"moviehub/proj/internal/storage"
	"sort"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testAppSecret = "test-secret"

type fakeReviewsStorage struct {
	nextID  int64
	clock   time.Time
	reviews map[int64]*models.Review
}

func newFakeReviewsStorage() *fakeReviewsStorage {
	return &fakeReviewsStorage{
		clock:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		reviews: make(map[int64]*models.Review),
	}
}

func (s *fakeReviewsStorage) Insert(_ context.Context, review *models.Review) (*models.Review, error) {
	s.nextID++
	stored := *review
	stored.ID = s.nextID
	stored.CreatedAt = s.clock
	s.clock = s.clock.Add(time.Second)
	s.reviews[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (s *fakeReviewsStorage) Get(_ context.Context, id int64) (*models.Review, error) {
	review, ok := s.reviews[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *review
	return &out, nil
}

func (s *fakeReviewsStorage) List(_ context.Context) ([]models.Review, error) {
	return s.collect(func(*models.Review) bool { return true }), nil
}

func (s *fakeReviewsStorage) ListForMovie(_ context.Context, movieID int64) ([]models.Review, error) {
	return s.collect(func(r *models.Review) bool { return r.MovieID == movieID }), nil
}

func (s *fakeReviewsStorage) ListForAuthor(_ context.Context, authorID int64) ([]models.Review, error) {
	return s.collect(func(r *models.Review) bool { return r.AuthorID == authorID }), nil
}

func (s *fakeReviewsStorage) Update(_ context.Context, id int64, rating int, comment string) (*models.Review, error) {
	review, ok := s.reviews[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	review.Rating = rating
	review.Comment = comment
	out := *review
	return &out, nil
}

func (s *fakeReviewsStorage) Delete(_ context.Context, id int64) error {
	if _, ok := s.reviews[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

func (s *fakeReviewsStorage) collect(match func(*models.Review) bool) []models.Review {
	out := make([]models.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		if match(r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

type fakeSSO struct {
	users map[int64]*models.User
}

func (f *fakeSSO) Register(_ context.Context, _, _, _ string) (*auth.SignupData, error) {
	return &auth.SignupData{UserID: 1, ActivationToken: "activation-token"}, nil
}

func (f *fakeSSO) Login(_ context.Context, _, _ string) (*auth.TokensDTO, error) {
	return &auth.TokensDTO{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (f *fakeSSO) GetUser(_ context.Context, params auth.GetUserParams) (*models.User, error) {
	for _, user := range f.users {
		if (params.ID != 0 && user.ID == params.ID) || (params.Email != "" && user.Email == params.Email) {
			out := *user
			return &out, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (f *fakeSSO) ActivateUser(_ context.Context, _ string) (*models.User, error) {
	return nil, auth.ErrUserNotFound
}

func (f *fakeSSO) NewActivationToken(_ context.Context, _ string) (string, error) {
	return "activation-token", nil
}

type noopTasks struct{}

func (noopTasks) Add(func()) {}

func NewTestApplication(t *testing.T) (*Application, *fakeReviewsStorage) {
	t.Helper()
	cfg := &config.Config{AppSecret: testAppSecret}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := newFakeReviewsStorage()
	sso := &fakeSSO{users: map[int64]*models.User{
		1: {ID: 1, Username: "alice", Email: "alice@example.com", IsActive: true},
		2: {ID: 2, Username: "bob", Email: "bob@example.com", IsActive: true},
	}}
	svcs := &services.Services{
		Auth:    auth.New(log, testAppSecret, nil, sso, noopTasks{}),
		Reviews: reviews.New(log, store),
	}
	return NewApplication(cfg, log, svcs), store
}

func bearerToken(t *testing.T, userID int64) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": float64(userID),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testAppSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}
