package models

import (
	"moviehub/proj/internal/domain/fields"
	"time"
)

type Review struct {
	ID          int64     `json:"id" db:"id"`                    // Unique integer ID assigned by the store
	MovieID     int64     `json:"movieId" db:"movie_id"`         // Catalog movie the review is about; immutable
	MovieTitle  string    `json:"movieTitle" db:"movie_title"`   // Denormalized title at time of review
	MoviePoster *string   `json:"moviePoster" db:"movie_poster"` // Denormalized poster path, may be absent
	AuthorID    int64     `json:"authorId" db:"author_id"`       // Stable SSO user id; owns the review
	AuthorName  string    `json:"authorName" db:"author_name"`   // Display name, not unique
	Rating      int       `json:"rating" db:"rating"`            // Integer in [1,10]
	Comment     string    `json:"comment" db:"comment"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"` // Set by the store on insert
}

type User struct {
	ID        int64
	Username  string
	Email     string
	Role      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Catalog DTOs mirror the subset of the TMDB payload the frontends consume.

type CatalogGenre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CatalogMovie struct {
	ID           int64               `json:"id"`
	Title        string              `json:"title"`
	Overview     string              `json:"overview"`
	PosterPath   *string             `json:"poster_path"`
	BackdropPath *string             `json:"backdrop_path"`
	ReleaseDate  string              `json:"release_date"`
	VoteAverage  float64             `json:"vote_average"`
	VoteCount    int64               `json:"vote_count"`
	Runtime      fields.MovieRuntime `json:"runtime,omitempty"`
	Genres       []CatalogGenre      `json:"genres,omitempty"`
	GenreIDs     []int64             `json:"genre_ids,omitempty"`
}

type CatalogPage struct {
	Page         int            `json:"page"`
	Results      []CatalogMovie `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}
