package reviews

import "errors"

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrForbidden      = errors.New("review can only be modified by its author")
	ErrInvalidReview  = errors.New("invalid review")
)
