package catalog

import "errors"

var ErrMovieNotFound = errors.New("movie not found in catalog")
