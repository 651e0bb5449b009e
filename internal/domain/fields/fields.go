package fields

import (
	"fmt"
	"strconv"
)

type MovieRuntime int32

func (m MovieRuntime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(fmt.Sprintf("%d mins", m))), nil
}

// AverageRating is a movie's mean review rating rounded to one decimal place.
// Ratings are always >= 1, so a zero value can only mean "no reviews yet" and
// is rendered as "N/A".
type AverageRating float64

func (a AverageRating) MarshalJSON() ([]byte, error) {
	if a == 0 {
		return []byte(`"N/A"`), nil
	}
	return []byte(strconv.FormatFloat(float64(a), 'f', 1, 64)), nil
}
