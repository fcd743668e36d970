package memory

import "fmt"

// Rating is the outcome of a review.
type Rating int

const (
	Again Rating = iota + 1 // forgot
	Hard
	Good
	Easy
)

var ratingNames = [...]string{Again: "Again", Hard: "Hard", Good: "Good", Easy: "Easy"}

// String returns the rating name, or "Rating(n)" for out-of-range values.
func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// IsValid reports whether r is one of Again, Hard, Good, Easy.
func (r Rating) IsValid() bool {
	return r >= Again && r <= Easy
}
