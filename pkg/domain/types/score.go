package types

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
)

// Score represents an assessed risk severity in [0, 1].
// A score of exactly 0.0 is a valid value and cannot be distinguished from
// "no data found"; callers must not treat zero as an error state.
type Score float64

// Validate checks if the score is within [0, 1]
func (s Score) Validate() error {
	if math.IsNaN(float64(s)) {
		return goerr.New("score must be a number")
	}
	if s < 0 || s > 1 {
		return goerr.New("score must be between 0 and 1", goerr.V("score", float64(s)))
	}
	return nil
}

// Round2 returns the score rounded to 2 decimal places.
func (s Score) Round2() Score {
	return Score(math.Round(float64(s)*100) / 100)
}

// Float returns the score as a float64
func (s Score) Float() float64 {
	return float64(s)
}
