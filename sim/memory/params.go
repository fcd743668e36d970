package memory

import (
	"errors"
	"fmt"
	"math"
)

// NumParameters is the fixed length of a weight vector.
const NumParameters = 17

// ErrInvalidParameters is returned when a weight vector has a length other
// than 0 (use defaults) or NumParameters, or contains non-finite values.
var ErrInvalidParameters = errors.New("memory: invalid parameters")

// Parameters is the 17-weight memory model vector. Index roles:
//
//	w[0..4)   initial stability for first rating Again..Easy
//	w[4],w[5] initial difficulty intercept and slope
//	w[6]      difficulty change per review
//	w[7]      mean reversion strength toward w[4]
//	w[8..11)  stability growth on recall
//	w[11..15) stability after a lapse
//	w[15]     hard penalty
//	w[16]     easy bonus
type Parameters [NumParameters]float64

// DefaultParameters are used when a caller supplies an empty weight vector.
var DefaultParameters = Parameters{
	0.4, 0.6, 2.4, 5.8, // initial stability
	4.93, 0.94, 0.86, 0.01, // difficulty
	1.49, 0.14, 0.94, // recall
	2.18, 0.05, 0.34, 1.26, // lapse
	0.29, 2.61, // hard penalty, easy bonus
}

// ParseParameters converts an externally supplied weight slice.
// An empty slice selects DefaultParameters.
func ParseParameters(w []float64) (Parameters, error) {
	if len(w) == 0 {
		return DefaultParameters, nil
	}
	if len(w) != NumParameters {
		return Parameters{}, fmt.Errorf("%w: got %d weights, want %d", ErrInvalidParameters, len(w), NumParameters)
	}
	var p Parameters
	copy(p[:], w)
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// Validate reports an error if any weight is NaN or infinite.
func (p Parameters) Validate() error {
	for i, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: w[%d] must be finite, got %f", ErrInvalidParameters, i, v)
		}
	}
	return nil
}

// Slice returns a copy of the weights as a slice.
func (p Parameters) Slice() []float64 {
	out := make([]float64, NumParameters)
	copy(out, p[:])
	return out
}
