package memory

import "math"

const (
	// Decay is the exponent of the power forgetting curve.
	Decay = -0.5
	// SMin and SMax bound stability for every learned card.
	SMin = 0.01
	SMax = 36500.0
	// DMin and DMax bound difficulty.
	DMin = 1.0
	DMax = 10.0
)

// Factor is chosen so that RecallProbability(s, s) == 0.9.
var Factor = math.Pow(0.9, 1/Decay) - 1

// RecallProbability evaluates the power forgetting curve
// (1 + Factor*t/s)^Decay. Stability must be positive.
func RecallProbability(elapsedDays, stability float64) float64 {
	return math.Pow(1+Factor*elapsedDays/stability, Decay)
}

// NextInterval inverts the forgetting curve: the number of elapsed days
// after which recall probability falls to desiredRetention. Not rounded.
func NextInterval(stability, desiredRetention float64) float64 {
	return stability / Factor * (math.Pow(desiredRetention, 1/Decay) - 1)
}

// StabilityAfterSuccess returns the stability after a successful recall
// with rating Hard, Good or Easy, given the pre-review stability s,
// recall probability r and difficulty d.
func (p *Parameters) StabilityAfterSuccess(s, r, d float64, rating Rating) float64 {
	hardPenalty := 1.0
	if rating == Hard {
		hardPenalty = p[15]
	}
	easyBonus := 1.0
	if rating == Easy {
		easyBonus = p[16]
	}
	growth := math.Exp(p[8]) *
		(11 - d) *
		math.Pow(s, -p[9]) *
		(math.Exp((1-r)*p[10]) - 1) *
		hardPenalty * easyBonus
	return ClampStability(s * (growth + 1))
}

// StabilityAfterFailure returns the stability after a lapse. The result
// never exceeds s and never drops below SMin.
func (p *Parameters) StabilityAfterFailure(s, r, d float64) float64 {
	next := p[11] *
		math.Pow(d, -p[12]) *
		(math.Pow(s+1, p[13]) - 1) *
		math.Exp((1-r)*p[14])
	return math.Max(math.Min(next, s), SMin)
}

// NextDifficulty applies the rating-driven difficulty change, reverts the
// result toward w[4] by w[7] and clamps it to [DMin, DMax].
func (p *Parameters) NextDifficulty(d float64, rating Rating) float64 {
	next := d - p[6]*(float64(rating)-3)
	next = p[7]*p[4] + (1-p[7])*next
	return ClampDifficulty(next)
}

// LapseDifficulty is the difficulty after a forgotten review.
func (p *Parameters) LapseDifficulty(d float64) float64 {
	return ClampDifficulty(d + 2*p[6])
}

// InitStability is the stability after the first review.
func (p *Parameters) InitStability(rating Rating) float64 {
	return ClampStability(p[rating-1])
}

// InitDifficulty is the difficulty after the first review.
func (p *Parameters) InitDifficulty(rating Rating) float64 {
	return ClampDifficulty(p[4] - p[5]*(float64(rating)-3))
}

// ClampStability bounds s to [SMin, SMax].
func ClampStability(s float64) float64 {
	return math.Min(math.Max(s, SMin), SMax)
}

// ClampDifficulty bounds d to [DMin, DMax].
func ClampDifficulty(d float64) float64 {
	return math.Min(math.Max(d, DMin), DMax)
}
