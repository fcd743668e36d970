package optimize

import (
	"fmt"
	"math"
)

// goldenStep is (3 - sqrt(5)) / 2.
const goldenStep = 0.3819660

// Objective is a scalar function to minimize. It may be noisy; an error
// aborts the search.
type Objective func(x float64) (float64, error)

// Brent minimizes a scalar function over [Lower, Upper] with Brent's
// method: golden-section steps, switching to inverse parabolic
// interpolation when the last steps were large enough to trust a fit.
type Brent struct {
	Lower   float64
	Upper   float64
	Tol     float64 // relative tolerance on x
	MinTol  float64 // absolute tolerance floor
	MaxIter int
}

// DefaultBrent searches the retention interval [RMin, RMax].
func DefaultBrent() Brent {
	return Brent{Lower: RMin, Upper: RMax, Tol: 0.01, MinTol: 1e-10, MaxIter: 64}
}

// Result is the outcome of a successful search.
type Result struct {
	X           float64
	Fx          float64
	Iterations  int
	Evaluations int
}

// brentState is the bracket [a, b], the three best points x <= w <= v by
// function value, the last two step sizes and the iteration counter.
type brentState struct {
	tol, minTol float64
	a, b        float64
	x, w, v     float64
	fx, fw, fv  float64
	deltax, rat float64
	iter        int
}

func newBrentState(cfg Brent, x0, f0 float64) *brentState {
	return &brentState{
		tol: cfg.Tol, minTol: cfg.MinTol,
		a: cfg.Lower, b: cfg.Upper,
		x: x0, w: x0, v: x0,
		fx: f0, fw: f0, fv: f0,
	}
}

func (s *brentState) tol1() float64 {
	return s.tol*math.Abs(s.x) + s.minTol
}

func (s *brentState) converged() bool {
	xmid := 0.5 * (s.a + s.b)
	return math.Abs(s.x-xmid) < 2*s.tol1()-0.5*(s.b-s.a)
}

// goldenSection steps into the larger of the two sub-intervals around x.
func (s *brentState) goldenSection(xmid float64) {
	if s.x >= xmid {
		s.deltax = s.a - s.x
	} else {
		s.deltax = s.b - s.x
	}
	s.rat = goldenStep * s.deltax
}

// trial returns the next point to evaluate.
func (s *brentState) trial() float64 {
	tol1 := s.tol1()
	tol2 := 2 * tol1
	xmid := 0.5 * (s.a + s.b)

	if math.Abs(s.deltax) <= tol1 {
		s.goldenSection(xmid)
	} else {
		tmp1 := (s.x - s.w) * (s.fx - s.fv)
		tmp2 := (s.x - s.v) * (s.fx - s.fw)
		p := (s.x-s.v)*tmp2 - (s.x-s.w)*tmp1
		tmp2 = 2 * (tmp2 - tmp1)
		if tmp2 > 0 {
			p = -p
		}
		tmp2 = math.Abs(tmp2)
		prevDelta := s.deltax
		s.deltax = s.rat

		// accept the parabola only if it lands inside the bracket and
		// moves less than half the step before last
		if p > tmp2*(s.a-s.x) && p < tmp2*(s.b-s.x) && math.Abs(p) < math.Abs(0.5*tmp2*prevDelta) {
			s.rat = p / tmp2
			u := s.x + s.rat
			if u-s.a < tol2 || s.b-u < tol2 {
				if xmid-s.x >= 0 {
					s.rat = tol1
				} else {
					s.rat = -tol1
				}
			}
		} else {
			s.goldenSection(xmid)
		}
	}

	// move by at least tol1
	if math.Abs(s.rat) < tol1 {
		if s.rat >= 0 {
			return s.x + tol1
		}
		return s.x - tol1
	}
	return s.x + s.rat
}

// update narrows the bracket with the evaluated trial point and re-ranks
// the best three points.
func (s *brentState) update(u, fu float64) {
	if fu > s.fx {
		if u < s.x {
			s.a = u
		} else {
			s.b = u
		}
		if fu <= s.fw || s.w == s.x {
			s.v, s.w = s.w, u
			s.fv, s.fw = s.fw, fu
		} else if fu <= s.fv || s.v == s.x || s.v == s.w {
			s.v = u
			s.fv = fu
		}
	} else {
		if u >= s.x {
			s.a = s.x
		} else {
			s.b = s.x
		}
		s.v, s.w, s.x = s.w, s.x, u
		s.fv, s.fw, s.fx = s.fw, s.fx, fu
	}
	s.iter++
}

// Minimize runs the search. The first evaluation is at Lower. Objective
// errors are returned unwrapped so callers can match them with errors.Is.
func (cfg Brent) Minimize(f Objective) (Result, error) {
	f0, err := f(cfg.Lower)
	if err != nil {
		return Result{}, err
	}
	evals := 1
	s := newBrentState(cfg, cfg.Lower, f0)

	for s.iter < cfg.MaxIter {
		if s.converged() {
			break
		}
		u := s.trial()
		fu, err := f(u)
		if err != nil {
			return Result{}, err
		}
		evals++
		s.update(u, fu)
	}

	if s.iter >= cfg.MaxIter {
		return Result{}, fmt.Errorf("%w: no convergence after %d iterations (x=%v)", ErrOptimumNotFound, s.iter, s.x)
	}
	if s.x < cfg.Lower || s.x > cfg.Upper {
		return Result{}, fmt.Errorf("%w: x=%v outside [%v, %v]", ErrOptimumNotFound, s.x, cfg.Lower, cfg.Upper)
	}
	return Result{X: s.x, Fx: s.fx, Iterations: s.iter, Evaluations: evals}, nil
}
