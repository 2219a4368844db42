package weight

import "math"

// Viterbi is the max-times semiring over non-negative reals (probabilities).
//
//	Zero = 0, One = 1, Plus = max, Times = *, larger is better.
//
// This is the single Viterbi convention of the module: determinization's
// residual pushing and best-path tie-breaking both use it.
type Viterbi float64

var _ Weight[Viterbi] = Viterbi(0)

// Zero implements Weight.
func (Viterbi) Zero() Viterbi { return 0 }

// One implements Weight.
func (Viterbi) One() Viterbi { return 1 }

// Plus returns max(w, o).
func (w Viterbi) Plus(o Viterbi) Viterbi {
	if o > w {
		return o
	}

	return w
}

// Times returns w * o.
func (w Viterbi) Times(o Viterbi) Viterbi { return w * o }

// Divide returns w / o.
func (w Viterbi) Divide(o Viterbi) (Viterbi, error) {
	if o == 0 {
		return 0, ErrDivideByZero
	}

	return w / o, nil
}

// Equal implements Weight.
func (w Viterbi) Equal(o Viterbi) bool { return w == o }

// ApproxEqual implements Weight.
func (w Viterbi) ApproxEqual(o Viterbi, delta float64) bool {
	return approx(float64(w), float64(o), delta)
}

// Better reports w > o.
func (w Viterbi) Better(o Viterbi) bool { return w > o }

// Cost returns -ln(w).
func (w Viterbi) Cost() float64 { return -math.Log(float64(w)) }

// Value implements Weight.
func (w Viterbi) Value() float64 { return float64(w) }

// Properties implements Weight.
func (Viterbi) Properties() Property { return Distance | Idempotent | Commutative | Path }

// String implements Weight.
func (w Viterbi) String() string { return formatScalar(float64(w)) }

// Parse reads a non-negative scalar.
func (Viterbi) Parse(s string) (Viterbi, error) {
	x, _, err := parseLiteral(s, false)
	if err != nil {
		return 0, err
	}
	if x < 0 {
		return 0, parseErr(s, s, "viterbi weight must be non-negative")
	}

	return Viterbi(x), nil
}
