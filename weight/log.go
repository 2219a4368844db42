package weight

import "math"

// Log is the log semiring over natural-log probabilities.
//
//	Zero = -Inf, One = 0, Plus = log(exp(a)+exp(b)), Times = a + b.
//
// Plus is not idempotent, so Log sums over derivations rather than picking one.
type Log float64

var _ Weight[Log] = Log(0)

// Zero implements Weight.
func (Log) Zero() Log { return Log(math.Inf(-1)) }

// One implements Weight.
func (Log) One() Log { return 0 }

// Plus is log-sum-exp; the larger operand is factored out for stability and
// the expression is symmetric so Plus stays exactly commutative.
func (w Log) Plus(o Log) Log {
	hi, lo := float64(w), float64(o)
	if lo > hi {
		hi, lo = lo, hi
	}
	if math.IsInf(lo, -1) {
		return Log(hi)
	}

	return Log(hi + math.Log1p(math.Exp(lo-hi)))
}

// Times returns w + o.
func (w Log) Times(o Log) Log { return w + o }

// Divide returns w - o.
func (w Log) Divide(o Log) (Log, error) {
	if math.IsInf(float64(o), -1) {
		return w.Zero(), ErrDivideByZero
	}

	return w - o, nil
}

// Equal implements Weight.
func (w Log) Equal(o Log) bool { return w == o }

// ApproxEqual implements Weight.
func (w Log) ApproxEqual(o Log, delta float64) bool {
	return approx(float64(w), float64(o), delta)
}

// Better reports w > o.
func (w Log) Better(o Log) bool { return w > o }

// Cost returns -w.
func (w Log) Cost() float64 { return -float64(w) }

// Value implements Weight.
func (w Log) Value() float64 { return float64(w) }

// Properties implements Weight.
func (Log) Properties() Property { return Distance | Commutative }

// String implements Weight.
func (w Log) String() string { return formatScalar(float64(w)) }

// Parse reads a scalar; "-inf" is Zero.
func (Log) Parse(s string) (Log, error) {
	x, _, err := parseLiteral(s, false)
	if err != nil {
		return 0, err
	}
	if math.IsInf(x, 1) {
		return 0, parseErr(s, s, "log weight cannot be +inf")
	}

	return Log(x), nil
}
