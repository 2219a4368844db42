package weight

import "math"

// Feature is a log-domain score plus a sparse feature vector.
//
//	Zero  = (-Inf, {})
//	One   = (0, {})
//	Plus  = the better operand (higher score; on equal scores the
//	        feature vector that compares smaller, see Vector.Compare)
//	Times = (score1 + score2, features1 + features2)
//
// Plus selects, so Feature is idempotent and supports best-path extraction,
// but it is not distance-like: two weights with the same score may differ.
type Feature struct {
	score    float64
	features Vector
}

var _ Weight[Feature] = Feature{}

// NewFeature builds a Feature from a score and a feature map.
func NewFeature(score float64, features map[int]float64) Feature {
	return Feature{score: score, features: NewVector(features)}
}

// Score returns the scalar score.
func (w Feature) Score() float64 { return w.score }

// Features returns the sparse vector (do not mutate).
func (w Feature) Features() Vector { return w.features }

func (w Feature) isZero() bool { return math.IsInf(w.score, -1) }

// Zero implements Weight.
func (Feature) Zero() Feature { return Feature{score: math.Inf(-1)} }

// One implements Weight.
func (Feature) One() Feature { return Feature{} }

// Plus implements Weight.
func (w Feature) Plus(o Feature) Feature {
	if o.Better(w) {
		return o
	}

	return w
}

// Times implements Weight.
func (w Feature) Times(o Feature) Feature {
	if w.isZero() || o.isZero() {
		return w.Zero()
	}

	return Feature{score: w.score + o.score, features: w.features.Add(o.features)}
}

// Divide implements Weight.
func (w Feature) Divide(o Feature) (Feature, error) {
	if o.isZero() {
		return w.Zero(), ErrDivideByZero
	}
	if w.isZero() {
		return w, nil
	}

	return Feature{score: w.score - o.score, features: w.features.Sub(o.features)}, nil
}

// Equal implements Weight.
func (w Feature) Equal(o Feature) bool {
	if w.isZero() || o.isZero() {
		return w.isZero() == o.isZero()
	}

	return w.score == o.score && w.features.Equal(o.features)
}

// ApproxEqual implements Weight.
func (w Feature) ApproxEqual(o Feature, delta float64) bool {
	if w.isZero() || o.isZero() {
		return w.isZero() == o.isZero()
	}

	return approx(w.score, o.score, delta) && w.features.ApproxEqual(o.features, delta)
}

// Better implements Weight.
func (w Feature) Better(o Feature) bool {
	if w.score != o.score {
		return w.score > o.score
	}
	if w.isZero() {
		return false
	}

	return w.features.Compare(o.features) < 0
}

// Cost returns -score.
func (w Feature) Cost() float64 { return -w.score }

// Value returns the score.
func (w Feature) Value() float64 { return w.score }

// Properties implements Weight.
func (Feature) Properties() Property { return Idempotent | Commutative | Path }

// String implements Weight.
func (w Feature) String() string {
	if w.isZero() {
		return formatScalar(w.score)
	}

	return formatLiteral(w.score, w.features)
}

// Parse implements Weight.
func (Feature) Parse(s string) (Feature, error) {
	x, v, err := parseLiteral(s, true)
	if err != nil {
		return Feature{}, err
	}
	if math.IsInf(x, 1) {
		return Feature{}, parseErr(s, s, "feature score cannot be +inf")
	}
	if math.IsInf(x, -1) {
		return Feature{}.Zero(), nil
	}

	return Feature{score: x, features: v}, nil
}
