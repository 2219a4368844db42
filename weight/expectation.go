package weight

import "math"

// Expectation is the expectation semiring ⟨p, r⟩ used for EM-style training:
//
//	⟨p1,r1⟩ ⊕ ⟨p2,r2⟩ = ⟨p1+p2, r1+r2⟩
//	⟨p1,r1⟩ ⊗ ⟨p2,r2⟩ = ⟨p1·p2, p1·r2 + p2·r1⟩
//	Zero = ⟨0, {}⟩, One = ⟨1, {}⟩
//
// It is neither idempotent nor distance-like; decoding algorithms reject it.
type Expectation struct {
	p float64
	r Vector
}

var _ Weight[Expectation] = Expectation{}

// NewExpectation builds ⟨p, r⟩.
func NewExpectation(p float64, r map[int]float64) Expectation {
	return Expectation{p: p, r: NewVector(r)}
}

// Probability returns p.
func (w Expectation) Probability() float64 { return w.p }

// Expectations returns r (do not mutate).
func (w Expectation) Expectations() Vector { return w.r }

// Zero implements Weight.
func (Expectation) Zero() Expectation { return Expectation{} }

// One implements Weight.
func (Expectation) One() Expectation { return Expectation{p: 1} }

// Plus implements Weight.
func (w Expectation) Plus(o Expectation) Expectation {
	return Expectation{p: w.p + o.p, r: w.r.Add(o.r)}
}

// Times implements Weight.
func (w Expectation) Times(o Expectation) Expectation {
	return Expectation{p: w.p * o.p, r: o.r.Scale(w.p).Add(w.r.Scale(o.p))}
}

// Divide returns x with o ⊗ x == w.
func (w Expectation) Divide(o Expectation) (Expectation, error) {
	if o.p == 0 {
		return Expectation{}, ErrDivideByZero
	}
	p := w.p / o.p

	return Expectation{p: p, r: w.r.Sub(o.r.Scale(p)).Scale(1 / o.p)}, nil
}

// Equal implements Weight.
func (w Expectation) Equal(o Expectation) bool { return w.p == o.p && w.r.Equal(o.r) }

// ApproxEqual implements Weight.
func (w Expectation) ApproxEqual(o Expectation, delta float64) bool {
	return approx(w.p, o.p, delta) && w.r.ApproxEqual(o.r, delta)
}

// Better compares probabilities only.
func (w Expectation) Better(o Expectation) bool { return w.p > o.p }

// Cost returns -ln(p).
func (w Expectation) Cost() float64 { return -math.Log(w.p) }

// Value returns p.
func (w Expectation) Value() float64 { return w.p }

// Properties implements Weight.
func (Expectation) Properties() Property { return Commutative }

// String implements Weight.
func (w Expectation) String() string { return formatLiteral(w.p, w.r) }

// Parse implements Weight.
func (Expectation) Parse(s string) (Expectation, error) {
	x, v, err := parseLiteral(s, true)
	if err != nil {
		return Expectation{}, err
	}
	if x < 0 || math.IsInf(x, 0) {
		return Expectation{}, parseErr(s, s, "expectation probability must be finite and non-negative")
	}

	return Expectation{p: x, r: v}, nil
}
