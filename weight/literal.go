// File: literal.go
// Role: scalar and sparse-vector literal syntax shared by all weight types.
//   <scalar>                      e.g. 0.5, -inf, 1e-3
//   <scalar>[<id>=<value>,...]    e.g. 1.5[3=0.25,7=-1]
// Determinism:
//   - Sparse vectors are kept sorted by id with no zero entries, so the
//     formatted literal is canonical and Parse(Format(v)) == v exactly.

package weight

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// FeatureValue is one entry of a sparse feature vector.
type FeatureValue struct {
	ID    int
	Value float64
}

// Vector is an immutable sparse vector sorted by ID without zero entries.
// Operations always allocate; a Vector is never mutated after construction.
type Vector []FeatureValue

// NewVector builds a canonical vector from a map.
func NewVector(m map[int]float64) Vector {
	if len(m) == 0 {
		return nil
	}
	v := make(Vector, 0, len(m))
	for id, x := range m {
		if x != 0 {
			v = append(v, FeatureValue{ID: id, Value: x})
		}
	}
	sort.Slice(v, func(i, j int) bool { return v[i].ID < v[j].ID })
	if len(v) == 0 {
		return nil
	}

	return v
}

// Get returns the value for id (0 when absent).
func (v Vector) Get(id int) float64 {
	i := sort.Search(len(v), func(i int) bool { return v[i].ID >= id })
	if i < len(v) && v[i].ID == id {
		return v[i].Value
	}

	return 0
}

// Map returns a copy as a map.
func (v Vector) Map() map[int]float64 {
	m := make(map[int]float64, len(v))
	for _, f := range v {
		m[f.ID] = f.Value
	}

	return m
}

// merge walks both vectors in id order and combines values with fn.
// Entries where fn returns 0 are dropped.
func merge(a, b Vector, fn func(x, y float64) float64) Vector {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(Vector, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var id int
		var x, y float64
		switch {
		case j >= len(b) || (i < len(a) && a[i].ID < b[j].ID):
			id, x = a[i].ID, a[i].Value
			i++
		case i >= len(a) || b[j].ID < a[i].ID:
			id, y = b[j].ID, b[j].Value
			j++
		default:
			id, x, y = a[i].ID, a[i].Value, b[j].Value
			i++
			j++
		}
		if z := fn(x, y); z != 0 {
			out = append(out, FeatureValue{ID: id, Value: z})
		}
	}
	if len(out) == 0 {
		return nil
	}

	return out
}

// Add returns a + b.
func (v Vector) Add(o Vector) Vector {
	return merge(v, o, func(x, y float64) float64 { return x + y })
}

// Sub returns a - b.
func (v Vector) Sub(o Vector) Vector {
	return merge(v, o, func(x, y float64) float64 { return x - y })
}

// Scale returns s·v.
func (v Vector) Scale(s float64) Vector {
	return merge(v, nil, func(x, _ float64) float64 { return s * x })
}

// Equal is exact equality.
func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}

	return true
}

// ApproxEqual compares entry-wise within delta, absent entries counting as 0.
func (v Vector) ApproxEqual(o Vector, delta float64) bool {
	ok := true
	merge(v, o, func(x, y float64) float64 {
		if math.Abs(x-y) > delta {
			ok = false
		}

		return 0
	})

	return ok
}

// Compare orders vectors by the first differing id (absent = 0); the smaller
// value sorts first. The order is invariant under adding a common vector,
// which keeps Feature.Plus distributive.
func (v Vector) Compare(o Vector) int {
	cmp := 0
	merge(v, o, func(x, y float64) float64 {
		if cmp == 0 {
			switch {
			case x < y:
				cmp = -1
			case x > y:
				cmp = 1
			}
		}

		return 0
	})

	return cmp
}

// formatScalar renders a float canonically; infinities as inf/-inf.
func formatScalar(x float64) string {
	switch {
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}

	return strconv.FormatFloat(x, 'g', -1, 64)
}

// parseScalar accepts any strconv float spelling except NaN.
func parseScalar(input, s string) (float64, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, parseErr(input, s, "empty scalar")
	}
	x, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, parseErr(input, t, "invalid number")
	}
	if math.IsNaN(x) {
		return 0, parseErr(input, t, "NaN is not a weight")
	}

	return x, nil
}

// formatLiteral renders "<scalar>" or "<scalar>[id=v,...]".
func formatLiteral(x float64, v Vector) string {
	if len(v) == 0 {
		return formatScalar(x)
	}
	var b strings.Builder
	b.WriteString(formatScalar(x))
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(f.ID))
		b.WriteByte('=')
		b.WriteString(formatScalar(f.Value))
	}
	b.WriteByte(']')

	return b.String()
}

// parseLiteral splits a literal into its scalar and sparse vector.
// allowFeatures=false rejects any bracketed part.
func parseLiteral(input string, allowFeatures bool) (float64, Vector, error) {
	s := strings.TrimSpace(input)
	open := strings.IndexByte(s, '[')
	if open < 0 {
		if i := strings.IndexByte(s, ']'); i >= 0 {
			return 0, nil, parseErr(input, s[i:], "unbalanced ']'")
		}
		x, err := parseScalar(input, s)

		return x, nil, err
	}
	if !allowFeatures {
		return 0, nil, parseErr(input, s[open:], "features not allowed for a distance weight")
	}
	if !strings.HasSuffix(s, "]") {
		return 0, nil, parseErr(input, s[open:], "missing closing ']'")
	}
	x, err := parseScalar(input, s[:open])
	if err != nil {
		return 0, nil, err
	}
	body := strings.TrimSpace(s[open+1 : len(s)-1])
	if body == "" {
		return x, nil, nil
	}
	m := make(map[int]float64)
	for _, item := range strings.Split(body, ",") {
		eq := strings.IndexByte(item, '=')
		if eq < 0 {
			return 0, nil, parseErr(input, item, "expected <id>=<value>")
		}
		idText := strings.TrimSpace(item[:eq])
		id, convErr := strconv.Atoi(idText)
		if convErr != nil || id < 0 {
			return 0, nil, parseErr(input, idText, "feature id must be a non-negative integer")
		}
		if _, dup := m[id]; dup {
			return 0, nil, parseErr(input, idText, "duplicate feature id")
		}
		val, valErr := parseScalar(input, item[eq+1:])
		if valErr != nil {
			return 0, nil, valErr
		}
		m[id] = val
	}

	return x, NewVector(m), nil
}

// approx compares scalars within delta, treating equal infinities as equal.
func approx(a, b, delta float64) bool {
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}

	return math.Abs(a-b) <= delta
}
