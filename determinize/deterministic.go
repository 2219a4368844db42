package determinize

import (
	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

// IsDeterministic reports whether h is FSA-shaped and no state has two
// out-arcs with the same label. Epsilon arcs count as one label.
// Complexity: O(E).
func IsDeterministic[W weight.Weight[W]](h *core.Hypergraph[W]) bool {
	if h == nil || !h.IsFsm() {
		return false
	}
	type key struct {
		src   core.StateID
		label symbol.Label
	}
	seen := make(map[key]struct{}, h.NumArcs())
	ok := true
	h.ForArcs(func(id core.ArcID, a core.Arc[W]) bool {
		l := h.ArcLabel(id)
		if h.IsEpsilonArc(id) {
			l = symbol.Acceptor(symbol.Epsilon)
		}
		k := key{src: a.Tails[0], label: l}
		if _, dup := seen[k]; dup {
			ok = false
			return false
		}
		seen[k] = struct{}{}

		return true
	})

	return ok
}
