// SPDX-License-Identifier: MIT
//
// impl_string.go: linear acceptors and confusion networks.
//
// Emission order:
//   - States: n+1 structural states in order, then lexical states on first use.
//   - Arcs: position asc, then alternative asc.

package builder

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

const (
	methodString  = "String"
	methodSausage = "Sausage"
)

// labelFor maps a token to an acceptor label. "in:out" gives a transducer pair.
func labelFor(cfg builderConfig, token string) symbol.Label {
	if in, out, ok := strings.Cut(token, ":"); ok && in != "" && out != "" {
		return symbol.Pair(cfg.symbolFor(in), cfg.symbolFor(out))
	}

	return symbol.Acceptor(cfg.symbolFor(token))
}

// String builds the acceptor of one token sequence: states s0..sn, start s0,
// final sn. A token "in:out" becomes a transducer label.
// Complexity: O(n).
func String[W weight.Weight[W]](tokens ...string) Constructor[W] {
	slots := make([][]string, len(tokens))
	for i, t := range tokens {
		slots[i] = []string{t}
	}

	return sausage[W](methodString, slots)
}

// Sausage builds a confusion network: position i offers every token of
// slots[i] as a parallel arc. Every slot needs at least one token.
// Complexity: O(Σ|slots[i]|).
func Sausage[W weight.Weight[W]](slots [][]string) Constructor[W] {
	return sausage[W](methodSausage, slots)
}

func sausage[W weight.Weight[W]](method string, slots [][]string) Constructor[W] {
	return func(h *core.Hypergraph[W], cfg builderConfig) error {
		// 1) Validate.
		if len(slots) == 0 {
			return fmt.Errorf("%s: no positions: %w", method, ErrTooFewStates)
		}
		for i, alts := range slots {
			if len(alts) == 0 {
				return fmt.Errorf("%s: position %d has no tokens: %w", method, i, ErrTooFewStates)
			}
		}

		// 2) States, then arcs in position order.
		first := addStates(h, len(slots)+1)
		for i, alts := range slots {
			src, dst := first+core.StateID(i), first+core.StateID(i+1)
			for _, tok := range alts {
				if err := addTransition(h, cfg, method, src, dst, tok); err != nil {
					return err
				}
			}
		}

		// 3) Markers.
		if err := h.SetStart(first); err != nil {
			return fmt.Errorf("%s: %w", method, err)
		}

		return h.SetFinal(first + core.StateID(len(slots)))
	}
}
