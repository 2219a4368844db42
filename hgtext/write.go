package hgtext

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

// Write renders h to w. Lexical states are written with their label at every
// mention, so each arc line is self-describing.
//
// Errors:
//   - ErrNilVocabulary, core.ErrInvalidInput for a nil hypergraph.
//   - The first write error of w.
//
// Complexity: O(V + Σ|tails|).
func Write[W weight.Weight[W]](w io.Writer, h *core.Hypergraph[W], vocab *symbol.Vocabulary) error {
	if h == nil {
		return fmt.Errorf("hgtext: nil hypergraph: %w", core.ErrInvalidInput)
	}
	if vocab == nil {
		return ErrNilVocabulary
	}
	bw := bufio.NewWriter(w)
	var line strings.Builder

	// 1) Start.
	if s := h.Start(); s != core.NoState {
		fmt.Fprintf(bw, "%s %d\n", keywordStart, s)
	}

	// 2) States that nothing else mentions.
	mentioned := make([]bool, h.NumStates())
	for _, s := range []core.StateID{h.Start(), h.Final()} {
		if s != core.NoState {
			mentioned[s] = true
		}
	}
	h.ForArcs(func(_ core.ArcID, a core.Arc[W]) bool {
		mentioned[a.Head] = true
		for _, t := range a.Tails {
			mentioned[t] = true
		}
		return true
	})
	for s, ok := range mentioned {
		if !ok {
			fmt.Fprintf(bw, "%s %s\n", keywordState, stateToken(h, core.StateID(s), vocab))
		}
	}

	// 3) Arcs in insertion order.
	h.ForArcs(func(_ core.ArcID, a core.Arc[W]) bool {
		line.Reset()
		for _, t := range a.Tails {
			line.WriteString(stateToken(h, t, vocab))
			line.WriteByte(' ')
		}
		line.WriteString(stateToken(h, a.Head, vocab))
		line.WriteByte(' ')
		line.WriteString(a.Weight.String())
		line.WriteByte('\n')
		_, _ = bw.WriteString(line.String())
		return true
	})

	// 4) Final.
	if s := h.Final(); s != core.NoState {
		fmt.Fprintf(bw, "%s %d\n", keywordFinal, s)
	}

	return bw.Flush()
}

// stateToken renders "id", "id(label)" or "id(in out)".
func stateToken[W weight.Weight[W]](h *core.Hypergraph[W], s core.StateID, vocab *symbol.Vocabulary) string {
	id := strconv.Itoa(int(s))
	l := h.Label(s)
	if l.IsNone() {
		return id
	}
	if l.IsAcceptor() {
		return id + "(" + Quote(vocab.String(l.In)) + ")"
	}

	return id + "(" + Quote(vocab.String(l.In)) + " " + Quote(vocab.String(l.Out)) + ")"
}
