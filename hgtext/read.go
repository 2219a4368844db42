package hgtext

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/hyperlath/core"
	"github.com/katalvlaran/hyperlath/symbol"
	"github.com/katalvlaran/hyperlath/weight"
)

// ErrOptionViolation indicates an invalid Read option.
var ErrOptionViolation = errors.New("hgtext: invalid option supplied")

const (
	keywordStart = "START"
	keywordFinal = "FINAL"
	keywordState = "STATE"

	maxLineBytes = 1 << 20
)

// Options configures Read.
type Options struct {
	// Properties selects the indices of the returned hypergraph.
	Properties core.Properties
	// MaxStates bounds the largest accepted state id + 1.
	MaxStates int

	err error
}

// Option is a functional option for Read.
type Option func(*Options)

// DefaultOptions stores both indices and accepts up to 1<<24 states.
func DefaultOptions() Options {
	return Options{
		Properties: core.StoreInArcs | core.StoreOutArcs,
		MaxStates:  1 << 24,
	}
}

// WithProperties replaces the index selection.
func WithProperties(p core.Properties) Option {
	return func(o *Options) { o.Properties = p }
}

// WithMaxStates bounds the state ids accepted by Read. n must be positive.
func WithMaxStates(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxStates must be > 0, got %d", ErrOptionViolation, n)
			return
		}
		o.MaxStates = n
	}
}

type lineKind uint8

const (
	lineArc lineKind = iota
	lineStart
	lineFinal
	lineState
)

// ref is a state mention.
type ref struct {
	id  core.StateID
	col int
}

type record[W weight.Weight[W]] struct {
	line  int
	kind  lineKind
	head  ref
	tails []ref
	w     W
	// weighted marks a FINAL line that carries a final weight.
	weighted bool
}

// labelAt remembers where a state got its label.
type labelAt struct {
	label symbol.Label
	line  int
}

type reader[W weight.Weight[W]] struct {
	vocab  *symbol.Vocabulary
	opts   Options
	labels map[core.StateID]labelAt
	maxID  core.StateID
	recs   []record[W]
	start  int // line of START, 0 if none
	final  int
}

// Read parses one hypergraph from r, interning labels into vocab.
//
// Steps:
//  1. Tokenize and parse every line, collecting labels per state id.
//  2. Create states 0..max id, labeled as declared.
//  3. Add arcs and the start/final markers in file order. A weighted
//     "FINAL id w" adds a fresh final state after the numbered ones and an
//     arc [id] -> fresh carrying w.
//
// Errors:
//   - ErrNilVocabulary, ErrOptionViolation.
//   - *SyntaxError for malformed lines, bad weights, relabeled states and
//     repeated START/FINAL lines.
//   - core validation errors (e.g. core.ErrInvalidInput for a lexical head),
//     wrapped with the line number.
//   - I/O errors from r.
//
// Complexity: O(bytes + V + Σ|tails|).
func Read[W weight.Weight[W]](r io.Reader, vocab *symbol.Vocabulary, opts ...Option) (*core.Hypergraph[W], error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if vocab == nil {
		return nil, ErrNilVocabulary
	}

	rd := &reader[W]{vocab: vocab, opts: o, labels: make(map[core.StateID]labelAt), maxID: core.NoState}

	// 1) Parse.
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	n := 0
	for sc.Scan() {
		n++
		if err := rd.parseLine(sc.Text(), n); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("hgtext: read line %d: %w", n+1, err)
	}

	// 2) States.
	states := int(rd.maxID) + 1
	h := core.New[W](core.WithProperties(o.Properties), core.WithCapacity(states, len(rd.recs)))
	for s := core.StateID(0); s <= rd.maxID; s++ {
		if l, ok := rd.labels[s]; ok {
			h.AddLabeledState(l.label)
		} else {
			h.AddState()
		}
	}

	// 3) Arcs and markers.
	for i := range rd.recs {
		rec := &rd.recs[i]
		var err error
		switch rec.kind {
		case lineArc:
			tails := make([]core.StateID, len(rec.tails))
			for j, t := range rec.tails {
				tails[j] = t.id
			}
			_, err = h.AddArc(rec.head.id, tails, rec.w)
		case lineStart:
			err = h.SetStart(rec.head.id)
		case lineFinal:
			if !rec.weighted {
				err = h.SetFinal(rec.head.id)
				break
			}
			f := h.AddState()
			if _, err = h.AddArc(f, []core.StateID{rec.head.id}, rec.w); err == nil {
				err = h.SetFinal(f)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("hgtext: line %d: %w", rec.line, err)
		}
	}

	return h, nil
}

func (rd *reader[W]) parseLine(line string, n int) error {
	toks, serr := scanLine(line)
	if serr != nil {
		serr.Line = n
		return serr
	}
	if len(toks) == 0 {
		return nil
	}

	switch kw := toks[0]; {
	case kw.labels == nil && (kw.text == keywordStart || kw.text == keywordFinal || kw.text == keywordState):
		if len(toks) == 3 && kw.text == keywordFinal {
			return rd.weightedFinal(toks, n)
		}
		if len(toks) != 2 {
			return &SyntaxError{Line: n, Col: kw.col, Msg: kw.text + " takes exactly one state"}
		}
		st, err := rd.state(toks[1], n)
		if err != nil {
			return err
		}
		rec := record[W]{line: n, head: st, kind: lineState}
		switch kw.text {
		case keywordStart:
			if toks[1].labels != nil {
				return &SyntaxError{Line: n, Col: toks[1].col, Msg: "START state cannot carry a label here"}
			}
			if rd.start != 0 {
				return &SyntaxError{Line: n, Col: kw.col, Msg: fmt.Sprintf("duplicate START (first on line %d)", rd.start)}
			}
			rec.kind, rd.start = lineStart, n
		case keywordFinal:
			if toks[1].labels != nil {
				return &SyntaxError{Line: n, Col: toks[1].col, Msg: "FINAL state cannot carry a label here"}
			}
			if err = rd.markFinal(kw, n); err != nil {
				return err
			}
			rec.kind = lineFinal
		}
		rd.recs = append(rd.recs, rec)

		return nil
	}

	if len(toks) < 2 {
		return &SyntaxError{Line: n, Col: toks[0].col, Msg: "arc needs a head and a weight"}
	}
	wt := toks[len(toks)-1]
	if wt.labels != nil {
		return &SyntaxError{Line: n, Col: wt.col, Msg: "weight cannot carry a label"}
	}
	w, err := weight.Parse[W](wt.text)
	if err != nil {
		return &SyntaxError{Line: n, Col: wt.col, Msg: "bad weight", Err: err}
	}
	head, err := rd.state(toks[len(toks)-2], n)
	if err != nil {
		return err
	}
	rec := record[W]{line: n, kind: lineArc, head: head, w: w}
	if k := len(toks) - 2; k > 0 {
		rec.tails = make([]ref, k)
		for i := 0; i < k; i++ {
			if rec.tails[i], err = rd.state(toks[i], n); err != nil {
				return err
			}
		}
	}
	rd.recs = append(rd.recs, rec)

	return nil
}

// markFinal rejects a second FINAL line.
func (rd *reader[W]) markFinal(kw token, n int) error {
	if rd.final != 0 {
		return &SyntaxError{Line: n, Col: kw.col, Msg: fmt.Sprintf("duplicate FINAL (first on line %d)", rd.final)}
	}
	rd.final = n

	return nil
}

// weightedFinal parses "FINAL id w".
func (rd *reader[W]) weightedFinal(toks []token, n int) error {
	kw, wt := toks[0], toks[2]
	if toks[1].labels != nil {
		return &SyntaxError{Line: n, Col: toks[1].col, Msg: "FINAL state cannot carry a label here"}
	}
	if wt.labels != nil {
		return &SyntaxError{Line: n, Col: wt.col, Msg: "weight cannot carry a label"}
	}
	w, err := weight.Parse[W](wt.text)
	if err != nil {
		return &SyntaxError{Line: n, Col: wt.col, Msg: "bad weight", Err: err}
	}
	st, err := rd.state(toks[1], n)
	if err != nil {
		return err
	}
	if err = rd.markFinal(kw, n); err != nil {
		return err
	}
	rd.recs = append(rd.recs, record[W]{line: n, kind: lineFinal, head: st, w: w, weighted: true})

	return nil
}

// state parses a state token and records its label.
func (rd *reader[W]) state(t token, n int) (ref, error) {
	id, err := strconv.ParseInt(t.text, 10, 32)
	if err != nil || id < 0 {
		return ref{}, &SyntaxError{Line: n, Col: t.col, Msg: fmt.Sprintf("bad state id %q", t.text)}
	}
	if id >= int64(rd.opts.MaxStates) {
		return ref{}, &SyntaxError{Line: n, Col: t.col, Msg: fmt.Sprintf("state id %d exceeds limit %d", id, rd.opts.MaxStates)}
	}
	s := core.StateID(id)
	if s > rd.maxID {
		rd.maxID = s
	}
	if t.labels != nil {
		var l symbol.Label
		if len(t.labels) == 1 {
			l = symbol.Acceptor(rd.vocab.Add(t.labels[0]))
		} else {
			l = symbol.Pair(rd.vocab.Add(t.labels[0]), rd.vocab.Add(t.labels[1]))
		}
		if prev, ok := rd.labels[s]; ok && prev.label != l {
			return ref{}, &SyntaxError{Line: n, Col: t.col, Msg: fmt.Sprintf("state %d relabeled (first labeled on line %d)", s, prev.line)}
		}
		if _, ok := rd.labels[s]; !ok {
			rd.labels[s] = labelAt{label: l, line: n}
		}
	}

	return ref{id: s, col: t.col}, nil
}
