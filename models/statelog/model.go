// Package statelog is a small register-plus-log domain used to exercise
// the engine: a scalar register, an append-only log of what happened,
// and a Patch modification that rewrites the value an operation writes.
package statelog

import (
	"fmt"
	"strings"

	"github.com/rfielding/ltl-mutate/ltl"
)

// State is the domain state threaded through interpretation. States are
// values; Log is copied before every append so branches never share a
// backing array.
type State struct {
	Value int
	Log   []string
}

func (s State) logf(format string, args ...any) State {
	entries := make([]string, len(s.Log), len(s.Log)+1)
	copy(entries, s.Log)
	s.Log = append(entries, fmt.Sprintf(format, args...))
	return s
}

// ----- Operations -----

// Op is one statelog operation.
type Op interface {
	op()
}

// Put writes N to the register.
type Put struct {
	N int
}

// Add increments the register by N.
type Add struct {
	N int
}

// Quiet is structural: it runs Body, then collapses the body's log
// entries into a single summary entry. Formulas active outside a Quiet
// propagate into its body and leftovers fold back out.
type Quiet struct {
	Body ltl.Seq[Op, Patch]
}

func (Put) op()   {}
func (Add) op()   {}
func (Quiet) op() {}

// ----- Modifications -----

// Patch rewrites the value an operation writes.
type Patch struct {
	Label string
	F     func(int) int
}

// Compose layers p on top of q: q rewrites first, then p.
func (p Patch) Compose(q Patch) Patch {
	pf, qf := p.F, q.F
	return Patch{
		Label: p.Label + "∘" + q.Label,
		F:     func(n int) int { return pf(qf(n)) },
	}
}

// Rewrite builds a patch that maps the written value through f.
func Rewrite(label string, f func(int) int) Patch {
	return Patch{Label: label, F: f}
}

// Noop leaves values unchanged. It is applicable to every operation, so
// Everywhere(Noop(...)) always yields exactly one branch.
func Noop(label string) Patch {
	return Rewrite(label, func(n int) int { return n })
}

// Named looks up one of the built-in patches scenario files refer to.
func Named(name string) (Patch, bool) {
	switch name {
	case "double":
		return Rewrite("double", func(n int) int { return 2 * n }), true
	case "negate":
		return Rewrite("negate", func(n int) int { return -n }), true
	case "zero":
		return Rewrite("zero", func(int) int { return 0 }), true
	case "incr":
		return Rewrite("incr", func(n int) int { return n + 1 }), true
	case "noop":
		return Noop("noop"), true
	}
	return Patch{}, false
}

// ----- Domain wiring -----

// Domain wires the statelog operations into the engine.
type Domain struct{}

func (Domain) Semantics(op Op) ltl.Semantics[State, Op, Patch] {
	switch o := op.(type) {
	case Put:
		return ltl.Direct[State, Op, Patch]{
			Apply: func(s State) State {
				s.Value = o.N
				return s.logf("put %d", o.N)
			},
			Mutate: func(s State, p Patch) (State, bool) {
				n := p.F(o.N)
				s.Value = n
				return s.logf("put %d (%s: %d -> %d)", n, p.Label, o.N, n), true
			},
		}
	case Add:
		return ltl.Direct[State, Op, Patch]{
			Apply: func(s State) State {
				s.Value += o.N
				return s.logf("add %d", o.N)
			},
			Mutate: func(s State, p Patch) (State, bool) {
				n := p.F(o.N)
				s.Value += n
				return s.logf("add %d (%s: %d -> %d)", n, p.Label, o.N, n), true
			},
		}
	case Quiet:
		return ltl.Nested[State, Op, Patch]{
			Unwrap: func(s State, fs []ltl.Formula[Patch]) []ltl.Inner[Op, Patch] {
				return []ltl.Inner[Op, Patch]{{Body: o.Body, Formulas: fs}}
			},
			Rewrap: func(pre, post State, leftover [][]ltl.Formula[Patch]) (State, []ltl.Formula[Patch], bool) {
				inner := post.Log[len(pre.Log):]
				post.Log = pre.Log
				post = post.logf("quiet[%s]", strings.Join(inner, "; "))
				return post, leftover[0], true
			},
		}
	}
	return nil
}

// Step wraps one operation as a sequence node.
func Step(op Op) ltl.Node[Op, Patch] {
	return ltl.Do[Op, Patch](op)
}

// New returns an interpreter over the statelog domain.
func New() *ltl.Interpreter[State, Op, Patch] {
	return ltl.NewInterpreter[State, Op, Patch](Domain{})
}
