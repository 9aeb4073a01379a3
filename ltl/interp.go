package ltl

import "github.com/rs/zerolog"

// Branching interpreter: walks an operation sequence left to right,
// threading the active formula list, and enumerates every placement of
// modifications that keeps all formulas satisfiable. Branching is
// logical search, not parallel execution; pruning is the only failure
// mode.

// Node is one element of an operation sequence: either a domain
// operation or a formula scope over a sub-sequence.
type Node[O any, M Mod[M]] interface {
	node()
}

// Seq is an ordered operation sequence.
type Seq[O any, M Mod[M]] []Node[O, M]

// OpNode holds a single domain operation.
type OpNode[O any, M Mod[M]] struct {
	Op O
}

func (OpNode[O, M]) node() {}

// ScopeNode opens a formula scope around Body: the formula is active
// for exactly the operations inside Body and must be Finished when the
// scope closes.
type ScopeNode[O any, M Mod[M]] struct {
	Formula Formula[M]
	Body    Seq[O, M]
}

func (ScopeNode[O, M]) node() {}

// ----- Domain semantics -----

// Semantics describes how one operation kind is interpreted, with and
// without a modification. Exactly two flavors exist: Direct for atomic
// operations, Nested for structural ones.
type Semantics[S any, O any, M Mod[M]] interface {
	semantics()
}

// Direct covers atomic operations.
type Direct[S any, O any, M Mod[M]] struct {
	// Apply runs the operation unmodified.
	Apply func(s S) S
	// Mutate runs the operation under modification m. ok=false means m
	// is inapplicable here and prunes the branch.
	Mutate func(s S, m M) (S, bool)
}

func (Direct[S, O, M]) semantics() {}

// Inner is one nested sub-sequence of a structural operation, paired
// with the formulas to thread through it.
type Inner[O any, M Mod[M]] struct {
	Body     Seq[O, M]
	Formulas []Formula[M]
}

// Nested covers structural (higher-order) operations. A structural
// operation is not itself a time step: its interior operations are.
// Unwrap restructures the operation's sub-sequences given the active
// formula list; after they are interpreted, Rewrap reassembles the
// pre/post states and each sub-sequence's leftover formulas into the
// operation's own result. ok=false prunes the branch.
type Nested[S any, O any, M Mod[M]] struct {
	Unwrap func(s S, fs []Formula[M]) []Inner[O, M]
	Rewrap func(pre, post S, leftover [][]Formula[M]) (S, []Formula[M], bool)
}

func (Nested[S, O, M]) semantics() {}

// Domain supplies the semantics of a concrete operation set. Dispatch
// by operation kind happens inside Semantics, typically a type switch
// over a closed variant set.
type Domain[S any, O any, M Mod[M]] interface {
	Semantics(op O) Semantics[S, O, M]
}

// ----- Interpreter -----

// World is one branch of the exploration: a domain state plus the
// active formula list (head = innermost scope). Worlds are never shared
// across branches.
type World[S any, M Mod[M]] struct {
	State    S
	Formulas []Formula[M]
}

// Interpreter explores a sequence under a Domain. The zero logger is
// zerolog.Nop; wire one in with WithLogger to trace the exploration.
type Interpreter[S any, O any, M Mod[M]] struct {
	dom Domain[S, O, M]
	log zerolog.Logger
}

func NewInterpreter[S any, O any, M Mod[M]](dom Domain[S, O, M]) *Interpreter[S, O, M] {
	return &Interpreter[S, O, M]{dom: dom, log: zerolog.Nop()}
}

func (in *Interpreter[S, O, M]) WithLogger(log zerolog.Logger) *Interpreter[S, O, M] {
	in.log = log
	return in
}

// Explore interprets seq from one starting world and returns every
// surviving branch, in deterministic enumeration order: alternatives at
// earlier operations vary slowest, and within one operation the Step
// order is preserved.
func (in *Interpreter[S, O, M]) Explore(seq Seq[O, M], w World[S, M]) []World[S, M] {
	worlds := []World[S, M]{w}
	for i, node := range seq {
		next := make([]World[S, M], 0, len(worlds))
		for _, cur := range worlds {
			next = append(next, in.exploreNode(i, node, cur)...)
		}
		in.log.Trace().Int("op", i).Int("branches", len(next)).Msg("explored")
		worlds = next
		if len(worlds) == 0 {
			break
		}
	}
	return worlds
}

func (in *Interpreter[S, O, M]) exploreNode(idx int, node Node[O, M], w World[S, M]) []World[S, M] {
	switch n := node.(type) {
	case ScopeNode[O, M]:
		return in.exploreScope(idx, n, w)
	case OpNode[O, M]:
		return in.exploreOp(idx, n.Op, w)
	}
	return nil
}

// exploreScope pushes the scope's formula (innermost = head), runs the
// body, and requires the formula to be Finished at close.
func (in *Interpreter[S, O, M]) exploreScope(idx int, n ScopeNode[O, M], w World[S, M]) []World[S, M] {
	opened := World[S, M]{
		State:    w.State,
		Formulas: prependFormula(n.Formula, w.Formulas),
	}
	var out []World[S, M]
	for _, res := range in.Explore(n.Body, opened) {
		if !res.Formulas[0].Finished() {
			in.log.Debug().Int("op", idx).Msg("scope closed unfinished, branch pruned")
			continue
		}
		out = append(out, World[S, M]{State: res.State, Formulas: res.Formulas[1:]})
	}
	return out
}

func (in *Interpreter[S, O, M]) exploreOp(idx int, op O, w World[S, M]) []World[S, M] {
	switch sem := in.dom.Semantics(op).(type) {
	case Direct[S, O, M]:
		return in.exploreDirect(idx, sem, w)
	case Nested[S, O, M]:
		return in.exploreNested(sem, w)
	}
	return nil
}

// exploreDirect is the per-operation branch point: every StepAll
// alternative becomes one branch.
func (in *Interpreter[S, O, M]) exploreDirect(idx int, sem Direct[S, O, M], w World[S, M]) []World[S, M] {
	alts := StepAll(w.Formulas)
	out := make([]World[S, M], 0, len(alts))
	for _, alt := range alts {
		if !alt.HasMod {
			out = append(out, World[S, M]{State: sem.Apply(w.State), Formulas: alt.Then})
			continue
		}
		s2, ok := sem.Mutate(w.State, alt.Mod)
		if !ok {
			in.log.Debug().Int("op", idx).Msg("modification inapplicable, branch pruned")
			continue
		}
		out = append(out, World[S, M]{State: s2, Formulas: alt.Then})
	}
	return out
}

// exploreNested threads state through a structural operation's
// sub-sequences, branching inside each, then lets the domain reassemble
// the result and the leftover formulas.
func (in *Interpreter[S, O, M]) exploreNested(sem Nested[S, O, M], w World[S, M]) []World[S, M] {
	type partial struct {
		state    S
		leftover [][]Formula[M]
	}
	parts := []partial{{state: w.State}}
	for _, inner := range sem.Unwrap(w.State, w.Formulas) {
		next := make([]partial, 0, len(parts))
		for _, p := range parts {
			start := World[S, M]{State: p.state, Formulas: inner.Formulas}
			for _, res := range in.Explore(inner.Body, start) {
				leftover := make([][]Formula[M], 0, len(p.leftover)+1)
				leftover = append(leftover, p.leftover...)
				leftover = append(leftover, res.Formulas)
				next = append(next, partial{state: res.State, leftover: leftover})
			}
		}
		parts = next
	}
	var out []World[S, M]
	for _, p := range parts {
		s2, fs2, ok := sem.Rewrap(w.State, p.state, p.leftover)
		if !ok {
			continue
		}
		out = append(out, World[S, M]{State: s2, Formulas: fs2})
	}
	return out
}
