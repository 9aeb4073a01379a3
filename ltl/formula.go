// Package ltl schedules modifications over operation sequences with
// linear-temporal-logic formulas and explores, by branching, every
// placement of modifications that satisfies them.
//
// A Formula says WHEN modifications apply across a sequence of
// operations; the interpreter (interp.go) enumerates every admissible
// placement, each yielding one candidate mutated trace.
package ltl

// Mod is the constraint on modification types: an associative Compose,
// where a.Compose(b) means "apply b, then a". Compose need not be
// commutative; the engine fixes composition order everywhere it is used.
type Mod[M any] interface {
	Compose(other M) M
}

// Formula is a temporal obligation. Formulas are immutable values;
// Step (step.go) progresses one by exactly one operation.
type Formula[M Mod[M]] interface {
	// Finished reports whether the formula counts as satisfied with no
	// further operations.
	Finished() bool
	// Step returns every way the formula can progress across one
	// operation, in left-then-right enumeration order.
	Step() []Alt[M]
	// Simplify removes Truth/Falsity units under And/Or. Single pass,
	// not a normal form; it never changes the set of alternatives Step
	// would produce.
	Simplify() Formula[M]
}

// ----- Variants -----

// Truth: ⊤. Always satisfied, applies no modification.
type Truth[M Mod[M]] struct{}

// Falsity: ⊥. Never satisfiable; prunes any branch that reaches it.
type Falsity[M Mod[M]] struct{}

// Atom: apply Mod at the current operation.
type Atom[M Mod[M]] struct {
	Mod M
}

// Or: intuitionistic choice. Branch into one world where Left holds
// and a separate world where Right holds; there is no "both" branch.
type Or[M Mod[M]] struct {
	Left, Right Formula[M]
}

// And: both obligations hold; modifications demanded at the same
// operation compose via ∘ (Left on top of Right).
type And[M Mod[M]] struct {
	Left, Right Formula[M]
}

// Next: ◯φ. Body must hold starting at the following operation.
type Next[M Mod[M]] struct {
	Body Formula[M]
}

// Until: Hold U Goal. Hold holds at least until Goal begins holding,
// and Goal eventually holds.
type Until[M Mod[M]] struct {
	Hold, Goal Formula[M]
}

// Release: Trigger R Hold. Hold holds up to and including the point
// Trigger becomes true; if Trigger never fires, Hold holds forever.
// Release is the only variant satisfied by running forever.
type Release[M Mod[M]] struct {
	Trigger, Hold Formula[M]
}

// ----- Finished -----

func (Truth[M]) Finished() bool   { return true }
func (Falsity[M]) Finished() bool { return false }
func (Atom[M]) Finished() bool    { return false }
func (f Or[M]) Finished() bool    { return f.Left.Finished() || f.Right.Finished() }
func (f And[M]) Finished() bool   { return f.Left.Finished() && f.Right.Finished() }
func (Next[M]) Finished() bool    { return false }
func (Until[M]) Finished() bool   { return false }
func (Release[M]) Finished() bool { return true }

// ----- Simplify -----

func isTruth[M Mod[M]](f Formula[M]) bool {
	_, ok := f.(Truth[M])
	return ok
}

func isFalsity[M Mod[M]](f Formula[M]) bool {
	_, ok := f.(Falsity[M])
	return ok
}

func (f Truth[M]) Simplify() Formula[M]   { return f }
func (f Falsity[M]) Simplify() Formula[M] { return f }
func (f Atom[M]) Simplify() Formula[M]    { return f }

func (f And[M]) Simplify() Formula[M] {
	l := f.Left.Simplify()
	r := f.Right.Simplify()
	switch {
	case isFalsity(l) || isFalsity(r):
		return Falsity[M]{}
	case isTruth(l):
		return r
	case isTruth(r):
		return l
	}
	return And[M]{Left: l, Right: r}
}

func (f Or[M]) Simplify() Formula[M] {
	l := f.Left.Simplify()
	r := f.Right.Simplify()
	// Only Falsity units may be dropped here: step(Falsity) is empty, so
	// removing the branch preserves the alternative set. Dropping a
	// Truth sibling would discard real alternatives.
	switch {
	case isFalsity(l):
		return r
	case isFalsity(r):
		return l
	}
	return Or[M]{Left: l, Right: r}
}

func (f Next[M]) Simplify() Formula[M] {
	return Next[M]{Body: f.Body.Simplify()}
}

func (f Until[M]) Simplify() Formula[M] {
	return Until[M]{Hold: f.Hold.Simplify(), Goal: f.Goal.Simplify()}
}

func (f Release[M]) Simplify() Formula[M] {
	return Release[M]{Trigger: f.Trigger.Simplify(), Hold: f.Hold.Simplify()}
}

// ----- Convenience constructors -----

// Somewhere: ◇m. The modification applies at some operation from now
// on, exactly once: Until(⊤, Atom(m)).
func Somewhere[M Mod[M]](m M) Formula[M] {
	return Until[M]{Hold: Truth[M]{}, Goal: Atom[M]{Mod: m}}
}

// Everywhere: □m. The modification applies at every operation from now
// on: Release(⊥, Atom(m)).
func Everywhere[M Mod[M]](m M) Formula[M] {
	return Release[M]{Trigger: Falsity[M]{}, Hold: Atom[M]{Mod: m}}
}
