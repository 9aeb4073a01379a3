package ltl

// One-operation progression of formulas and of ordered formula lists.
// Step is the tableau move: it turns an obligation into the set of
// "apply this now (or nothing), owe that next" alternatives.

// Alt is one branch alternative for a single formula: apply Mod now
// (when HasMod) and carry Then as the obligation for the next operation.
type Alt[M Mod[M]] struct {
	Mod    M
	HasMod bool
	Then   Formula[M]
}

func withMod[M Mod[M]](m M, then Formula[M]) Alt[M] {
	return Alt[M]{Mod: m, HasMod: true, Then: then}
}

func noMod[M Mod[M]](then Formula[M]) Alt[M] {
	return Alt[M]{Then: then}
}

func (f Truth[M]) Step() []Alt[M] {
	return []Alt[M]{noMod[M](Truth[M]{})}
}

// Falsity yields no alternatives: the branch prunes immediately.
func (Falsity[M]) Step() []Alt[M] {
	return nil
}

func (f Atom[M]) Step() []Alt[M] {
	return []Alt[M]{withMod(f.Mod, Formula[M](Truth[M]{}))}
}

// Or keeps both sides' alternatives separate, left side first.
func (f Or[M]) Step() []Alt[M] {
	return append(f.Left.Step(), f.Right.Step()...)
}

// And takes the cartesian product of both sides' alternatives,
// left-operand-major. When both sides demand a modification at the same
// operation, Left's composes on top of Right's: left ∘ right.
func (f And[M]) Step() []Alt[M] {
	left := f.Left.Step()
	right := f.Right.Step()
	out := make([]Alt[M], 0, len(left)*len(right))
	for _, la := range left {
		for _, ra := range right {
			alt := Alt[M]{Then: And[M]{Left: la.Then, Right: ra.Then}.Simplify()}
			switch {
			case la.HasMod && ra.HasMod:
				alt.Mod, alt.HasMod = la.Mod.Compose(ra.Mod), true
			case la.HasMod:
				alt.Mod, alt.HasMod = la.Mod, true
			case ra.HasMod:
				alt.Mod, alt.HasMod = ra.Mod, true
			}
			out = append(out, alt)
		}
	}
	return out
}

func (f Next[M]) Step() []Alt[M] {
	return []Alt[M]{noMod(f.Body)}
}

// Until unrolls one operation before stepping:
//   Hold U Goal ≡ Goal ∨ (Hold ∧ ◯(Hold U Goal))
func (f Until[M]) Step() []Alt[M] {
	return Or[M]{
		Left:  f.Goal,
		Right: And[M]{Left: f.Hold, Right: Next[M]{Body: f}},
	}.Step()
}

// Release unrolls one operation before stepping:
//   Trigger R Hold ≡ Hold ∧ (Trigger ∨ ◯(Trigger R Hold))
func (f Release[M]) Step() []Alt[M] {
	return And[M]{
		Left:  f.Hold,
		Right: Or[M]{Left: f.Trigger, Right: Next[M]{Body: f}},
	}.Step()
}

// ----- Formula lists -----

// ListAlt is one branch alternative for an ordered list of formulas
// (one per open scope, head = innermost).
type ListAlt[M Mod[M]] struct {
	Mod    M
	HasMod bool
	Then   []Formula[M]
}

// StepAll progresses every formula in the list by one operation and
// combines the alternatives, head-major. When head and tail both demand
// a modification, the tail's composes on top of the head's: the
// innermost scope's modification applies first, outer scopes layer on
// top. The empty list yields a single empty alternative.
func StepAll[M Mod[M]](fs []Formula[M]) []ListAlt[M] {
	if len(fs) == 0 {
		return []ListAlt[M]{{}}
	}
	head := fs[0].Step()
	tails := StepAll(fs[1:])
	out := make([]ListAlt[M], 0, len(head)*len(tails))
	for _, ha := range head {
		for _, ta := range tails {
			alt := ListAlt[M]{Then: prependFormula(ha.Then, ta.Then)}
			switch {
			case ha.HasMod && ta.HasMod:
				alt.Mod, alt.HasMod = ta.Mod.Compose(ha.Mod), true
			case ha.HasMod:
				alt.Mod, alt.HasMod = ha.Mod, true
			case ta.HasMod:
				alt.Mod, alt.HasMod = ta.Mod, true
			}
			out = append(out, alt)
		}
	}
	return out
}

// prependFormula builds a fresh list; continuation lists are never
// shared across branches.
func prependFormula[M Mod[M]](f Formula[M], rest []Formula[M]) []Formula[M] {
	out := make([]Formula[M], 0, len(rest)+1)
	out = append(out, f)
	return append(out, rest...)
}
