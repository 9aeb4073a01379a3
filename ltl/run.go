package ltl

// Public entry points: scope tagging and the top-level run functions.

// Scoped tags a region of an operation sequence with a formula: the
// formula is active over exactly the nodes in body and must be Finished
// when the region ends. Scopes nest; the innermost formula steps first.
func Scoped[O any, M Mod[M]](f Formula[M], body ...Node[O, M]) Node[O, M] {
	return ScopeNode[O, M]{Formula: f, Body: body}
}

// Do wraps one domain operation as a sequence node. The modification
// type must be stated at the call site; domain packages usually provide
// a pre-instantiated wrapper.
func Do[O any, M Mod[M]](op O) Node[O, M] {
	return OpNode[O, M]{Op: op}
}

// Run interprets seq from state s0 with the given initial formulas
// (commonly none) and requires every formula still active at the end to
// be Finished. Surviving final states are returned in enumeration
// order. An empty result means no modification placement satisfies the
// formulas; it is not an error.
func (in *Interpreter[S, O, M]) Run(s0 S, init []Formula[M], seq Seq[O, M]) []S {
	start := World[S, M]{State: s0, Formulas: init}
	var out []S
	for _, w := range in.Explore(seq, start) {
		if !allFinished(w.Formulas) {
			in.log.Debug().Msg("run ended unfinished, branch pruned")
			continue
		}
		out = append(out, w.State)
	}
	return out
}

// RunDefault is Run with no initial formulas.
func (in *Interpreter[S, O, M]) RunDefault(s0 S, seq Seq[O, M]) []S {
	return in.Run(s0, nil, seq)
}

func allFinished[M Mod[M]](fs []Formula[M]) bool {
	for _, f := range fs {
		if !f.Finished() {
			return false
		}
	}
	return true
}
