package ltl

import (
	"reflect"
	"testing"
)

// Test domain: state is an append-only trace of entries. Atomic ops log
// their name ("name!m" under modification m); the op named "guarded"
// rejects every modification. An op with a body is structural: it runs
// the body and logs "end:name" after it.
type top struct {
	name string
	body Seq[top, tag]
}

type traceDomain struct{}

func (traceDomain) Semantics(op top) Semantics[[]string, top, tag] {
	if op.body != nil {
		return Nested[[]string, top, tag]{
			Unwrap: func(s []string, fs []Formula[tag]) []Inner[top, tag] {
				return []Inner[top, tag]{{Body: op.body, Formulas: fs}}
			},
			Rewrap: func(pre, post []string, leftover [][]Formula[tag]) ([]string, []Formula[tag], bool) {
				return appendEntry(post, "end:"+op.name), leftover[0], true
			},
		}
	}
	return Direct[[]string, top, tag]{
		Apply: func(s []string) []string {
			return appendEntry(s, op.name)
		},
		Mutate: func(s []string, m tag) ([]string, bool) {
			if op.name == "guarded" {
				return nil, false
			}
			return appendEntry(s, op.name+"!"+m.s), true
		},
	}
}

// appendEntry copies before appending: branches must never share a
// backing array.
func appendEntry(s []string, e string) []string {
	out := make([]string, len(s), len(s)+1)
	copy(out, s)
	return append(out, e)
}

func op(name string) Node[top, tag] {
	return Do[top, tag](top{name: name})
}

func wrap(name string, body ...Node[top, tag]) Node[top, tag] {
	return Do[top, tag](top{name: name, body: body})
}

func newTraceInterp() *Interpreter[[]string, top, tag] {
	return NewInterpreter[[]string, top, tag](traceDomain{})
}

func checkTraces(t *testing.T, got [][]string, want [][]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d outcomes %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Errorf("outcome %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRunDefault(t *testing.T) {
	in := newTraceInterp()
	got := in.RunDefault(nil, Seq[top, tag]{op("a"), op("b")})
	checkTraces(t, got, [][]string{{"a", "b"}})
}

func TestSomewhereEnumeratesPlacements(t *testing.T) {
	in := newTraceInterp()
	seq := Seq[top, tag]{
		Scoped[top, tag](Somewhere(tag{"A"}), op("a"), op("b")),
	}
	got := in.RunDefault(nil, seq)
	checkTraces(t, got, [][]string{
		{"a!A", "b"},
		{"a", "b!A"},
	})
}

func TestEverywhereSingleBranch(t *testing.T) {
	in := newTraceInterp()
	seq := Seq[top, tag]{
		Scoped[top, tag](Everywhere(tag{"E"}), op("a"), op("b"), op("c")),
	}
	got := in.RunDefault(nil, seq)
	checkTraces(t, got, [][]string{
		{"a!E", "b!E", "c!E"},
	})
}

func TestScopeClosesUnfinished(t *testing.T) {
	in := newTraceInterp()
	next := Next[tag]{Body: Atom[tag]{Mod: tag{"m"}}}

	// No operations left inside the scope: ◯(atom) can never fire.
	if got := in.RunDefault(nil, Seq[top, tag]{Scoped[top, tag](next)}); len(got) != 0 {
		t.Errorf("empty scope body: got %v, want no outcomes", got)
	}

	// One operation: the atom is owed at the step after the last one.
	seq := Seq[top, tag]{Scoped[top, tag](next, op("a"))}
	if got := in.RunDefault(nil, seq); len(got) != 0 {
		t.Errorf("one-op scope body: got %v, want no outcomes", got)
	}
}

func TestInapplicableModificationPrunes(t *testing.T) {
	in := newTraceInterp()
	seq := Seq[top, tag]{
		Scoped[top, tag](Somewhere(tag{"A"}), op("guarded"), op("b")),
	}
	got := in.RunDefault(nil, seq)
	checkTraces(t, got, [][]string{
		{"guarded", "b!A"},
	})
}

func TestEmptyResultSetIsNotAnError(t *testing.T) {
	in := newTraceInterp()
	seq := Seq[top, tag]{
		Scoped[top, tag](Somewhere(tag{"A"}), op("guarded")),
	}
	if got := in.RunDefault(nil, seq); len(got) != 0 {
		t.Fatalf("got %v, want empty result set", got)
	}
}

// Obligations flow into a structural operation's body and leftovers
// fold back out: a somewhere spanning the wrapper can land inside it.
func TestStructuralOpPropagatesFormulas(t *testing.T) {
	in := newTraceInterp()
	seq := Seq[top, tag]{
		Scoped[top, tag](Somewhere(tag{"A"}),
			op("a"),
			wrap("q", op("b"), op("c")),
			op("d"),
		),
	}
	got := in.RunDefault(nil, seq)
	checkTraces(t, got, [][]string{
		{"a!A", "b", "c", "end:q", "d"},
		{"a", "b!A", "c", "end:q", "d"},
		{"a", "b", "c!A", "end:q", "d"},
		{"a", "b", "c", "end:q", "d!A"},
	})
}

// Nested scopes: the inner scope's modification applies first when both
// land on the same operation, the outer one layers on top.
func TestNestedScopesCompose(t *testing.T) {
	in := newTraceInterp()
	seq := Seq[top, tag]{
		Scoped[top, tag](Somewhere(tag{"A"}),
			op("a"),
			Scoped[top, tag](Somewhere(tag{"B"}), op("b")),
			op("c"),
		),
	}
	got := in.RunDefault(nil, seq)
	checkTraces(t, got, [][]string{
		{"a!A", "b!B", "c"},
		{"a", "b!A∘B", "c"},
		{"a", "b!B", "c!A"},
	})
}

// Initial formulas passed to Run behave like an outermost scope that
// never closes before the end of the sequence.
func TestRunWithInitialFormulas(t *testing.T) {
	in := newTraceInterp()
	seq := Seq[top, tag]{op("a"), op("b")}
	got := in.Run(nil, []Formula[tag]{Somewhere(tag{"A"})}, seq)
	checkTraces(t, got, [][]string{
		{"a!A", "b"},
		{"a", "b!A"},
	})
}

func TestRunPrunesUnfinishedInitialFormula(t *testing.T) {
	in := newTraceInterp()
	seq := Seq[top, tag]{op("guarded")}
	got := in.Run(nil, []Formula[tag]{Somewhere(tag{"A"})}, seq)
	if len(got) != 0 {
		t.Fatalf("got %v, want no outcomes", got)
	}
}
