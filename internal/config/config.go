// Package config loads scenario files: a TOML description of an
// operation sequence over the statelog domain plus the formula to
// satisfy across it.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/rfielding/ltl-mutate/ltl"
	"github.com/rfielding/ltl-mutate/models/statelog"
)

type Scenario struct {
	Initial int           `toml:"initial"`
	Steps   []StepConfig  `toml:"step"`
	Formula FormulaConfig `toml:"formula"`
}

type StepConfig struct {
	Op   string       `toml:"op"` // put | add | quiet
	N    int          `toml:"n"`
	Body []StepConfig `toml:"body"` // quiet only
}

type FormulaConfig struct {
	Pattern string `toml:"pattern"` // somewhere | everywhere
	Patch   string `toml:"patch"`   // a statelog.Named patch
}

func Load(path string) (Scenario, error) {
	var sc Scenario
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	if err := toml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if sc.Formula.Pattern == "" {
		sc.Formula.Pattern = "somewhere"
	}
	if sc.Formula.Patch == "" {
		sc.Formula.Patch = "noop"
	}
	if err := Validate(sc); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

func Validate(sc Scenario) error {
	if len(sc.Steps) == 0 {
		return fmt.Errorf("scenario has no steps")
	}
	if err := validateSteps(sc.Steps); err != nil {
		return err
	}
	switch sc.Formula.Pattern {
	case "somewhere", "everywhere":
	default:
		return fmt.Errorf("unknown formula pattern %q", sc.Formula.Pattern)
	}
	if _, ok := statelog.Named(sc.Formula.Patch); !ok {
		return fmt.Errorf("unknown patch %q", sc.Formula.Patch)
	}
	return nil
}

func validateSteps(steps []StepConfig) error {
	for i, st := range steps {
		switch st.Op {
		case "put", "add":
			if len(st.Body) != 0 {
				return fmt.Errorf("step %d: %s takes no body", i, st.Op)
			}
		case "quiet":
			if len(st.Body) == 0 {
				return fmt.Errorf("step %d: quiet needs a body", i)
			}
			if err := validateSteps(st.Body); err != nil {
				return err
			}
		default:
			return fmt.Errorf("step %d: unknown op %q", i, st.Op)
		}
	}
	return nil
}

// Build turns a validated scenario into the sequence and formula to run:
// the formula scope spans the whole sequence.
func Build(sc Scenario) (ltl.Seq[statelog.Op, statelog.Patch], error) {
	patch, ok := statelog.Named(sc.Formula.Patch)
	if !ok {
		return nil, fmt.Errorf("unknown patch %q", sc.Formula.Patch)
	}
	var formula ltl.Formula[statelog.Patch]
	switch sc.Formula.Pattern {
	case "somewhere":
		formula = ltl.Somewhere(patch)
	case "everywhere":
		formula = ltl.Everywhere(patch)
	default:
		return nil, fmt.Errorf("unknown formula pattern %q", sc.Formula.Pattern)
	}
	body, err := buildSteps(sc.Steps)
	if err != nil {
		return nil, err
	}
	return ltl.Seq[statelog.Op, statelog.Patch]{
		ltl.Scoped(formula, body...),
	}, nil
}

func buildSteps(steps []StepConfig) (ltl.Seq[statelog.Op, statelog.Patch], error) {
	out := make(ltl.Seq[statelog.Op, statelog.Patch], 0, len(steps))
	for i, st := range steps {
		switch st.Op {
		case "put":
			out = append(out, statelog.Step(statelog.Put{N: st.N}))
		case "add":
			out = append(out, statelog.Step(statelog.Add{N: st.N}))
		case "quiet":
			inner, err := buildSteps(st.Body)
			if err != nil {
				return nil, err
			}
			out = append(out, statelog.Step(statelog.Quiet{Body: inner}))
		default:
			return nil, fmt.Errorf("step %d: unknown op %q", i, st.Op)
		}
	}
	return out, nil
}
