// ltlmutate explores temporal-logic-scheduled mutations of statelog
// traces: `demo` walks through built-in scenarios, `run` explores a
// scenario loaded from a TOML file.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rfielding/ltl-mutate/internal/config"
	"github.com/rfielding/ltl-mutate/internal/observability"
	"github.com/rfielding/ltl-mutate/ltl"
	"github.com/rfielding/ltl-mutate/models/statelog"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ltlmutate",
	Short: "Explore temporal-logic-scheduled trace mutations",
	Long: `ltlmutate attaches temporal formulas to a sequence of operations and
enumerates every placement of modifications that satisfies them. Each
surviving branch is one candidate mutated trace.`,
	SilenceUsage: true,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the built-in walkthrough scenarios",
	RunE:  runDemo,
}

var runCmd = &cobra.Command{
	Use:   "run <scenario.toml>",
	Short: "Explore a scenario loaded from a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenario,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace the exploration")
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(runCmd)
}

func newInterp() *ltl.Interpreter[statelog.State, statelog.Op, statelog.Patch] {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.TraceLevel
	}
	log := observability.InitLogger("ltlmutate", level).
		With().Str("run", uuid.NewString()).Logger()
	return statelog.New().WithLogger(log)
}

func printOutcomes(outcomes []statelog.State) {
	if len(outcomes) == 0 {
		fmt.Println("no admissible placements")
		return
	}
	for i, s := range outcomes {
		fmt.Printf("branch %d: value=%d\n", i, s.Value)
		for _, entry := range s.Log {
			fmt.Printf("  %s\n", entry)
		}
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	in := newInterp()
	double := statelog.Rewrite("double", func(n int) int { return 2 * n })

	fmt.Println("=== somewhere(double) over put 5; add 2 ===")
	printOutcomes(in.RunDefault(statelog.State{}, ltl.Seq[statelog.Op, statelog.Patch]{
		ltl.Scoped[statelog.Op, statelog.Patch](ltl.Somewhere(double),
			statelog.Step(statelog.Put{N: 5}),
			statelog.Step(statelog.Add{N: 2}),
		),
	}))

	fmt.Println("\n=== everywhere(noop) over put 1; add 2; add 3 ===")
	printOutcomes(in.RunDefault(statelog.State{}, ltl.Seq[statelog.Op, statelog.Patch]{
		ltl.Scoped[statelog.Op, statelog.Patch](ltl.Everywhere(statelog.Noop("keep")),
			statelog.Step(statelog.Put{N: 1}),
			statelog.Step(statelog.Add{N: 2}),
			statelog.Step(statelog.Add{N: 3}),
		),
	}))

	fmt.Println("\n=== somewhere(double) spanning a quiet block ===")
	printOutcomes(in.RunDefault(statelog.State{}, ltl.Seq[statelog.Op, statelog.Patch]{
		ltl.Scoped[statelog.Op, statelog.Patch](ltl.Somewhere(double),
			statelog.Step(statelog.Put{N: 1}),
			statelog.Step(statelog.Quiet{Body: ltl.Seq[statelog.Op, statelog.Patch]{
				statelog.Step(statelog.Put{N: 2}),
				statelog.Step(statelog.Add{N: 3}),
			}}),
			statelog.Step(statelog.Add{N: 4}),
		),
	}))
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := config.Load(args[0])
	if err != nil {
		return err
	}
	seq, err := config.Build(sc)
	if err != nil {
		return err
	}
	in := newInterp()
	printOutcomes(in.RunDefault(statelog.State{Value: sc.Initial}, seq))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
