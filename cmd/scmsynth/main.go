package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/nfiege/scm-synth/internal/backend"
	beBruteforce "github.com/nfiege/scm-synth/internal/backend/bruteforce"
	beGini "github.com/nfiege/scm-synth/internal/backend/gini"
	"github.com/nfiege/scm-synth/internal/circuit"
	"github.com/nfiege/scm-synth/internal/heuristic"
	"github.com/nfiege/scm-synth/internal/result"
	"github.com/nfiege/scm-synth/internal/synth"
	"github.com/nfiege/scm-synth/internal/verify"
)

func main() {
	flag.Parse() // parses glog's -v/-logtostderr/etc flags
	defer glog.Flush()

	rootCmd := &cobra.Command{
		Use:   "scmsynth",
		Short: "Minimum-adder single-constant-multiplication circuit synthesizer",
	}

	rootCmd.AddCommand(newSolveCmd())
	rootCmd.AddCommand(newEstimateCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newVerifyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newBackend(name string, timeout time.Duration) (backend.Backend, error) {
	switch name {
	case "", "gini":
		return beGini.New(timeout), nil
	case "bruteforce":
		return beBruteforce.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

func newSolveCmd() *cobra.Command {
	var timeout time.Duration
	var maxAdders int
	var backendName string
	var output string
	var seedWithHeuristic bool
	var heuristicChains int
	var heuristicIterations int
	var heuristicMaxNodes int
	var quiet bool

	cmd := &cobra.Command{
		Use:   "solve <C>",
		Short: "Search for a minimum-adder realization of C",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid constant %q: %w", args[0], err)
			}

			be, err := newBackend(backendName, timeout)
			if err != nil {
				return err
			}

			res, err := synth.Run(c, be, synth.Config{
				MaxAdders:         maxAdders,
				Timeout:           timeout,
				SeedWithHeuristic: seedWithHeuristic,
				HeuristicBudget: heuristic.EstimateConfig{
					NumChains:  heuristicChains,
					Iterations: heuristicIterations,
					StartNodes: 1,
					MaxNodes:   heuristicMaxNodes,
				},
			})
			if err != nil {
				return err
			}

			switch res.Outcome {
			case synth.TimedOut:
				return fmt.Errorf("timed out at %d adders", res.NumAdders)
			case synth.ExhaustedMaxAdders:
				return fmt.Errorf("no solution found within %d adders", maxAdders)
			}

			if err := verify.Solution(res.Solution); err != nil {
				return fmt.Errorf("solver produced an invalid solution: %w", err)
			}

			if !quiet {
				fmt.Printf("C = %d: %d adders (word size %d)\n", c, res.NumAdders, res.Solution.Plan.WordSize)
				for i := 1; i <= res.NumAdders; i++ {
					n := res.Solution.Nodes[i]
					fmt.Printf("  node #%d = %d  left=%d right=%d shift=%d negate_select=%d subtract=%d\n",
						i, res.Solution.OutputValues[i], n.InputSelect[0], n.InputSelect[1], n.ShiftValue, n.NegateSelect, n.Subtract)
				}
			}

			if output != "" {
				return writeJSON(output, res.Solution)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-attempt solver timeout (0 = none)")
	cmd.Flags().IntVar(&maxAdders, "max-adders", 0, "stop after this many adders (0 = unbounded)")
	cmd.Flags().StringVar(&backendName, "backend", "gini", "solver backend: gini or bruteforce")
	cmd.Flags().StringVar(&output, "output", "", "write the decoded solution as JSON to this file")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress the per-node solution printout")
	cmd.Flags().BoolVar(&seedWithHeuristic, "seed-with-heuristic", false, "run a bounded heuristic estimate first to narrate an expected stopping point")
	cmd.Flags().IntVar(&heuristicChains, "seed-chains", runtime.NumCPU(), "parallel annealing chains for the heuristic seed")
	cmd.Flags().IntVar(&heuristicIterations, "seed-iterations", 20000, "MCMC steps per chain for the heuristic seed")
	cmd.Flags().IntVar(&heuristicMaxNodes, "seed-max-nodes", 24, "largest candidate the heuristic seed's mutator may grow to")
	return cmd
}

func newEstimateCmd() *cobra.Command {
	var numChains int
	var iterations int
	var decay float64
	var temperature float64
	var maxNodes int

	cmd := &cobra.Command{
		Use:   "estimate <C>",
		Short: "Upper-bound the adder count for C with a simulated-annealing search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid constant %q: %w", args[0], err)
			}
			plan, err := circuit.NewPlan(c)
			if err != nil {
				return err
			}
			if plan.Trivial {
				fmt.Printf("C = %d: 0 adders (trivial)\n", c)
				return nil
			}

			res := heuristic.Estimate(plan, heuristic.EstimateConfig{
				NumChains:   numChains,
				Iterations:  iterations,
				Decay:       decay,
				Temperature: temperature,
				MaxNodes:    maxNodes,
				Verbose:     true,
			})

			if res.Solved {
				fmt.Printf("C = %d: found a %d-adder candidate (upper bound, not proven minimal)\n", c, res.NumAdders)
			} else {
				fmt.Printf("C = %d: best candidate after search realizes a different value, cost=%d\n", c, res.BestCost)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&numChains, "chains", runtime.NumCPU(), "parallel annealing chains")
	cmd.Flags().IntVar(&iterations, "iterations", 20000, "MCMC steps per chain")
	cmd.Flags().Float64Var(&decay, "decay", 0.9999, "temperature decay per step")
	cmd.Flags().Float64Var(&temperature, "temperature", 50.0, "starting temperature")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 24, "largest candidate the mutator may grow to")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var timeout time.Duration
	var backendName string
	var output string

	cmd := &cobra.Command{
		Use:   "batch <C...>",
		Short: "Solve several independent constants concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := result.NewTable()
			errCh := make(chan error, len(args))
			sem := make(chan struct{}, runtime.NumCPU())

			var wg sync.WaitGroup
			for _, a := range args {
				a := a
				wg.Add(1)
				go func() {
					defer wg.Done()
					sem <- struct{}{}
					defer func() { <-sem }()

					c, err := strconv.ParseUint(a, 10, 64)
					if err != nil {
						errCh <- fmt.Errorf("invalid constant %q: %w", a, err)
						return
					}
					be, err := newBackend(backendName, timeout)
					if err != nil {
						errCh <- err
						return
					}
					res, err := synth.Run(c, be, synth.Config{Timeout: timeout})
					if err != nil {
						errCh <- err
						return
					}
					table.Add(result.Entry{ConstantRaw: c, Outcome: res.Outcome, Solution: res.Solution})
				}()
			}
			wg.Wait()
			close(errCh)
			for err := range errCh {
				fmt.Fprintln(os.Stderr, err)
			}

			for _, e := range table.Entries() {
				if e.Solution != nil {
					fmt.Printf("C = %d: %d adders\n", e.ConstantRaw, e.Solution.NumAdders)
				} else {
					fmt.Printf("C = %d: %s\n", e.ConstantRaw, outcomeString(e.Outcome))
				}
			}

			if output != "" {
				return writeJSON(output, table)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-attempt solver timeout (0 = none)")
	cmd.Flags().StringVar(&backendName, "backend", "gini", "solver backend: gini or bruteforce")
	cmd.Flags().StringVar(&output, "output", "", "write the batch table as JSON to this file")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <solution.json>",
		Short: "Re-run the independent verifier on a decoded solution file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var sol synth.Solution
			if err := json.Unmarshal(data, &sol); err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}
			if err := verify.Solution(&sol); err != nil {
				return err
			}
			fmt.Printf("solution for C = %d (%d adders) verified\n", sol.Plan.Raw(), sol.NumAdders)
			return nil
		},
	}
	return cmd
}

func outcomeString(o synth.Outcome) string {
	switch o {
	case synth.Found:
		return "found"
	case synth.TimedOut:
		return "timed out"
	case synth.ExhaustedMaxAdders:
		return "exhausted max-adders"
	default:
		return "unknown"
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
