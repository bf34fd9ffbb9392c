// Package synth drives the iterative-deepening search for a
// minimum-adder realization of a constant: for increasing adder
// counts n, allocate a fresh attempt, emit its constraints, check it,
// and decode the first satisfying assignment into a Solution.
package synth

import (
	"time"

	"github.com/golang/glog"

	"github.com/nfiege/scm-synth/internal/backend"
	"github.com/nfiege/scm-synth/internal/circuit"
	"github.com/nfiege/scm-synth/internal/heuristic"
)

// Config controls one search run.
type Config struct {
	// MaxAdders bounds the search; 0 means unbounded (run until a
	// solution is found or a per-attempt timeout is hit).
	MaxAdders int
	// Timeout is not read by Run: every attempt's Check is bounded by
	// the timeout the backend was constructed with (e.g. gini.New).
	Timeout time.Duration
	// SeedWithHeuristic runs a bounded heuristic estimate before the
	// exact loop starts, purely to narrate an expected stopping point;
	// it never skips an n the exact loop would otherwise check, so a
	// proof of minimality is never short-circuited.
	SeedWithHeuristic bool
	HeuristicBudget   heuristic.EstimateConfig
}

// Outcome reports what happened to a search run.
type Outcome int

const (
	Found Outcome = iota
	TimedOut
	ExhaustedMaxAdders
)

// Result is the outcome of a search run.
type Result struct {
	Outcome  Outcome
	Solution *Solution
	// NumAdders is the node count the search stopped at: the winning
	// count on Found, the count that timed out on TimedOut.
	NumAdders int
}

// Run attempts increasing adder counts starting at 1 until a
// satisfying assignment is found, a per-attempt timeout occurs, or
// cfg.MaxAdders is exhausted.
func Run(cRaw uint64, be backend.Backend, cfg Config) (Result, error) {
	plan, err := circuit.NewPlan(cRaw)
	if err != nil {
		return Result{}, err
	}

	if plan.Trivial {
		glog.Infof("synth: C=%d is trivial, 0 adders needed", cRaw)
		return Result{
			Outcome:   Found,
			NumAdders: 0,
			Solution:  trivialSolution(plan),
		}, nil
	}

	glog.Infof("synth: searching for C=%d (core=%d, word_size=%d, max_shift=%d)",
		cRaw, plan.C, plan.WordSize, plan.MaxShift)

	if cfg.SeedWithHeuristic {
		est := heuristic.Estimate(plan, cfg.HeuristicBudget)
		if est.Solved {
			glog.Infof("synth: heuristic upper bound n_hi=%d, exact search still starts at n=1", est.NumAdders)
		} else {
			glog.Infof("synth: heuristic found no candidate within its budget (best cost %d)", est.BestCost)
		}
	}

	for n := 1; cfg.MaxAdders <= 0 || n <= cfg.MaxAdders; n++ {
		start := time.Now()

		alloc := circuit.NewAllocator(be)
		tables := alloc.Allocate(n, plan.WordSize, plan.ShiftWord)

		emitter := circuit.NewEmitter(be, tables)
		emitter.Emit(plan.C, plan.MaxShift)

		glog.Infof("synth: attempt n=%d, %d variables", n, alloc.NumVariables())

		sat, timedOut := be.Check()
		elapsed := time.Since(start)

		if timedOut {
			glog.Infof("synth: attempt n=%d timed out after %s", n, elapsed)
			return Result{Outcome: TimedOut, NumAdders: n}, nil
		}
		if sat {
			glog.Infof("synth: found solution for n=%d after %s", n, elapsed)
			sol := decode(plan, tables, be)
			return Result{Outcome: Found, NumAdders: n, Solution: &sol}, nil
		}
		glog.Infof("synth: n=%d infeasible after %s, deepening", n, elapsed)
	}

	return Result{Outcome: ExhaustedMaxAdders, NumAdders: cfg.MaxAdders}, nil
}

func trivialSolution(plan circuit.Plan) *Solution {
	return &Solution{
		Plan:         plan,
		NumAdders:    0,
		OutputValues: []uint64{1},
	}
}
