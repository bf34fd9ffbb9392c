package heuristic

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	"github.com/nfiege/scm-synth/internal/circuit"
)

// EstimateConfig controls a parallel estimation run.
type EstimateConfig struct {
	NumChains   int           // defaults to runtime.NumCPU()
	Iterations  int           // MCMC steps per chain
	StartNodes  int           // initial candidate node count per chain
	MaxNodes    int           // mutator never grows a candidate past this
	Temperature float64
	Decay       float64
	Seed        uint64
	Verbose     bool
}

// EstimateResult is the best candidate found across every chain.
type EstimateResult struct {
	NumAdders int
	Solved    bool
	Best      Candidate
	BestCost  int
}

// Estimate runs cfg.NumChains independent annealing chains in
// parallel and returns the best (fewest-node, exactly-solving when
// possible) candidate any chain produced. It never proves a lower
// bound; a Solved result only upper-bounds the adder count an exact
// search would need to at least try.
func Estimate(plan circuit.Plan, cfg EstimateConfig) EstimateResult {
	if cfg.NumChains <= 0 {
		cfg.NumChains = runtime.NumCPU()
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 20000
	}
	if cfg.Decay <= 0 || cfg.Decay >= 1 {
		cfg.Decay = 0.9999
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 50.0
	}
	if cfg.StartNodes < 1 {
		cfg.StartNodes = 1
	}
	if cfg.MaxNodes < cfg.StartNodes {
		cfg.MaxNodes = cfg.StartNodes + 16
	}

	var completedSteps atomic.Int64
	totalSteps := int64(cfg.NumChains) * int64(cfg.Iterations)

	done := make(chan struct{})
	startTime := time.Now()
	if cfg.Verbose {
		go func() {
			ticker := time.NewTicker(5 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					steps := completedSteps.Load()
					elapsed := time.Since(startTime)
					pct := float64(steps) / float64(totalSteps) * 100
					glog.Infof("heuristic: %d/%d steps (%.1f%%) elapsed %s",
						steps, totalSteps, pct, elapsed.Round(time.Second))
				}
			}
		}()
	}

	var mu sync.Mutex
	var best Candidate
	bestCost := -1

	var wg sync.WaitGroup
	for c := 0; c < cfg.NumChains; c++ {
		wg.Add(1)
		go func(chainIdx int) {
			defer wg.Done()
			seed := cfg.Seed + uint64(chainIdx)*0x9e3779b97f4a7c15
			chain := NewChain(plan, cfg.StartNodes, cfg.Temperature, seed, cfg.MaxNodes)

			for step := 0; step < cfg.Iterations; step++ {
				chain.Step(cfg.Decay)
				if step%256 == 0 {
					completedSteps.Add(256)
				}
				if chain.Solved() {
					break
				}
			}

			chainBest, chainCost := chain.Best()
			mu.Lock()
			if bestCost < 0 || betterCandidate(chainCost, len(chainBest), bestCost, len(best)) {
				best = chainBest
				bestCost = chainCost
			}
			mu.Unlock()
		}(c)
	}
	wg.Wait()
	close(done)

	return EstimateResult{
		NumAdders: len(best) - 1,
		Solved:    bestCost == len(best)-1,
		Best:      best,
		BestCost:  bestCost,
	}
}

// betterCandidate prefers a lower cost, and among equal costs a
// smaller node count.
func betterCandidate(costA, lenA, costB, lenB int) bool {
	if costA != costB {
		return costA < costB
	}
	return lenA < lenB
}
