package synth

import (
	"testing"

	ginibackend "github.com/nfiege/scm-synth/internal/backend/gini"
	"github.com/nfiege/scm-synth/internal/heuristic"
	"github.com/nfiege/scm-synth/internal/verify"
)

func TestRunTrivial(t *testing.T) {
	for _, c := range []uint64{1, 2, 4, 8, 1024} {
		res, err := Run(c, nil, Config{})
		if err != nil {
			t.Fatalf("Run(%d): %v", c, err)
		}
		if res.Outcome != Found {
			t.Fatalf("Run(%d): outcome = %v, want Found", c, res.Outcome)
		}
		if res.NumAdders != 0 {
			t.Errorf("Run(%d): NumAdders = %d, want 0", c, res.NumAdders)
		}
	}
}

func TestRunZeroIsRejected(t *testing.T) {
	if _, err := Run(0, nil, Config{}); err == nil {
		t.Fatal("Run(0): expected error")
	}
}

func TestRunFindsVerifiedSolutions(t *testing.T) {
	for _, c := range []uint64{3, 5, 7, 9, 11, 23, 45} {
		be := ginibackend.New(0)
		res, err := Run(c, be, Config{MaxAdders: 6})
		if err != nil {
			t.Fatalf("Run(%d): %v", c, err)
		}
		if res.Outcome != Found {
			t.Fatalf("Run(%d): outcome = %v, want Found within 6 adders", c, res.Outcome)
		}
		if err := verify.Solution(res.Solution); err != nil {
			t.Errorf("Run(%d): solution failed independent verification: %v", c, err)
		}
		if res.Solution.OutputValues[res.NumAdders] != c {
			t.Errorf("Run(%d): realized core constant = %d, want %d", c, res.Solution.OutputValues[res.NumAdders], c)
		}
	}
}

// TestRunSeedWithHeuristicDoesNotChangeOutcome checks that seeding is
// purely a narration aid: the exact loop still starts at n=1 and finds
// the same minimal n whether or not the heuristic ran first.
func TestRunSeedWithHeuristicDoesNotChangeOutcome(t *testing.T) {
	const c = uint64(7)

	plain, err := Run(c, ginibackend.New(0), Config{MaxAdders: 6})
	if err != nil {
		t.Fatalf("Run(%d): %v", c, err)
	}

	seeded, err := Run(c, ginibackend.New(0), Config{
		MaxAdders:         6,
		SeedWithHeuristic: true,
		HeuristicBudget: heuristic.EstimateConfig{
			NumChains:  2,
			Iterations: 1000,
			StartNodes: 1,
			MaxNodes:   4,
			Seed:       1,
		},
	})
	if err != nil {
		t.Fatalf("Run(%d) with seeding: %v", c, err)
	}

	if seeded.Outcome != plain.Outcome || seeded.NumAdders != plain.NumAdders {
		t.Fatalf("seeding changed the outcome: plain=%v/%d seeded=%v/%d",
			plain.Outcome, plain.NumAdders, seeded.Outcome, seeded.NumAdders)
	}
}
