package scoring

import (
	"context"
	"math/rand/v2"

	"credit-risk-engine/internal/domain/application"
)

type scoreRange struct{ lo, hi int }

// Inclusive score range per credit-history bucket.
var bucketRanges = map[string]scoreRange{
	application.HistoryExcellent: {750, 850},
	application.HistoryGood:      {700, 749},
	application.HistoryFair:      {650, 699},
	application.HistoryPoor:      {600, 649},
	application.HistoryBad:       {500, 599},
	application.HistoryNone:      {550, 650},
}

// defaultRange is used for any unrecognized credit-history value.
var defaultRange = scoreRange{600, 700}

// Heuristic draws a score uniformly from the credit-history bucket's range
// and derives the tier from the fixed thresholds. It is total over its input
// domain and never returns an error.
type Heuristic struct {
	intn func(n int) int
}

func NewHeuristic() *Heuristic { return &Heuristic{intn: rand.IntN} }

// NewHeuristicWithSource pins the randomness source, for tests.
func NewHeuristicWithSource(src rand.Source) *Heuristic {
	r := rand.New(src)
	return &Heuristic{intn: r.IntN}
}

func (h *Heuristic) Score(_ context.Context, in Input) (*Result, error) {
	rng, ok := bucketRanges[in.CreditHistory]
	if !ok {
		rng = defaultRange
	}
	score := rng.lo + h.intn(rng.hi-rng.lo+1)
	return &Result{
		Score: score,
		Tier:  application.TierForScore(score),
	}, nil
}
