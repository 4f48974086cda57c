// Package selection applies the multiplicity, requiredness, and limit
// policies to a candidate file set to produce the final working set.
package selection

import (
	"fmt"
	"math/rand"
	"time"

	"shuttle/internal/models"
)

// Engine resolves candidate sets against the configured policies. The
// random source is injected so pick-one and limit truncation are
// deterministic under test; it is the only nondeterminism in a run.
type Engine struct {
	rng *rand.Rand
}

// NewEngine builds an engine around rng. A nil rng gets a time-seeded
// source.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// Select resolves candidates to the files that will actually be
// transferred. When no randomness applies, discovery order is preserved.
func (e *Engine) Select(candidates []string, multiplicity models.MultiplicityPolicy, requiredness models.RequirednessPolicy, limit models.Limit) ([]string, error) {
	selected := candidates

	if len(selected) > 1 {
		switch multiplicity {
		case models.SingleOnly:
			return nil, fmt.Errorf("%w: %d files matched, expected one: %v", models.ErrMultipleMatches, len(selected), selected)
		case models.RandomOne:
			selected = []string{selected[e.rng.Intn(len(selected))]}
		}
	}

	if limit.Bounded && len(selected) > limit.N {
		selected = e.sample(selected, limit.N)
	}

	if len(selected) == 0 && requiredness == models.Required {
		return nil, models.ErrNoFilesFound
	}

	return selected, nil
}

// sample draws n entries uniformly without replacement, keeping the
// original discovery order of the survivors.
func (e *Engine) sample(candidates []string, n int) []string {
	keep := make(map[int]bool, n)
	for _, i := range e.rng.Perm(len(candidates))[:n] {
		keep[i] = true
	}

	out := make([]string, 0, n)
	for i, name := range candidates {
		if keep[i] {
			out = append(out, name)
		}
	}
	return out
}
