package selection

import (
	"math/rand"
	"sync"
	"time"
)

// Sampler draws candidates without replacement, weighting each by its
// priority. It is safe for concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler creates a sampler over rng. A nil rng is seeded from the clock.
func NewSampler(rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sampler{rng: rng}
}

// Sample returns min(k, len(cands)) distinct candidates. When every remaining
// weight is zero the rest are drawn uniformly.
func (s *Sampler) Sample(cands []Candidate, k int) []Candidate {
	if k <= 0 || len(cands) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := make([]Candidate, len(cands))
	copy(remaining, cands)

	if len(remaining) <= k {
		s.rng.Shuffle(len(remaining), func(i, j int) {
			remaining[i], remaining[j] = remaining[j], remaining[i]
		})
		return remaining
	}

	selected := make([]Candidate, 0, k)
	for len(selected) < k {
		i := s.draw(remaining)
		selected = append(selected, remaining[i])
		remaining[i] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}
	return selected
}

// draw picks one index with probability proportional to its weight.
func (s *Sampler) draw(cands []Candidate) int {
	total := 0.0
	for _, c := range cands {
		total += weight(c)
	}
	if total <= 0 {
		return s.rng.Intn(len(cands))
	}

	r := s.rng.Float64() * total
	for i, c := range cands {
		r -= weight(c)
		if r < 0 {
			return i
		}
	}
	// Rounding left r at or just above zero; take the last weighted entry.
	for i := len(cands) - 1; i >= 0; i-- {
		if weight(cands[i]) > 0 {
			return i
		}
	}
	return len(cands) - 1
}

func weight(c Candidate) float64 {
	return max(c.Priority, 0)
}
