package markov

import (
	"math/rand"
	"sync"
	"time"
)

// NewSource returns a seeded Source that is safe for use from multiple
// goroutines. It serializes draws on a mutex; chains under heavy parallel
// generation can instead inject one Source per worker via WithRandom.
func NewSource(seed int64) Source {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

func randomSeed() int64 {
	return time.Now().UnixNano()
}
