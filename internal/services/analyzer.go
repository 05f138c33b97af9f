package services

import (
	"context"
	"math/rand/v2"
	"sync"
)

// StyleAnalyzer derives style tags from a captured photo. The production
// variant is currently RandomAnalyzer, a deliberate stand-in for a real
// vision model; a model-backed implementation can be swapped in without
// touching the handler contract.
type StyleAnalyzer interface {
	Analyze(ctx context.Context, image []byte) ([]string, error)
}

// styleVocabulary is the fixed set of style descriptors the simulated
// analyzer draws from. It intentionally overlaps the seeded catalog tags.
var styleVocabulary = []string{
	"casual", "formal", "sporty", "elegant", "vintage",
	"modern", "minimal", "streetwear", "classic", "bohemian",
}

// RandomAnalyzer picks 3–5 unique tags from styleVocabulary without
// replacement, ignoring the image content. Safe for concurrent use.
type RandomAnalyzer struct {
	mu  sync.Mutex
	rng *rand.Rand // nil means the shared global source
}

// NewRandomAnalyzer returns an analyzer backed by the global random source.
func NewRandomAnalyzer() *RandomAnalyzer { return &RandomAnalyzer{} }

// NewRandomAnalyzerWithSource returns a deterministic analyzer for tests.
func NewRandomAnalyzerWithSource(src rand.Source) *RandomAnalyzer {
	return &RandomAnalyzer{rng: rand.New(src)}
}

// Analyze returns 3–5 unique style tags. The image bytes are accepted but
// unused; validation (presence, MIME, size) happens at the HTTP edge.
func (a *RandomAnalyzer) Analyze(_ context.Context, _ []byte) ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := 3 + a.intN(3) // 3, 4, or 5
	perm := a.perm(len(styleVocabulary))

	tags := make([]string, 0, n)
	for _, idx := range perm[:n] {
		tags = append(tags, styleVocabulary[idx])
	}
	return tags, nil
}

func (a *RandomAnalyzer) intN(n int) int {
	if a.rng != nil {
		return a.rng.IntN(n)
	}
	return rand.IntN(n)
}

func (a *RandomAnalyzer) perm(n int) []int {
	if a.rng != nil {
		return a.rng.Perm(n)
	}
	return rand.Perm(n)
}

// StyleVocabulary exposes a copy of the fixed tag vocabulary (for tests and
// catalog tooling).
func StyleVocabulary() []string {
	out := make([]string, len(styleVocabulary))
	copy(out, styleVocabulary)
	return out
}
