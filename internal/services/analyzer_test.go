package services

import (
	"context"
	"math/rand/v2"
	"testing"
)

func inVocabulary(tag string) bool {
	for _, v := range styleVocabulary {
		if v == tag {
			return true
		}
	}
	return false
}

func TestRandomAnalyzer_TagCountAndUniqueness(t *testing.T) {
	a := NewRandomAnalyzerWithSource(rand.NewPCG(1, 2))

	for i := 0; i < 200; i++ {
		tags, err := a.Analyze(context.Background(), []byte("jpeg bytes"))
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if len(tags) < 3 || len(tags) > 5 {
			t.Fatalf("got %d tags, want 3..5", len(tags))
		}
		seen := make(map[string]struct{}, len(tags))
		for _, tag := range tags {
			if !inVocabulary(tag) {
				t.Fatalf("tag %q not in vocabulary", tag)
			}
			if _, dup := seen[tag]; dup {
				t.Fatalf("duplicate tag %q in %v", tag, tags)
			}
			seen[tag] = struct{}{}
		}
	}
}

func TestRandomAnalyzer_DeterministicWithSeed(t *testing.T) {
	a := NewRandomAnalyzerWithSource(rand.NewPCG(7, 7))
	b := NewRandomAnalyzerWithSource(rand.NewPCG(7, 7))

	for i := 0; i < 20; i++ {
		ta, _ := a.Analyze(context.Background(), nil)
		tb, _ := b.Analyze(context.Background(), nil)
		if len(ta) != len(tb) {
			t.Fatalf("run %d: lengths differ: %v vs %v", i, ta, tb)
		}
		for j := range ta {
			if ta[j] != tb[j] {
				t.Fatalf("run %d: sequences diverge: %v vs %v", i, ta, tb)
			}
		}
	}
}

func TestRandomAnalyzer_GlobalSourceWorks(t *testing.T) {
	a := NewRandomAnalyzer()
	tags, err := a.Analyze(context.Background(), nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(tags) < 3 || len(tags) > 5 {
		t.Fatalf("got %d tags, want 3..5", len(tags))
	}
}

func TestStyleVocabulary_ReturnsCopy(t *testing.T) {
	v := StyleVocabulary()
	if len(v) != len(styleVocabulary) {
		t.Fatalf("len = %d, want %d", len(v), len(styleVocabulary))
	}
	v[0] = "mutated"
	if styleVocabulary[0] == "mutated" {
		t.Fatalf("StyleVocabulary must not expose the backing array")
	}
}
