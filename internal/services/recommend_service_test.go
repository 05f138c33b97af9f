package services

import (
	"context"
	"errors"
	"testing"
)

// fixedAnalyzer returns a constant tag set, or an error when set.
type fixedAnalyzer struct {
	tags []string
	err  error
}

func (f fixedAnalyzer) Analyze(context.Context, []byte) ([]string, error) {
	return f.tags, f.err
}

func TestAnalyzeAndRecommend_MergesTagsAndSuggests(t *testing.T) {
	db := newServiceDB(t)
	mustCreate(t, db, "Bot", []string{"soğuk", "yağmurlu"})
	mustCreate(t, db, "Sweatshirt", []string{"casual", "streetwear"})
	mustCreate(t, db, "Gömlek", []string{"formal"})

	svc := &RecommendationService{
		Analyzer: fixedAnalyzer{tags: []string{"casual", "Streetwear"}},
		Products: &ProductService{DB: db},
	}

	res, err := svc.AnalyzeAndRecommend(context.Background(), []byte("img"), []string{"soğuk", "casual"})
	if err != nil {
		t.Fatalf("AnalyzeAndRecommend: %v", err)
	}

	// Union without duplicates, style tags first.
	want := []string{"casual", "streetwear", "soğuk"}
	if len(res.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", res.Tags, want)
	}
	for i := range want {
		if res.Tags[i] != want[i] {
			t.Fatalf("tags = %v, want %v", res.Tags, want)
		}
	}

	if len(res.SuggestedProducts) != 2 {
		t.Fatalf("suggestions = %d, want 2 (Bot and Sweatshirt)", len(res.SuggestedProducts))
	}
}

func TestAnalyzeAndRecommend_NoMatch_EmptyListNotError(t *testing.T) {
	db := newServiceDB(t)
	mustCreate(t, db, "Gömlek", []string{"formal"})

	svc := &RecommendationService{
		Analyzer: fixedAnalyzer{tags: []string{"bohemian"}},
		Products: &ProductService{DB: db},
	}

	res, err := svc.AnalyzeAndRecommend(context.Background(), []byte("img"), nil)
	if err != nil {
		t.Fatalf("empty shelf must not be an error, got %v", err)
	}
	if res.SuggestedProducts == nil || len(res.SuggestedProducts) != 0 {
		t.Fatalf("want empty (non-nil) product list, got %#v", res.SuggestedProducts)
	}
	if len(res.Tags) != 1 || res.Tags[0] != "bohemian" {
		t.Fatalf("tags = %v", res.Tags)
	}
}

func TestAnalyzeAndRecommend_CapsSuggestions(t *testing.T) {
	db := newServiceDB(t)
	for i := 0; i < 10; i++ {
		mustCreate(t, db, "P", []string{"casual"})
	}

	svc := &RecommendationService{
		Analyzer: fixedAnalyzer{tags: []string{"casual"}},
		Products: &ProductService{DB: db},
	}

	res, err := svc.AnalyzeAndRecommend(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("AnalyzeAndRecommend: %v", err)
	}
	if len(res.SuggestedProducts) != maxSuggestions {
		t.Fatalf("suggestions = %d, want %d", len(res.SuggestedProducts), maxSuggestions)
	}
}

func TestAnalyzeAndRecommend_AnalyzerFailure_Wrapped500(t *testing.T) {
	svc := &RecommendationService{
		Analyzer: fixedAnalyzer{err: errors.New("camera feed corrupted")},
		Products: &ProductService{DB: newServiceDB(t)},
	}

	_, err := svc.AnalyzeAndRecommend(context.Background(), nil, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "Görüntü analizi başarısız oldu." {
		t.Fatalf("message = %q", err.Error())
	}
}
