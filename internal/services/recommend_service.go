package services

import (
	"context"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/modaselfie/go-mirror-backend/internal/apperr"
	"github.com/modaselfie/go-mirror-backend/internal/domain"
	"github.com/modaselfie/go-mirror-backend/internal/utils"
)

// maxSuggestions caps the product list returned from a photo analysis; the
// mirror UI shows at most six cards.
const maxSuggestions = 6

// Analysis is the outcome of one photo analysis: the merged tag set and the
// products suggested from it.
type Analysis struct {
	Tags              []string         `json:"tags"`
	SuggestedProducts []domain.Product `json:"suggestedProducts"`
}

// RecommendationService runs the analysis flow: derive style tags from the
// photo, merge them with any weather-derived tags, and look up matching
// products.
type RecommendationService struct {
	Analyzer StyleAnalyzer
	Products *ProductService
}

// AnalyzeAndRecommend produces style tags for the image, unions them with
// weatherTags (duplicates removed), and returns up to maxSuggestions
// matching products. A tag set that matches nothing yields an empty product
// list, not an error; an empty shelf is a valid kiosk outcome.
func (s *RecommendationService) AnalyzeAndRecommend(ctx context.Context, image []byte, weatherTags []string) (*Analysis, error) {
	tr := otel.Tracer("services/RecommendationService")
	ctx, span := tr.Start(ctx, "AnalyzeAndRecommend",
		trace.WithAttributes(
			attribute.Int("image.bytes", len(image)),
			attribute.StringSlice("weather.tags", weatherTags),
		),
	)
	defer span.End()

	styleTags, err := s.Analyzer.Analyze(ctx, image)
	if err != nil {
		return nil, apperr.Wrap("Görüntü analizi başarısız oldu.", http.StatusInternalServerError, err)
	}

	merged := utils.MergeTags(styleTags, weatherTags)

	res, err := s.Products.SearchByTags(ctx, merged, maxSuggestions, 1)
	if err != nil {
		var ae *apperr.AppError
		if errors.As(err, &ae) && ae.Code == http.StatusNotFound {
			return &Analysis{Tags: merged, SuggestedProducts: []domain.Product{}}, nil
		}
		return nil, err
	}

	return &Analysis{Tags: merged, SuggestedProducts: res.Products}, nil
}
