// Handler wiring and service contracts.
//
// Handlers are transport-thin: they validate and normalize inputs, call
// application services, and translate results into the success envelope.
// Every failure is forwarded to the error middleware.
package handlers

import (
	"context"

	"github.com/modaselfie/go-mirror-backend/internal/domain"
	"github.com/modaselfie/go-mirror-backend/internal/services"
)

// WeatherProvider serves current weather for a location, including the
// derived tag set. Implementations must honor the context for cancellation.
type WeatherProvider interface {
	Current(ctx context.Context, q services.WeatherQuery) (*domain.Weather, error)
}

// ProductSearcher answers tag-based catalog searches with in-memory
// pagination.
type ProductSearcher interface {
	SearchByTags(ctx context.Context, tags []string, limit, page int) (*services.SearchResult, error)
}

// Recommender runs the photo-analysis flow and returns tags plus matching
// products.
type Recommender interface {
	AnalyzeAndRecommend(ctx context.Context, image []byte, weatherTags []string) (*services.Analysis, error)
}

// Handlers groups the HTTP endpoints of the mirror API. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	weather   WeatherProvider
	products  ProductSearcher
	recommend Recommender

	// maxUploadBytes bounds the accepted image size for /analyze.
	maxUploadBytes int64
}

// New constructs a Handlers instance bound to the given services.
func New(weather WeatherProvider, products ProductSearcher, recommend Recommender, maxUploadBytes int64) *Handlers {
	return &Handlers{
		weather:        weather,
		products:       products,
		recommend:      recommend,
		maxUploadBytes: maxUploadBytes,
	}
}
