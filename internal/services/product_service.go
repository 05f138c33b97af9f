package services

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/modaselfie/go-mirror-backend/internal/apperr"
	"github.com/modaselfie/go-mirror-backend/internal/domain"
	"github.com/modaselfie/go-mirror-backend/internal/repo"
	"github.com/modaselfie/go-mirror-backend/internal/utils"
)

// Pagination bounds for tag search.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// Pagination describes the slice of the match set a search returned.
type Pagination struct {
	CurrentPage   int `json:"currentPage"`
	TotalPages    int `json:"totalPages"`
	TotalProducts int `json:"totalProducts"`
}

// SearchResult is one page of tag-matched products.
type SearchResult struct {
	Products   []domain.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

// ProductService answers tag-based catalog searches.
//
// Matching is OR-intersection: a product qualifies when its tag set shares
// at least one tag with the request. The full match set is paginated in
// memory; the catalog is kiosk-sized and read-mostly.
type ProductService struct {
	DB *gorm.DB
}

// SearchByTags returns the requested page of products matching any of the
// given tags.
//
// Errors (all operational):
//   - 400 when no tag survives normalization
//   - 404 when the intersection is empty, naming the requested tags
func (s *ProductService) SearchByTags(ctx context.Context, tags []string, limit, page int) (*SearchResult, error) {
	tr := otel.Tracer("services/ProductService")
	ctx, span := tr.Start(ctx, "SearchByTags",
		trace.WithAttributes(
			attribute.StringSlice("search.tags", tags),
			attribute.Int("search.limit", limit),
			attribute.Int("search.page", page),
		),
	)
	defer span.End()

	wanted := utils.NormalizeTags(tags)
	if len(wanted) == 0 {
		return nil, apperr.BadRequest("Tag parametresi gereklidir.")
	}

	if limit == 0 {
		limit = DefaultSearchLimit
	}
	limit = utils.ClampInt(limit, 1, MaxSearchLimit)
	if page < 1 {
		page = 1
	}

	catalog, err := repo.ListProducts(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	matches := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		if p.HasAnyTag(wanted) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		return nil, apperr.NotFound(fmt.Sprintf("%q etiketi için ürün bulunamadı.", strings.Join(wanted, ", ")))
	}

	total := len(matches)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &SearchResult{
		Products: matches[start:end],
		Pagination: Pagination{
			CurrentPage:   page,
			TotalPages:    totalPages,
			TotalProducts: total,
		},
	}, nil
}
