// Product search HTTP handler.
//
//   - GET /products  (tag-based catalog search, paginated)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modaselfie/go-mirror-backend/internal/services"
	"github.com/modaselfie/go-mirror-backend/internal/utils"
)

// collectTags gathers the requested tags from either repeated `tags`
// parameters or a single comma-delimited value (both forms are accepted).
func collectTags(c *gin.Context) []string {
	var out []string
	for _, raw := range c.QueryArray("tags") {
		out = append(out, utils.SplitCSV(raw)...)
	}
	return out
}

// SearchProducts godoc
// @ID          searchProducts
// @Summary     Search products by tags
// @Description Returns products whose tag set intersects the requested tags
// @Description (OR semantics), paginated in display order.
// @Tags        Products
// @Produce     json
//
// @Param       tags   query  string  true  "Comma-separated or repeated tag list"
// @Param       limit  query  int     false "Products per page"  minimum(1) maximum(50) default(10)
// @Param       page   query  int     false "Page number"        minimum(1) default(1)
//
// @Success     200  {object}  map[string]any  "Success envelope with products and pagination"
// @Failure     400  {object}  map[string]any  "Missing tags parameter"
// @Failure     404  {object}  map[string]any  "No product matches the tags"
// @Router      /products [get]
func (h *Handlers) SearchProducts(c *gin.Context) {
	tags := collectTags(c)
	limit := utils.AtoiDefault(c.Query("limit"), services.DefaultSearchLimit)
	page := utils.AtoiDefault(c.Query("page"), 1)

	res, err := h.products.SearchByTags(c.Request.Context(), tags, limit, page)
	if err != nil {
		forward(c, err)
		return
	}

	ok(c, http.StatusOK, res)
}
