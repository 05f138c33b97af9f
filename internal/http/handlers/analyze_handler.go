// Photo analysis HTTP handler.
//
//   - POST /analyze  (multipart image + optional weather tags → style tags
//     and suggested products)
//
// Upload constraints are enforced here at the edge: the part must be an
// image MIME type and within the configured size cap. The analysis itself
// sits behind the services.StyleAnalyzer interface, so the simulated
// analyzer can be replaced by a real model without touching this handler.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/modaselfie/go-mirror-backend/internal/apperr"
)

// AnalyzePhoto godoc
// @ID          analyzePhoto
// @Summary     Analyze a photo and suggest products
// @Description Derives style tags from the uploaded photo, merges them with
// @Description the optional weather tags, and returns up to six matching
// @Description products.
// @Tags        Analysis
// @Accept      multipart/form-data
// @Produce     json
//
// @Param       image        formData  file    true  "Photo to analyze (image/*)"
// @Param       weatherTags  formData  string  false "JSON array of weather-derived tags"  example(["soğuk","yağmurlu"])
//
// @Success     200  {object}  map[string]any  "Success envelope with tags and suggestedProducts"
// @Failure     400  {object}  map[string]any  "Missing/invalid image or weatherTags"
// @Failure     500  {object}  map[string]any  "Analysis failure"
// @Router      /analyze [post]
func (h *Handlers) AnalyzePhoto(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		// A body over the global MaxBytesReader cap fails the multipart
		// parse itself, before any part is visible.
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			forward(c, h.errTooLarge())
			return
		}
		forward(c, apperr.BadRequest("Resim dosyası gereklidir."))
		return
	}

	if ct := fh.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		forward(c, apperr.BadRequest("Lütfen sadece resim dosyası yükleyin."))
		return
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		forward(c, h.errTooLarge())
		return
	}

	var weatherTags []string
	if raw := strings.TrimSpace(c.PostForm("weatherTags")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &weatherTags); err != nil {
			forward(c, apperr.BadRequest("weatherTags geçerli bir JSON dizisi olmalıdır."))
			return
		}
	}

	f, err := fh.Open()
	if err != nil {
		forward(c, apperr.Wrap("Resim dosyası okunamadı.", http.StatusBadRequest, err))
		return
	}
	defer f.Close()

	image, err := io.ReadAll(f)
	if err != nil {
		forward(c, apperr.Wrap("Resim dosyası okunamadı.", http.StatusBadRequest, err))
		return
	}

	analysis, err := h.recommend.AnalyzeAndRecommend(c.Request.Context(), image, weatherTags)
	if err != nil {
		forward(c, err)
		return
	}

	ok(c, http.StatusOK, analysis)
}

// errTooLarge is the operational 400 for uploads over the configured cap.
func (h *Handlers) errTooLarge() *apperr.AppError {
	return apperr.BadRequest(fmt.Sprintf("Resim dosyası çok büyük: en fazla %d MB.", h.maxUploadBytes>>20))
}
