// Weather HTTP handler.
//
//   - GET /weather  (current conditions + derived tags for the kiosk location)
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/modaselfie/go-mirror-backend/internal/apperr"
	"github.com/modaselfie/go-mirror-backend/internal/services"
)

// GetWeather godoc
// @ID          getWeather
// @Summary     Current weather for the kiosk location
// @Description Proxies the upstream weather provider and returns the rounded
// @Description conditions plus derived style tags. Falls back to the
// @Description configured default location when no query is given.
// @Tags        Weather
// @Produce     json
//
// @Param       lat   query  number  false "Latitude (requires lon)"
// @Param       lon   query  number  false "Longitude (requires lat)"
// @Param       city  query  string  false "City name (used when no coordinates)"
//
// @Success     200  {object}  map[string]any  "Success envelope with weather payload"
// @Failure     400  {object}  map[string]any  "Malformed coordinates"
// @Failure     503  {object}  map[string]any  "Upstream weather provider unavailable"
// @Router      /weather [get]
func (h *Handlers) GetWeather(c *gin.Context) {
	q := services.WeatherQuery{City: strings.TrimSpace(c.Query("city"))}

	latS, lonS := c.Query("lat"), c.Query("lon")
	if latS != "" || lonS != "" {
		lat, errLat := strconv.ParseFloat(latS, 64)
		lon, errLon := strconv.ParseFloat(lonS, 64)
		if errLat != nil || errLon != nil {
			forward(c, apperr.BadRequest("Geçersiz koordinat: lat ve lon birlikte ve sayısal olmalıdır."))
			return
		}
		q.Lat, q.Lon = &lat, &lon
	}

	w, err := h.weather.Current(c.Request.Context(), q)
	if err != nil {
		forward(c, err)
		return
	}

	ok(c, http.StatusOK, w)
}
