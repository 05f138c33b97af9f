// Package services implements the application logic of the fashion mirror:
// the weather proxy, the (simulated) style analysis, tag-based product
// search, and the recommendation flow that composes them.
//
// Services construct operational apperr.AppError values at the point a
// failure is detected; handlers forward them unchanged to the HTTP error
// middleware. Observability: public methods are OpenTelemetry-instrumented.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/modaselfie/go-mirror-backend/internal/apperr"
	"github.com/modaselfie/go-mirror-backend/internal/config"
	"github.com/modaselfie/go-mirror-backend/internal/domain"
	"github.com/modaselfie/go-mirror-backend/internal/httpclient"
)

// Weather tag vocabulary, matching the catalog's Turkish labels.
const (
	tagCold    = "soğuk"
	tagWinter  = "kış"
	tagMild    = "ılıman"
	tagSpring  = "bahar"
	tagWarm    = "sıcak"
	tagSummer  = "yaz"
	tagVeryHot = "çok-sıcak"

	tagRainy  = "yağmurlu"
	tagSnowy  = "karlı"
	tagSunny  = "güneşli"
	tagCloudy = "bulutlu"
)

// WeatherQuery selects the location for a lookup. When Lat/Lon are set they
// win; otherwise City; otherwise the configured default coordinates.
type WeatherQuery struct {
	City string
	Lat  *float64
	Lon  *float64
}

// WeatherService proxies the upstream weather provider and reshapes its
// payload into the kiosk's minimal form, including the derived tag set.
type WeatherService struct {
	Client *httpclient.Client
	Cfg    config.WeatherConfig
}

// openWeatherPayload mirrors the subset of the provider response we consume.
type openWeatherPayload struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// Current fetches the weather for the queried location. Any failure of the
// upstream call (after the client's retries) surfaces as an operational
// 503 "Hava durumu bilgisi alınamadı".
func (s *WeatherService) Current(ctx context.Context, q WeatherQuery) (*domain.Weather, error) {
	tr := otel.Tracer("services/WeatherService")
	ctx, span := tr.Start(ctx, "Current",
		trace.WithAttributes(attribute.String("weather.city", q.City)),
	)
	defer span.End()

	body, err := s.Client.Get(ctx, s.requestURL(q))
	if err != nil {
		return nil, apperr.Unavailable("Hava durumu bilgisi alınamadı", err)
	}

	var payload openWeatherPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperr.Unavailable("Hava durumu bilgisi alınamadı", err)
	}
	if len(payload.Weather) == 0 {
		return nil, apperr.Unavailable("Hava durumu bilgisi alınamadı", errors.New("empty weather array in upstream payload"))
	}

	w := &domain.Weather{
		Temperature: int(math.Round(payload.Main.Temp)),
		FeelsLike:   int(math.Round(payload.Main.FeelsLike)),
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
		Description: payload.Weather[0].Description,
		Icon:        payload.Weather[0].Icon,
		Location:    payload.Name,
		Tags:        DeriveWeatherTags(payload.Main.Temp, payload.Weather[0].Main),
	}
	return w, nil
}

// requestURL builds the provider URL for the query, falling back to the
// configured default city or coordinates.
func (s *WeatherService) requestURL(q WeatherQuery) string {
	v := url.Values{}
	switch {
	case q.Lat != nil && q.Lon != nil:
		v.Set("lat", fmt.Sprintf("%g", *q.Lat))
		v.Set("lon", fmt.Sprintf("%g", *q.Lon))
	case q.City != "":
		v.Set("q", q.City)
	case s.Cfg.DefaultCity != "":
		v.Set("q", s.Cfg.DefaultCity)
	default:
		v.Set("lat", fmt.Sprintf("%g", s.Cfg.DefaultLat))
		v.Set("lon", fmt.Sprintf("%g", s.Cfg.DefaultLon))
	}
	v.Set("appid", s.Cfg.APIKey)
	v.Set("units", "metric")
	v.Set("lang", "tr")
	return s.Cfg.BaseURL + "?" + v.Encode()
}

// DeriveWeatherTags computes the semantic tag set for a temperature (°C,
// unrounded) and the provider's condition group. Band boundaries are
// half-open: 20.0° already counts as the warm band.
func DeriveWeatherTags(temp float64, condition string) []string {
	var tags []string

	switch {
	case temp < 10:
		tags = append(tags, tagCold, tagWinter)
	case temp < 20:
		tags = append(tags, tagMild, tagSpring)
	case temp < 30:
		tags = append(tags, tagWarm, tagSummer)
	default:
		tags = append(tags, tagVeryHot, tagSummer)
	}

	switch condition {
	case "Rain", "Drizzle", "Thunderstorm":
		tags = append(tags, tagRainy)
	case "Snow":
		tags = append(tags, tagSnowy)
	case "Clear":
		tags = append(tags, tagSunny)
	case "Clouds":
		tags = append(tags, tagCloudy)
	}

	return tags
}
