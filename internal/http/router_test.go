package httpapi

import (
	"bytes"
	gz "compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/modaselfie/go-mirror-backend/internal/config"
	"github.com/modaselfie/go-mirror-backend/internal/domain"
	"github.com/modaselfie/go-mirror-backend/internal/repo"
)

func init() { gin.SetMode(gin.TestMode) }

func testConfig(weatherURL string) config.Config {
	return config.Config{
		Port:              "0",
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       5 * time.Second,
		MaxHeaderBytes:    1 << 20,
		GinMode:           "test",
		Env:               config.EnvProduction,
		LogLevel:          "error",
		APIBasePath:       "/api",
		MaxUploadBytes:    5 << 20,
		Weather: config.WeatherConfig{
			APIKey:      "k",
			BaseURL:     weatherURL,
			DefaultCity: "Istanbul",
			Timeout:     2 * time.Second,
		},
		Upstream:  config.UpstreamConfig{MaxAttempts: 2, BaseDelay: time.Millisecond},
		RateRPS:   1000,
		RateBurst: 1000,
		OTEL:      config.OTELConfig{ServiceName: "mirror-test"},
	}
}

func newTestApp(t *testing.T, weatherURL string) *gin.Engine {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("router_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&domain.Product{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if _, err := repo.SeedProducts(context.Background(), db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	r := gin.New()
	RegisterRoutes(r, db, testConfig(weatherURL))
	return r
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
	}
	return body
}

func TestHealth(t *testing.T) {
	r := newTestApp(t, "http://unused")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	r := newTestApp(t, "http://unused")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
}

func TestNoRoute_404Envelope(t *testing.T) {
	r := newTestApp(t, "http://unused")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/teapots", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "fail" || body["message"] != "API endpoint bulunamadı" {
		t.Fatalf("envelope: %v", body)
	}
}

func TestNoMethod_405Envelope(t *testing.T) {
	r := newTestApp(t, "http://unused")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/products", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("code = %d, want 405", w.Code)
	}
	if body := decodeBody(t, w); body["status"] != "fail" {
		t.Fatalf("envelope: %v", body)
	}
}

func TestProducts_EndToEndAgainstSeed(t *testing.T) {
	r := newTestApp(t, "http://unused")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products?tags=soğuk", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("code = %d\n%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["status"] != "success" {
		t.Fatalf("status = %v", body["status"])
	}
	data := body["data"].(map[string]any)
	products := data["products"].([]any)
	if len(products) == 0 {
		t.Fatalf("seeded catalog should match soğuk")
	}
}

func TestProducts_MissingTags_400(t *testing.T) {
	r := newTestApp(t, "http://unused")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Tag parametresi gereklidir." {
		t.Fatalf("envelope: %v", body)
	}
}

func TestFailureEnvelope_SurvivesGzipNegotiation(t *testing.T) {
	r := newTestApp(t, "http://unused")

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", w.Code)
	}
	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", w.Header().Get("Content-Encoding"))
	}

	zr, err := gz.NewReader(w.Body)
	if err != nil {
		t.Fatalf("gzip body unreadable: %v", err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decompressed body is not JSON: %v\n%s", err, raw)
	}
	if body["status"] != "fail" || body["message"] != "Tag parametresi gereklidir." {
		t.Fatalf("envelope lost through gzip: %v", body)
	}
}

func TestWeather_EndToEndAgainstFakeUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"name": "Istanbul",
			"main": {"temp": 8.4, "feels_like": 6.1, "humidity": 80},
			"wind": {"speed": 4.5},
			"weather": [{"main": "Rain", "description": "hafif yağmur", "icon": "10d"}]
		}`)
	}))
	defer upstream.Close()

	r := newTestApp(t, upstream.URL)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/weather", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("code = %d\n%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	if data["temperature"] != float64(8) {
		t.Fatalf("temperature = %v", data["temperature"])
	}
	tags := data["tags"].([]any)
	if len(tags) != 3 || tags[0] != "soğuk" || tags[2] != "yağmurlu" {
		t.Fatalf("tags = %v", tags)
	}
}

func TestWeather_UpstreamDown_503(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	r := newTestApp(t, upstream.URL)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/weather", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("code = %d, want 503", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "error" || body["message"] != "Hava durumu bilgisi alınamadı" {
		t.Fatalf("envelope: %v", body)
	}
}

func TestAnalyze_EndToEnd(t *testing.T) {
	r := newTestApp(t, "http://unused")

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="selfie.jpg"`)
	hdr.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write([]byte("jpeg bytes")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := mw.WriteField("weatherTags", `["soğuk"]`); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("code = %d\n%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["status"] != "success" {
		t.Fatalf("status = %v", body["status"])
	}
	data := body["data"].(map[string]any)
	tags := data["tags"].([]any)
	if len(tags) < 4 {
		t.Fatalf("merged tags should include style tags plus soğuk: %v", tags)
	}
	if _, ok := data["suggestedProducts"]; !ok {
		t.Fatalf("data: %v", data)
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	r := newTestApp(t, "http://unused")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("security headers missing")
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header missing")
	}
}

func TestCORS_DefaultAllowAll(t *testing.T) {
	r := newTestApp(t, "http://unused")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("ACAO = %q, want *", got)
	}
}
