package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smartcity/streetlights/internal/domain"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.CacheHit()
	m.CacheMiss()
	m.DatasetLoaded("csv", time.Second, 3, domain.LoadReport{})
	m.DatasetLoadFailed("csv")
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewMetrics()
	m.CacheMiss()
	m.CacheHit()
	m.CacheHit()
	m.DatasetLoaded("static", 20*time.Millisecond, 3, domain.LoadReport{Skipped: 1, BadGeometry: 2})

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })
	app.Get("/metrics", m.Handler())

	for _, target := range []string{"/ping", "/missing"} {
		if _, err := app.Test(httptest.NewRequest("GET", target, nil)); err != nil {
			t.Fatalf("GET %s: %v", target, err)
		}
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	out := string(body)

	for _, want := range []string{
		"dataset_cache_hits_total 2",
		"dataset_cache_misses_total 1",
		"dataset_assets 3",
		"dataset_rows_skipped 1",
		`dataset_row_defects{field="geometry"} 2`,
		`http_requests_total{route="/ping",status="200"} 1`,
		`http_requests_total{route="/missing",status="404"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
