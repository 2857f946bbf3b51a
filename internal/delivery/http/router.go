package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/smartcity/streetlights/internal/observability"
	"github.com/smartcity/streetlights/internal/service"
)

// SetupRoutes configures all HTTP routes. metrics may be nil.
func SetupRoutes(app *fiber.App, dashboardSvc *service.DashboardService, metrics *observability.Metrics) {
	handler := NewHandler(dashboardSvc)

	// Health check
	app.Get("/health", handler.HealthCheck)
	if metrics != nil {
		app.Get("/metrics", metrics.Handler())
	}

	// Dashboard page
	app.Get("/", handler.Index)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/filters", handler.GetFilters)
		api.Get("/dashboard", handler.GetDashboard)

		// One endpoint per view
		lights := api.Group("/lights")
		lights.Get("/markers", handler.GetMarkers)
		lights.Get("/markers.geojson", handler.GetMarkersGeoJSON)
		lights.Get("/heatmap", handler.GetHeatmap)
		lights.Get("/intervals", handler.GetIntervals)
		lights.Get("/placements", handler.GetPlacements)
		lights.Get("/types", handler.GetTypes)
		lights.Get("/table", handler.GetTable)

		// Dataset cache
		api.Get("/dataset", handler.GetDataset)
		api.Post("/dataset/reload", handler.ReloadDataset)
	}
}
