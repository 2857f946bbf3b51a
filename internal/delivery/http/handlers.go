package http

import (
	"bytes"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smartcity/streetlights/internal/domain"
	"github.com/smartcity/streetlights/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	dashboardSvc *service.DashboardService
	dataset      *service.DatasetService
}

// NewHandler creates a new handler
func NewHandler(dashboardSvc *service.DashboardService) *Handler {
	return &Handler{
		dashboardSvc: dashboardSvc,
		dataset:      dashboardSvc.Dataset(),
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := fiber.StatusOK
	source := "ok"
	if err := h.dataset.Health(ctx); err != nil {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
		source = err.Error()
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"service": "streetlights-dashboard",
		"version": "1.0.0",
		"source":  source,
	})
}

// interaction binds the filter and map mode of one request
func (h *Handler) interaction(c *fiber.Ctx) (domain.FilterSpec, domain.MapMode, error) {
	defaults, err := h.dashboardSvc.DefaultFilter(c.Context())
	if err != nil {
		return domain.FilterSpec{}, "", datasetError(err)
	}
	spec, err := bindFilter(c, defaults)
	if err != nil {
		return domain.FilterSpec{}, "", err
	}
	mode, err := bindMode(c)
	if err != nil {
		return domain.FilterSpec{}, "", err
	}
	return spec, mode, nil
}

// filtered binds the request and returns the matching assets
func (h *Handler) filtered(c *fiber.Ctx) ([]domain.LightAsset, domain.MapMode, error) {
	spec, mode, err := h.interaction(c)
	if err != nil {
		return nil, "", err
	}
	assets, err := h.dashboardSvc.Filtered(c.Context(), spec)
	if err != nil {
		return nil, "", datasetError(err)
	}
	return assets, mode, nil
}

// GetFilters returns the filter options and their defaults
func (h *Handler) GetFilters(c *fiber.Ctx) error {
	opts, err := h.dashboardSvc.Options(c.Context())
	if err != nil {
		return datasetError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    opts,
	})
}

// GetDashboard returns every view for the requested filter
func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	spec, mode, err := h.interaction(c)
	if err != nil {
		return err
	}

	data, err := h.dashboardSvc.Dashboard(c.Context(), spec, mode)
	if err != nil {
		return datasetError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// GetMarkers returns the map marker layer
func (h *Handler) GetMarkers(c *fiber.Ctx) error {
	spec, mode, err := h.interaction(c)
	if err != nil {
		return err
	}
	layer, err := h.dashboardSvc.Markers(c.Context(), spec, mode)
	if err != nil {
		return datasetError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    layer,
		"count":   len(layer.Markers),
	})
}

// GetMarkersGeoJSON returns the located assets as a GeoJSON FeatureCollection
func (h *Handler) GetMarkersGeoJSON(c *fiber.Ctx) error {
	assets, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	data, err := service.MarkersGeoJSON(assets)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to encode GeoJSON")
	}
	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(data)
}

// GetHeatmap returns the heat map points
func (h *Handler) GetHeatmap(c *fiber.Ctx) error {
	assets, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	points := service.HeatView(assets)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    points,
		"count":   len(points),
	})
}

// GetIntervals returns the placement-to-maintenance intervals
func (h *Handler) GetIntervals(c *fiber.Ctx) error {
	assets, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	intervals := service.IntervalView(assets)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    intervals,
		"count":   len(intervals),
	})
}

// GetPlacements returns the placement animation frames
func (h *Handler) GetPlacements(c *fiber.Ctx) error {
	assets, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	frames := service.PlacementView(assets)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    frames,
		"count":   len(frames),
	})
}

// GetTypes returns the type distribution
func (h *Handler) GetTypes(c *fiber.Ctx) error {
	assets, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    service.TypeView(assets),
		"count":   len(assets),
	})
}

// GetTable returns the prioritized maintenance table as JSON, CSV or XLSX
func (h *Handler) GetTable(c *fiber.Ctx) error {
	assets, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	rows := service.TableView(assets)

	switch c.Query(paramFormat, "json") {
	case "json":
		return c.JSON(fiber.Map{
			"success": true,
			"columns": domain.TableColumns,
			"data":    rows,
			"count":   len(rows),
		})
	case "csv":
		var buf bytes.Buffer
		if err := service.WriteTableCSV(&buf, rows); err != nil {
			return err
		}
		c.Attachment("maintenance.csv")
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		return c.Send(buf.Bytes())
	case "xlsx":
		var buf bytes.Buffer
		if err := service.WriteTableXLSX(&buf, rows); err != nil {
			return err
		}
		c.Attachment("maintenance.xlsx")
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return c.Send(buf.Bytes())
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Invalid format, expected json, csv or xlsx")
	}
}

// GetDataset describes the cached table and its load report
func (h *Handler) GetDataset(c *fiber.Ctx) error {
	if _, err := h.dataset.Table(c.Context()); err != nil {
		return datasetError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.dataset.Info(),
	})
}

// ReloadDataset drops the cached table and loads the source again
func (h *Handler) ReloadDataset(c *fiber.Ctx) error {
	h.dataset.Invalidate()
	if _, err := h.dataset.Table(c.Context()); err != nil {
		return datasetError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.dataset.Info(),
	})
}
