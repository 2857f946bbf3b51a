package service

import (
	"context"
	"time"

	"github.com/smartcity/streetlights/internal/domain"
)

// DashboardService answers one user interaction: it filters the shared
// table and projects the result into the dashboard views
type DashboardService struct {
	dataset *DatasetService
	cutoff  time.Time
	center  domain.Coordinate
}

// NewDashboardService creates a new dashboard service. cutoff is the default
// maintenance cutoff and center the map centre used when nothing is plotted.
func NewDashboardService(dataset *DatasetService, cutoff time.Time, center domain.Coordinate) *DashboardService {
	return &DashboardService{
		dataset: dataset,
		cutoff:  cutoff,
		center:  center,
	}
}

// Dataset returns the underlying dataset service
func (s *DashboardService) Dataset() *DatasetService {
	return s.dataset
}

// Options returns the filter choices and their defaults
func (s *DashboardService) Options(ctx context.Context) (domain.FilterOptions, error) {
	table, err := s.dataset.Table(ctx)
	if err != nil {
		return domain.FilterOptions{}, err
	}
	return Options(table, s.cutoff), nil
}

// DefaultFilter returns the filter applied when the user changed nothing
func (s *DashboardService) DefaultFilter(ctx context.Context) (domain.FilterSpec, error) {
	table, err := s.dataset.Table(ctx)
	if err != nil {
		return domain.FilterSpec{}, err
	}
	return DefaultFilter(table, s.cutoff), nil
}

// Filtered returns the assets matching spec in priority order
func (s *DashboardService) Filtered(ctx context.Context, spec domain.FilterSpec) ([]domain.LightAsset, error) {
	table, err := s.dataset.Table(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(table, spec), nil
}

// Dashboard filters the table and builds every view from the result
func (s *DashboardService) Dashboard(ctx context.Context, spec domain.FilterSpec, mode domain.MapMode) (domain.Dashboard, error) {
	filtered, err := s.Filtered(ctx, spec)
	if err != nil {
		return domain.Dashboard{}, err
	}
	return BuildDashboard(filtered, mode, s.center), nil
}

// Markers returns the marker layer for spec
func (s *DashboardService) Markers(ctx context.Context, spec domain.FilterSpec, mode domain.MapMode) (domain.MarkerLayer, error) {
	filtered, err := s.Filtered(ctx, spec)
	if err != nil {
		return domain.MarkerLayer{}, err
	}
	return MarkerView(filtered, mode, s.center), nil
}
