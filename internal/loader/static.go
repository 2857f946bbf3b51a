package loader

import (
	"context"
	"fmt"

	"github.com/smartcity/streetlights/internal/domain"
)

// StaticSource serves a fixed in-memory table (tests and demo mode)
type StaticSource struct {
	Assets  []domain.LightAsset
	Version int
	Err     error
}

// NewStaticSource creates a static source over assets
func NewStaticSource(assets []domain.LightAsset) *StaticSource {
	return &StaticSource{Assets: assets}
}

// Name identifies the source
func (s *StaticSource) Name() string {
	return "static"
}

// Fingerprint changes only when Version is bumped
func (s *StaticSource) Fingerprint(ctx context.Context) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return fmt.Sprintf("static|%d|%d", s.Version, len(s.Assets)), nil
}

// Load returns a copy of the assets
func (s *StaticSource) Load(ctx context.Context) ([]domain.LightAsset, domain.LoadReport, error) {
	if s.Err != nil {
		return nil, domain.LoadReport{}, s.Err
	}
	out := make([]domain.LightAsset, len(s.Assets))
	copy(out, s.Assets)
	return out, domain.LoadReport{Rows: len(out), Loaded: len(out)}, nil
}

// Health returns the configured error, if any
func (s *StaticSource) Health(ctx context.Context) error {
	return s.Err
}
