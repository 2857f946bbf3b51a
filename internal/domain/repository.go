package domain

import (
	"context"
	"errors"
)

var (
	// ErrSourceUnavailable is returned when the asset source cannot be opened or read
	ErrSourceUnavailable = errors.New("asset source unavailable")

	// ErrMissingColumn is returned when a required column is absent from the source
	ErrMissingColumn = errors.New("required column missing")
)

// AssetSource defines where the asset table comes from.
// Sources are read-only; nothing is ever written back.
type AssetSource interface {
	// Name identifies the source in logs and dataset info
	Name() string

	// Fingerprint changes whenever the underlying data changes
	Fingerprint(ctx context.Context) (string, error)

	// Load parses every record. Row defects are counted in the report,
	// only unreadable sources return an error.
	Load(ctx context.Context) ([]LightAsset, LoadReport, error)

	// Health checks the source is reachable
	Health(ctx context.Context) error
}
