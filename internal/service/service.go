package service

import (
	"github.com/smartcity/streetlights/internal/domain"
)

// AssetSource is re-exported from domain for convenience
type AssetSource = domain.AssetSource
