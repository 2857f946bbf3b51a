package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartcity/streetlights/internal/domain"
)

// DatasetObserver is notified of cache hits, misses and loads
type DatasetObserver interface {
	CacheHit()
	CacheMiss()
	DatasetLoaded(source string, d time.Duration, assets int, report domain.LoadReport)
	DatasetLoadFailed(source string)
}

type noopObserver struct{}

func (noopObserver) CacheHit() {}
func (noopObserver) CacheMiss() {}
func (noopObserver) DatasetLoaded(string, time.Duration, int, domain.LoadReport) {}
func (noopObserver) DatasetLoadFailed(string) {}

// DatasetService owns the loaded and derived asset table.
// The table is built once per source fingerprint and is read-only afterwards;
// callers share it and must not modify it.
type DatasetService struct {
	source   AssetSource
	now      func() time.Time
	observer DatasetObserver

	mu          sync.Mutex
	loaded      bool
	table       []domain.LightAsset
	loadID      string
	fingerprint string
	loadedAt    time.Time
	report      domain.LoadReport
}

// NewDatasetService creates a dataset service over source. now supplies the
// reference time used to derive metrics; nil means time.Now.
func NewDatasetService(source AssetSource, now func() time.Time) *DatasetService {
	if now == nil {
		now = time.Now
	}
	return &DatasetService{source: source, now: now, observer: noopObserver{}}
}

// SetObserver installs o; nil restores the no-op observer
func (s *DatasetService) SetObserver(o DatasetObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o == nil {
		o = noopObserver{}
	}
	s.observer = o
}

// Table returns the derived table, loading it when nothing is cached yet or
// the source fingerprint changed since the last load.
func (s *DatasetService) Table(ctx context.Context) ([]domain.LightAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fp, err := s.source.Fingerprint(ctx)
	if err != nil {
		if s.loaded {
			log.Printf("dataset: %s fingerprint failed, serving cached table: %v", s.source.Name(), err)
			s.observer.CacheHit()
			return s.table, nil
		}
		s.observer.DatasetLoadFailed(s.source.Name())
		return nil, fmt.Errorf("dataset: fingerprint %s: %w", s.source.Name(), err)
	}

	if s.loaded && fp == s.fingerprint {
		s.observer.CacheHit()
		return s.table, nil
	}
	s.observer.CacheMiss()

	start := time.Now()
	assets, report, err := s.source.Load(ctx)
	if err != nil {
		s.observer.DatasetLoadFailed(s.source.Name())
		return nil, fmt.Errorf("dataset: load %s: %w", s.source.Name(), err)
	}

	now := s.now()
	s.table = Derive(assets, now)
	s.loadID = uuid.NewString()
	s.fingerprint = fp
	s.loadedAt = now
	s.report = report
	s.loaded = true

	elapsed := time.Since(start)
	s.observer.DatasetLoaded(s.source.Name(), elapsed, len(s.table), report)

	log.Printf("dataset: load %s: %d assets from %s in %v (rows=%d skipped=%d bad_dates=%d bad_wattage=%d bad_geometry=%d)",
		s.loadID, len(s.table), s.source.Name(), elapsed.Round(time.Millisecond),
		report.Rows, report.Skipped, report.BadDates, report.BadWattage, report.BadGeometry)

	return s.table, nil
}

// Invalidate drops the cached table so the next call reloads the source
func (s *DatasetService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = false
	s.table = nil
	s.loadID = ""
	s.fingerprint = ""
}

// Info describes the cached table. It is the zero value before the first load.
func (s *DatasetService) Info() domain.DatasetInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.DatasetInfo{
		LoadID:      s.loadID,
		Source:      s.source.Name(),
		Fingerprint: s.fingerprint,
		LoadedAt:    s.loadedAt,
		Assets:      len(s.table),
		Report:      s.report,
	}
}

// Health checks the underlying source
func (s *DatasetService) Health(ctx context.Context) error {
	return s.source.Health(ctx)
}
