package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/smartcity/streetlights/internal/domain"
)

// Delimiter of the public lights export
const Delimiter = ';'

// CSVSource reads assets from a semicolon-delimited file with a header row
type CSVSource struct {
	Path string
}

// NewCSVSource creates a source for the file at path
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

// Name identifies the source
func (s *CSVSource) Name() string {
	return "csv:" + s.Path
}

// Fingerprint combines the absolute path, size and modification time
func (s *CSVSource) Fingerprint(ctx context.Context) (string, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return "", fmt.Errorf("loader: stat %q: %w: %w", s.Path, domain.ErrSourceUnavailable, err)
	}
	abs, err := filepath.Abs(s.Path)
	if err != nil {
		abs = s.Path
	}
	return fmt.Sprintf("%s|%d|%d", abs, info.Size(), info.ModTime().UnixNano()), nil
}

// Health checks the file is there and readable
func (s *CSVSource) Health(ctx context.Context) error {
	f, err := os.Open(s.Path)
	if err != nil {
		return fmt.Errorf("loader: open %q: %w: %w", s.Path, domain.ErrSourceUnavailable, err)
	}
	return f.Close()
}

// Load opens the file and parses every row
func (s *CSVSource) Load(ctx context.Context) ([]domain.LightAsset, domain.LoadReport, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, domain.LoadReport{}, fmt.Errorf("loader: open %q: %w: %w", s.Path, domain.ErrSourceUnavailable, err)
	}
	defer f.Close()

	assets, report, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, report, fmt.Errorf("loader: read %q: %w", s.Path, err)
	}
	return assets, report, nil
}

// ReadCSV parses a semicolon-delimited asset table from r
func ReadCSV(ctx context.Context, r io.Reader) ([]domain.LightAsset, domain.LoadReport, error) {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.LoadReport{}, fmt.Errorf("%w: empty file", domain.ErrSourceUnavailable)
		}
		return nil, domain.LoadReport{}, fmt.Errorf("%w: header: %w", domain.ErrSourceUnavailable, err)
	}

	parser, err := NewRecordParser(header)
	if err != nil {
		return nil, domain.LoadReport{}, err
	}

	for n := 0; ; n++ {
		if n%1000 == 0 {
			if err := ctx.Err(); err != nil {
				_, report := parser.Result()
				return nil, report, err
			}
		}

		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				parser.Skip(perr.Error())
				continue
			}
			_, report := parser.Result()
			return nil, report, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
		}
		parser.Add(fields)
	}

	assets, report := parser.Result()
	return assets, report, nil
}
