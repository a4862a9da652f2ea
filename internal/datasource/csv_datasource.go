package datasource

import (
	"os"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-report/internal/logger"
	"github.com/rxtech-lab/trade-report/internal/types"
	"github.com/rxtech-lab/trade-report/pkg/errors"
	"go.uber.org/zap"
)

// CSVPositionSource reads closed positions from a CSV file with gocsv.
type CSVPositionSource struct {
	path   string
	logger *logger.Logger
}

// NewCSVPositionSource creates a CSV-backed position source.
func NewCSVPositionSource(log *logger.Logger) *CSVPositionSource {
	return &CSVPositionSource{
		path:   "",
		logger: log,
	}
}

// Initialize implements PositionSource.
func (s *CSVPositionSource) Initialize(path string) error {
	if path == "" {
		return errors.New(errors.ErrCodeMissingParameter, "position file path is empty")
	}

	s.path = path

	return nil
}

// Load implements PositionSource.
func (s *CSVPositionSource) Load(start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.ClosedPosition, error) {
	positions, err := s.readAll()
	if err != nil {
		return nil, err
	}

	if start.IsNone() && end.IsNone() {
		return positions, nil
	}

	filtered := make([]types.ClosedPosition, 0, len(positions))

	for _, position := range positions {
		if inRange(position.SellDate.Time, start, end) {
			filtered = append(filtered, position)
		}
	}

	return filtered, nil
}

// Count implements PositionSource.
func (s *CSVPositionSource) Count() (int, error) {
	positions, err := s.readAll()
	if err != nil {
		return 0, err
	}

	return len(positions), nil
}

// Instruments implements PositionSource.
func (s *CSVPositionSource) Instruments() ([]string, error) {
	positions, err := s.readAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)

	var instruments []string

	for _, position := range positions {
		if !seen[position.Instrument] {
			seen[position.Instrument] = true

			instruments = append(instruments, position.Instrument)
		}
	}

	sort.Strings(instruments)

	return instruments, nil
}

// Close implements PositionSource.
func (s *CSVPositionSource) Close() error {
	return nil
}

func (s *CSVPositionSource) readAll() ([]types.ClosedPosition, error) {
	csvFile, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataUnavailable, err, "cannot open position file %s", s.path)
	}
	defer csvFile.Close()

	var positions []types.ClosedPosition
	if err := gocsv.UnmarshalFile(csvFile, &positions); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataParseFailed, err, "cannot parse position file %s", s.path)
	}

	s.logger.Debug("loaded positions from CSV",
		zap.String("path", s.path),
		zap.Int("count", len(positions)))

	return positions, nil
}
