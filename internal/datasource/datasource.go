// Package datasource loads the closed positions table from disk.
//
// Two backends are provided: a pure-Go CSV reader and an embedded DuckDB
// instance that reads the same file through read_csv_auto. Both can be
// wrapped in a CachedPositionSource that memoizes the parsed table and
// re-loads only when the file's modification time changes.
package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-report/internal/logger"
	"github.com/rxtech-lab/trade-report/internal/types"
	"github.com/rxtech-lab/trade-report/pkg/errors"
)

// PositionSource is the interface for loading closed positions.
type PositionSource interface {
	// Initialize points the source at a position file.
	Initialize(path string) error
	// Load returns all closed positions in file order, optionally restricted
	// to sell dates within [start, end].
	Load(start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.ClosedPosition, error)
	// Count returns the number of closed positions.
	Count() (int, error)
	// Instruments returns all distinct instruments sorted ascending.
	Instruments() ([]string, error)
	// Close releases any resources held by the source.
	Close() error
}

// NewPositionSource creates a position source for the given backend type.
func NewPositionSource(sourceType types.SourceType, log *logger.Logger) (PositionSource, error) {
	switch sourceType {
	case types.SourceCSV:
		return NewCSVPositionSource(log), nil
	case types.SourceDuckDB:
		return NewDuckDBPositionSource(log)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidSourceType, "unsupported source type: %s", sourceType)
	}
}

// inRange reports whether the sell date falls within the optional bounds.
func inRange(sellDate time.Time, start optional.Option[time.Time], end optional.Option[time.Time]) bool {
	if start.IsSome() && sellDate.Before(start.Unwrap()) {
		return false
	}

	if end.IsSome() && sellDate.After(end.Unwrap()) {
		return false
	}

	return true
}
