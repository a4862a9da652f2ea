package datasource

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-report/internal/logger"
	"github.com/rxtech-lab/trade-report/internal/types"
	"github.com/rxtech-lab/trade-report/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBPositionSource loads closed positions through an embedded in-memory
// DuckDB instance, letting DuckDB handle CSV sniffing and date parsing.
type DuckDBPositionSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBPositionSource creates a DuckDB-backed position source.
func NewDuckDBPositionSource(log *logger.Logger) (*DuckDBPositionSource, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	return &DuckDBPositionSource{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements PositionSource. It creates a view over the CSV file
// so every query reads through read_csv_auto.
func (s *DuckDBPositionSource) Initialize(path string) error {
	s.logger.Debug("initializing DuckDB position source", zap.String("path", path))

	if path == "" {
		return errors.New(errors.ErrCodeMissingParameter, "position file path is empty")
	}

	_, err := s.db.Exec(`DROP VIEW IF EXISTS closed_positions;`)
	if err != nil {
		return fmt.Errorf("failed to drop existing view: %w", err)
	}

	// read_csv_auto does not support placeholders for the file name
	query := fmt.Sprintf(`
		CREATE VIEW closed_positions AS
		SELECT instrument, sell_date, realized_profit_loss, holding_period_days
		FROM read_csv_auto('%s', header=true);
	`, path)

	if _, err := s.db.Exec(query); err != nil {
		return errors.Wrapf(errors.ErrCodeDataUnavailable, err, "cannot read position file %s", path)
	}

	return nil
}

// Load implements PositionSource.
func (s *DuckDBPositionSource) Load(start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.ClosedPosition, error) {
	builder := s.sq.
		Select("instrument", "sell_date", "realized_profit_loss", "holding_period_days").
		From("closed_positions")

	if start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"sell_date": start.Unwrap()})
	}

	if end.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{"sell_date": end.Unwrap()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query closed positions", err)
	}
	defer rows.Close()

	result := make([]types.ClosedPosition, 0, 1000)

	for rows.Next() {
		var (
			instrument              string
			sellDate                time.Time
			realizedPL, holdingDays float64
		)

		if err := rows.Scan(&instrument, &sellDate, &realizedPL, &holdingDays); err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataParseFailed, "failed to scan position row", err)
		}

		result = append(result, types.ClosedPosition{
			Instrument:        instrument,
			SellDate:          types.Date{Time: sellDate},
			RealizedPL:        realizedPL,
			HoldingPeriodDays: holdingDays,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating position rows", err)
	}

	return result, nil
}

// Count implements PositionSource.
func (s *DuckDBPositionSource) Count() (int, error) {
	var count int

	err := s.db.QueryRow("SELECT COUNT(*) FROM closed_positions").Scan(&count)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count closed positions", err)
	}

	return count, nil
}

// Instruments implements PositionSource.
func (s *DuckDBPositionSource) Instruments() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT instrument FROM closed_positions ORDER BY instrument")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query instruments", err)
	}
	defer rows.Close()

	var instruments []string

	for rows.Next() {
		var instrument string
		if err := rows.Scan(&instrument); err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataParseFailed, "failed to scan instrument", err)
		}

		instruments = append(instruments, instrument)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating instruments", err)
	}

	return instruments, nil
}

// Close implements PositionSource.
func (s *DuckDBPositionSource) Close() error {
	if s.db != nil {
		return s.db.Close()
	}

	return nil
}
