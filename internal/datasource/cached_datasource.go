package datasource

import (
	"os"
	"sort"
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-report/internal/logger"
	"github.com/rxtech-lab/trade-report/internal/types"
	"go.uber.org/zap"
)

// CachedPositionSource wraps a PositionSource and memoizes the loaded table.
// The cache is invalidated when the source file's modification time changes,
// so repeated report builds within one session skip re-parsing while edits to
// the file are still picked up.
type CachedPositionSource struct {
	underlying PositionSource
	logger     *logger.Logger

	path      string
	positions []types.ClosedPosition
	loadedAt  time.Time
	modTime   time.Time
	loaded    bool
	mu        sync.RWMutex
}

// NewCachedPositionSource creates a CachedPositionSource wrapping the given source.
func NewCachedPositionSource(underlying PositionSource, log *logger.Logger) *CachedPositionSource {
	return &CachedPositionSource{
		underlying: underlying,
		logger:     log,
	}
}

// Initialize implements PositionSource.
func (c *CachedPositionSource) Initialize(path string) error {
	c.mu.Lock()
	c.path = path
	c.loaded = false
	c.positions = nil
	c.mu.Unlock()

	return c.underlying.Initialize(path)
}

// Load implements PositionSource. Range-restricted loads bypass the cache so
// the cached slice always holds the full table.
func (c *CachedPositionSource) Load(start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.ClosedPosition, error) {
	if start.IsSome() || end.IsSome() {
		return c.underlying.Load(start, end)
	}

	positions, err := c.cachedPositions()
	if err != nil {
		return nil, err
	}

	// Hand out a copy so callers cannot mutate the cache.
	result := make([]types.ClosedPosition, len(positions))
	copy(result, positions)

	return result, nil
}

// Count implements PositionSource.
func (c *CachedPositionSource) Count() (int, error) {
	positions, err := c.cachedPositions()
	if err != nil {
		return 0, err
	}

	return len(positions), nil
}

// Instruments implements PositionSource.
func (c *CachedPositionSource) Instruments() ([]string, error) {
	positions, err := c.cachedPositions()
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
func (c *CachedPositionSource) Close() error {
	return c.underlying.Close()
}

// ModTime returns the modification time of the cached table, or the zero time
// when nothing has been loaded yet.
func (c *CachedPositionSource) ModTime() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.modTime
}

// Stale reports whether the source file has changed since the last load.
func (c *CachedPositionSource) Stale() bool {
	c.mu.RLock()
	path, loaded, modTime := c.path, c.loaded, c.modTime
	c.mu.RUnlock()

	if !loaded {
		return true
	}

	info, err := os.Stat(path)
	if err != nil {
		// A vanished file is treated as stale; the next Load surfaces the error.
		return true
	}

	return !info.ModTime().Equal(modTime)
}

func (c *CachedPositionSource) cachedPositions() ([]types.ClosedPosition, error) {
	info, statErr := os.Stat(c.currentPath())

	// Check cache first (read lock)
	c.mu.RLock()
	if c.loaded && statErr == nil && info.ModTime().Equal(c.modTime) {
		positions := c.positions
		c.mu.RUnlock()

		return positions, nil
	}
	c.mu.RUnlock()

	// Cache miss or stale - fetch from underlying (write lock)
	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.loaded && statErr == nil && info.ModTime().Equal(c.modTime) {
		return c.positions, nil
	}

	positions, err := c.underlying.Load(optional.None[time.Time](), optional.None[time.Time]())
	if err != nil {
		return nil, err
	}

	c.positions = positions
	c.loaded = true
	c.loadedAt = time.Now()

	if statErr == nil {
		c.modTime = info.ModTime()
	}

	c.logger.Info("position table (re)loaded",
		zap.String("path", c.path),
		zap.Int("count", len(positions)))

	return c.positions, nil
}

func (c *CachedPositionSource) currentPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.path
}
