// Package report derives the analytical views of the dashboard from the
// closed positions table. All functions are pure: they take the immutable
// table and return freshly computed values, so every request can recompute
// the whole report from scratch.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/trade-report/internal/types"
)

// Summarize computes the headline metrics over all closed positions.
// All metrics are zero for an empty table; the win rate and mean holding
// period guard explicitly against division by zero.
func Summarize(positions []types.ClosedPosition) types.ReportSummary {
	summary := types.ReportSummary{}

	if len(positions) == 0 {
		return summary
	}

	summary.TotalTrades = len(positions)
	summary.MinHoldingPeriodDays = positions[0].HoldingPeriodDays
	summary.MaxHoldingPeriodDays = positions[0].HoldingPeriodDays
	summary.MaxProfit = positions[0].RealizedPL
	summary.MaxLoss = positions[0].RealizedPL

	var totalHoldingDays float64

	for _, position := range positions {
		summary.TotalRealizedPL += position.RealizedPL
		totalHoldingDays += position.HoldingPeriodDays

		if position.Profitable() {
			summary.WinningTrades++
		} else {
			summary.LosingTrades++
		}

		if position.HoldingPeriodDays < summary.MinHoldingPeriodDays {
			summary.MinHoldingPeriodDays = position.HoldingPeriodDays
		}

		if position.HoldingPeriodDays > summary.MaxHoldingPeriodDays {
			summary.MaxHoldingPeriodDays = position.HoldingPeriodDays
		}

		if position.RealizedPL > summary.MaxProfit {
			summary.MaxProfit = position.RealizedPL
		}

		if position.RealizedPL < summary.MaxLoss {
			summary.MaxLoss = position.RealizedPL
		}
	}

	summary.WinRate = float64(summary.WinningTrades) / float64(summary.TotalTrades) * 100
	summary.AvgHoldingPeriodDays = totalHoldingDays / float64(summary.TotalTrades)

	return summary
}

// CumulativeSeries returns the positions ordered by sell date ascending with
// a running sum of realized P/L. Positions sharing a sell date keep their
// original row order.
func CumulativeSeries(positions []types.ClosedPosition) []types.CumulativePoint {
	sorted := make([]types.ClosedPosition, len(positions))
	copy(sorted, positions)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SellDate.Before(sorted[j].SellDate.Time)
	})

	series := make([]types.CumulativePoint, 0, len(sorted))

	var running float64

	for _, position := range sorted {
		running += position.RealizedPL

		series = append(series, types.CumulativePoint{
			SellDate:     position.SellDate,
			RealizedPL:   position.RealizedPL,
			CumulativePL: running,
		})
	}

	return series
}

// MonthlySeries buckets realized P/L by the calendar month of the sell date
// and attaches a running sum across buckets. Buckets are keyed by month end
// and returned in chronological order.
func MonthlySeries(positions []types.ClosedPosition) []types.MonthlyPoint {
	buckets := make(map[time.Time]float64)

	for _, position := range positions {
		monthEnd := position.SellDate.MonthEnd().Time
		buckets[monthEnd] += position.RealizedPL
	}

	months := make([]time.Time, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}

	sort.Slice(months, func(i, j int) bool {
		return months[i].Before(months[j])
	})

	series := make([]types.MonthlyPoint, 0, len(months))

	var running float64

	for _, month := range months {
		running += buckets[month]

		series = append(series, types.MonthlyPoint{
			Month:        types.Date{Time: month},
			RealizedPL:   buckets[month],
			CumulativePL: running,
		})
	}

	return series
}

// AggregateInstruments groups positions by instrument and computes per
// instrument total P/L, trade count and mean holding period. The result is
// unsorted.
func AggregateInstruments(positions []types.ClosedPosition) []types.InstrumentPerformance {
	type accumulator struct {
		totalPL          float64
		totalHoldingDays float64
		trades           int
	}

	groups := make(map[string]*accumulator)

	order := make([]string, 0)

	for _, position := range positions {
		group, ok := groups[position.Instrument]
		if !ok {
			group = &accumulator{}
			groups[position.Instrument] = group

			order = append(order, position.Instrument)
		}

		group.totalPL += position.RealizedPL
		group.totalHoldingDays += position.HoldingPeriodDays
		group.trades++
	}

	performances := make([]types.InstrumentPerformance, 0, len(order))

	for _, instrument := range order {
		group := groups[instrument]

		performances = append(performances, types.InstrumentPerformance{
			Instrument:           instrument,
			TotalPL:              group.totalPL,
			TotalTrades:          group.trades,
			AvgHoldingPeriodDays: group.totalHoldingDays / float64(group.trades),
		})
	}

	return performances
}

// InstrumentRankings returns the top n instruments by total P/L descending
// and the bottom n ascending. When fewer than n instruments exist, both
// rankings contain all of them.
func InstrumentRankings(positions []types.ClosedPosition, n int) types.InstrumentRankings {
	performances := AggregateInstruments(positions)

	top := make([]types.InstrumentPerformance, len(performances))
	copy(top, performances)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TotalPL > top[j].TotalPL
	})

	bottom := make([]types.InstrumentPerformance, len(performances))
	copy(bottom, performances)
	sort.SliceStable(bottom, func(i, j int) bool {
		return bottom[i].TotalPL < bottom[j].TotalPL
	})

	if n < len(top) {
		top = top[:n]
	}

	if n < len(bottom) {
		bottom = bottom[:n]
	}

	return types.InstrumentRankings{
		Top:    top,
		Bottom: bottom,
	}
}

// HoldingPeriodPartition splits holding periods by trade outcome. Profitable
// means strictly positive realized P/L; losses and exact break-even trades
// land in the losing subset, so every trade appears in exactly one partition.
func HoldingPeriodPartition(positions []types.ClosedPosition) types.HoldingPeriodSplit {
	split := types.HoldingPeriodSplit{
		All:        make([]float64, 0, len(positions)),
		Profitable: make([]float64, 0),
		Losing:     make([]float64, 0),
	}

	for _, position := range positions {
		split.All = append(split.All, position.HoldingPeriodDays)

		if position.Profitable() {
			split.Profitable = append(split.Profitable, position.HoldingPeriodDays)
		} else {
			split.Losing = append(split.Losing, position.HoldingPeriodDays)
		}
	}

	return split
}

// Build assembles the full report from the closed positions table.
func Build(positions []types.ClosedPosition, dataPath string, topN int) types.Report {
	return types.Report{
		ID:             uuid.New().String(),
		GeneratedAt:    time.Now(),
		DataPath:       dataPath,
		Summary:        Summarize(positions),
		Cumulative:     CumulativeSeries(positions),
		Monthly:        MonthlySeries(positions),
		Rankings:       InstrumentRankings(positions, topN),
		HoldingPeriods: HoldingPeriodPartition(positions),
	}
}
