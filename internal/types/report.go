package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ReportSummary holds the headline metrics for the whole trading history.
type ReportSummary struct {
	// Total realized P/L. Sum of all closed trades' realized P/L.
	TotalRealizedPL float64 `yaml:"total_realized_pl" json:"total_realized_pl"`
	// Count of all closed trades.
	TotalTrades int `yaml:"total_trades" json:"total_trades"`
	// Count of trades with positive realized P/L.
	WinningTrades int `yaml:"winning_trades" json:"winning_trades"`
	// Count of trades with zero or negative realized P/L.
	LosingTrades int `yaml:"losing_trades" json:"losing_trades"`
	// Win rate as a percentage in [0, 100]. Zero when there are no trades.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// Mean holding period in days. Zero when there are no trades.
	AvgHoldingPeriodDays float64 `yaml:"avg_holding_period_days" json:"avg_holding_period_days"`
	// Shortest holding period in days.
	MinHoldingPeriodDays float64 `yaml:"min_holding_period_days" json:"min_holding_period_days"`
	// Longest holding period in days.
	MaxHoldingPeriodDays float64 `yaml:"max_holding_period_days" json:"max_holding_period_days"`
	// Largest single-trade profit.
	MaxProfit float64 `yaml:"max_profit" json:"max_profit"`
	// Largest single-trade loss (most negative realized P/L).
	MaxLoss float64 `yaml:"max_loss" json:"max_loss"`
}

// CumulativePoint is one point of the chronological P/L series: a closed
// trade with the running sum of realized P/L up to and including it.
type CumulativePoint struct {
	SellDate     Date    `yaml:"sell_date" json:"sell_date"`
	RealizedPL   float64 `yaml:"realized_pl" json:"realized_pl"`
	CumulativePL float64 `yaml:"cumulative_pl" json:"cumulative_pl"`
}

// MonthlyPoint is one calendar-month bucket of realized P/L with the running
// sum across buckets. Month is the last day of the bucket's month.
type MonthlyPoint struct {
	Month        Date    `yaml:"month" json:"month"`
	RealizedPL   float64 `yaml:"realized_pl" json:"realized_pl"`
	CumulativePL float64 `yaml:"cumulative_pl" json:"cumulative_pl"`
}

// InstrumentPerformance aggregates all closed trades of one instrument.
type InstrumentPerformance struct {
	Instrument           string  `yaml:"instrument" json:"instrument"`
	TotalPL              float64 `yaml:"total_pl" json:"total_pl"`
	TotalTrades          int     `yaml:"total_trades" json:"total_trades"`
	AvgHoldingPeriodDays float64 `yaml:"avg_holding_period_days" json:"avg_holding_period_days"`
}

// InstrumentRankings holds the best and worst performing instruments by
// total realized P/L.
type InstrumentRankings struct {
	// Top is sorted by total P/L descending.
	Top []InstrumentPerformance `yaml:"top" json:"top"`
	// Bottom is sorted by total P/L ascending.
	Bottom []InstrumentPerformance `yaml:"bottom" json:"bottom"`
}

// HoldingPeriodSplit partitions holding periods by trade outcome.
// Every trade appears in exactly one of Profitable and Losing.
type HoldingPeriodSplit struct {
	All        []float64 `yaml:"all" json:"all"`
	Profitable []float64 `yaml:"profitable" json:"profitable"`
	Losing     []float64 `yaml:"losing" json:"losing"`
}

// HistogramBin is one fixed-width bucket of a value distribution.
type HistogramBin struct {
	// Lower is the inclusive lower bound of the bin.
	Lower float64 `yaml:"lower" json:"lower"`
	// Upper is the exclusive upper bound of the bin (inclusive for the last bin).
	Upper float64 `yaml:"upper" json:"upper"`
	// Count is the number of values falling into the bin.
	Count int `yaml:"count" json:"count"`
	// Density is Count normalized so that the histogram integrates to one.
	Density float64 `yaml:"density" json:"density"`
}

// Report is the full analysis derived from one load of the trading history.
type Report struct {
	// ID is the unique identifier for this report run.
	ID string `yaml:"id" json:"id"`
	// GeneratedAt is when the report was computed.
	GeneratedAt time.Time `yaml:"generated_at" json:"generated_at"`
	// DataPath is the path of the position file the report was computed from.
	DataPath string `yaml:"data_path" json:"data_path"`
	// Summary of all trades.
	Summary ReportSummary `yaml:"summary" json:"summary"`
	// Cumulative is the chronological P/L series.
	Cumulative []CumulativePoint `yaml:"cumulative" json:"cumulative"`
	// Monthly is the month-end bucketed P/L series.
	Monthly []MonthlyPoint `yaml:"monthly" json:"monthly"`
	// Rankings of instruments by total P/L.
	Rankings InstrumentRankings `yaml:"rankings" json:"rankings"`
	// HoldingPeriods partitioned by outcome.
	HoldingPeriods HoldingPeriodSplit `yaml:"holding_periods" json:"holding_periods"`
}

// WriteReport writes the report to the given path as YAML.
func WriteReport(path string, report Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report to file: %w", err)
	}

	return nil
}
