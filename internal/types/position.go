package types

// ClosedPosition is one row of the trading history: a completed
// (bought-and-sold) trade with a realized outcome.
type ClosedPosition struct {
	// Instrument is the traded symbol (e.g. "AAPL").
	Instrument string `csv:"instrument" yaml:"instrument" json:"instrument"`
	// SellDate is the calendar date the position was closed.
	SellDate Date `csv:"sell_date" yaml:"sell_date" json:"sell_date"`
	// RealizedPL is the profit or loss booked when the position closed.
	RealizedPL float64 `csv:"realized_profit_loss" yaml:"realized_profit_loss" json:"realized_profit_loss"`
	// HoldingPeriodDays is the number of days between acquisition and disposal.
	HoldingPeriodDays float64 `csv:"holding_period_days" yaml:"holding_period_days" json:"holding_period_days"`
}

// Profitable reports whether the trade booked a strictly positive P/L.
// Break-even trades count as losing.
func (p ClosedPosition) Profitable() bool {
	return p.RealizedPL > 0
}
