package dashboard

import (
	"fmt"
	"strings"

	"github.com/rxtech-lab/trade-report/internal/report"
	"github.com/rxtech-lab/trade-report/internal/types"
	"github.com/shopspring/decimal"
)

// Metric is one formatted entry of the summary strip.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SeriesPoint is one date/value pair of a line chart.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// BarEntry is one bar of a ranking chart.
type BarEntry struct {
	Instrument string  `json:"instrument"`
	TotalPL    float64 `json:"totalPl"`
}

// HistogramView is a pre-binned distribution ready for a bar-style histogram.
type HistogramView struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// OutcomeHistogramView overlays the holding-period densities of profitable
// and losing trades on shared bin edges.
type OutcomeHistogramView struct {
	Labels     []string  `json:"labels"`
	Profitable []float64 `json:"profitable"`
	Losing     []float64 `json:"losing"`
}

// ViewModel is everything the dashboard page needs, fully formatted. It is
// the pure render(state) product: building it touches no I/O, so it can be
// tested independently of the HTTP layer.
type ViewModel struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ReportID    string `json:"reportId"`
	GeneratedAt string `json:"generatedAt"`

	// Metrics is the 4-metric summary strip: total P/L, trade count,
	// win rate, average holding period.
	Metrics []Metric `json:"metrics"`

	Cumulative        []SeriesPoint `json:"cumulative"`
	MonthlyCumulative []SeriesPoint `json:"monthlyCumulative"`

	// TopInstruments is ordered ascending by total P/L so the most
	// profitable bar renders outermost on a horizontal chart.
	TopInstruments []BarEntry `json:"topInstruments"`
	// BottomInstruments is ordered descending so the biggest loser
	// renders outermost.
	BottomInstruments []BarEntry `json:"bottomInstruments"`

	HoldingPeriods  HistogramView        `json:"holdingPeriods"`
	HoldingOutcomes OutcomeHistogramView `json:"holdingOutcomes"`
	RealizedPL      HistogramView        `json:"realizedPl"`
}

// BuildViewModel formats a computed report for the dashboard page.
func BuildViewModel(rep types.Report, cfg types.ReportConfig) ViewModel {
	vm := ViewModel{
		Title:       cfg.Title,
		Description: cfg.Description,
		ReportID:    rep.ID,
		GeneratedAt: rep.GeneratedAt.Format("2006-01-02 15:04:05"),
		Metrics: []Metric{
			{Label: "Total Realized P/L", Value: FormatMoney(rep.Summary.TotalRealizedPL)},
			{Label: "Total Closed Trades", Value: fmt.Sprintf("%d", rep.Summary.TotalTrades)},
			{Label: "Win Rate", Value: FormatPercent(rep.Summary.WinRate)},
			{Label: "Avg Holding Period", Value: FormatDays(rep.Summary.AvgHoldingPeriodDays)},
		},
	}

	vm.Cumulative = make([]SeriesPoint, 0, len(rep.Cumulative))
	for _, point := range rep.Cumulative {
		vm.Cumulative = append(vm.Cumulative, SeriesPoint{
			Date:  point.SellDate.String(),
			Value: roundCents(point.CumulativePL),
		})
	}

	vm.MonthlyCumulative = make([]SeriesPoint, 0, len(rep.Monthly))
	for _, point := range rep.Monthly {
		vm.MonthlyCumulative = append(vm.MonthlyCumulative, SeriesPoint{
			Date:  point.Month.String(),
			Value: roundCents(point.CumulativePL),
		})
	}

	// Reverse the top ranking so the best performer is listed last: ECharts
	// draws horizontal bars bottom-up, putting the last entry on top.
	for i := len(rep.Rankings.Top) - 1; i >= 0; i-- {
		perf := rep.Rankings.Top[i]
		vm.TopInstruments = append(vm.TopInstruments, BarEntry{
			Instrument: perf.Instrument,
			TotalPL:    roundCents(perf.TotalPL),
		})
	}

	for _, perf := range rep.Rankings.Bottom {
		vm.BottomInstruments = append(vm.BottomInstruments, BarEntry{
			Instrument: perf.Instrument,
			TotalPL:    roundCents(perf.TotalPL),
		})
	}

	vm.HoldingPeriods = histogramView(report.Histogram(rep.HoldingPeriods.All, cfg.HistogramBins))
	vm.HoldingOutcomes = outcomeView(rep.HoldingPeriods, cfg.HistogramBins)

	realized := make([]float64, 0, len(rep.Cumulative))
	for _, point := range rep.Cumulative {
		realized = append(realized, point.RealizedPL)
	}

	vm.RealizedPL = histogramView(report.Histogram(realized, cfg.HistogramBins))

	return vm
}

func histogramView(bins []types.HistogramBin) HistogramView {
	view := HistogramView{
		Labels: make([]string, 0, len(bins)),
		Counts: make([]int, 0, len(bins)),
	}

	for _, bin := range bins {
		view.Labels = append(view.Labels, binLabel(bin))
		view.Counts = append(view.Counts, bin.Count)
	}

	return view
}

// outcomeView bins profitable and losing holding periods over the shared
// range of all holding periods so the two densities overlay cleanly.
func outcomeView(split types.HoldingPeriodSplit, bins int) OutcomeHistogramView {
	view := OutcomeHistogramView{}

	if len(split.All) == 0 {
		return view
	}

	min, max := split.All[0], split.All[0]

	for _, v := range split.All {
		if v < min {
			min = v
		}

		if v > max {
			max = v
		}
	}

	profitable := report.HistogramOver(split.Profitable, bins, min, max)
	losing := report.HistogramOver(split.Losing, bins, min, max)

	for i := range profitable {
		view.Labels = append(view.Labels, binLabel(profitable[i]))
		view.Profitable = append(view.Profitable, roundDensity(profitable[i].Density))
		view.Losing = append(view.Losing, roundDensity(losing[i].Density))
	}

	return view
}

func binLabel(bin types.HistogramBin) string {
	return fmt.Sprintf("%.0f–%.0f", bin.Lower, bin.Upper)
}

// FormatMoney renders an amount as "$X,XXX.XX", keeping the sign in front of
// the dollar figure the way the summary strip has always shown it.
func FormatMoney(amount float64) string {
	fixed := decimal.NewFromFloat(amount).StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	grouped := groupThousands(parts[0])

	sign := ""
	if negative {
		sign = "-"
	}

	return fmt.Sprintf("$%s%s.%s", sign, grouped, parts[1])
}

// FormatPercent renders a percentage as "XX.XX%".
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// FormatDays renders a day count as "XXX days".
func FormatDays(days float64) string {
	return fmt.Sprintf("%.0f days", days)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var builder strings.Builder

	lead := len(digits) % 3
	if lead > 0 {
		builder.WriteString(digits[:lead])
	}

	for i := lead; i < len(digits); i += 3 {
		if builder.Len() > 0 {
			builder.WriteString(",")
		}

		builder.WriteString(digits[i : i+3])
	}

	return builder.String()
}

func roundCents(value float64) float64 {
	cents, _ := decimal.NewFromFloat(value).Round(2).Float64()

	return cents
}

func roundDensity(value float64) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(6).Float64()

	return rounded
}
