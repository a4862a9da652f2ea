package report

import (
	"github.com/rxtech-lab/trade-report/internal/types"
)

// Histogram buckets values into the given number of fixed-width bins spanning
// [min(values), max(values)]. Each bin carries both a raw count and a density
// normalized so the histogram integrates to one, which lets distributions of
// different sizes be overlaid on the same axis.
//
// An empty input yields no bins. When all values are equal, a single
// unit-width bin holds everything.
func Histogram(values []float64, bins int) []types.HistogramBin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	min, max := values[0], values[0]

	for _, v := range values {
		if v < min {
			min = v
		}

		if v > max {
			max = v
		}
	}

	if min == max {
		return []types.HistogramBin{
			{
				Lower:   min,
				Upper:   min + 1,
				Count:   len(values),
				Density: 1,
			},
		}
	}

	width := (max - min) / float64(bins)

	result := make([]types.HistogramBin, bins)

	for i := range result {
		result[i].Lower = min + float64(i)*width
		result[i].Upper = min + float64(i+1)*width
	}

	for _, v := range values {
		idx := int((v - min) / width)
		// The maximum value falls into the last bin.
		if idx >= bins {
			idx = bins - 1
		}

		result[idx].Count++
	}

	total := float64(len(values))
	for i := range result {
		result[i].Density = float64(result[i].Count) / (total * width)
	}

	return result
}

// HistogramOver buckets values into bins spanning an externally supplied
// [min, max] range, so two distributions can share identical bin edges.
func HistogramOver(values []float64, bins int, min, max float64) []types.HistogramBin {
	if bins <= 0 || min > max {
		return nil
	}

	if min == max {
		max = min + 1
	}

	width := (max - min) / float64(bins)

	result := make([]types.HistogramBin, bins)

	for i := range result {
		result[i].Lower = min + float64(i)*width
		result[i].Upper = min + float64(i+1)*width
	}

	if len(values) == 0 {
		return result
	}

	for _, v := range values {
		if v < min || v > max {
			continue
		}

		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}

		result[idx].Count++
	}

	total := float64(len(values))
	for i := range result {
		result[i].Density = float64(result[i].Count) / (total * width)
	}

	return result
}
