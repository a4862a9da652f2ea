package report

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type HistogramTestSuite struct {
	suite.Suite
}

func TestHistogramSuite(t *testing.T) {
	suite.Run(t, new(HistogramTestSuite))
}

func (suite *HistogramTestSuite) TestHistogramEmpty() {
	suite.Nil(Histogram(nil, 10))
	suite.Nil(Histogram([]float64{1, 2}, 0))
}

func (suite *HistogramTestSuite) TestHistogramSingleValue() {
	bins := Histogram([]float64{5, 5, 5}, 10)

	suite.Len(bins, 1)
	suite.Equal(3, bins[0].Count)
	suite.InDelta(5.0, bins[0].Lower, 1e-9)
}

func (suite *HistogramTestSuite) TestHistogramCountsSumToTotal() {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	bins := Histogram(values, 5)

	suite.Len(bins, 5)

	total := 0
	for _, bin := range bins {
		total += bin.Count
	}

	suite.Equal(len(values), total)
}

func (suite *HistogramTestSuite) TestHistogramMaxValueInLastBin() {
	bins := Histogram([]float64{0, 10}, 4)

	suite.Len(bins, 4)
	suite.Equal(1, bins[0].Count)
	suite.Equal(1, bins[3].Count)
}

func (suite *HistogramTestSuite) TestHistogramDensityIntegratesToOne() {
	values := []float64{1, 2, 2, 3, 4, 4, 4, 9}
	bins := Histogram(values, 4)

	integral := 0.0
	for _, bin := range bins {
		integral += bin.Density * (bin.Upper - bin.Lower)
	}

	suite.InDelta(1.0, integral, 1e-9)
}

func (suite *HistogramTestSuite) TestHistogramOverSharedEdges() {
	profitable := HistogramOver([]float64{1, 2}, 4, 0, 8)
	losing := HistogramOver([]float64{7, 8}, 4, 0, 8)

	suite.Len(profitable, 4)
	suite.Len(losing, 4)

	for i := range profitable {
		suite.InDelta(profitable[i].Lower, losing[i].Lower, 1e-9)
		suite.InDelta(profitable[i].Upper, losing[i].Upper, 1e-9)
	}

	suite.Equal(2, profitable[0].Count)
	suite.Equal(0, profitable[3].Count)
	suite.Equal(2, losing[3].Count)
}

func (suite *HistogramTestSuite) TestHistogramOverEmptyValues() {
	bins := HistogramOver(nil, 4, 0, 8)

	suite.Len(bins, 4)

	for _, bin := range bins {
		suite.Zero(bin.Count)
		suite.Zero(bin.Density)
	}
}

func (suite *HistogramTestSuite) TestHistogramOverIgnoresOutOfRange() {
	bins := HistogramOver([]float64{-5, 3, 20}, 4, 0, 8)

	total := 0
	for _, bin := range bins {
		total += bin.Count
	}

	suite.Equal(1, total)
}
