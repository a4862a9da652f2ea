package main

import (
	"testing"
	"time"

	"github.com/rxtech-lab/trade-report/internal/report"
	"github.com/rxtech-lab/trade-report/internal/types"
	"github.com/stretchr/testify/suite"
)

type StylesTestSuite struct {
	suite.Suite
}

func TestStylesSuite(t *testing.T) {
	suite.Run(t, new(StylesTestSuite))
}

func (suite *StylesTestSuite) TestRenderSummary() {
	positions := []types.ClosedPosition{
		{Instrument: "AAPL", SellDate: types.NewDate(2024, time.January, 2), RealizedPL: 100, HoldingPeriodDays: 5},
		{Instrument: "MSFT", SellDate: types.NewDate(2024, time.February, 3), RealizedPL: -50, HoldingPeriodDays: 10},
		{Instrument: "NVDA", SellDate: types.NewDate(2024, time.March, 4), RealizedPL: 25, HoldingPeriodDays: 15},
	}

	rep := report.Build(positions, "closed_positions.csv", 10)
	rendered := RenderSummary(rep)

	suite.Contains(rendered, "Overall Performance Summary")
	suite.Contains(rendered, "75.00")
	suite.Contains(rendered, "66.67%")
	suite.Contains(rendered, "10 days")
	suite.Contains(rendered, "2 / 1")
}

func (suite *StylesTestSuite) TestRenderSummaryEmptyReport() {
	rep := report.Build(nil, "closed_positions.csv", 10)
	rendered := RenderSummary(rep)

	suite.Contains(rendered, "0.00%")
	suite.Contains(rendered, "0 days")
}
