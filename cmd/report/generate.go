package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/trade-report/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

// instrument universe for synthetic histories
var sampleInstruments = []string{
	"AAPL", "MSFT", "GOOG", "AMZN", "NVDA", "TSLA", "META", "AMD",
	"NFLX", "INTC", "DIS", "BA", "PLTR", "SOFI", "COIN", "RIOT",
	"F", "GME", "AMC", "SPY",
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	output := cmd.String("output")
	rows := int(cmd.Int("rows"))

	seed := cmd.Int("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed))

	bar := progressbar.Default(int64(rows), "generating positions")

	start := time.Now().AddDate(-2, 0, 0)
	positions := make([]types.ClosedPosition, 0, rows)

	for i := 0; i < rows; i++ {
		sellDate := start.AddDate(0, 0, rng.Intn(730))
		holdingDays := float64(1 + rng.Intn(120))

		// Slight negative skew so losers are a bit more common than winners,
		// which makes the outcome split visible on the dashboard.
		realizedPL := (rng.Float64() - 0.45) * 500
		realizedPL = float64(int(realizedPL*100)) / 100

		positions = append(positions, types.ClosedPosition{
			Instrument:        sampleInstruments[rng.Intn(len(sampleInstruments))],
			SellDate:          types.NewDate(sellDate.Year(), sellDate.Month(), sellDate.Day()),
			RealizedPL:        realizedPL,
			HoldingPeriodDays: holdingDays,
		})

		_ = bar.Add(1)
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&positions, file); err != nil {
		return fmt.Errorf("failed to write positions: %w", err)
	}

	fmt.Printf("Wrote %d closed positions to %s\n", rows, output)

	return nil
}
