package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-report/internal/dashboard"
	"github.com/rxtech-lab/trade-report/internal/datasource"
	"github.com/rxtech-lab/trade-report/internal/logger"
	"github.com/rxtech-lab/trade-report/internal/report"
	"github.com/rxtech-lab/trade-report/internal/types"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// resolveConfig builds the effective config from the optional config file and
// the command line flags. Flags win over file values.
func resolveConfig(cmd *cli.Command) (types.ReportConfig, error) {
	config := types.DefaultConfig()

	if configPath := cmd.String("config"); configPath != "" {
		loaded, err := types.LoadConfig(configPath)
		if err != nil {
			return types.ReportConfig{}, err
		}

		config = loaded
	}

	if cmd.IsSet("data") {
		config.DataPath = cmd.String("data")
	}

	if cmd.IsSet("source") {
		config.Source = types.SourceType(cmd.String("source"))
	}

	if cmd.IsSet("addr") {
		config.ListenAddr = cmd.String("addr")
	}

	if cmd.IsSet("top") {
		config.TopN = int(cmd.Int("top"))
	}

	if cmd.IsSet("bins") {
		config.HistogramBins = int(cmd.Int("bins"))
	}

	if err := config.Validate(); err != nil {
		return types.ReportConfig{}, err
	}

	return config, nil
}

// openSource creates the configured position source wrapped in the
// modtime-invalidated cache.
func openSource(config types.ReportConfig, log *logger.Logger) (*datasource.CachedPositionSource, error) {
	underlying, err := datasource.NewPositionSource(config.Source, log)
	if err != nil {
		return nil, err
	}

	cached := datasource.NewCachedPositionSource(underlying, log)
	if err := cached.Initialize(config.DataPath); err != nil {
		return nil, err
	}

	return cached, nil
}

// buildReport loads the full table and computes the report. Any load failure
// is fatal to the calling command: there is no partial rendering and no
// fallback dataset.
func buildReport(config types.ReportConfig, source *datasource.CachedPositionSource) (types.Report, error) {
	positions, err := source.Load(optional.None[time.Time](), optional.None[time.Time]())
	if err != nil {
		return types.Report{}, err
	}

	return report.Build(positions, config.DataPath, config.TopN), nil
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	config, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	source, err := openSource(config, log)
	if err != nil {
		return err
	}
	defer source.Close()

	// Fail fast before binding the port when the data file is unusable.
	if _, err := buildReport(config, source); err != nil {
		return err
	}

	server, err := dashboard.NewServer(config, source, log)
	if err != nil {
		return err
	}

	serveCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-serveCtx.Done():
	}

	log.Info("shutting down dashboard")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Stop(shutdownCtx)
}

func summaryAction(ctx context.Context, cmd *cli.Command) error {
	config, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	source, err := openSource(config, log)
	if err != nil {
		return err
	}
	defer source.Close()

	rep, err := buildReport(config, source)
	if err != nil {
		return err
	}

	fmt.Print(RenderSummary(rep))

	return nil
}

func exportAction(ctx context.Context, cmd *cli.Command) error {
	config, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	source, err := openSource(config, log)
	if err != nil {
		return err
	}
	defer source.Close()

	rep, err := buildReport(config, source)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if err := types.WriteReport(output, rep); err != nil {
		return err
	}

	log.Info("report exported",
		zap.String("output", output),
		zap.Int("trades", rep.Summary.TotalTrades))

	return nil
}

func schemaAction(ctx context.Context, cmd *cli.Command) error {
	config := types.DefaultConfig()

	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	schemaName := "trade-report-config.json"
	outputDir := cmd.String("output")
	schemaPath := filepath.Join(outputDir, schemaName)
	sampleConfigPath := filepath.Join(outputDir, "trade-report-config.yaml")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0644); err != nil {
		return fmt.Errorf("failed to write schema to file: %w", err)
	}

	// Write a sample config next to the schema if none exists yet.
	if _, err := os.Stat(sampleConfigPath); os.IsNotExist(err) {
		yamlBytes, err := yaml.Marshal(config)
		if err != nil {
			return fmt.Errorf("failed to marshal sample config: %w", err)
		}

		yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)

		if err := os.WriteFile(sampleConfigPath, yamlBytes, 0644); err != nil {
			return fmt.Errorf("failed to write sample config: %w", err)
		}

		log.Printf("Sample config generated at %s", sampleConfigPath)
	}

	log.Printf("Schema generated at %s", schemaPath)

	return nil
}

// commonFlags returns the flags shared by the report-building commands.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML config file",
		},
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "Path to the closed positions CSV file",
		},
		&cli.StringFlag{
			Name:    "source",
			Aliases: []string{"s"},
			Usage:   fmt.Sprintf("Loader backend (%s, %s)", types.SourceCSV, types.SourceDuckDB),
		},
		&cli.IntFlag{
			Name:  "top",
			Usage: "Number of instruments per ranking",
		},
		&cli.IntFlag{
			Name:  "bins",
			Usage: "Number of histogram bins",
		},
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "report",
		Usage: "Analyze a personal trading history and serve it as an interactive dashboard",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the dashboard HTTP server",
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "HTTP listen address",
					}),
				Action: serveAction,
			},
			{
				Name:   "summary",
				Usage:  "Print the performance summary to the terminal",
				Flags:  commonFlags(),
				Action: summaryAction,
			},
			{
				Name:  "export",
				Usage: "Write the full computed report to a YAML file",
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "report.yaml",
					}),
				Action: exportAction,
			},
			{
				Name:  "generate",
				Usage: "Generate a synthetic closed positions file for trying out the dashboard",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output CSV path",
						Value:   "closed_positions.csv",
					},
					&cli.IntFlag{
						Name:    "rows",
						Aliases: []string{"n"},
						Usage:   "Number of closed positions to generate",
						Value:   250,
					},
					&cli.IntFlag{
						Name:  "seed",
						Usage: "Random seed (0 uses the current time)",
						Value: 0,
					},
				},
				Action: generateAction,
			},
			{
				Name:  "schema",
				Usage: "Generate the JSON schema and a sample YAML config",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   "config",
					},
				},
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
