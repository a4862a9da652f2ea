package types

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/trade-report/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SourceType selects the position file loader implementation.
type SourceType string

const (
	// SourceCSV loads positions with the pure-Go CSV reader.
	SourceCSV SourceType = "csv"
	// SourceDuckDB loads positions through an embedded DuckDB instance.
	SourceDuckDB SourceType = "duckdb"
)

// ReportConfig configures data loading, report computation and the dashboard server.
type ReportConfig struct {
	// DataPath is the location of the closed positions CSV file.
	DataPath string `yaml:"data_path" json:"dataPath" jsonschema:"title=Data Path,description=Path to the closed positions CSV file" validate:"required"`
	// Source selects the loader backend.
	Source SourceType `yaml:"source" json:"source" jsonschema:"title=Source,description=Loader backend,enum=csv,enum=duckdb" validate:"required,oneof=csv duckdb"`
	// ListenAddr is the dashboard HTTP listen address.
	ListenAddr string `yaml:"listen_addr" json:"listenAddr" jsonschema:"title=Listen Address,description=Dashboard HTTP listen address" validate:"required"`
	// TopN is the number of instruments in each ranking.
	TopN int `yaml:"top_n" json:"topN" jsonschema:"title=Top N,description=Number of instruments per ranking" validate:"required,min=1"`
	// HistogramBins is the number of fixed-width bins per histogram.
	HistogramBins int `yaml:"histogram_bins" json:"histogramBins" jsonschema:"title=Histogram Bins,description=Number of bins per histogram" validate:"required,min=1"`
	// Title shown at the top of the dashboard.
	Title string `yaml:"title" json:"title" jsonschema:"title=Title,description=Dashboard page title"`
	// Description rendered under the title.
	Description string `yaml:"description" json:"description" jsonschema:"title=Description,description=Dashboard page description"`
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() ReportConfig {
	return ReportConfig{
		DataPath:      "closed_positions.csv",
		Source:        SourceCSV,
		ListenAddr:    ":8080",
		TopN:          10,
		HistogramBins: 50,
		Title:         "My Trading Performance Analysis",
		Description: "This interactive dashboard analyzes a personal trading history, " +
			"providing insights into overall profitability, instrument performance, and trading patterns.",
	}
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (ReportConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ReportConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return ReportConfig{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config file", err)
	}

	if err := config.Validate(); err != nil {
		return ReportConfig{}, err
	}

	return config, nil
}

// Validate validates the ReportConfig struct.
func (c *ReportConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid report config", err)
	}

	return nil
}

// GenerateSchemaJSON generates a JSON schema for the config file.
func (c ReportConfig) GenerateSchemaJSON() (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(c)

	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
