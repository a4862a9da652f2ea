package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/trade-report/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
	tempDir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	tempDir, err := os.MkdirTemp("", "config_test")
	suite.NoError(err)
	suite.tempDir = tempDir
}

func (suite *ConfigTestSuite) TearDownTest() {
	os.RemoveAll(suite.tempDir)
}

func (suite *ConfigTestSuite) TestDefaultConfigIsValid() {
	config := DefaultConfig()
	suite.NoError(config.Validate())
	suite.Equal("closed_positions.csv", config.DataPath)
	suite.Equal(SourceCSV, config.Source)
	suite.Equal(10, config.TopN)
	suite.Equal(50, config.HistogramBins)
}

func (suite *ConfigTestSuite) TestValidateRejectsBadConfigs() {
	tests := []struct {
		name   string
		mutate func(*ReportConfig)
	}{
		{"missing data path", func(c *ReportConfig) { c.DataPath = "" }},
		{"unknown source", func(c *ReportConfig) { c.Source = "parquet" }},
		{"zero top n", func(c *ReportConfig) { c.TopN = 0 }},
		{"zero bins", func(c *ReportConfig) { c.HistogramBins = 0 }},
		{"missing listen addr", func(c *ReportConfig) { c.ListenAddr = "" }},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			config := DefaultConfig()
			tc.mutate(&config)

			err := config.Validate()
			suite.Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
		})
	}
}

func (suite *ConfigTestSuite) TestLoadConfig() {
	path := filepath.Join(suite.tempDir, "config.yaml")
	content := `
data_path: trades.csv
source: duckdb
listen_addr: ":9000"
top_n: 5
histogram_bins: 25
title: My Trades
`
	suite.NoError(os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	suite.NoError(err)
	suite.Equal("trades.csv", config.DataPath)
	suite.Equal(SourceDuckDB, config.Source)
	suite.Equal(":9000", config.ListenAddr)
	suite.Equal(5, config.TopN)
	suite.Equal(25, config.HistogramBins)
	suite.Equal("My Trades", config.Title)
	// Unspecified fields keep their defaults.
	suite.NotEmpty(config.Description)
}

func (suite *ConfigTestSuite) TestLoadConfigMissingFile() {
	_, err := LoadConfig(filepath.Join(suite.tempDir, "nope.yaml"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidYAML() {
	path := filepath.Join(suite.tempDir, "config.yaml")
	suite.NoError(os.WriteFile(path, []byte("data_path: [unclosed"), 0644))

	_, err := LoadConfig(path)
	suite.Error(err)
}

func (suite *ConfigTestSuite) TestGenerateSchemaJSON() {
	schema, err := DefaultConfig().GenerateSchemaJSON()
	suite.NoError(err)
	suite.Contains(schema, "dataPath")
	suite.Contains(schema, "histogramBins")
}
