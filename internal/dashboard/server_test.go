package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/trade-report/internal/datasource"
	"github.com/rxtech-lab/trade-report/internal/logger"
	"github.com/rxtech-lab/trade-report/internal/types"
	"github.com/stretchr/testify/suite"
)

const serverTestCSV = `instrument,sell_date,realized_profit_loss,holding_period_days
AAPL,2024-01-02,100,5
MSFT,2024-02-03,-50,10
AAPL,2024-03-04,25,15
`

type ServerTestSuite struct {
	suite.Suite
	tempDir string
	server  *Server
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (suite *ServerTestSuite) SetupTest() {
	tempDir, err := os.MkdirTemp("", "dashboard_test")
	suite.NoError(err)
	suite.tempDir = tempDir

	dataPath := filepath.Join(tempDir, "closed_positions.csv")
	suite.NoError(os.WriteFile(dataPath, []byte(serverTestCSV), 0644))

	log, err := logger.NewLogger()
	suite.NoError(err)

	config := types.DefaultConfig()
	config.DataPath = dataPath

	source := datasource.NewCachedPositionSource(datasource.NewCSVPositionSource(log), log)
	suite.NoError(source.Initialize(dataPath))

	server, err := NewServer(config, source, log)
	suite.NoError(err)
	suite.server = server
}

func (suite *ServerTestSuite) TearDownTest() {
	os.RemoveAll(suite.tempDir)
}

func (suite *ServerTestSuite) TestDashboardPage() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	suite.server.httpServer.Handler.ServeHTTP(rec, req)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	suite.Contains(body, "My Trading Performance Analysis")
	suite.Contains(body, "chart-cumulative")
	suite.Contains(body, "chart-top")
	suite.Contains(body, "chart-bottom")
	suite.Contains(body, "chart-holding")
	suite.Contains(body, "chart-outcome")
	suite.Contains(body, "chart-pl")
}

func (suite *ServerTestSuite) TestReportAPI() {
	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rec := httptest.NewRecorder()

	suite.server.httpServer.Handler.ServeHTTP(rec, req)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Header().Get("Content-Type"), "application/json")

	var vm ViewModel
	suite.NoError(json.Unmarshal(rec.Body.Bytes(), &vm))

	suite.Len(vm.Metrics, 4)
	suite.Equal("$75.00", vm.Metrics[0].Value)
	suite.Len(vm.Cumulative, 3)
	suite.NotEmpty(vm.ReportID)
}

func (suite *ServerTestSuite) TestReportAPIRecomputesPerRequest() {
	first := httptest.NewRecorder()
	suite.server.httpServer.Handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/report", nil))

	second := httptest.NewRecorder()
	suite.server.httpServer.Handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/report", nil))

	var firstVM, secondVM ViewModel
	suite.NoError(json.Unmarshal(first.Body.Bytes(), &firstVM))
	suite.NoError(json.Unmarshal(second.Body.Bytes(), &secondVM))

	// Each request is a fresh report run over the same cached table.
	suite.NotEqual(firstVM.ReportID, secondVM.ReportID)
	suite.Equal(firstVM.Metrics, secondVM.Metrics)
}

func (suite *ServerTestSuite) TestReportAPIDataUnavailable() {
	suite.NoError(os.Remove(filepath.Join(suite.tempDir, "closed_positions.csv")))

	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rec := httptest.NewRecorder()

	suite.server.httpServer.Handler.ServeHTTP(rec, req)

	suite.Equal(http.StatusInternalServerError, rec.Code)
	suite.Contains(rec.Body.String(), "failed to build report")
}

func (suite *ServerTestSuite) TestBuildViewModel() {
	vm, err := suite.server.BuildViewModel()
	suite.NoError(err)
	suite.Equal("3", vm.Metrics[1].Value)
	suite.Len(vm.TopInstruments, 2)
}
