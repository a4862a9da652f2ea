// Package dashboard renders the trading report as an interactive single-page
// dashboard. The server recomputes the report from the (cached) position
// table on every request and notifies connected browsers over a websocket
// when the underlying position file changes.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-report/internal/datasource"
	"github.com/rxtech-lab/trade-report/internal/logger"
	"github.com/rxtech-lab/trade-report/internal/report"
	"github.com/rxtech-lab/trade-report/internal/types"
	"go.uber.org/zap"
)

// watchInterval is how often the source file's modification time is polled.
const watchInterval = 2 * time.Second

// Server serves the dashboard page, the report API and the reload websocket.
type Server struct {
	config types.ReportConfig
	source *datasource.CachedPositionSource
	logger *logger.Logger

	httpServer *http.Server
	upgrader   websocket.Upgrader
	template   *template.Template

	clients   map[*websocket.Conn]bool
	clientsMu sync.RWMutex

	stopWatcher chan struct{}
	isRunning   bool
	mu          sync.Mutex
}

// NewServer creates a dashboard server for the given config and source.
func NewServer(config types.ReportConfig, source *datasource.CachedPositionSource, log *logger.Logger) (*Server, error) {
	pageTemplate, err := template.New("dashboard").Parse(dashboardTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	server := &Server{
		config:      config,
		source:      source,
		logger:      log,
		upgrader:    websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		template:    pageTemplate,
		clients:     make(map[*websocket.Conn]bool),
		stopWatcher: make(chan struct{}),
	}

	router := mux.NewRouter()
	router.HandleFunc("/", server.handleDashboard).Methods("GET")
	router.HandleFunc("/api/report", server.handleReportAPI).Methods("GET")
	router.HandleFunc("/ws", server.handleWebSocket).Methods("GET")

	server.httpServer = &http.Server{
		Addr:         config.ListenAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server, nil
}

// Start starts the HTTP server and the file watcher. It blocks until the
// server stops.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()

		return fmt.Errorf("dashboard server is already running")
	}

	s.isRunning = true
	s.mu.Unlock()

	go s.watchLoop()

	s.logger.Info("dashboard listening",
		zap.String("addr", s.config.ListenAddr),
		zap.String("data", s.config.DataPath))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Stop gracefully shuts down the server and the watcher.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.isRunning = false
	close(s.stopWatcher)

	s.closeClients()

	return s.httpServer.Shutdown(ctx)
}

// BuildViewModel recomputes the report from the cached table and formats it.
func (s *Server) BuildViewModel() (ViewModel, error) {
	positions, err := s.source.Load(optional.None[time.Time](), optional.None[time.Time]())
	if err != nil {
		return ViewModel{}, err
	}

	rep := report.Build(positions, s.config.DataPath, s.config.TopN)

	return BuildViewModel(rep, s.config), nil
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Title       string
		Description string
	}{
		Title:       s.config.Title,
		Description: s.config.Description,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := s.template.Execute(w, data); err != nil {
		s.logger.Error("failed to render dashboard page", zap.Error(err))
	}
}

func (s *Server) handleReportAPI(w http.ResponseWriter, r *http.Request) {
	vm, err := s.BuildViewModel()
	if err != nil {
		s.logger.Error("failed to build report", zap.Error(err))
		http.Error(w, fmt.Sprintf("failed to build report: %v", err), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(vm); err != nil {
		s.logger.Error("failed to encode report", zap.Error(err))
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", zap.Error(err))

		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	// Read loop only to detect the client going away.
	go func() {
		defer func() {
			s.clientsMu.Lock()
			delete(s.clients, conn)
			s.clientsMu.Unlock()
			conn.Close()
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// watchLoop polls the position file and tells connected clients to reload
// when its modification time changes.
func (s *Server) watchLoop() {
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopWatcher:
			return
		case <-ticker.C:
			if s.source.Stale() {
				s.logger.Info("position file changed, notifying clients")
				s.broadcastReload()
			}
		}
	}
}

func (s *Server) broadcastReload() {
	message := []byte(`{"event":"reload"}`)

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for client := range s.clients {
		if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
			s.logger.Warn("failed to notify websocket client", zap.Error(err))
			client.Close()
			delete(s.clients, client)
		}
	}
}

func (s *Server) closeClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
}
