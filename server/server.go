package server

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"padmon/boundary"
	"padmon/export"
	"padmon/internal"
	"padmon/internal/config"
	"padmon/models"
)

const (
	analyzeEndpoint   = "/api/analyze"
	runsEndpoint      = "/api/runs"
	runEndpoint       = "/api/runs/:id"
	runExportEndpoint = "/api/runs/:id/export"
	districtsEndpoint = "/api/districts"
	boundaryEndpoint  = "/api/districts/:name/boundaries"
	kelurahanEndpoint = "/api/districts/:name/kelurahan"
	wsEndpoint        = "/ws"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	upgrader   websocket.Upgrader
	service    *AnalysisService
	boundaries *boundary.Manager
	logger     internal.LogHandler

	mux     sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewServer(conf *config.Config, service *AnalysisService, logger internal.LogHandler) *Server {
	server := Server{
		conf:     conf,
		service:  service,
		logger:   logger,
		upgrader: websocket.Upgrader{},
		clients:  make(map[*websocket.Conn]bool),
	}
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port),
		Handler: router,
	}
	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(analyzeEndpoint, s.handleAnalyze)
	router.GET(runsEndpoint, s.handleRuns)
	router.GET(runEndpoint, s.handleRun)
	router.GET(runExportEndpoint, s.handleExport)
	router.GET(districtsEndpoint, s.handleDistricts)
	router.GET(boundaryEndpoint, s.handleBoundaries)
	router.GET(kelurahanEndpoint, s.handleKelurahan)
	router.GET(wsEndpoint, s.handleWsRequest)
}

func (s *Server) SetBoundaries(boundaries *boundary.Manager) {
	s.boundaries = boundaries
}

func (s *Server) Start() error {
	if s.conf.Listen.TLS {
		cert, err := tls.LoadX509KeyPair(s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
		if err != nil {
			return fmt.Errorf("failed to load certificate: %v", err)
		}
		s.httpServer.TLSConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
		return s.httpServer.ListenAndServeTLS("", "")
	}
	return s.httpServer.ListenAndServe()
}

type analyzeCommand struct {
	District  string `json:"district"`
	YearStart int    `json:"year_start"`
	YearEnd   int    `json:"year_end"`
	Mode      string `json:"mode"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var cmd analyzeCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		s.logger.Warn(fmt.Sprintf("api: error parsing command from %s: %s", r.RemoteAddr, err))
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if cmd.Mode == "" {
		cmd.Mode = "simulated"
	}
	run, err := s.service.Analyze(r.Context(), cmd.District, cmd.YearStart, cmd.YearEnd, cmd.Mode)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("api: analyze %s failed: %s", cmd.District, err))
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	runs, err := s.service.GetRuns(r.URL.Query().Get("district"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleRun(w http.ResponseWriter, _ *http.Request, params httprouter.Params) {
	run, err := s.service.GetRun(params.ByName("id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	run, err := s.service.GetRun(params.ByName("id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if run.Status != models.RunCompleted {
		s.writeError(w, http.StatusConflict, "run did not complete; nothing to export")
		return
	}
	report := export.FromRun(run, time.Now().UTC())
	format := r.URL.Query().Get("format")
	var data []byte
	var contentType, filename string
	switch format {
	case "", "csv":
		data, err = report.CSV()
		contentType = "text/csv"
		filename = fmt.Sprintf("bkd_pad_report_%s.csv", run.District)
	case "xlsx":
		data, err = report.Excel()
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = fmt.Sprintf("bkd_pad_report_%s.xlsx", run.District)
	case "json":
		data, err = report.JSON()
		contentType = "application/json"
		filename = fmt.Sprintf("bkd_pad_report_%s.json", run.District)
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported export format %q", format))
		return
	}
	if err != nil {
		s.logger.Error(fmt.Sprintf("export of run %s", run.Id), err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleDistricts(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	tables := s.service.Tables()
	districts := make([]models.District, 0, len(tables.Districts))
	for _, d := range tables.Districts {
		districts = append(districts, d)
	}
	s.writeJSON(w, http.StatusOK, districts)
}

func (s *Server) handleBoundaries(w http.ResponseWriter, _ *http.Request, params httprouter.Params) {
	if s.boundaries == nil {
		s.writeError(w, http.StatusNotFound, "boundary data is not configured")
		return
	}
	features, err := s.boundaries.ByDistrict(params.ByName("name"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, features)
}

func (s *Server) handleKelurahan(w http.ResponseWriter, _ *http.Request, params httprouter.Params) {
	if s.boundaries == nil {
		s.writeError(w, http.StatusNotFound, "boundary data is not configured")
		return
	}
	names, err := s.boundaries.Kelurahan(params.ByName("name"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleWsRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("ws: upgrade failed for %s: %s", r.RemoteAddr, err))
		return
	}
	s.mux.Lock()
	s.clients[conn] = true
	s.mux.Unlock()
	s.logger.Debug(fmt.Sprintf("ws: client connected from %s", r.RemoteAddr))

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.mux.Lock()
				delete(s.clients, conn)
				s.mux.Unlock()
				_ = conn.Close()
				return
			}
		}
	}()
}

type runEvent struct {
	RunId    string            `json:"run_id"`
	District string            `json:"district"`
	Status   models.RunStatus  `json:"status"`
	Error    string            `json:"error,omitempty"`
	Summary  models.RunSummary `json:"summary"`
}

// RunListener events are pushed to every connected dashboard client.
func (s *Server) OnRunStarted(run *models.AnalysisRun) {
	s.broadcast(runEvent{RunId: run.Id, District: run.District, Status: run.Status})
}

func (s *Server) OnRunCompleted(run *models.AnalysisRun) {
	s.broadcast(runEvent{RunId: run.Id, District: run.District, Status: run.Status, Summary: run.Summary})
}

func (s *Server) OnRunFailed(run *models.AnalysisRun) {
	s.broadcast(runEvent{RunId: run.Id, District: run.District, Status: run.Status, Error: run.Error})
}

func (s *Server) broadcast(event runEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	for conn := range s.clients {
		if err = conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(s.clients, conn)
			_ = conn.Close()
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encoding response failed", err)
	}
}
