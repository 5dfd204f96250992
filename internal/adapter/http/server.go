package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avior/infuser/internal/adapter/http/middleware"
	"github.com/avior/infuser/internal/port"
	"github.com/avior/infuser/internal/service"
)

type Server struct {
	mux        *http.ServeMux
	handlers   *Handlers
	sseHandler *SSEHandler
	tokenHash  string
	gatherer   prometheus.Gatherer
}

type ServerConfig struct {
	DefaultWorker string
	TieBreak      string
	APITokenHash  string
	// Gatherer backs /metrics; nil means the default registry.
	Gatherer prometheus.Gatherer
}

func NewServer(submitter Submitter, registry port.WorkerRegistry, eventBus *service.EventBus, cfg ServerConfig) *Server {
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		mux:        http.NewServeMux(),
		handlers:   NewHandlers(submitter, registry, cfg.DefaultWorker, cfg.TieBreak),
		sseHandler: NewSSEHandler(eventBus),
		tokenHash:  cfg.APITokenHash,
		gatherer:   gatherer,
	}

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /api/jobs", TokenMiddleware(s.tokenHash, s.handlers.SubmitJob()))
	s.mux.HandleFunc("GET /api/workers", TokenMiddleware(s.tokenHash, s.handlers.Workers()))

	s.mux.HandleFunc("GET /events", TokenMiddleware(s.tokenHash, s.sseHandler.Events()))
	s.mux.HandleFunc("GET /{$}", TokenMiddleware(s.tokenHash, s.handlers.StatusPage()))

	s.mux.HandleFunc("GET /healthz", s.handlers.Healthz())
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	middleware.RequestLogger(middleware.SecurityHeaders(s.mux)).ServeHTTP(w, r)
}
