// Package http exposes the worker's inbound surface: the job source pushes
// notifications to the webhook endpoints, and /healthz reports liveness. The
// engine stays transport-independent; handlers only decode and forward.
package http

import (
	"context"
	"net/http"

	"github.com/soundforge/seller/internal/port"
)

// Engine is the subset of the fulfillment engine the webhook needs.
type Engine interface {
	HandleNotification(ctx context.Context, n port.Notification)
	HandleEvaluation(ctx context.Context, jobID string)
}

type Server struct {
	mux      *http.ServeMux
	handlers *Handlers
}

func NewServer(engine Engine) *Server {
	mux := http.NewServeMux()
	handlers := NewHandlers(engine)

	s := &Server{
		mux:      mux,
		handlers: handlers,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /webhook/jobs", s.handlers.JobNotification())
	s.mux.HandleFunc("POST /webhook/evaluations", s.handlers.EvaluationRequest())
	s.mux.HandleFunc("GET /healthz", s.handlers.Health())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
