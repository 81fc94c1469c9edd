package api

import (
	"log/slog"
	"net/http"

	"github.com/avatarmsp/msagen/internal/assembler"
	"github.com/avatarmsp/msagen/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP front end for MSA generation.
type Server struct {
	router    chi.Router
	assembler *assembler.Assembler
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(asm *assembler.Assembler, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		assembler: asm,
		log:       log,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Get("/", s.handleForm)
	r.Post("/generate", s.handleGenerate)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
