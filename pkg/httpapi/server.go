package httpapi

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/i18n"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/openapi"
	"github.com/goliatone/go-contactform/pkg/pipeline"
	"github.com/goliatone/go-contactform/pkg/session"
)

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes int64 = 64 << 10

// ContactPipeline is the submission capability served at /api/contact.
type ContactPipeline interface {
	SubmitDetailed(ctx context.Context, form model.FormData) pipeline.Report
}

// Catalog translates messages and negotiates locales.
type Catalog interface {
	i18n.Translator
	Negotiate(acceptLanguage string) string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCatalog sets the message catalog.
func WithCatalog(catalog Catalog) Option {
	return func(s *Server) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithSessions enables the wizard session routes.
func WithSessions(manager *session.Manager) Option {
	return func(s *Server) {
		s.sessions = manager
	}
}

// WithValidator overrides the embedded document validator.
func WithValidator(v *openapi.Validator) Option {
	return func(s *Server) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// Server holds the HTTP handlers.
type Server struct {
	pipeline  ContactPipeline
	sessions  *session.Manager
	validator *openapi.Validator
	catalog   Catalog
	logger    *zap.Logger
	maxBody   int64
}

// New builds a server for p.
func New(p ContactPipeline, options ...Option) (*Server, error) {
	if p == nil {
		return nil, errors.New("httpapi: pipeline is required")
	}
	s := &Server{
		pipeline: p,
		catalog:  i18n.Default(),
		logger:   zap.NewNop(),
		maxBody:  DefaultMaxBodyBytes,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.validator == nil {
		v, err := openapi.NewValidator(context.Background())
		if err != nil {
			return nil, err
		}
		s.validator = v
	}
	return s, nil
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /openapi.yaml", s.handleDocument)

	api := http.NewServeMux()
	api.HandleFunc("POST /api/contact", s.handleContact)
	if s.sessions != nil {
		api.HandleFunc("POST /api/wizard/sessions", s.handleCreateSession)
		api.HandleFunc("GET /api/wizard/sessions/{id}", s.handleGetSession)
		api.HandleFunc("POST /api/wizard/sessions/{id}/events", s.handleEvent)
	}
	mux.Handle("/api/", s.validate(api))

	return s.recoverer(s.logRequests(s.withLocale(s.limitBody(mux))))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleDocument(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapi.Raw())
}

func (s *Server) message(ctx context.Context, key string) string {
	return i18n.Message(s.catalog, i18n.LocaleFrom(ctx, i18n.DefaultLocale), key)
}
