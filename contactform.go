// Package contactform wires the contact wizard, the submission pipeline and
// the HTTP API from a single Config.
package contactform

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/pkg/httpapi"
	"github.com/goliatone/go-contactform/pkg/i18n"
	"github.com/goliatone/go-contactform/pkg/mail"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/openapi"
	"github.com/goliatone/go-contactform/pkg/pipeline"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/session"
	"github.com/goliatone/go-contactform/pkg/wizard"
)

// Config aliases the environment-backed configuration.
type Config = config.Config

// FormData aliases model.FormData for callers of the top-level package.
type FormData = model.FormData

// SubmissionResult aliases model.SubmissionResult.
type SubmissionResult = model.SubmissionResult

// ShutdownTimeout bounds graceful HTTP shutdown.
const ShutdownTimeout = 10 * time.Second

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	return config.Load()
}

// NewPipeline builds the submission pipeline described by cfg. Extra options
// are applied last and win over cfg.
func NewPipeline(cfg Config, logger *zap.Logger, options ...pipeline.Option) (*pipeline.Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer, err := render.NewEmailRenderer(render.WithThemeVariant(cfg.ThemeVariant))
	if err != nil {
		return nil, fmt.Errorf("contactform: %w", err)
	}

	opts := []pipeline.Option{
		pipeline.WithSender(mail.NewFromConfig(cfg.ResendAPIKey)),
		pipeline.WithSendTimeout(cfg.SendTimeout),
		pipeline.WithAddresses(cfg.From, cfg.Recipients()...),
		pipeline.WithLocale(cfg.Locale),
		pipeline.WithEmailRenderer(renderer),
		pipeline.WithLogger(logger.Named("pipeline")),
	}
	p, err := pipeline.New(append(opts, options...)...)
	if err != nil {
		return nil, fmt.Errorf("contactform: %w", err)
	}
	return p, nil
}

// PipelineSubmitter adapts p to the wizard's submission capability.
func PipelineSubmitter(p *pipeline.Pipeline) wizard.Submitter {
	return wizard.SubmitterFunc(func(ctx context.Context, form model.FormData) (model.SubmissionResult, error) {
		if p == nil {
			return model.SubmissionResult{}, errors.New("contactform: pipeline is required")
		}
		return p.Submit(ctx, form), nil
	})
}

// NewWizard returns a wizard that submits through submitter.
func NewWizard(submitter wizard.Submitter, options ...wizard.Option) *wizard.Wizard {
	return wizard.New(append([]wizard.Option{wizard.WithSubmitter(submitter)}, options...)...)
}

// Server is the HTTP front of the contact form with its session store.
type Server struct {
	addr   string
	http   *http.Server
	store  *session.MemoryStore
	logger *zap.Logger
}

// NewServer builds the HTTP API over p using the address and session TTL from
// cfg.
func NewServer(ctx context.Context, cfg Config, p *pipeline.Pipeline, logger *zap.Logger) (*Server, error) {
	if p == nil {
		return nil, errors.New("contactform: pipeline is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	store := session.NewMemoryStore(
		session.WithTTL(cfg.SessionTTL),
		session.WithLogger(logger.Named("session")),
	)
	manager := session.NewManager(store,
		session.WithWizardOptions(
			wizard.WithSubmitter(PipelineSubmitter(p)),
			wizard.WithLogger(logger.Named("wizard")),
		),
		session.WithManagerLogger(logger.Named("session")),
	)

	validator, err := openapi.NewValidator(ctx)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("contactform: %w", err)
	}
	api, err := httpapi.New(p,
		httpapi.WithLogger(logger.Named("http")),
		httpapi.WithCatalog(i18n.Default()),
		httpapi.WithSessions(manager),
		httpapi.WithValidator(validator),
	)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("contactform: %w", err)
	}

	return &Server{
		addr: cfg.HTTPAddr,
		http: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           api.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		store:  store,
		logger: logger,
	}, nil
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe listens on the configured address and serves until ctx is
// done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		_ = s.store.Close()
		return fmt.Errorf("contactform: listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully and closes the session store.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("contactform: serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()
		s.logger.Info("http server shutting down")
		err := s.http.Shutdown(shutdownCtx)
		if closeErr := s.store.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		return err
	})

	return g.Wait()
}
