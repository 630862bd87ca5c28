package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guidekit-labs/guidekit/internal/manifest"
	"github.com/guidekit-labs/guidekit/internal/resolver"
)

// Config configures the registry server.
type Config struct {
	Addr       string
	Store      *manifest.Store
	GuidesRoot string
	// Watch enables fsnotify-based manifest reloads on file change.
	Watch  bool
	Logger zerolog.Logger
}

// Server serves the registry API. All read endpoints operate on the store's
// current snapshot; reloads swap it atomically, so in-flight requests keep
// the manifest they started with.
type Server struct {
	cfg     Config
	cache   *resolver.Cache
	log     zerolog.Logger
	router  *gin.Engine
	httpSrv *http.Server
}

// NewLogger builds the server's default zerolog logger.
func NewLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Str("app", "guidekit").Logger()
}

// New builds a server from the config. The store must already hold a loaded
// manifest.
func New(cfg Config) *Server {
	s := &Server{
		cfg:   cfg,
		cache: resolver.NewCache(),
		log:   cfg.Logger,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.log), requestMetrics())
	s.registerRoutes(router)
	s.router = router
	return s
}

// Router returns the underlying gin engine, mainly for tests and embedding.
func (s *Server) Router() *gin.Engine { return s.router }

// Run starts the HTTP listener and, when configured, the manifest watcher.
// It blocks until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.Watch {
		stop, err := s.watchManifest(ctx)
		if err != nil {
			return err
		}
		defer stop()
	}

	s.httpSrv = &http.Server{Addr: s.cfg.Addr, Handler: s.router}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("listening")
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

// reload re-reads the manifest and records the outcome. A failed reload
// keeps the prior manifest active.
func (s *Server) reload() (*manifest.Manifest, error) {
	m, err := s.cfg.Store.Reload()
	recordReload(err)
	if err != nil {
		s.log.Error().Err(err).Msg("manifest reload failed, keeping previous manifest")
		return nil, err
	}
	s.log.Info().Str("checksum", m.Checksum).Int("entries", m.EntryCount()).Msg("manifest reloaded")
	return m, nil
}
