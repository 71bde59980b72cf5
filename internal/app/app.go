// Package app wires configuration, storage, services and the HTTP surface
// into a runnable server.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"

	"github.com/promoforge/promoforge/config"
	"github.com/promoforge/promoforge/internal/database"
	"github.com/promoforge/promoforge/internal/domain"
	apphttp "github.com/promoforge/promoforge/internal/http"
	"github.com/promoforge/promoforge/internal/http/middleware"
	"github.com/promoforge/promoforge/internal/repository"
	"github.com/promoforge/promoforge/internal/service"
	"github.com/promoforge/promoforge/pkg/cache"
	"github.com/promoforge/promoforge/pkg/logger"
	"github.com/promoforge/promoforge/pkg/mailer"
	"github.com/promoforge/promoforge/pkg/ratelimiter"
	"github.com/promoforge/promoforge/pkg/tracing"
)

// AppInterface is what cmd/api and tests program against.
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetTemplateService() domain.TemplateService
	GetRenderService() domain.RenderService
	GetCopyService() domain.CopyService
}

type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB
	mailer mailer.Mailer

	templateRepo domain.TemplateRepository

	templateService domain.TemplateService
	renderService   domain.RenderService
	copyService     domain.CopyService

	previewLimiter *ratelimiter.RateLimiter
	previewCache   cache.Cache

	mux           *http.ServeMux
	server        *http.Server
	serverMu      sync.RWMutex
	serverStarted chan struct{}

	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	shutdownTimeout time.Duration
	activeRequests  int64
	requestWg       sync.WaitGroup

	// stops ocsql stat recording, set when tracing is enabled
	dbStatsStop func()
}

// AppOption configures the App during construction, mostly for tests.
type AppOption func(*App)

// WithMockDB injects a database handle; InitDB then skips connecting.
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithMockMailer injects a mailer; InitMailer then skips SMTP setup.
func WithMockMailer(m mailer.Mailer) AppOption {
	return func(a *App) {
		a.mailer = m
	}
}

// WithLogger overrides the default logger.
func WithLogger(l logger.Logger) AppOption {
	return func(a *App) {
		a.logger = l
	}
}

func NewApp(cfg *config.Config, opts ...AppOption) *App {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// Initialize sets up every component in dependency order.
func (a *App) Initialize() error {
	if err := a.InitTracing(); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := a.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := a.InitMailer(); err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}
	a.InitRepositories()
	a.InitServices()
	a.InitHandlers()
	return nil
}

func (a *App) InitTracing() error {
	if !a.config.Tracing.Enabled {
		return nil
	}

	if err := tracing.InitTracing(&a.config.Tracing); err != nil {
		return err
	}

	a.logger.WithField("service_name", a.config.Tracing.ServiceName).
		WithField("trace_exporter", a.config.Tracing.TraceExporter).
		Info("Tracing initialized")
	return nil
}

func (a *App) InitDB() error {
	// A handle injected via WithMockDB wins
	if a.db != nil {
		return nil
	}

	a.logger.WithField("host", a.config.Database.Host).
		WithField("database", a.config.Database.DBName).
		Info("Connecting to database")

	driverName := ""
	if a.config.Tracing.Enabled {
		name, err := tracing.RegisterPostgresDriver()
		if err != nil {
			return fmt.Errorf("failed to register traced sql driver: %w", err)
		}
		driverName = name
	}

	db, err := database.Connect(&a.config.Database, driverName)
	if err != nil {
		return err
	}
	a.db = db

	if a.config.Tracing.Enabled {
		a.dbStatsStop = ocsql.RecordStats(a.db, 5*time.Second)
	}

	if err := database.InitializeDatabase(a.db); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return nil
}

func (a *App) InitMailer() error {
	if a.mailer != nil {
		return nil
	}

	cfg := &mailer.Config{
		SMTPHost:     a.config.SMTP.Host,
		SMTPPort:     a.config.SMTP.Port,
		SMTPUsername: a.config.SMTP.Username,
		SMTPPassword: a.config.SMTP.Password,
		FromEmail:    a.config.SMTP.FromEmail,
		FromName:     a.config.SMTP.FromName,
	}

	if a.config.IsDevelopment() {
		a.logger.Info("Development environment detected, test sends are logged instead of delivered")
		a.mailer = mailer.NewTestSMTPMailer(cfg)
		return nil
	}

	if cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST is required outside development")
	}

	a.mailer = mailer.NewSMTPMailer(cfg)
	return nil
}

func (a *App) InitRepositories() {
	a.templateRepo = repository.NewTemplateRepository(a.db)
}

func (a *App) InitServices() {
	a.templateService = service.NewTemplateService(a.templateRepo, a.logger)
	a.renderService = service.NewRenderService(a.templateService, a.mailer, a.logger)
	a.copyService = service.NewCopyImportService(a.logger)
}

func (a *App) InitHandlers() {
	auth := middleware.NewAuthMiddleware(a.config.Security.JWTSecret, a.config.Security.APITokenHash)

	// Public preview links are rate limited per client and memoized
	a.previewLimiter = ratelimiter.NewRateLimiter()
	a.previewLimiter.SetPolicy("preview", 60, time.Minute)
	a.previewCache = cache.NewInMemoryCache(5 * time.Minute)

	templateHandler := apphttp.NewTemplateHandler(a.templateService, auth, a.logger)
	renderHandler := apphttp.NewRenderHandler(a.renderService, auth, a.logger)
	copyHandler := apphttp.NewCopyHandler(a.copyService, auth, a.logger)
	previewHandler := apphttp.NewPreviewHandler(a.renderService, auth,
		a.config.Security.PreviewLinkSecret, a.config.APIEndpoint,
		a.previewLimiter, a.previewCache, a.logger)

	templateHandler.RegisterRoutes(a.mux)
	renderHandler.RegisterRoutes(a.mux)
	copyHandler.RegisterRoutes(a.mux)
	previewHandler.RegisterRoutes(a.mux)

	version := a.config.Version
	a.mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","version":%q}`, version)
	})
}

// Start builds the middleware chain and blocks serving HTTP.
func (a *App) Start() error {
	var handler http.Handler = a.mux

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
	}
	handler = middleware.CORSMiddleware(handler)
	handler = a.gracefulShutdownMiddleware(handler)

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).
		WithField("api_endpoint", a.config.APIEndpoint).
		Info("Server starting")

	a.serverMu.Lock()
	if a.serverStarted != nil {
		close(a.serverStarted)
	}
	a.serverStarted = make(chan struct{})
	a.server = &http.Server{
		Addr:    addr,
		Handler: handler,
	}
	serverStarted := a.serverStarted
	a.serverMu.Unlock()

	close(serverStarted)

	err := a.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// WaitForServerStart blocks until Start has created the server, or the
// timeout elapses.
func (a *App) WaitForServerStart(timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		a.serverMu.RLock()
		started := a.serverStarted
		a.serverMu.RUnlock()

		if started != nil {
			select {
			case <-started:
				return true
			case <-deadline:
				return false
			}
		}

		select {
		case <-deadline:
			return false
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Shutdown drains in-flight requests and releases resources.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown")
	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		return a.cleanupResources()
	}

	timeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var shutdownErr error
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithField("error", err.Error()).Error("HTTP server shutdown failed")
		shutdownErr = err
	}

	requestsDone := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(requestsDone)
	}()

	select {
	case <-requestsDone:
		a.logger.Info("All requests completed")
	case <-shutdownCtx.Done():
		a.logger.WithField("active_requests", a.getActiveRequestCount()).
			Warn("Shutdown timeout reached with requests still active")
	}

	if err := a.cleanupResources(); err != nil && shutdownErr == nil {
		shutdownErr = err
	}
	return shutdownErr
}

func (a *App) cleanupResources() error {
	if a.previewLimiter != nil {
		a.previewLimiter.Stop()
	}
	if a.previewCache != nil {
		a.previewCache.Stop()
	}
	if a.dbStatsStop != nil {
		a.dbStatsStop()
	}

	if a.db != nil {
		a.logger.Info("Closing database connection")
		if err := a.db.Close(); err != nil {
			a.logger.WithField("error", err.Error()).Error("Error closing database connection")
			return err
		}
	}
	return nil
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware tracks in-flight requests so Shutdown can
// drain them, and rejects new work once shutdown has begun.
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			http.Error(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		atomic.AddInt64(&a.activeRequests, 1)
		a.requestWg.Add(1)
		defer func() {
			atomic.AddInt64(&a.activeRequests, -1)
			a.requestWg.Done()
		}()

		next.ServeHTTP(w, r)
	})
}

func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

func (a *App) GetConfig() *config.Config { return a.config }

func (a *App) GetLogger() logger.Logger { return a.logger }

func (a *App) GetMux() *http.ServeMux { return a.mux }

func (a *App) GetTemplateService() domain.TemplateService { return a.templateService }

func (a *App) GetRenderService() domain.RenderService { return a.renderService }

func (a *App) GetCopyService() domain.CopyService { return a.copyService }
