// Package web serves the browser-facing HTTP application: auth pages, the
// upload endpoint, the dashboard and the PDF report download.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/studynotes/internal/logging"
	"github.com/dmitrijs2005/studynotes/internal/server/models"
	"github.com/dmitrijs2005/studynotes/internal/server/services"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Authenticator is implemented by services.UserService.
type Authenticator interface {
	Register(ctx context.Context, c services.Credentials) (*services.Session, error)
	Login(ctx context.Context, c services.Credentials) (*services.Session, error)
	Authenticate(token string) (*services.Session, error)
}

// Documents is implemented by services.DocumentService.
type Documents interface {
	Process(ctx context.Context, sess *services.Session, up services.Upload) (*models.History, error)
	ListHistory(ctx context.Context, userID string) ([]*models.History, error)
	LatestReport(ctx context.Context, userID string) ([]byte, error)
}

type Server struct {
	address string
	logger  logging.Logger
	users   Authenticator
	docs    Documents
	// maxUploadSize caps the upload body in bytes; 0 means no limit.
	maxUploadSize int64
}

func NewServer(address string, l logging.Logger, users Authenticator, docs Documents, maxUploadSize int64) *Server {
	return &Server{
		address:       address,
		logger:        l.With("module", "http_server"),
		users:         users,
		docs:          docs,
		maxUploadSize: maxUploadSize,
	}
}

// Handler returns the routed application with access logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.withSession(s.handleIndex))
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	mux.HandleFunc("GET /register", s.handleRegisterPage)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /logout", s.handleLogout)

	mux.HandleFunc("GET /upload", s.requirePage(s.handleUploadPage))
	mux.HandleFunc("POST /upload", s.requireAPI(s.handleUpload))
	mux.HandleFunc("GET /download_pdf", s.requireAPI(s.handleDownloadPDF))
	mux.HandleFunc("GET /dashboard", s.requirePage(s.handleDashboard))

	return s.accessLog(mux)
}

func (s *Server) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *Server) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
