package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/go-library/apis"
	"github.com/supakorn-kn/go-library/auth"
	"github.com/supakorn-kn/go-library/catalog"
	"github.com/supakorn-kn/go-library/logging"
	"go.uber.org/zap"
)

type Config struct {
	Port            int
	ShutdownTimeout time.Duration
	TitleKeyword    string
	SessionStore    sessions.Store
}

type Server struct {
	engine *gin.Engine
	http   *http.Server
	logger *zap.Logger

	shutdownTimeout time.Duration
}

func New(config Config, stores catalog.Stores, apiModels apis.Models, logger *zap.Logger) (*Server, error) {

	g := gin.New()
	g.Use(
		logging.Requests(logger),
		logging.Recovery(logger),
		auth.Sessions(config.SessionStore),
		auth.LoadUser(stores.Users),
	)

	handler := catalog.NewHandler(stores, config.TitleKeyword, logger)
	if err := handler.Register(g); err != nil {
		return nil, err
	}

	apis.Register(g.Group("api"), apiModels)

	return &Server{
		engine: g,
		http: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.Port),
			Handler:           g,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:          logger,
		shutdownTimeout: config.ShutdownTimeout,
	}, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then waits up to the shutdown timeout for
// in-flight requests.
func (s *Server) Run(ctx context.Context) error {

	listener, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listener)
}

func (s *Server) Serve(ctx context.Context, listener net.Listener) error {

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.http.Serve(listener)
	}()

	s.logger.Info("Server started", zap.String("addr", listener.Addr().String()))

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
