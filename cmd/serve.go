package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/supakorn-kn/go-library/auth"
	"github.com/supakorn-kn/go-library/server"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog and the JSON API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	gin.SetMode(gin.ReleaseMode)

	var store sessions.Store
	switch a.env.Session.Store {
	case "mongo":
		store = auth.NewMongoStore(a.conn.GetDatabase(), a.env.Session.Secret, a.env.Session.MaxAge)
	default:
		store = auth.NewCookieStore(a.env.Session.Secret, a.env.Session.MaxAge)
	}

	s, err := server.New(server.Config{
		Port:            a.env.Server.Port,
		ShutdownTimeout: time.Duration(a.env.Server.ShutdownTimeout) * time.Second,
		TitleKeyword:    a.env.Catalog.TitleKeyword,
		SessionStore:    store,
	}, a.models.CatalogStores(), a.models.APIModels(), a.logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Run(ctx); err != nil {
		a.logger.Error("Run server failed", zap.Error(err))
		return err
	}

	a.logger.Info("Server stopped")
	return nil
}
