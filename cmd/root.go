package cmd

import (
	"github.com/spf13/cobra"
	"github.com/supakorn-kn/go-library/env"
	"github.com/supakorn-kn/go-library/logging"
	"github.com/supakorn-kn/go-library/mongodb"
	"github.com/supakorn-kn/go-library/server"
	"go.uber.org/zap"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:          "go-library",
	Short:        "Local library catalog",
	SilenceUsage: true,
}

func init() {

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default: ./library.yaml when present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(seedCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// app is what every command needs: settings, a logger and the models over an open connection.
type app struct {
	env    *env.Env
	logger *zap.Logger
	conn   *mongodb.MongoDBConn
	models *server.Models
}

func openApp() (*app, error) {

	config, err := env.Load(configFile)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(config.Log.Level, config.Log.Format)
	if err != nil {
		return nil, err
	}

	conn, err := mongodb.InitConnection(config.MongoDB)
	if err != nil {
		logger.Error("Create MongoDB connection failed", zap.String("host", config.MongoDB.Host), zap.Error(err))
		return nil, err
	}

	models, err := server.NewModels(conn, config.Catalog.PageSize)
	if err != nil {
		conn.Disconnect()
		logger.Error("Prepare collections failed", zap.Error(err))
		return nil, err
	}

	return &app{env: config, logger: logger, conn: conn, models: models}, nil
}

func (a *app) Close() {

	if err := a.conn.Disconnect(); err != nil {
		a.logger.Warn("Disconnect MongoDB failed", zap.Error(err))
	}

	_ = a.logger.Sync()
}
