package logging

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger. format is "console" for human readable
// output or "json".
func New(level, format string) (*zap.Logger, error) {

	parsedLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var config zap.Config

	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.DisableStacktrace = true
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case "json":
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}

	config.Level = zap.NewAtomicLevelAt(parsedLevel)

	return config.Build()
}

// Requests logs one line per request once it is served.
func Requests(logger *zap.Logger) gin.HandlerFunc {

	return func(ctx *gin.Context) {

		start := time.Now()
		path := ctx.Request.URL.Path

		ctx.Next()

		fields := []zap.Field{
			zap.String("method", ctx.Request.Method),
			zap.String("path", path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", ctx.ClientIP()),
		}

		if len(ctx.Errors) > 0 {
			fields = append(fields, zap.String("errors", ctx.Errors.String()))
		}

		switch status := ctx.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("Request served", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("Request served", fields...)
		default:
			logger.Info("Request served", fields...)
		}
	}
}

// Recovery turns a panic into a 500 response and logs it with a stack trace.
func Recovery(logger *zap.Logger) gin.HandlerFunc {

	return gin.CustomRecoveryWithWriter(nil, func(ctx *gin.Context, recovered any) {

		logger.Error("Request panicked",
			zap.String("path", ctx.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)

		ctx.AbortWithStatus(http.StatusInternalServerError)
	})
}
