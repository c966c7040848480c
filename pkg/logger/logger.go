// Package logger builds the zap loggers used by the tracker's API server and console.
package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/noah-isme/learning-tracker/pkg/config"
	"github.com/noah-isme/learning-tracker/pkg/middleware/requestid"
)

const appName = "learning-tracker"

// New builds the API server logger. Production uses zap's sampled production preset,
// every other environment the development preset. Each entry carries the app and env.
func New(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Env == config.EnvProduction {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Encoding = "json"
	if cfg.Log.Format == "console" {
		zapCfg.Encoding = "console"
	}
	applyLevel(&zapCfg, cfg.Log.Level, zapcore.InfoLevel)
	zapCfg.InitialFields = map[string]interface{}{"app": appName, "env": cfg.Env}

	return build(zapCfg)
}

// NewCLI builds the console logger. It writes to stderr and defaults to warn so stdout
// carries the tracker dialogue alone.
func NewCLI(level string) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Encoding = "console"
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	zapCfg.DisableStacktrace = true
	applyLevel(&zapCfg, level, zapcore.WarnLevel)

	return build(zapCfg)
}

// applyLevel sets the configured level, falling back for empty or unknown names.
func applyLevel(zapCfg *zap.Config, level string, fallback zapcore.Level) {
	zapCfg.Level = zap.NewAtomicLevelAt(fallback)
	if level == "" {
		return
	}
	if err := zapCfg.Level.UnmarshalText([]byte(level)); err != nil {
		zapCfg.Level = zap.NewAtomicLevelAt(fallback)
	}
}

func build(zapCfg zap.Config) (*zap.Logger, error) {
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapCfg.Build()
}

// GinMiddleware logs one http_request entry per API call. Server errors are logged at
// error level and client errors at warn, so a warn-level logger still shows rejected
// student and points requests.
func GinMiddleware(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if reqID := requestid.Value(c); reqID != "" {
			fields = append(fields, zap.String("request_id", reqID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			l.Error("http_request", fields...)
		case status >= http.StatusBadRequest:
			l.Warn("http_request", fields...)
		default:
			l.Info("http_request", fields...)
		}
	}
}
