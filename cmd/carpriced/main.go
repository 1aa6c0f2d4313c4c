package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"carprice/internal/artifact"
	"carprice/internal/common/fsutil"
	"carprice/internal/config"
	"carprice/internal/httpapi"
	"carprice/internal/logging"
	"carprice/internal/predictor"
)

func main() {
	// Flags with environment variable defaults
	addr := flag.String("addr", envOr("CARPRICE_ADDR", ":8000"), "HTTP listen address, e.g. :8000")
	modelPath := flag.String("model", envOr("CARPRICE_MODEL_PATH", artifact.DefaultPath), "Path to the trained model artifact (.json, .yaml, .toml)")
	logLevel := flag.String("log-level", envOr("CARPRICE_LOG_LEVEL", "info"), "Log level: debug|info|warn|error|off")
	logFormat := flag.String("log-format", "console", "Log format: console|json")
	logFile := flag.String("log-file", "", "Optional rotated log file")
	maxBody := flag.Int64("max-body-bytes", 0, "Maximum request body size in bytes (0=1MiB)")
	corsEnabled := flag.Bool("cors", false, "Enable CORS")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed origins (default *)")
	configPath := flag.String("config", "", "Optional config file (.yaml, .json, .toml)")
	flag.Parse()

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			logger, _ := logging.New(logging.Options{})
			logger.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
		}
		// Config values fill flags that were not set explicitly.
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["addr"] && os.Getenv("CARPRICE_ADDR") == "" && cfg.Addr != "" {
			*addr = cfg.Addr
		}
		if !set["model"] && os.Getenv("CARPRICE_MODEL_PATH") == "" && cfg.ModelPath != "" {
			*modelPath = cfg.ModelPath
		}
		if !set["log-level"] && os.Getenv("CARPRICE_LOG_LEVEL") == "" && cfg.LogLevel != "" {
			*logLevel = cfg.LogLevel
		}
		if !set["log-format"] && cfg.LogFormat != "" {
			*logFormat = cfg.LogFormat
		}
		if !set["log-file"] && cfg.LogFile != "" {
			*logFile = cfg.LogFile
		}
		if !set["max-body-bytes"] && cfg.MaxBodyBytes > 0 {
			*maxBody = cfg.MaxBodyBytes
		}
		if !set["cors"] && cfg.CORSEnabled {
			*corsEnabled = true
		}
		if !set["cors-origins"] && len(cfg.CORSOrigins) > 0 {
			*corsOrigins = strings.Join(cfg.CORSOrigins, ",")
		}
		httpapi.SetCORSOptions(*corsEnabled, splitCSV(*corsOrigins), cfg.CORSMethods, cfg.CORSHeaders)
	} else {
		httpapi.SetCORSOptions(*corsEnabled, splitCSV(*corsOrigins), nil, nil)
	}

	logger, closeLog := logging.New(logging.Options{Level: *logLevel, Format: *logFormat, File: *logFile})
	defer closeLog()
	httpapi.SetLogger(logger)
	httpapi.SetMaxBodyBytes(*maxBody)

	pred, err := predictor.Open(*modelPath, &logger)
	switch {
	case err == nil:
		a := pred.Artifact()
		logger.Info().Str("model_id", a.ID).Str("path", *modelPath).
			Int("columns", len(a.Columns())).Int("rows", a.Rows).Msg("model loaded")
	case artifactMissing(*modelPath):
		logger.Warn().Str("path", *modelPath).Msg("model artifact not found; predictions will return 503 until trained and restarted")
	default:
		logger.Error().Err(err).Str("path", *modelPath).Msg("failed to load model; predictions will return 503")
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewMux(pred),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", *addr).Msg("carpriced listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	logger.Info().Msg("stopped")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// artifactMissing reports whether nothing exists at the artifact path.
func artifactMissing(path string) bool {
	p, err := fsutil.Resolve(path)
	return err == nil && !fsutil.PathExists(p)
}

// splitCSV splits a comma-separated list, trimming blanks and dropping empties.
func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
