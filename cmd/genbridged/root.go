package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"genbridge/internal/common/fsutil"
	"genbridge/internal/config"
	"genbridge/internal/httpapi"
	"genbridge/internal/session"
)

// serveOptions collects the effective settings for the serve command after
// merging the config file with flag overrides.
type serveOptions struct {
	addr         string
	modelPath    string
	contextSize  int
	threads      int
	maxSessions  int
	maxWaitMS    int
	chunkBuffer  int
	maxBodyBytes int64
	corsEnabled  bool
	corsOrigins  string
	logLevel     string
}

func defaultServeOptions() serveOptions {
	addr := ":8080"
	if v := os.Getenv("GENBRIDGE_ADDR"); v != "" {
		addr = v
	}
	return serveOptions{
		addr:        addr,
		corsOrigins: "*",
		logLevel:    "info",
	}
}

// applyConfig overlays file settings onto the defaults. Flags are applied
// afterwards so the precedence is flags > file > defaults.
func (o *serveOptions) applyConfig(cfg config.Config) {
	if cfg.Addr != "" {
		o.addr = cfg.Addr
	}
	if cfg.ModelPath != "" {
		o.modelPath = cfg.ModelPath
	}
	if cfg.ContextSize > 0 {
		o.contextSize = cfg.ContextSize
	}
	if cfg.Threads > 0 {
		o.threads = cfg.Threads
	}
	if cfg.MaxSessions > 0 {
		o.maxSessions = cfg.MaxSessions
	}
	if cfg.MaxWaitMS > 0 {
		o.maxWaitMS = cfg.MaxWaitMS
	}
	if cfg.ChunkBuffer > 0 {
		o.chunkBuffer = cfg.ChunkBuffer
	}
	if cfg.MaxBodyBytes > 0 {
		o.maxBodyBytes = cfg.MaxBodyBytes
	}
	if cfg.CORSEnabled {
		o.corsEnabled = true
	}
	if cfg.LogLevel != "" {
		o.logLevel = cfg.LogLevel
	}
}

func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "genbridged",
		Short:         "Generation session bridge daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts := defaultServeOptions()
	var configPath string

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				cfg, err := config.Load(configPath)
				if err != nil {
					return err
				}
				fileOpts := defaultServeOptions()
				fileOpts.applyConfig(cfg)
				// Keep any flag the user set explicitly.
				f := cmd.Flags()
				if !f.Changed("addr") {
					opts.addr = fileOpts.addr
				}
				if !f.Changed("model") {
					opts.modelPath = fileOpts.modelPath
				}
				if !f.Changed("context-size") {
					opts.contextSize = fileOpts.contextSize
				}
				if !f.Changed("threads") {
					opts.threads = fileOpts.threads
				}
				if !f.Changed("max-sessions") {
					opts.maxSessions = fileOpts.maxSessions
				}
				if !f.Changed("max-wait-ms") {
					opts.maxWaitMS = fileOpts.maxWaitMS
				}
				if !f.Changed("chunk-buffer") {
					opts.chunkBuffer = fileOpts.chunkBuffer
				}
				if !f.Changed("max-body-bytes") {
					opts.maxBodyBytes = fileOpts.maxBodyBytes
				}
				if !f.Changed("cors-enabled") {
					opts.corsEnabled = fileOpts.corsEnabled
				}
				if !f.Changed("log-level") {
					opts.logLevel = fileOpts.logLevel
				}
			}
			return runServe(opts)
		},
	}

	serve.Flags().StringVar(&configPath, "config", "", "Path to config file (.yaml/.json/.toml)")
	serve.Flags().StringVar(&opts.addr, "addr", opts.addr, "HTTP listen address, e.g. :8080")
	serve.Flags().StringVar(&opts.modelPath, "model", opts.modelPath, "Path to the *.gguf model file")
	serve.Flags().IntVar(&opts.contextSize, "context-size", opts.contextSize, "Model context window size (0=runtime default)")
	serve.Flags().IntVar(&opts.threads, "threads", opts.threads, "Inference threads (0=runtime default)")
	serve.Flags().IntVar(&opts.maxSessions, "max-sessions", opts.maxSessions, "Maximum concurrent sessions (0=default)")
	serve.Flags().IntVar(&opts.maxWaitMS, "max-wait-ms", opts.maxWaitMS, "Admission wait before rejecting with 429 (0=default)")
	serve.Flags().IntVar(&opts.chunkBuffer, "chunk-buffer", opts.chunkBuffer, "Streaming update buffer size per session (0=default)")
	serve.Flags().Int64Var(&opts.maxBodyBytes, "max-body-bytes", opts.maxBodyBytes, "Max request body size in bytes (0=default)")
	serve.Flags().BoolVar(&opts.corsEnabled, "cors-enabled", opts.corsEnabled, "Enable CORS middleware")
	serve.Flags().StringVar(&opts.corsOrigins, "cors-origins", opts.corsOrigins, "Comma-separated allowed CORS origins")
	serve.Flags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level: debug|info|warn|error")

	root.AddCommand(serve)
	return root
}

func runServe(opts serveOptions) error {
	logger := newLogger(opts.logLevel)

	modelPath, err := fsutil.ExpandHome(opts.modelPath)
	if err != nil {
		return err
	}
	rt := session.NewLlamaRuntime(modelPath, opts.contextSize, opts.threads)
	reg := session.NewWithConfig(session.RegistryConfig{
		Runtime:     rt,
		MaxSessions: opts.maxSessions,
		MaxWait:     time.Duration(opts.maxWaitMS) * time.Millisecond,
		ChunkBuffer: opts.chunkBuffer,
		Logger:      &logger,
	})

	httpapi.SetLogger(logger)
	httpapi.SetMaxBodyBytes(opts.maxBodyBytes)
	if opts.corsEnabled {
		httpapi.SetCORSOptions(true,
			splitCSV(opts.corsOrigins),
			[]string{"GET", "POST", "DELETE", "OPTIONS"},
			[]string{"Accept", "Content-Type", "X-Log-Level"},
		)
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	srv := &http.Server{Addr: opts.addr, Handler: httpapi.NewMux(reg)}

	g, ctx := errgroup.WithContext(baseCtx)
	g.Go(func() error {
		logger.Info().Str("addr", opts.addr).Str("model", modelPath).Msg("genbridged listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(stop)
		select {
		case sig := <-stop:
			logger.Info().Str("signal", sig.String()).Msg("shutting down")
		case <-ctx.Done():
			return ctx.Err()
		}
		cancelBase()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("http shutdown")
		}
		if err := reg.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("session drain")
		}
		return nil
	})
	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// newLogger builds a console zerolog logger at the requested level.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		p := strings.TrimSpace(part)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
