package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"plainspeak/internal/app"
	"plainspeak/internal/capture"
	"plainspeak/internal/config"
	"plainspeak/internal/engine"
	"plainspeak/internal/events"
	"plainspeak/internal/httpapi"
	"plainspeak/internal/playback"
	"plainspeak/internal/registry"
	"plainspeak/internal/translate"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	defaultAddr := ":8080"
	if v := os.Getenv("PLAINSPEAK_ADDR"); v != "" {
		defaultAddr = v
	}

	var (
		addr          string
		configPath    string
		backendKind   string
		model         string
		modelsDir     string
		remoteBaseURL string
		defaultMode   string
		llamaCtx      int
		llamaThreads  int
		stallPollSec  int
		stallAfterSec int
		logLevel      string
		transTimeout  int64
		corsEnabled   bool
		corsOrigins   []string
	)

	root := &cobra.Command{
		Use:           "plainspeakd",
		Short:         "Corporate-speak translator daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config{}
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = loaded
			}
			// Explicit flags win over file values.
			flagWins := cmd.Flags().Changed
			if !flagWins("addr") && cfg.Addr != "" {
				addr = cfg.Addr
			}
			if !flagWins("backend") && cfg.Backend != "" {
				backendKind = cfg.Backend
			}
			if !flagWins("model") && cfg.Model != "" {
				model = cfg.Model
			}
			if !flagWins("models-dir") && cfg.ModelsDir != "" {
				modelsDir = cfg.ModelsDir
			}
			if !flagWins("remote-base-url") && cfg.RemoteBaseURL != "" {
				remoteBaseURL = cfg.RemoteBaseURL
			}
			if !flagWins("default-mode") && cfg.DefaultMode != "" {
				defaultMode = cfg.DefaultMode
			}
			if !flagWins("llama-ctx") && cfg.LlamaCtx != 0 {
				llamaCtx = cfg.LlamaCtx
			}
			if !flagWins("llama-threads") && cfg.LlamaThreads != 0 {
				llamaThreads = cfg.LlamaThreads
			}
			if !flagWins("stall-poll-seconds") && cfg.StallPollSeconds != 0 {
				stallPollSec = cfg.StallPollSeconds
			}
			if !flagWins("stall-after-seconds") && cfg.StallAfterSeconds != 0 {
				stallAfterSec = cfg.StallAfterSeconds
			}

			logger := newLogger(logLevel)

			mode, err := translate.ParseMode(defaultMode)
			if err != nil {
				return err
			}

			var backend engine.Backend
			switch backendKind {
			case "local":
				reg, err := registry.LoadDir(modelsDir)
				if err != nil {
					return fmt.Errorf("load models: %w", err)
				}
				if model == "" && len(reg) > 0 {
					model = reg[0].ID
				}
				logger.Info().Int("models", len(reg)).Str("dir", modelsDir).Msg("model registry loaded")
				backend = engine.NewLocalBackend(reg, llamaCtx, llamaThreads)
			case "remote":
				backend = engine.NewRemoteBackend(remoteBaseURL, os.Getenv("OPENAI_API_KEY"))
			default:
				return fmt.Errorf("unknown backend %q (want local or remote)", backendKind)
			}

			a := app.New(app.Config{
				ModelID:     model,
				DefaultMode: mode,
				Engine: engine.Config{
					PollInterval: time.Duration(stallPollSec) * time.Second,
					StallAfter:   time.Duration(stallAfterSec) * time.Second,
				},
			}, backend, capture.Unsupported{}, playback.Unsupported{}, events.NewLogPublisher(logger))

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			httpapi.SetLogger(logger)
			httpapi.SetBaseContext(ctx)
			httpapi.SetTranslateTimeoutSeconds(transTimeout)
			httpapi.SetCORSOptions(corsEnabled, corsOrigins,
				[]string{"GET", "POST"}, []string{"Content-Type"})

			a.Start(ctx)

			srv := &http.Server{
				Addr:              addr,
				Handler:           httpapi.NewMux(a),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", addr).Str("backend", backendKind).Str("model", model).
					Msg("plainspeakd listening")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case <-ctx.Done():
			case err := <-errCh:
				a.Close()
				return err
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn().Err(err).Msg("graceful shutdown")
			}
			a.Close()
			return nil
		},
	}

	root.Flags().StringVar(&addr, "addr", defaultAddr, "HTTP listen address, e.g. :8080")
	root.Flags().StringVar(&configPath, "config", "", "Path to a yaml/json/toml config file")
	root.Flags().StringVar(&backendKind, "backend", "remote", "Inference backend: local|remote")
	root.Flags().StringVar(&model, "model", "gpt-4o-mini", "Model id handed to the backend")
	root.Flags().StringVar(&modelsDir, "models-dir", "~/models/llm", "Directory to scan for *.gguf model files (local backend)")
	root.Flags().StringVar(&remoteBaseURL, "remote-base-url", "", "OpenAI-compatible base URL (remote backend)")
	root.Flags().StringVar(&defaultMode, "default-mode", string(translate.ModeCorporateToPlain), "Initial translation direction for voice input")
	root.Flags().IntVar(&llamaCtx, "llama-ctx", 4096, "Context window for the local runtime")
	root.Flags().IntVar(&llamaThreads, "llama-threads", 0, "Threads for the local runtime (0=auto)")
	root.Flags().IntVar(&stallPollSec, "stall-poll-seconds", 5, "How often loading progress is sampled")
	root.Flags().IntVar(&stallAfterSec, "stall-after-seconds", 20, "How long without progress before the stall hint")
	root.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	root.Flags().Int64Var(&transTimeout, "translate-timeout-seconds", 0, "Per-request translation timeout (0 disables)")
	root.Flags().BoolVar(&corsEnabled, "cors", false, "Enable CORS middleware")
	root.Flags().StringSliceVar(&corsOrigins, "cors-origins", []string{"*"}, "Allowed CORS origins")
	return root
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
