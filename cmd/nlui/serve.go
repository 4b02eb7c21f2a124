package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nlui/studio/internal/brain"
	"github.com/nlui/studio/internal/config"
	"github.com/nlui/studio/internal/generate"
	"github.com/nlui/studio/internal/observability"
	"github.com/nlui/studio/internal/server"
	"github.com/nlui/studio/internal/session"
	"github.com/nlui/studio/internal/storage"
	"github.com/nlui/studio/internal/templates"
)

func newGenerator(cfg config.Config, llm brain.LLMProvider, log *observability.Logger, m *observability.MetricsCollector) *generate.Service {
	return generate.New(llm,
		generate.WithModel(cfg.Model()),
		generate.WithTemperature(cfg.Temperature),
		generate.WithMaxTokens(cfg.MaxTokens),
		generate.WithLogger(log),
		generate.WithMetrics(m),
	)
}

func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// openSession picks the configured session backend.
func openSession(ctx context.Context, cfg config.Config, db storage.Store) (session.Store, func() error, error) {
	if cfg.Session.Backend != config.SessionRedis {
		return session.NewSQLiteStore(db), func() error { return nil }, nil
	}
	rs := session.NewRedisStore(cfg.Session.RedisAddr, cfg.Session.RedisPassword, cfg.Session.RedisDB)
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rs.Ping(pctx); err != nil {
		rs.Close()
		return nil, nil, fmt.Errorf("redis session store: %w", err)
	}
	return rs, rs.Close, nil
}

// openTemplates seeds the built-in catalog and imports the configured
// catalog directory.
func openTemplates(ctx context.Context, cfg config.Config, db storage.Store, log *observability.Logger) (*templates.Store, error) {
	store := templates.NewStore(db, log)
	if _, err := store.SeedDefaults(ctx); err != nil {
		return nil, err
	}
	if cfg.TemplatesDir != "" {
		n, err := store.Import(ctx, cfg.TemplatesDir)
		if err != nil {
			return nil, err
		}
		log.Info("templates imported", "dir", cfg.TemplatesDir, "count", n)
	}
	return store, nil
}

func (a *app) serveCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the preview server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			log := observability.NewLogger("nlui", cmd.ErrOrStderr())
			if err := cfg.Validate(); err != nil {
				if cfg.Configured() {
					return err
				}
				// Missing credentials still allow browsing templates and
				// editing documents.
				log.Warn("generation disabled", "error", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			sess, closeSession, err := openSession(ctx, cfg, db)
			if err != nil {
				return err
			}
			defer closeSession()

			tpl, err := openTemplates(ctx, cfg, db, log.Component("templates"))
			if err != nil {
				return err
			}

			metrics := observability.NewMetricsCollector(10000)
			var gen generate.Generator
			if llm, err := config.NewProvider(cfg); err == nil {
				gen = newGenerator(cfg, llm, log.Component("generate"), metrics)
			}

			srv := server.New(server.Options{
				Generator: gen,
				Templates: tpl,
				Session:   sess,
				Logger:    log,
				Metrics:   metrics,
				Health: server.Health{
					Provider:   cfg.Provider,
					Model:      cfg.Model(),
					Configured: cfg.Configured(),
				},
				RateLimitRPS:   cfg.RateLimit.RPS,
				RateLimitBurst: cfg.RateLimit.Burst,
				AllowedOrigins: cfg.AllowedOrigins,
				AppName:        appName,
				Version:        version,
			})
			defer srv.Close()
			if err := srv.Restore(ctx); err != nil {
				log.Warn("session not restored", "error", err)
			}
			log.Info("starting", "version", version, "data_dir", cfg.DataDir, "session", cfg.Session.Backend)
			return srv.Run(ctx, cfg.Addr())
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides PORT)")
	return cmd
}

func (a *app) statusCmd() *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check a running server's health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				cfg, err := a.loadConfig()
				if err != nil {
					return err
				}
				url = fmt.Sprintf("http://127.0.0.1:%d", cfg.Port)
			}
			client := &http.Client{Timeout: 3 * time.Second}
			resp, err := client.Get(url + "/api/health")
			if err != nil {
				return fmt.Errorf("server is not running at %s: %w", url, err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return errors.New("server returned " + resp.Status)
			}
			var h struct {
				Provider   string `json:"provider"`
				Model      string `json:"model"`
				Configured bool   `json:"configured"`
			}
			if err := decodeBody(resp, &h); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "server is running at %s (provider %s, model %s, configured %t)\n",
				url, h.Provider, h.Model, h.Configured)
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "server base URL (default http://127.0.0.1:<port>)")
	return cmd
}
