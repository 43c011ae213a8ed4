package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/vayu-web/internal/vayu/config"
	"finitefield.org/vayu-web/internal/vayu/httpserver"
	"finitefield.org/vayu-web/internal/vayu/navigation"
	"finitefield.org/vayu-web/internal/vayu/notifications"
	"finitefield.org/vayu-web/internal/vayu/observability"
	"finitefield.org/vayu-web/internal/vayu/pages"
	"finitefield.org/vayu-web/internal/vayu/state"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "vayu",
		Short:         "Jeevan Vayu web shell",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (YAML)")

	root.AddCommand(newServeCmd(&cfgFile), newRoutesCmd(&cfgFile))
	return root
}

func newServeCmd(cfgFile *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.address)")
	return cmd
}

func newRoutesCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the navigation table and resolved URLs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}
			return printRoutes(cmd.OutOrStdout(), cfg.Server.BasePath)
		},
	}
}

func printRoutes(w io.Writer, basePath string) error {
	resolver := navigation.NewResolver(basePath)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTITLE\tROUTE\tURL\tBOTTOM BAR")
	bottom := len(navigation.BottomBar())
	for i, item := range navigation.Items() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n", i+1, item.Title, item.RouteKey, resolver.Resolve(item.RouteKey), i < bottom)
	}
	settings := navigation.SettingsItem
	fmt.Fprintf(tw, "-\t%s\t%s\t%s\t%t\n", settings.Title, settings.RouteKey, resolver.Resolve(settings.RouteKey), false)
	return tw.Flush()
}

func serve(parent context.Context, cfg *config.Config) error {
	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewShellMetrics()
	store := state.NewStore(state.Options{
		TTL:           cfg.Shell.MountTTL,
		SweepInterval: cfg.Shell.SweepInterval,
		Observer:      metrics,
	})
	go store.Run(ctx)

	if cfg.Shell.TokenKey == "" {
		logger.Warn("shell.token_key not set; mount tokens will not survive a restart")
	}
	provider, err := pages.NewMarkdownProvider(cfg.Content.Dir)
	if err != nil {
		return err
	}

	srv, err := httpserver.New(httpserver.Config{
		Address:             cfg.Server.Address,
		BasePath:            cfg.Server.BasePath,
		ReadTimeout:         cfg.Server.ReadTimeout,
		WriteTimeout:        cfg.Server.WriteTimeout,
		IdleTimeout:         cfg.Server.IdleTimeout,
		CSRFCookieName:      cfg.CSRF.CookieName,
		CSRFCookieSecure:    cfg.CSRF.CookieSecure,
		CSRFHeaderName:      cfg.CSRF.HeaderName,
		Logger:              logger,
		Metrics:             metrics,
		Store:               store,
		Tokens:              state.NewTokenCodec([]byte(cfg.Shell.TokenKey)),
		Pages:               provider,
		NotificationService: notifications.NewStaticService(),
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Info("shell server listening",
		zap.String("addr", cfg.Server.Address),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("environment", cfg.Environment),
	)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	logger.Info("shell server stopped")
	return nil
}
