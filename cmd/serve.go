package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadforge/alertrelay/internal/alert"
	"github.com/leadforge/alertrelay/internal/api"
	"github.com/leadforge/alertrelay/internal/config"
	"github.com/leadforge/alertrelay/internal/extract"
	"github.com/leadforge/alertrelay/internal/fetcher"
	"github.com/leadforge/alertrelay/internal/fetcher/direct"
	"github.com/leadforge/alertrelay/internal/fetcher/reader"
	"github.com/leadforge/alertrelay/internal/logging"
	"github.com/leadforge/alertrelay/internal/metrics"
	"github.com/leadforge/alertrelay/internal/pipeline"
	"github.com/leadforge/alertrelay/internal/smartsuite"
)

// newServeCmd creates the 'serve' subcommand running the webhook service.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook HTTP server",
		Long: `Starts the HTTP server that accepts forwarded Google Alert emails on
POST /webhook and relays extracted leads to SmartSuite. The server runs
until interrupted and then shuts down gracefully.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	zap.ReplaceGlobals(logger)

	metrics.Init()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var articles fetcher.ArticleFetcher
	switch cfg.Fetcher.Strategy {
	case config.StrategyReader:
		articles = reader.New(reader.Config{
			Endpoint: cfg.Fetcher.ReaderEndpoint,
			Timeout:  cfg.FetchTimeout(),
			MaxChars: cfg.Fetcher.MaxChars,
		}, logger.Named("fetcher"))
	default:
		articles = direct.New(direct.Config{
			Timeout:  cfg.FetchTimeout(),
			MaxChars: cfg.Fetcher.MaxChars,
		}, logger.Named("fetcher"))
	}

	ai := extract.NewAIExtractor(
		cfg.Anthropic.APIKey,
		cfg.Anthropic.Model,
		cfg.Anthropic.MaxTokens,
		logger.Named("extract"),
	)
	if !ai.Available() {
		logger.Info("AI extraction disabled, using rule-based extraction only")
	}

	store := smartsuite.New(smartsuite.Config{
		Endpoint:  cfg.SmartSuite.Endpoint,
		APIKey:    cfg.SmartSuite.APIKey,
		Workspace: cfg.SmartSuite.Workspace,
		TableID:   cfg.SmartSuite.TableID,
	}, logger.Named("smartsuite"))

	proc := pipeline.New(articles, ai, store, cfg.Fetcher.Strategy, logger.Named("pipeline"))
	apiServer := api.NewServer(alert.NewParser(logger.Named("alert")), proc, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
	return nil
}
