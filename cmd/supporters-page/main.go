package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/TicketsBot-cloud/common/observability"
	"github.com/TicketsBot/supporters-page/internal/config"
	"github.com/TicketsBot/supporters-page/internal/dataset"
	"github.com/TicketsBot/supporters-page/internal/publisher"
	"github.com/TicketsBot/supporters-page/internal/telemetry"
	"github.com/TicketsBot/supporters-page/pkg/model"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "supporters-page",
		Short:         "Generate the supporters and Hall of Fame page",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "render",
			Short: "Render the page to OUTPUT_PATH",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runRender(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Report in-page links in the page at OUTPUT_PATH that have no target",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCheck(cmd.Context())
			},
		},
	)

	return root
}

func runRender(ctx context.Context) error {
	return withPublisher(ctx, func(ctx context.Context, p *publisher.Publisher) error {
		return p.RunOnce(ctx)
	})
}

func runCheck(ctx context.Context) error {
	return withPublisher(ctx, func(ctx context.Context, p *publisher.Publisher) error {
		_, err := p.Check(ctx)
		return err
	})
}

func withPublisher(ctx context.Context, fn func(context.Context, *publisher.Publisher) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	config, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := buildLogger(config)
	if err != nil {
		return err
	}

	defer logger.Sync()

	shutdown, err := telemetry.Setup(ctx, config)
	if err != nil {
		logger.Error("Failed to set up tracing", zap.Error(err))
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdown(ctx); err != nil {
			logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}()

	table, err := loadDataset(config)
	if err != nil {
		logger.Error("Failed to load dataset", zap.String("path", config.DatasetPath), zap.Error(err))
		return err
	}

	logger.Info("Dataset loaded", zap.Int("tiers", len(table.Tiers)), zap.Int("hall_of_fame", len(table.HallOfFame)))

	p := publisher.New(config, logger, table)

	ctx, cancel := context.WithTimeout(ctx, config.ExecutionTimeout)
	defer cancel()

	if err := fn(ctx, p); err != nil {
		logger.Error("Run failed", zap.Error(err))
		return err
	}

	return nil
}

func loadDataset(config config.Config) (model.DataTable, error) {
	if config.DatasetPath == "" {
		return dataset.Default()
	}

	return dataset.LoadFile(config.DatasetPath)
}

func buildLogger(config config.Config) (*zap.Logger, error) {
	if len(config.SentryDsn) > 0 {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn: config.SentryDsn,
		}); err != nil {
			return nil, fmt.Errorf("sentry.Init: %w", err)
		}
	}

	var logger *zap.Logger
	var err error
	if config.JsonLogs {
		loggerConfig := zap.NewProductionConfig()
		loggerConfig.Level.SetLevel(config.LogLevel)

		logger, err = loggerConfig.Build(
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
			zap.WrapCore(observability.ZapSentryAdapter(observability.EnvironmentProduction)),
		)
	} else {
		loggerConfig := zap.NewDevelopmentConfig()
		loggerConfig.Level.SetLevel(config.LogLevel)
		loggerConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

		logger, err = loggerConfig.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	}

	if err != nil {
		return nil, fmt.Errorf("failed to initialise zap logger: %w", err)
	}

	return logger, nil
}
