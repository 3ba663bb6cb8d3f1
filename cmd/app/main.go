package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"repairshop/cmd"
	httpadapter "repairshop/internal/adapters/in/http"
	"repairshop/internal/adapters/out/eventlog"
	"repairshop/internal/adapters/out/postgres/migrations"
	"repairshop/internal/adapters/out/rabbitmq"
	"repairshop/internal/api"
	"repairshop/internal/core/ports"
	"repairshop/internal/pkg/logging"
	"repairshop/internal/pkg/metrics"

	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

var envFile string

var rootCmd = &cobra.Command{
	Use:          "repairshop",
	Short:        "Repair shop orders and appointments service",
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")
	rootCmd.AddCommand(newServeCmd(), newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func newServeCmd() *cobra.Command {
	var migrate bool

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			configs, err := cmd.LoadConfig(envFile)
			if err != nil {
				return err
			}
			return serve(c.Context(), configs, migrate)
		},
	}
	c.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return c
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Database migration management",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(_ *cobra.Command, args []string) error {
			configs, err := cmd.LoadConfig(envFile)
			if err != nil {
				return err
			}

			db, err := sql.Open("postgres", configs.DSN())
			if err != nil {
				return err
			}
			defer db.Close()

			action := "up"
			if len(args) > 0 {
				action = args[0]
			}

			switch action {
			case "up":
				return migrations.Up(db)
			case "down":
				return migrations.Down(db)
			case "status":
				return migrations.Status(db)
			default:
				return fmt.Errorf("unknown migrate action %q", action)
			}
		},
	}
}

func serve(parent context.Context, configs cmd.Config, migrate bool) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New(logging.Options{
		Level:  logging.ParseLevel(configs.LogLevel),
		Format: configs.LogFormat,
	})
	slog.SetDefault(logger)

	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if migrate {
		if err = migrations.Up(sqlDB); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}

	publisher, closePublisher, err := newPublisher(configs, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	m := metrics.New()
	app := cmd.NewCompositionRoot(configs, gormDB, publisher, m, logger)

	doc, err := api.LoadDocument(ctx)
	if err != nil {
		return err
	}

	e, err := httpadapter.NewRouter(app.CreateHTTPServer(), httpadapter.RouterOptions{
		Document: doc,
		Validate: configs.OpenAPIValidation,
	})
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", configs.HTTPPort)
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newPublisher publishes to RabbitMQ when AMQP_URL is set and to the log otherwise.
func newPublisher(configs cmd.Config, logger *slog.Logger) (ports.EventPublisher, func(), error) {
	if configs.AMQPURL == "" {
		logger.Info("AMQP_URL not set, events are written to the log")
		return eventlog.NewPublisher(logger), func() {}, nil
	}

	publisher, err := rabbitmq.Dial(configs.AMQPURL, configs.AMQPExchange, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	return publisher, func() {
		if closeErr := publisher.Close(); closeErr != nil {
			logger.Warn("closing rabbitmq publisher", "error", closeErr)
		}
	}, nil
}
