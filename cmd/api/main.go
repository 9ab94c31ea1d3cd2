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
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/turnera-api/internal/audit"
	"github.com/BruksfildServices01/turnera-api/internal/config"
	dbpkg "github.com/BruksfildServices01/turnera-api/internal/db"
	"github.com/BruksfildServices01/turnera-api/internal/lock"
	"github.com/BruksfildServices01/turnera-api/internal/logger"
	"github.com/BruksfildServices01/turnera-api/internal/routes"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "turnera",
		Short:        "Turnera medical appointment API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads the config, the logger and the database shared by every
// command.
func bootstrap() (*config.Config, zerolog.Logger, io.Closer, *gorm.DB, error) {
	cfg := config.Load()

	l, closer, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, zerolog.Logger{}, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		closer.Close()
		return nil, zerolog.Logger{}, nil, nil, err
	}

	return cfg, l, closer, db, nil
}

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, closer, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer closer.Close()

			if migrate {
				if err := dbpkg.Migrate(db); err != nil {
					return err
				}
			}

			return runServer(cfg, l, db)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "Run migrations before serving")
	return cmd
}

func runServer(cfg *config.Config, l zerolog.Logger, db *gorm.DB) error {
	var rdb *redis.Client
	if cfg.RedisEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := lock.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		cancel()
		if err != nil {
			l.Warn().Err(err).Msg("redis unavailable, falling back to in-process slot lock")
		} else {
			defer client.Close()
			rdb = client
			l.Info().Str("addr", cfg.RedisAddr).Msg("redis slot lock enabled")
		}
	} else {
		l.Warn().Msg("REDIS_ADDR not set, using in-process slot lock")
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Redis:  rdb,
		Config: cfg,
		Audit:  auditDispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	l.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	l.Info().Msg("server stopped")
	return nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, l, closer, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := dbpkg.Migrate(db); err != nil {
				return err
			}
			l.Info().Msg("migrations applied")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var fakePatients int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo data (users share the password 123456)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, closer, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := dbpkg.Migrate(db); err != nil {
				return err
			}

			return dbpkg.Seed(cmd.Context(), db, dbpkg.SeedOptions{
				BcryptCost:   cfg.BcryptCost,
				FakePatients: fakePatients,
			})
		},
	}

	cmd.Flags().IntVar(&fakePatients, "fake-patients", 0, "Number of random patients to add")
	return cmd
}
