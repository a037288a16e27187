package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhbw-mensa/backend/configs"
	"github.com/dhbw-mensa/backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not migrate and seed on start")
}

func runServe() error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	if !skipMigrate {
		if err := configs.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if err := configs.SeedLocations(db, log, nil); err != nil {
			return err
		}
		if err := configs.SeedChef(db, log, cfg); err != nil {
			return fmt.Errorf("seed chef failed: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ext, closeExt, err := routes.BuildExternals(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeExt()

	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	deps := routes.NewDeps(db, cfg, log, ext)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return deps.Publisher.Forward(gctx)
	})
	g.Go(func() error {
		log.Info("server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
