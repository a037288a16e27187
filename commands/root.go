package commands

import (
	"fmt"
	"os"

	"github.com/dhbw-mensa/backend/configs"
	"github.com/dhbw-mensa/backend/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// Global flags
	envFile string
	dbURL   string
)

var rootCmd = &cobra.Command{
	Use:   "mensa",
	Short: "Mensa backend: menus, ratings and chef administration",
	Long: `Backend for the Mensa app.

Students, lecturers and guests browse the daily menus of a location and rate
them. Chefs (Koch) maintain dishes, ingredients, menus and the daily plan.

Examples:
  mensa serve              # run the HTTP API
  mensa migrate            # create or update the schema
  mensa seed               # insert locations and the first chef account`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Path to an env file (ignored if missing)")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database source, overrides DB_SOURCE")
}

// bootstrap loads config, logger and database for a command.
func bootstrap() (*configs.Config, *logger.Logger, *gorm.DB, error) {
	cfg := configs.LoadConfig(envFile)
	if dbURL != "" {
		cfg.DBSource = dbURL
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := configs.ConnectDB(cfg)
	if err != nil {
		log.Sync()
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}
