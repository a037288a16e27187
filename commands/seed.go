package commands

import (
	"fmt"
	"os"

	"github.com/dhbw-mensa/backend/configs"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the Mensa locations and the first chef account",
	Long: `Insert the Mensa locations and the first chef account.

Locations come from the built-in list unless --file points to a YAML file
of the form:

  locations:
    - Mensa am Schloss
    - Hochschule Mannheim

The chef account is taken from CHEF_EMAIL and CHEF_PASSWORD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		var raw []byte
		if seedFile != "" {
			if raw, err = os.ReadFile(seedFile); err != nil {
				return fmt.Errorf("read seed file: %w", err)
			}
		}
		if err := configs.SeedLocations(db, log, raw); err != nil {
			return err
		}
		return configs.SeedChef(db, log, cfg)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML file with locations")
}
