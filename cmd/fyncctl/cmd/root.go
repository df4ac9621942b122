// Package cmd implements the fyncctl admin CLI. Application (OAuth
// client) provisioning happens here, out of band of the issuance core.
package cmd

import (
	"os"

	"github.com/fync-dev/fync-auth/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cfg *config.ServerConfig

var rootCmd = &cobra.Command{
	Use:   "fyncctl",
	Short: "fyncctl is a CLI tool to administer the fync auth service",
	Long:  `A command-line interface for provisioning OAuth applications and inspecting auth data directly against the store.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("fyncctl failed")
		os.Exit(1)
	}
}
