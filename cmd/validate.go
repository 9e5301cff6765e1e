package cmd

import (
	"github.com/rs/zerolog"
	"github.com/ttacon/chalk"

	"github.com/henrikvtcodes/osmium/config"
	"github.com/henrikvtcodes/osmium/util"
	"github.com/henrikvtcodes/osmium/zone"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newValidateCommand())
}

func newValidateCommand() *cobra.Command {
	var validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Check if the zone configuration is valid",
		Run: func(cmd *cobra.Command, args []string) {
			// Make sure important messages get printed out
			util.Logger = util.Logger.Level(zerolog.InfoLevel)

			format, err := config.ParseFormat(inputFormat)
			if err != nil {
				util.Logger.Fatal().Err(err).Msg("Invalid input format")
			}

			data, err := readInput()
			if err != nil {
				util.Logger.Fatal().Err(err).Msg("Could not read input")
			}

			doc, err := config.Load(data, format)
			if err != nil {
				// The error is printed out separately because field errors
				// span multiple lines with path and location details that
				// zerolog does not play nice with
				println(err.Error())
				util.Logger.Fatal().Msg("Error checking config")
			}
			util.Logger.Info().Msg("Config is valid")
			if !(util.LogLevel <= zerolog.InfoLevel) {
				println(chalk.Green.NewStyle().WithTextStyle(chalk.Bold).Style("Configuration is correct!"))
			}

			util.Logger.Info().Msg("Starting record derivation dry-run. Records will be derived as though zones will be generated but nothing is written.")
			if _, err := zone.Build(doc, 1); err != nil {
				println(err.Error())
				util.Logger.Fatal().Msg("Error running config")
			}

			util.Logger.Info().Msg("Config is fully valid!")
			if !(util.LogLevel <= zerolog.InfoLevel) {
				println(chalk.Green.NewStyle().WithTextStyle(chalk.Bold).Style("Configuration is fully validated!"))
			}
		},
	}

	return validateCmd
}
