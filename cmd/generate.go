package cmd

import (
	"fmt"
	"time"

	"github.com/henrikvtcodes/osmium/config"
	"github.com/henrikvtcodes/osmium/output"
	"github.com/henrikvtcodes/osmium/serial"
	"github.com/henrikvtcodes/osmium/util"
	"github.com/henrikvtcodes/osmium/zone"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newGenerateCmd())
}

func newGenerateCmd() *cobra.Command {
	var (
		outputPath string
		serialPath string
		outFormat  string
	)

	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate zone data from the configuration",
		Run: func(cmd *cobra.Command, args []string) {
			format, err := config.ParseFormat(inputFormat)
			if err != nil {
				util.Logger.Fatal().Err(err).Msg("Invalid input format")
			}

			// Serial state is loaded up front and committed only after
			// every zone rendered and published cleanly.
			state, err := serial.Load(serialPath)
			if err != nil {
				util.Logger.Fatal().Err(err).Msg("Could not load serial state")
			}
			next, err := state.Next(time.Now())
			if err != nil {
				util.Logger.Fatal().Err(err).Msg("Could not compute next serial")
			}

			data, err := readInput()
			if err != nil {
				util.Logger.Fatal().Err(err).Msg("Could not read input")
			}

			doc, err := config.Load(data, format)
			if err != nil {
				// Printed separately: field errors span multiple lines and
				// their path/location details must reach the user intact
				println(err.Error())
				util.Logger.Fatal().Msg("Configuration is invalid")
			}

			model, err := zone.Build(doc, next)
			if err != nil {
				println(err.Error())
				util.Logger.Fatal().Msg("Could not derive records")
			}

			switch outFormat {
			case "unbound":
				text := output.Unbound(model)
				if outputPath == "" {
					fmt.Print(text)
				} else if err := output.PublishFile(outputPath, text); err != nil {
					util.Logger.Fatal().Err(err).Msg("Could not write output")
				}
			case "nsd":
				dir := outputPath
				if dir == "" {
					dir = "./nsd"
				}
				stage := output.NewStage()
				output.NSD(stage, model)
				if err := stage.Publish(dir); err != nil {
					util.Logger.Fatal().Err(err).Msg("Could not write output")
				}
			default:
				util.Logger.Fatal().Msgf("Unknown output format %q (want unbound or nsd)", outFormat)
			}

			if err := state.Commit(); err != nil {
				util.Logger.Fatal().Err(err).Msg("Could not commit serial")
			}
			util.Logger.Info().Msgf("Generated %d forward and %d reverse zones (serial %d)",
				len(model.Forward), len(model.Reverse), next)
		},
	}

	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (unbound) or directory (nsd)")
	generateCmd.Flags().StringVarP(&serialPath, "serial-file", "s", ".serial", "Path of the persisted serial number")
	generateCmd.Flags().StringVarP(&outFormat, "format", "F", "unbound", "Output format (unbound or nsd)")

	return generateCmd
}
