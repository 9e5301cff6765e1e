package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:                   "osmium",
		Short:                 "Osmium Declarative DNS Zone Generator",
		Long:                  `Generates Unbound and NSD zone data from declarative YAML or JSON zone topology, written in Go.`,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
	}

	inputPath   string
	inputFormat string
)

func newRootCmd() *cobra.Command {
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "Path to the zone configuration (default: stdin)")
	rootCmd.PersistentFlags().StringVarP(&inputFormat, "input-format", "f", "yaml", "Input document syntax (yaml or json)")

	return rootCmd
}

// readInput pulls the configuration document from the input flag or
// stdin.
func readInput() ([]byte, error) {
	if inputPath == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(inputPath)
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
