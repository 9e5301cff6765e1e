package cmd

import (
	"fmt"

	"github.com/henrikvtcodes/osmium/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Osmium",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Osmium Zone Generator v%v (%v)\n", util.Version, util.GitCommitSHA)
	},
}
