package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:         "version",
	Annotations: map[string]string{skipConfig: "true"},
	Short:       "Print the version of bookcat",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bookcat %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
