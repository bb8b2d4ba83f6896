package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/bookcat/internal/config"
)

var initCmd = &cobra.Command{
	Use:         "init",
	Annotations: map[string]string{skipConfig: "true"},
	Short:       "Initialize bookcat configuration with an interactive wizard",
	Long:        `Runs an interactive wizard that asks for the backend URL and writes a .bookcat.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
