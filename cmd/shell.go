package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/bookcat/internal/page"
	"github.com/ziadkadry99/bookcat/internal/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Browse the catalog interactively",
	Long: `Starts an interactive session that moves between the login, register
and books screens. It opens on the books screen when a session is stored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		start := page.PathLogin
		if client.Authenticated() {
			start = page.PathBooks
		}
		return shell.New(client, newPage(start), logger).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
