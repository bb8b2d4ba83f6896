package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/bookcat/internal/catalog"
	"github.com/ziadkadry99/bookcat/internal/login"
	"github.com/ziadkadry99/bookcat/internal/page"
	"github.com/ziadkadry99/bookcat/internal/register"
)

var (
	authUsername string
	authEmail    string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session cookie",
	Long: `Signs in to the catalog backend. The session cookie is saved to the
session file so later commands run as the signed-in user.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		p := newPage(page.PathLogin)

		username := authUsername
		if username == "" {
			username, _ = p.Prompt("Username:")
		}
		password, _ := p.Secret("Password:")

		h := login.NewHandler(client, p, logger)
		return outcomeErr(h.Submit(cmd.Context(), catalog.Credentials{Username: username, Password: password}))
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		p := newPage(page.PathRegister)

		form := register.Form{Username: authUsername, Email: authEmail}
		if form.Username == "" {
			form.Username, _ = p.Prompt("Username:")
		}
		if form.Email == "" {
			form.Email, _ = p.Prompt("Email:")
		}
		form.Password, _ = p.Secret("Password:")

		h := register.NewHandler(client, p, logger)
		return outcomeErr(h.Submit(cmd.Context(), &form))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newSessionStore()
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&authUsername, "username", "u", "", "username")
	registerCmd.Flags().StringVarP(&authUsername, "username", "u", "", "username")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "email address")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd)
}
