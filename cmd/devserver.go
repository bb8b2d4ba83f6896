package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/bookcat/internal/db"
	"github.com/ziadkadry99/bookcat/internal/devserver"
	"github.com/ziadkadry99/bookcat/internal/logging"
)

var (
	devserverPort     int
	devserverLogLevel string
)

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run a local catalog backend for development",
	Long: `Starts a local implementation of the catalog REST API backed by SQLite.
Point base_url at it to try bookcat without the real backend. Email
verification links are written to the log instead of being mailed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds := cfg.DevServer
		if cmd.Flags().Changed("port") {
			ds.Port = devserverPort
		}

		srvLogger, err := logging.New(devserverLogLevel, verbose)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer func() { _ = srvLogger.Sync() }()

		dbPath := filepath.Join(ds.DataDir, "bookcat.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		srv := devserver.New(devserver.Config{
			Port:      ds.Port,
			SecretKey: ds.SecretKey,
			TokenTTL:  time.Duration(ds.TokenTTLMinutes) * time.Minute,
			AllowAll:  ds.AllowAllOrigins,
		}, database, srvLogger)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down devserver...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				srvLogger.Warn("Shutdown failed", zap.Error(err))
			}
		}()

		fmt.Fprintf(os.Stderr, "bookcat devserver %s starting on port %d\n", Version, ds.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	devserverCmd.Flags().IntVar(&devserverPort, "port", 8080, "port to listen on")
	devserverCmd.Flags().StringVar(&devserverLogLevel, "log-level", "info", "devserver log level")
	rootCmd.AddCommand(devserverCmd)
}
