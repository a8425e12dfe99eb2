package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yungbote/thorbis-backend/internal/app"
)

var (
	reconcileUser  string
	reconcileLimit int

	rootCmd = &cobra.Command{
		Use:   "thorbis",
		Short: "Thorbis learning progress and XP service",
		// Running the binary with no subcommand serves HTTP.
		RunE: runServe,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply the schema and unique indexes, then exit",
		RunE:  runMigrate,
	}
	reconcileCmd = &cobra.Command{
		Use:   "reconcile-xp",
		Short: "Recompute user XP counters from the transaction ledger",
		RunE:  runReconcile,
	}
)

func init() {
	reconcileCmd.Flags().StringVar(&reconcileUser, "user", "", "reconcile a single user id")
	reconcileCmd.Flags().IntVar(&reconcileLimit, "limit", 0, "max users to reconcile (0 = all)")
	rootCmd.AddCommand(serveCmd, migrateCmd, reconcileCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, app.Options{})
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		a.Log.Error("Server failed", "error", err)
		return err
	}
	a.Log.Info("Server stopped")
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	a, err := app.New(cmd.Context(), app.Options{})
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer a.Close()
	a.Log.Info("Schema up to date", "driver", a.Cfg.DB.Driver)
	return nil
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := app.New(ctx, app.Options{SkipMigrate: true})
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	if reconcileUser != "" {
		userID, err := uuid.Parse(reconcileUser)
		if err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
		total, err := a.Services.XP.ReconcileUser(ctx, userID)
		if err != nil {
			return err
		}
		a.Log.Info("User XP reconciled", "user_id", userID, "total_xp", total)
		return nil
	}

	n, err := a.Services.XP.ReconcileAll(ctx, reconcileLimit, a.Cfg.ReconcileConcurrency)
	if err != nil {
		return err
	}
	a.Log.Info("XP reconciled", "users", n)
	return nil
}
