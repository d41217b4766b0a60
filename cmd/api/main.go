package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jobtasks/dashboard/cmd/api/commands"
)

// @title Task Dashboard API
// @version 1.0
// @description Personal task board: tasks, document links, analytics and exports

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:           "dashboard",
		Short:         "Task dashboard API server",
		Long:          `A personal task dashboard: a kanban board over your tasks, linked documents, analytics, CSV and PDF exports and a read-only calendar feed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewTokenCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewCalendarCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
