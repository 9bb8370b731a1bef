package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskboard/core/cmd/api/commands"
)

// @title TaskBoard API
// @version 1.0
// @description Hierarchical task tracker: boards, folders and tasks with per-user persistence, search and deadline countdowns.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey SessionAuth
// @in header
// @name X-Session-Id
// @description Opaque session id issued by the login endpoint.

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskboard",
		Short: "TaskBoard API Server",
		Long:  `TaskBoard is a hierarchical task tracker organizing work as boards, folders and tasks, with per-user persistence, tree search and deadline countdowns.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUsersCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
