package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "formbuilder",
	Short: "Multi-tenant form builder service",
	Long: `Form builder stores a shared catalog of master questions, tenant-owned
forms assembled from them, and the responses submitted against those forms.

Configuration is read from the YAML file named by --config or
FORMBUILDER_CONFIG_PATH, then overridden by FORMBUILDER_* variables.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the REST API on the configured host and port. When enabled the same
listener also exposes /metrics and the streamable MCP endpoint at /mcp.`,
	RunE: runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE:  runMigrate,
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve MCP over stdio",
	Long: `Serve the Model Context Protocol over stdin/stdout for local AI assistants.
Logs go to stderr, or to the configured log file, so stdout carries only
protocol messages.`,
	RunE: runMCP,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd, migrateCmd, mcpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
