// Package main is the entry point for the psychics command line tool
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "psychics",
	Short: "Validate and preview psychic concepts",
	Long: `psychics loads psychic concept configuration from a directory or Redis,
reports which concepts bind, and renders their tooltips and books.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before flags fall back to the environment")
	flags.StringVar(&sourceKind, "source", sourceFile, "concept source: file or redis")
	flags.StringVar(&conceptDir, "dir", "concepts", "concept directory for the file source")
	flags.StringVar(&redisAddr, "redis-addr", "localhost:6379", "Redis address for the redis source")
	flags.Float64Var(&maxHealth, "max-health", 2028, "server max health used to cap health bonuses")
	flags.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(tooltipCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(pushCmd)
}
