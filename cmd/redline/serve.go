package main

import (
	"github.com/spf13/cobra"
	"github.com/tsawler/redline/internal/config"
	"github.com/tsawler/redline/internal/logging"
	"github.com/tsawler/redline/internal/server"
)

var (
	configPath string
	envFile    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP worker",
	Long: `Run the HTTP worker exposing /parse, /generate and /health.

Settings come from the defaults, then the TOML file given with --config,
then the .env file, then environment variables such as PORT and LOG_LEVEL.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Resolve(configPath, envFile)
		if err != nil {
			fatal("Error loading configuration", err)
		}

		level, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			fatal("Error configuring logging", err)
		}
		format, err := logging.ParseFormat(cfg.Log.Format)
		if err != nil {
			fatal("Error configuring logging", err)
		}
		logger := logging.Init(level, format)

		if err := server.New(cfg, logger).Run(); err != nil {
			fatal("Server stopped", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a TOML configuration file")
	serveCmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to a .env file (ignored when missing)")
}
