// Package main implements the tl CLI tool.
package main

import (
	"errors"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/amonks/tasklist/internal/config"
	"github.com/amonks/tasklist/internal/logging"
	"github.com/amonks/tasklist/internal/paths"
	"github.com/amonks/tasklist/server"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "tl",
	Short:             "Tasklist - a small prioritized todo list",
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
}

var (
	rootAddr     string
	rootLogLevel string
	rootLogJSON  bool
)

// Set by loadRuntime before any command runs.
var (
	cfg    *config.Config
	logger *charmlog.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootAddr, "addr", "", "Server address (host:port or port)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&rootLogJSON, "log-json", false, "Write logs as JSON")
}

func loadRuntime(cmd *cobra.Command, _ []string) error {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return err
	}
	loaded, err := config.Load(cwd)
	if err != nil {
		return err
	}

	levelValue := loaded.Log.Level
	if cmd.Flags().Changed("log-level") {
		levelValue = rootLogLevel
	}
	level, err := logging.ParseLevel(levelValue)
	if err != nil {
		return err
	}

	cfg = loaded
	logger = logging.New(logging.Config{
		Level:      level,
		Output:     cmd.ErrOrStderr(),
		JSON:       rootLogJSON || loaded.Log.JSON,
		Timestamps: true,
	})
	return nil
}

// resolveAddr returns the server address from --addr, config, or the
// default.
func resolveAddr() (string, error) {
	configAddr := ""
	if cfg != nil {
		configAddr = cfg.Server.Addr
	}
	return server.ResolveAddr(rootAddr, configAddr)
}

func newClient() (*server.Client, error) {
	addr, err := resolveAddr()
	if err != nil {
		return nil, err
	}
	return server.NewClient(addr), nil
}
