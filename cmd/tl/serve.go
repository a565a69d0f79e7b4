package main

import (
	"github.com/spf13/cobra"

	"github.com/amonks/tasklist/server"
	"github.com/amonks/tasklist/todo"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tasklist server",
	Long: `Start the tasklist server.

The server holds todos in memory. It starts with three sample todos unless
--empty is passed or the config sets [store] seed = false.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveEmpty bool

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveEmpty, "empty", false, "Start with no todos")
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, err := resolveAddr()
	if err != nil {
		return err
	}

	store := todo.NewStore()
	if serveEmpty || !cfg.Store.SeedEnabled() {
		store = todo.NewEmptyStore()
	}

	srv := server.New(server.Options{Store: store, Logger: logger})
	return srv.Serve(addr)
}
