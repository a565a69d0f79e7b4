package main

import (
	"github.com/spf13/cobra"

	"github.com/amonks/tasklist/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive todo list",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	if _, err := client.List(cmd.Context()); err != nil {
		return clientError(client, err)
	}
	return tui.Run(cmd.Context(), client)
}
