package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/tasklist/internal/markdown"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Help about any command",
	Args:  cobra.ArbitraryArgs,
	RunE:  runHelp,
}

var helpRulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Explain how titles, priorities, and deletion work",
	Args:  cobra.NoArgs,
	RunE:  runHelpRules,
}

const helpRulesWidth = 80

const rulesMarkdown = `# Task rules

## Titles

- A title is required and must be 3 to 100 characters.
- Titles are unique. Two titles match when they are equal after trimming,
  collapsing runs of whitespace to one space, and lowercasing, so
  "Design API" and "  design   api " are the same task.
- Renaming a task to its own title (in any casing) is allowed.
- Run ` + "`tl normalize <title>`" + ` to see the key a title is compared by.

## Priority

- Priority is a number from 1 to 100. Lower numbers sort first.
- Tasks with the same priority keep the order they were added in.
- New tasks default to priority 1.

## Status

- Every task is not started, in progress, or completed.
- New tasks start as not started.

## Deletion

- Only completed tasks can be deleted. Deleting any other task is refused
  and leaves it untouched.
- IDs are never reused, even after a delete.
`

func init() {
	rootCmd.SetHelpCommand(helpCmd)
	helpCmd.AddCommand(helpRulesCmd)
}

func runHelp(cmd *cobra.Command, args []string) error {
	root := cmd.Root()
	if len(args) == 0 {
		return root.Help()
	}

	target, _, err := root.Find(args)
	if err != nil || target == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Unknown help topic %q\n", strings.Join(args, " "))
		return root.Help()
	}

	return target.Help()
}

func runHelpRules(cmd *cobra.Command, _ []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), markdown.SafeRender(helpRulesWidth, rulesMarkdown))
	return nil
}
