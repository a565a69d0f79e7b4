package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/tasklist/internal/editor"
	"github.com/amonks/tasklist/todo"
)

// list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos by priority",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var (
	listStatus string
	listJSON   bool
)

// show
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showJSON bool

// add
var addCmd = &cobra.Command{
	Use:   "add <title>...",
	Short: "Add a todo",
	Long: `Add a todo.

Words are joined with single spaces to form the title. Titles must be unique
ignoring case and whitespace. With --edit, $EDITOR opens on a TOML form
prefilled from the arguments and flags.`,
	Args: cobra.ArbitraryArgs,
	RunE: runAdd,
}

var (
	addPriority int
	addEdit     bool
)

// update
var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

var (
	updateTitle    string
	updatePriority int
	updateStatus   string
	updateEdit     bool
)

var startCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Mark a todo as in progress",
	Args:  cobra.ExactArgs(1),
	RunE:  statusShortcut(todo.StatusInProgress, "Started"),
}

var completeCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a todo as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  statusShortcut(todo.StatusCompleted, "Completed"),
}

var resetCmd = &cobra.Command{
	Use:   "reset <id>",
	Short: "Mark a todo as not started",
	Args:  cobra.ExactArgs(1),
	RunE:  statusShortcut(todo.StatusNotStarted, "Reset"),
}

// delete
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a completed todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

// check-name
var checkNameCmd = &cobra.Command{
	Use:   "check-name <title>...",
	Short: "Report whether a title is already taken",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheckName,
}

var checkNameExclude int

// normalize
var normalizeCmd = &cobra.Command{
	Use:   "normalize <title>...",
	Short: "Print the key used to compare titles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNormalize,
}

func init() {
	rootCmd.AddCommand(listCmd, showCmd, addCmd, updateCmd, startCmd, completeCmd, resetCmd,
		deleteCmd, checkNameCmd, normalizeCmd)
	addPriorityFlagAliases(addCmd, updateCmd)

	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (not_started, in_progress, completed)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	addCmd.Flags().IntVarP(&addPriority, "priority", "p", todo.DefaultPriority, "Priority (1 is highest, 100 lowest)")
	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "Open $EDITOR on the new todo")

	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().IntVarP(&updatePriority, "priority", "p", 0, "New priority (1-100)")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "New status (not_started, in_progress, completed)")
	updateCmd.Flags().BoolVarP(&updateEdit, "edit", "e", false, "Open $EDITOR on the todo")

	checkNameCmd.Flags().IntVar(&checkNameExclude, "exclude", 0, "Ignore the todo with this ID")
}

func parseID(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid todo id %q", value)
	}
	return id, nil
}

func runList(cmd *cobra.Command, _ []string) error {
	var filter *todo.Status
	if listStatus != "" {
		status, err := todo.ParseStatus(listStatus)
		if err != nil {
			return err
		}
		filter = &status
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	todos, err := client.List(cmd.Context())
	if err != nil {
		return clientError(client, err)
	}
	if filter != nil {
		filtered := todos[:0]
		for _, item := range todos {
			if item.Status == *filter {
				filtered = append(filtered, item)
			}
		}
		todos = filtered
	}

	if listJSON {
		if todos == nil {
			todos = []todo.Todo{}
		}
		return encodeJSON(cmd.OutOrStdout(), todos)
	}
	printTodoTable(cmd.OutOrStdout(), todos)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	item, err := client.Get(cmd.Context(), id)
	if err != nil {
		return clientError(client, err)
	}
	if showJSON {
		return encodeJSON(cmd.OutOrStdout(), item)
	}
	printTodoDetail(cmd.OutOrStdout(), item)
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	title := strings.Join(args, " ")
	opts := todo.CreateOptions{}
	if cmd.Flags().Changed("priority") {
		opts.Priority = todo.PriorityPtr(addPriority)
	}

	if addEdit {
		form := editor.CreateForm(title)
		form.Priority = addPriority
		parsed, err := editor.EditForm(form)
		if err != nil {
			return err
		}
		title, opts = parsed.CreateOptions()
	} else if len(args) == 0 {
		return fmt.Errorf("title is required (use --edit to open editor)")
	}

	created, err := client.Create(cmd.Context(), title, opts)
	if err != nil {
		return clientError(client, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created todo %d: %s\n", created.ID, created.Title)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	opts := todo.UpdateOptions{}
	if cmd.Flags().Changed("title") {
		opts.Title = todo.TitlePtr(updateTitle)
	}
	if cmd.Flags().Changed("priority") {
		opts.Priority = todo.PriorityPtr(updatePriority)
	}
	if cmd.Flags().Changed("status") {
		status, err := todo.ParseStatus(updateStatus)
		if err != nil {
			return err
		}
		opts.Status = todo.StatusPtr(status)
	}

	if updateEdit {
		return editTodo(cmd, id, opts)
	}
	if opts.Title == nil && opts.Priority == nil && opts.Status == nil {
		return fmt.Errorf("at least one of --title, --priority, --status, or --edit is required")
	}

	return updateTodo(cmd, id, opts, "Updated")
}

// editTodo fetches the todo, overlays any flag values onto the form, and
// sends whatever the user changed in the editor.
func editTodo(cmd *cobra.Command, id int, flags todo.UpdateOptions) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	current, err := client.Get(cmd.Context(), id)
	if err != nil {
		return clientError(client, err)
	}

	form := editor.UpdateForm(current)
	if flags.Title != nil {
		form.Title = *flags.Title
	}
	if flags.Priority != nil {
		form.Priority = *flags.Priority
	}
	if flags.Status != nil {
		form.Status = *flags.Status
	}
	parsed, err := editor.EditForm(form)
	if err != nil {
		return err
	}

	opts := parsed.UpdateOptions(current)
	if opts.Title == nil && opts.Priority == nil && opts.Status == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "No changes to %d\n", id)
		return nil
	}
	return updateTodo(cmd, id, opts, "Updated")
}

func statusShortcut(status todo.Status, verb string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return updateTodo(cmd, id, todo.UpdateOptions{Status: todo.StatusPtr(status)}, verb)
	}
}

func updateTodo(cmd *cobra.Command, id int, opts todo.UpdateOptions, verb string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	updated, err := client.Update(cmd.Context(), id, opts)
	if err != nil {
		return clientError(client, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d: %s (%s)\n", verb, updated.ID, updated.Title, updated.Status.Label())
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	deleted, err := client.DeleteCompleted(cmd.Context(), id)
	if err != nil {
		return clientError(client, err)
	}
	if !deleted {
		return fmt.Errorf("cannot delete task ID %d: %w", id, todo.ErrNotCompleted)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d\n", id)
	return nil
}

func runCheckName(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	opts := todo.NameCheckOptions{}
	if checkNameExclude > 0 {
		opts.ExcludeID = todo.IDPtr(checkNameExclude)
	}
	exists, err := client.Exists(cmd.Context(), strings.Join(args, " "), opts)
	if err != nil {
		return clientError(client, err)
	}
	if exists {
		fmt.Fprintln(cmd.OutOrStdout(), "exists")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "available")
	return nil
}

func runNormalize(cmd *cobra.Command, args []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "%q\n", todo.NormalizeTitle(strings.Join(args, " ")))
	return nil
}
