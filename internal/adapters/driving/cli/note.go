package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/norka/internal/core/domain"
)

// Stdin access, replaceable in tests.
var (
	stdin           io.Reader = os.Stdin
	stdinIsTerminal           = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

var noteCmd = &cobra.Command{
	Use:     "note",
	Aliases: []string{"notes"},
	Short:   "Manage notes",
	Long: `Create, list, search, edit, archive and delete notes.

Arguments starting with a dash must follow --, as in: norka note find -- -draft`,
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long:  `List notes in creation order. Archived notes are hidden unless --all is given.`,
	Args:  cobra.NoArgs,
	RunE:  runNoteList,
}

var noteCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count notes",
	Args:  cobra.NoArgs,
	RunE:  runNoteCount,
}

var noteGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteGet,
}

var noteCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a note",
	Long: `Create a note with the given title.

Content comes from --content, or from standard input when it is piped:
  echo "eggs, milk" | norka note create "Shopping List"`,
	Args: cobra.ExactArgs(1),
	RunE: runNoteCreate,
}

var noteSaveCmd = &cobra.Command{
	Use:   "save [id]",
	Short: "Overwrite a note",
	Long: `Overwrite the title, content and archived flag of a note.

Fields not given are reset: content is cleared and the note becomes active
unless --archived is set. Use "note set" to change a single field.`,
	Args: cobra.ExactArgs(1),
	RunE: runNoteSave,
}

var noteSetCmd = &cobra.Command{
	Use:   "set [id] [field] [value]",
	Short: "Change one field of a note",
	Long: `Change a single field of a note. Fields: title, content, archived.

Omitting the value for content clears it:
  norka note set 3 content`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runNoteSet,
}

var noteArchiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Archive a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteArchive,
}

var noteUnarchiveCmd = &cobra.Command{
	Use:     "unarchive [id]",
	Aliases: []string{"restore"},
	Short:   "Restore an archived note",
	Args:    cobra.ExactArgs(1),
	RunE:    runNoteUnarchive,
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note permanently",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteDelete,
}

var noteFindCmd = &cobra.Command{
	Use:   "find [text]",
	Short: "Search note titles",
	Long: `Find notes whose title contains the text, ignoring case.
Archived notes are included and listed last.`,
	Args: cobra.ExactArgs(1),
	RunE: runNoteFind,
}

// Flags.
var (
	noteShowAll   bool
	noteContent   string
	noteTitle     string
	noteArchived  bool
	noteNoContent bool
)

func init() {
	noteListCmd.Flags().BoolVarP(&noteShowAll, "all", "a", false, "Include archived notes")
	noteCountCmd.Flags().BoolVarP(&noteShowAll, "all", "a", false, "Include archived notes")

	noteCreateCmd.Flags().StringVarP(&noteContent, "content", "c", "", "Note content")
	noteCreateCmd.Flags().BoolVar(&noteNoContent, "no-content", false, "Create the note without content")

	noteSaveCmd.Flags().StringVarP(&noteTitle, "title", "t", "", "Note title")
	noteSaveCmd.Flags().StringVarP(&noteContent, "content", "c", "", "Note content (omit to clear)")
	noteSaveCmd.Flags().BoolVar(&noteArchived, "archived", false, "Mark the note archived")
	_ = noteSaveCmd.MarkFlagRequired("title")

	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteCountCmd)
	noteCmd.AddCommand(noteGetCmd)
	noteCmd.AddCommand(noteCreateCmd)
	noteCmd.AddCommand(noteSaveCmd)
	noteCmd.AddCommand(noteSetCmd)
	noteCmd.AddCommand(noteArchiveCmd)
	noteCmd.AddCommand(noteUnarchiveCmd)
	noteCmd.AddCommand(noteDeleteCmd)
	noteCmd.AddCommand(noteFindCmd)
	rootCmd.AddCommand(noteCmd)
}

func runNoteList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errServiceNotConfigured
	}

	docs, err := documentService.List(cmd.Context(), noteShowAll)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No notes.")
		return nil
	}

	printNotes(cmd, docs)
	cmd.Printf("\nTotal: %d notes\n", len(docs))
	return nil
}

func runNoteCount(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errServiceNotConfigured
	}

	n, err := documentService.Count(cmd.Context(), noteShowAll)
	if err != nil {
		return fmt.Errorf("failed to count notes: %w", err)
	}

	cmd.Println(n)
	return nil
}

func runNoteGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errServiceNotConfigured
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	doc, err := documentService.Get(cmd.Context(), id)
	if err != nil {
		return noteError("get", id, err)
	}

	cmd.Printf("Note: %d\n\n", doc.ID)
	cmd.Printf("  Title:  %s\n", doc.Title)
	cmd.Printf("  State:  %s\n", doc.State())
	if doc.HasContent() {
		cmd.Printf("\n%s\n", doc.Text())
	}
	return nil
}

func runNoteCreate(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errServiceNotConfigured
	}

	content, err := contentFromInput(cmd)
	if err != nil {
		return err
	}

	doc, err := documentService.Create(cmd.Context(), args[0], content)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	cmd.Printf("Created note %d: %s\n", doc.ID, doc.Title)
	return nil
}

func runNoteSave(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errServiceNotConfigured
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	doc := domain.Document{ID: id, Title: noteTitle, Archived: noteArchived}
	if cmd.Flags().Changed("content") {
		doc.Content = domain.StringPtr(noteContent)
	}

	if err := documentService.Save(cmd.Context(), doc); err != nil {
		return noteError("save", id, err)
	}

	cmd.Printf("Saved note %d\n", id)
	return nil
}

func runNoteSet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errServiceNotConfigured
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	field, err := domain.ParseField(args[1])
	if err != nil {
		return fmt.Errorf("%w (valid fields: %s)", err, fieldNames())
	}

	var upd domain.DocumentUpdate
	switch {
	case len(args) == 3:
		upd, err = upd.Set(field, args[2])
		if err != nil {
			return err
		}
	case field == domain.FieldContent:
		upd = upd.WithContent(nil)
	default:
		return fmt.Errorf("%w: %s needs a value", domain.ErrInvalidInput, field)
	}

	if err := documentService.Update(cmd.Context(), id, upd); err != nil {
		return noteError("update", id, err)
	}

	cmd.Printf("Updated %s of note %d\n", field, id)
	return nil
}

func runNoteArchive(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errServiceNotConfigured
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := documentService.Archive(cmd.Context(), id); err != nil {
		return noteError("archive", id, err)
	}

	cmd.Printf("Archived note %d\n", id)
	return nil
}

func runNoteUnarchive(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errServiceNotConfigured
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := documentService.Unarchive(cmd.Context(), id); err != nil {
		return noteError("restore", id, err)
	}

	cmd.Printf("Restored note %d\n", id)
	return nil
}

func runNoteDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errServiceNotConfigured
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := documentService.Delete(cmd.Context(), id); err != nil {
		return noteError("delete", id, err)
	}

	cmd.Printf("Deleted note %d\n", id)
	return nil
}

func runNoteFind(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errServiceNotConfigured
	}

	docs, err := documentService.Find(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to search notes: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No notes match %q.\n", args[0])
		return nil
	}

	printNotes(cmd, docs)
	return nil
}

func printNotes(cmd *cobra.Command, docs []domain.Document) {
	for i := range docs {
		marker := ""
		if docs[i].Archived {
			marker = " [archived]"
		}
		cmd.Printf("  %4d  %s%s\n", docs[i].ID, docs[i].Title, marker)
	}
}

// contentFromInput picks content from --content, --no-content or piped stdin.
func contentFromInput(cmd *cobra.Command) (*string, error) {
	if noteNoContent {
		return nil, nil
	}
	if cmd.Flags().Changed("content") {
		return domain.StringPtr(noteContent), nil
	}
	if stdinIsTerminal() {
		return nil, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read content from stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return domain.StringPtr(strings.TrimRight(string(data), "\n")), nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid note id %q", domain.ErrInvalidInput, raw)
	}
	return id, nil
}

// noteError turns a missing note into a short message and wraps the rest.
func noteError(op string, id int64, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("note %d not found: %w", id, domain.ErrNotFound)
	}
	return fmt.Errorf("failed to %s note %d: %w", op, id, err)
}

func fieldNames() string {
	fields := domain.Fields()
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}
