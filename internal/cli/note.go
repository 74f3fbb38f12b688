package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"smartnote/internal/markdown"
	"smartnote/internal/notes"
	"smartnote/internal/notes/service"
)

func newNoteCmd(r *runner) *cobra.Command {
	noteCmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"n"},
		Short:   "Create, list, and edit notes",
	}

	noteCmd.AddCommand(
		newNoteAddCmd(r),
		newNoteListCmd(r),
		newNoteShowCmd(r),
		newNoteEditCmd(r),
		newNoteDeleteCmd(r),
		newNoteRestoreCmd(r),
		newNoteFavoriteCmd(r),
		newNoteAttachCmd(r),
		newNoteDetachCmd(r),
	)
	return noteCmd
}

func newNoteAddCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"a"},
		Short:   "Add a new note",
		Args:    cobra.NoArgs,
		PreRunE: r.requireUser,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := r.notes.Add()
			if err != nil {
				return err
			}

			patch := patchFromFlags(cmd)
			if fav, _ := cmd.Flags().GetBool("favorite"); fav {
				patch.IsFavorite = &fav
			}
			if !patch.IsEmpty() {
				if n, err = r.notes.Update(n.ID, patch); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added: %s\n", n.DisplayTitle())
			fmt.Fprintf(out, "ID: %s\n", n.ID)
			return nil
		},
	}
	cmd.Flags().StringP("title", "t", "", "Note title")
	cmd.Flags().StringP("content", "c", "", "Note content (markdown)")
	cmd.Flags().StringSlice("tag", nil, "Tags (repeatable or comma-separated)")
	cmd.Flags().Bool("favorite", false, "Mark as favorite")
	return cmd
}

func newNoteListCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List notes",
		Long: `List notes through the same filter and sort pipeline as the UI.

  smartnote note list                   # all live notes, newest first
  smartnote note list --view favorites  # favorites only
  smartnote note list --view trash      # soft-deleted notes
  smartnote note list --tag work        # notes tagged work
  smartnote note list -s milk --sort title-asc`,
		Args:    cobra.NoArgs,
		PreRunE: r.requireUser,
		RunE: func(cmd *cobra.Command, args []string) error {
			viewFlag, _ := cmd.Flags().GetString("view")
			tag, _ := cmd.Flags().GetString("tag")
			search, _ := cmd.Flags().GetString("search")
			sortFlag, _ := cmd.Flags().GetString("sort")

			view, err := notes.ParseViewMode(viewFlag)
			if err != nil {
				return err
			}
			if tag != "" && !cmd.Flags().Changed("view") {
				view = notes.ViewTag
			}
			if sortFlag == "" {
				sortFlag = r.cfg.DefaultSort
			}
			sortOpt, err := notes.ParseSortOption(sortFlag)
			if err != nil {
				return err
			}

			list := r.notes.Query(notes.Query{View: view, Tag: tag, Search: search, Sort: sortOpt})

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No notes found.")
				return nil
			}
			for _, n := range list {
				printNote(out, n)
			}
			fmt.Fprintf(out, "\n%d note(s)\n", len(list))
			return nil
		},
	}
	cmd.Flags().String("view", "all", "View: all, favorites, trash, tag")
	cmd.Flags().String("tag", "", "Only notes with this tag")
	cmd.Flags().StringP("search", "s", "", "Case-insensitive search in title, content, and tags")
	cmd.Flags().String("sort", "", "Sort: date-desc, date-asc, title-asc, title-desc")
	return cmd
}

func newNoteShowCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show <id>",
		Short:   "Show a note",
		Args:    cobra.ExactArgs(1),
		PreRunE: r.requireUser,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := findNoteByPartialID(r.notes, args[0])
			if err != nil {
				return err
			}
			render, _ := cmd.Flags().GetBool("render")
			printNoteDetail(cmd.OutOrStdout(), n, render)
			return nil
		},
	}
	cmd.Flags().BoolP("render", "r", false, "Render markdown content")
	return cmd
}

func newNoteEditCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <id>",
		Aliases: []string{"e"},
		Short:   "Change a note's title, content, or tags",
		Args:    cobra.ExactArgs(1),
		PreRunE: r.requireUser,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := findNoteByPartialID(r.notes, args[0])
			if err != nil {
				return err
			}

			patch := patchFromFlags(cmd)
			addTags, _ := cmd.Flags().GetStringSlice("add-tag")
			removeTags, _ := cmd.Flags().GetStringSlice("remove-tag")
			if len(addTags) > 0 || len(removeTags) > 0 {
				tags := n.Tags
				if patch.Tags != nil {
					tags = *patch.Tags
				}
				tags = notes.MergeTags(tags, cleanTags(addTags))
				for _, t := range removeTags {
					tags = notes.RemoveTag(tags, t)
				}
				patch.Tags = &tags
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to change; pass --title, --content, --tag, --add-tag, or --remove-tag")
			}

			n, err = r.notes.Update(n.ID, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s\n", n.DisplayTitle())
			return nil
		},
	}
	cmd.Flags().StringP("title", "t", "", "New title")
	cmd.Flags().StringP("content", "c", "", "New content")
	cmd.Flags().StringSlice("tag", nil, "Replace all tags")
	cmd.Flags().StringSlice("add-tag", nil, "Add tags")
	cmd.Flags().StringSlice("remove-tag", nil, "Remove tags")
	return cmd
}

func newNoteDeleteCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm", "del"},
		Short:   "Move a note to the trash, or remove it if already there",
		Args:    cobra.ExactArgs(1),
		PreRunE: r.requireUser,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := findNoteByPartialID(r.notes, args[0])
			if err != nil {
				return err
			}
			outcome, err := r.notes.Delete(n.ID)
			if err != nil {
				return err
			}
			if outcome == service.Removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted permanently: %s\n", n.DisplayTitle())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Moved to trash: %s\n", n.DisplayTitle())
			}
			return nil
		},
	}
}

func newNoteRestoreCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:     "restore <id>",
		Short:   "Restore a note from the trash",
		Args:    cobra.ExactArgs(1),
		PreRunE: r.requireUser,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := findNoteByPartialID(r.notes, args[0])
			if err != nil {
				return err
			}
			if !n.IsDeleted {
				fmt.Fprintf(cmd.OutOrStdout(), "Note is not in the trash: %s\n", n.DisplayTitle())
				return nil
			}
			if _, err := r.notes.Restore(n.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored: %s\n", n.DisplayTitle())
			return nil
		},
	}
}

func newNoteFavoriteCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:     "favorite <id>",
		Aliases: []string{"fav", "star"},
		Short:   "Toggle a note's favorite flag",
		Args:    cobra.ExactArgs(1),
		PreRunE: r.requireUser,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := findNoteByPartialID(r.notes, args[0])
			if err != nil {
				return err
			}
			n, err = r.notes.ToggleFavorite(n.ID)
			if err != nil {
				return err
			}
			if n.IsFavorite {
				fmt.Fprintf(cmd.OutOrStdout(), "Favorited: %s\n", n.DisplayTitle())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Unfavorited: %s\n", n.DisplayTitle())
			}
			return nil
		},
	}
}

func newNoteAttachCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:     "attach <id> <file>",
		Short:   "Attach a file to a note",
		Args:    cobra.ExactArgs(2),
		PreRunE: r.requireUser,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := findNoteByPartialID(r.notes, args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			att := notes.NewAttachment(filepath.Base(args[1]), data)
			n, err = r.notes.AddAttachment(n.ID, att)
			if err != nil {
				return err
			}
			added := n.Attachments[len(n.Attachments)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Attached %s (%s) as %s\n", added.Name, added.Type, added.ID)
			return nil
		},
	}
}

func newNoteDetachCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:     "detach <id> <attachment-id>",
		Short:   "Remove an attachment from a note",
		Args:    cobra.ExactArgs(2),
		PreRunE: r.requireUser,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := findNoteByPartialID(r.notes, args[0])
			if err != nil {
				return err
			}
			found := false
			for _, a := range n.Attachments {
				if a.ID == args[1] {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("no attachment %s on note %s", args[1], n.ID)
			}
			if _, err := r.notes.RemoveAttachment(n.ID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed attachment %s\n", args[1])
			return nil
		},
	}
}

func newTagsCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:     "tags",
		Short:   "List every tag on live notes",
		Args:    cobra.NoArgs,
		PreRunE: r.requireUser,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags := r.notes.Tags()
			out := cmd.OutOrStdout()
			if len(tags) == 0 {
				fmt.Fprintln(out, "No tags.")
				return nil
			}
			for _, t := range tags {
				fmt.Fprintf(out, "#%s\n", t)
			}
			return nil
		},
	}
}

func newTrashCmd(r *runner) *cobra.Command {
	trashCmd := &cobra.Command{
		Use:   "trash",
		Short: "Manage the trash",
	}
	trashCmd.AddCommand(&cobra.Command{
		Use:     "empty",
		Short:   "Permanently remove every note in the trash",
		Args:    cobra.NoArgs,
		PreRunE: r.requireUser,
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := r.notes.EmptyTrash()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d note(s) from the trash\n", removed)
			return nil
		},
	})
	return trashCmd
}

func patchFromFlags(cmd *cobra.Command) notes.Patch {
	var patch notes.Patch
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		patch.Title = &title
	}
	if cmd.Flags().Changed("content") {
		content, _ := cmd.Flags().GetString("content")
		patch.Content = &content
	}
	if cmd.Flags().Changed("tag") {
		tags, _ := cmd.Flags().GetStringSlice("tag")
		tags = notes.MergeTags([]string{}, cleanTags(tags))
		patch.Tags = &tags
	}
	return patch
}

// printNoteDetail renders one note in full
func printNoteDetail(w io.Writer, n notes.Note, render bool) {
	fmt.Fprintf(w, "%s\n", n.DisplayTitle())
	fmt.Fprintf(w, "ID:       %s\n", n.ID)
	if len(n.Tags) > 0 {
		fmt.Fprintf(w, "Tags:     %s\n", formatTags(n.Tags))
	}
	fmt.Fprintf(w, "Favorite: %t\n", n.IsFavorite)
	if n.IsDeleted {
		fmt.Fprintln(w, "In trash: true")
	}
	fmt.Fprintf(w, "Created:  %s\n", n.Created().Format(dateTimeLayout))
	fmt.Fprintf(w, "Updated:  %s\n", n.Updated().Format(dateTimeLayout))
	for _, a := range n.Attachments {
		fmt.Fprintf(w, "Attached: %s  %s (%s)\n", a.ID, a.Name, a.Type)
	}

	if n.Content == "" {
		return
	}
	fmt.Fprintln(w)
	if render {
		fmt.Fprintln(w, markdown.NewRenderer(markdown.PlainStyles(), 40).Render(n.Content))
	} else {
		fmt.Fprintln(w, n.Content)
	}
}
