package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"smartnote/internal/ai"
	"smartnote/internal/notes"
)

func newAICmd(r *runner) *cobra.Command {
	aiCmd := &cobra.Command{
		Use:   "ai",
		Short: "Ask the AI assistant about a note",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := r.requireUser(cmd, args); err != nil {
				return err
			}
			if !r.cfg.HasAPIKey() {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: no API key set (GEMINI_API_KEY); results will be empty")
			}
			return nil
		},
	}

	tagsCmd := &cobra.Command{
		Use:   "tags <id>",
		Short: "Suggest tags and add the new ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := findNoteByPartialID(r.notes, args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), r.cfg.AI.Timeout)
			defer cancel()
			suggested := r.assistant.SuggestTags(ctx, n.Content)

			out := cmd.OutOrStdout()
			if len(suggested) == 0 {
				fmt.Fprintln(out, "No tags suggested.")
				return nil
			}
			fmt.Fprintf(out, "Suggested: %s\n", formatTags(suggested))

			if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
				return nil
			}
			merged := notes.MergeTags(n.Tags, suggested)
			if len(merged) == len(n.Tags) {
				fmt.Fprintln(out, "No new tags.")
				return nil
			}
			if _, err := r.notes.Update(n.ID, notes.Patch{Tags: &merged}); err != nil {
				return err
			}
			fmt.Fprintf(out, "Tags: %s\n", formatTags(merged))
			return nil
		},
	}
	tagsCmd.Flags().Bool("dry-run", false, "Only print suggestions")

	summarizeCmd := &cobra.Command{
		Use:   "summarize <id>",
		Short: "Summarize a note in at most two sentences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := findNoteByPartialID(r.notes, args[0])
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), r.cfg.AI.Timeout)
			defer cancel()
			fmt.Fprintln(cmd.OutOrStdout(), r.assistant.Summarize(ctx, n.Content))
			return nil
		},
	}

	rewriteCmd := &cobra.Command{
		Use:   "rewrite <id>",
		Short: "Polish a note's content and save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := findNoteByPartialID(r.notes, args[0])
			if err != nil {
				return err
			}
			if n.Content == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Note has no content to rewrite.")
				return nil
			}
			instruction, _ := cmd.Flags().GetString("instruction")

			ctx, cancel := context.WithTimeout(cmd.Context(), r.cfg.AI.Timeout)
			defer cancel()
			rewritten := r.assistant.Rewrite(ctx, n.Content, instruction)

			out := cmd.OutOrStdout()
			if rewritten == n.Content {
				fmt.Fprintln(out, "Content unchanged.")
				return nil
			}
			if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
				fmt.Fprintln(out, rewritten)
				return nil
			}
			if _, err := r.notes.Update(n.ID, notes.Patch{Content: &rewritten}); err != nil {
				return err
			}
			fmt.Fprintln(out, rewritten)
			return nil
		},
	}
	rewriteCmd.Flags().StringP("instruction", "i", ai.DefaultRewriteInstruction, "How to rewrite")
	rewriteCmd.Flags().Bool("dry-run", false, "Print without saving")

	aiCmd.AddCommand(tagsCmd, summarizeCmd, rewriteCmd)
	return aiCmd
}
