package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"smartnote/internal/mdfile"
)

func newExportCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export <dir>",
		Short:   "Write notes as markdown files with frontmatter",
		Args:    cobra.ExactArgs(1),
		PreRunE: r.requireUser,
		RunE: func(cmd *cobra.Command, args []string) error {
			includeTrash, _ := cmd.Flags().GetBool("trash")
			written, err := mdfile.Export(args[0], r.notes.List(), includeTrash)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d note(s) to %s\n", written, args[0])
			return nil
		},
	}
	cmd.Flags().Bool("trash", false, "Include notes in the trash")
	return cmd
}

func newImportCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:     "import <dir>",
		Short:   "Import markdown files as notes",
		Args:    cobra.ExactArgs(1),
		PreRunE: r.requireUser,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := mdfile.Import(args[0])
			if err != nil {
				return err
			}
			count, err := r.notes.Import(list)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d note(s) from %s\n", count, args[0])
			return nil
		},
	}
}
