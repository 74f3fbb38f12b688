// Package cli is the command-line surface. With no subcommand it launches
// the interactive UI.
package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"smartnote/internal/ai"
	"smartnote/internal/auth"
	"smartnote/internal/config"
	"smartnote/internal/logs"
	"smartnote/internal/notes/service"
	"smartnote/internal/storage"
	"smartnote/internal/tui"
)

var errNotLoggedIn = errors.New("not logged in; run \"smartnote login\" first")

// runner owns everything a command needs. It is opened once per invocation.
type runner struct {
	flags     config.CLIFlags
	cfg       *config.Config
	repo      *storage.Repository
	notes     service.NoteService
	session   *auth.Session
	assistant *ai.Assistant
}

func (r *runner) open(cmd *cobra.Command, args []string) error {
	if r.repo != nil {
		return nil
	}

	cfg, err := config.Load(r.flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.EnsureConfigFile(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create config file: %v\n", err)
	}
	if err := cfg.EnsureDirs(); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := logs.Initialize(cfg.DataDir, cfg.Debug); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not initialize logger: %v\n", err)
	}

	kv, err := storage.Open(cfg.Storage.Backend, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
	}

	r.cfg = cfg
	r.repo = storage.NewRepository(kv)
	r.notes = service.NewNoteService(r.repo)
	r.session = auth.NewSession(r.repo)
	r.assistant = ai.NewAssistant(ai.NewGeminiClient(cfg.AI.APIKey,
		ai.WithModel(cfg.AI.Model),
		ai.WithBaseURL(cfg.AI.BaseURL),
	))

	logs.Logger.Debug().Str("command", cmd.CommandPath()).Str("backend", cfg.Storage.Backend).Msg("opened store")
	return nil
}

func (r *runner) close() {
	if r.repo != nil {
		if err := r.repo.Close(); err != nil {
			logs.Logger.Warn().Err(err).Msg("failed to close store")
		}
		r.repo = nil
	}
	logs.Close()
}

// requireUser is a PreRunE for commands that act on the signed-in user's notes
func (r *runner) requireUser(cmd *cobra.Command, args []string) error {
	if err := r.open(cmd, args); err != nil {
		return err
	}
	if r.session.Current() == nil {
		return errNotLoggedIn
	}
	return nil
}

func (r *runner) runTUI(cmd *cobra.Command, args []string) error {
	logs.Logger.Info().Msg("starting app in TUI mode")
	model := tui.NewAppModel(tui.Deps{
		Config:    r.cfg,
		Notes:     r.notes,
		Repo:      r.repo,
		Session:   r.session,
		Assistant: r.assistant,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func newRootCmd() (*cobra.Command, *runner) {
	r := &runner{}

	root := &cobra.Command{
		Use:   "smartnote",
		Short: "SmartNote - notes with an AI assistant",
		Long: `SmartNote keeps your notes in a local store and can ask Gemini to
suggest tags, summarize, or polish them.

Running smartnote without arguments launches the interactive UI.`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: r.open,
		RunE:              r.runTUI,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&r.flags.ConfigFile, "config", "", "Config file (default ~/.config/smartnote/config.yaml)")
	pf.StringVarP(&r.flags.DataDir, "data-dir", "d", "", "Data directory (default ~/smartnote)")
	pf.StringVar(&r.flags.Backend, "backend", "", "Storage backend: file or sqlite")
	pf.BoolVar(&r.flags.Debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newNoteCmd(r),
		newTagsCmd(r),
		newTrashCmd(r),
		newLoginCmd(r),
		newRegisterCmd(r),
		newLogoutCmd(r),
		newWhoamiCmd(r),
		newThemeCmd(r),
		newAICmd(r),
		newExportCmd(r),
		newImportCmd(r),
	)

	return root, r
}

// Execute runs the root command
func Execute(version string) error {
	root, r := newRootCmd()
	defer r.close()

	root.Version = version
	if err := root.Execute(); err != nil {
		var verr *auth.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(os.Stderr, verr.Msg)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return err
	}
	return nil
}
