package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"smartnote/internal/auth"
	"smartnote/internal/storage"
)

func newLoginCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in (local only, nothing is verified)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			u, err := r.session.SignIn(auth.Credentials{Email: email, Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", u.Username, u.Email)
			return nil
		},
	}
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("password", "", "Password (at least 6 characters)")
	return cmd
}

func newRegisterCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a local account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			username, _ := cmd.Flags().GetString("username")

			u, err := r.session.SignIn(auth.Credentials{
				Email:    email,
				Password: password,
				Username: username,
				Register: true,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s (%s)\n", u.Username, u.Email)
			return nil
		},
	}
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("password", "", "Password (at least 6 characters)")
	cmd.Flags().String("username", "", "Display name")
	return cmd
}

func newLogoutCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if r.session.Current() == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			if err := r.session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u := r.session.Current()
			if u == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", u.Username, u.Email)
			return nil
		},
	}
}

func newThemeCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or set the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			current := r.repo.LoadTheme()
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), current)
				return nil
			}

			var next storage.Theme
			switch args[0] {
			case "light":
				next = storage.ThemeLight
			case "dark":
				next = storage.ThemeDark
			case "toggle":
				next = current.Toggle()
			default:
				return fmt.Errorf("unknown theme %q (want light, dark, or toggle)", args[0])
			}
			if err := r.repo.SaveTheme(next); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", next)
			return nil
		},
	}
}
