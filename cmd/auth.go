// ABOUTME: Account commands for the neurostudy CLI
// ABOUTME: login, register, logout, and whoami over the auth service and the session file

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Zubimendi/neurostudy/cli/internal/auth"
	"github.com/Zubimendi/neurostudy/cli/internal/session"
)

var (
	emailFlag           string
	passwordFlag        string
	confirmPasswordFlag string
	nameFlag            string
)

// promptSecret asks for a hidden value on the terminal
var promptSecret = func(title string) (string, error) {
	var value string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value).
		Run()
	return value, err
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to NeuroStudy",
	Long: `Sign in with your email and password. The session is stored in the config
directory and used by every other command until you log out.

The password is prompted for when --password is omitted on a terminal.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		password, err := secretOrPrompt(passwordFlag, "Password")
		if err != nil {
			exit(report(newPrinter(os.Stderr), err))
		}
		exit(runLogin(ctx, os.Stdout, emailFlag, password))
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a NeuroStudy account",
	Long:  `Create an account and sign in. Passwords must be at least 6 characters.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		p := newPrinter(os.Stderr)
		password, err := secretOrPrompt(passwordFlag, "Password")
		if err != nil {
			exit(report(p, err))
		}
		confirm := confirmPasswordFlag
		if confirm == "" && passwordFlag == "" {
			if confirm, err = secretOrPrompt("", "Confirm Password"); err != nil {
				exit(report(p, err))
			}
		}

		exit(runRegister(ctx, os.Stdout, auth.RegisterInput{
			Email:           emailFlag,
			Password:        password,
			ConfirmPassword: confirm,
			FullName:        nameFlag,
		}))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		exit(runLogout(ctx, os.Stdout))
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long:  `Show the signed-in user. Exits with status 1 when nobody is logged in.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		exit(runWhoami(ctx, os.Stdout))
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&emailFlag, "email", "", "Account email")
		c.Flags().StringVar(&passwordFlag, "password", "", "Account password (prompted when omitted)")
	}
	registerCmd.Flags().StringVar(&confirmPasswordFlag, "confirm-password", "", "Repeat the password")
	registerCmd.Flags().StringVar(&nameFlag, "name", "", "Full name")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

// secretOrPrompt returns value, or prompts for it when empty and stdin is a terminal
func secretOrPrompt(value, title string) (string, error) {
	if value != "" || !stdinIsTerminal() {
		return value, nil
	}
	return promptSecret(title)
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// runLogin signs in and returns exit code
func runLogin(ctx context.Context, w io.Writer, email, password string) int {
	svc := newServices()
	p := newPrinter(w)

	user, err := svc.auth.Login(ctx, email, password)
	if err != nil {
		return report(p, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(user))
		return exitOK
	}
	p.Success("Logged in as %s", displayName(user))
	return exitOK
}

// runRegister creates the account and returns exit code
func runRegister(ctx context.Context, w io.Writer, in auth.RegisterInput) int {
	svc := newServices()
	p := newPrinter(w)

	user, err := svc.auth.Register(ctx, in)
	if err != nil {
		return report(p, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(user))
		return exitOK
	}
	p.Success("Account created. Logged in as %s", displayName(user))
	return exitOK
}

// runLogout clears the stored session and returns exit code
func runLogout(ctx context.Context, w io.Writer) int {
	svc := newServices()
	p := newPrinter(w)

	if err := svc.auth.Logout(ctx); err != nil {
		return report(p, err)
	}
	p.Success("Logged out")
	return exitOK
}

// runWhoami prints the stored user and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	svc := newServices()
	p := newPrinter(w)

	user, ok := svc.requireLogin(ctx, p)
	if !ok {
		return exitFailure
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(user))
		return exitOK
	}
	fmt.Fprintln(w, formatUserHuman(user))
	return exitOK
}

// formatUserHuman formats a user profile for human readability
func formatUserHuman(user *session.User) string {
	name := user.FullName
	if name == "" {
		name = "-"
	}
	out := fmt.Sprintf(`Name:   %s
Email:  %s
ID:     %s`, name, user.Email, user.ID)
	if !user.CreatedAt.IsZero() {
		out += "\nJoined: " + user.CreatedAt.Format("2006-01-02")
	}
	return out
}

// formatUserJSON formats a user profile as JSON
func formatUserJSON(user *session.User) string {
	data, _ := json.MarshalIndent(user, "", "  ")
	return string(data)
}

func displayName(user *session.User) string {
	if user.FullName == "" {
		return user.Email
	}
	return fmt.Sprintf("%s (%s)", user.FullName, user.Email)
}
