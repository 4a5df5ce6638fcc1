// Command console is the admin console for the site's content API.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sarb.backend/internal/config"
	"sarb.backend/internal/console/listparse"
	"sarb.backend/internal/console/notify"
	"sarb.backend/internal/console/store"
	"sarb.backend/pkg/apiclient"
	"sarb.backend/pkg/logger"
)

// skipGuard marks commands that run without a valid session.
const skipGuard = "skip-guard"

var (
	errAccessDenied = errors.New("access denied")
	// errReported means the command already printed its failure.
	errReported = errors.New("command failed")
)

type app struct {
	cfg    config.ConsoleConfig
	env    string
	tokens apiclient.TokenStorage
	store  *store.Store

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

func newApp(cfg *config.Config, in io.Reader, out, errOut io.Writer) *app {
	return &app{
		cfg:    cfg.Console,
		env:    cfg.Server.Env,
		tokens: apiclient.NewFileTokenStorage(cfg.Console.TokenFile),
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}
}

// init builds the store once per process.
func (a *app) init() error {
	if a.store != nil {
		return nil
	}
	mode := listparse.Lenient
	if a.cfg.StrictShapes {
		mode = listparse.Strict
	}
	s, err := store.New(store.Config{
		BaseURL: a.cfg.APIURL,
		Tokens:  a.tokens,
		Timeout: a.cfg.Timeout,
		Mode:    mode,
		OnRedirect: func(route string) {
			fmt.Fprintf(a.errOut, "Signed out. Sign in again with `login` (%s).\n", route)
		},
	})
	if err != nil {
		return err
	}
	a.store = s
	return nil
}

// guard runs before every command except those marked skipGuard.
func (a *app) guard(cmd *cobra.Command, _ []string) error {
	if err := a.init(); err != nil {
		return err
	}
	if cmd.Annotations[skipGuard] == "true" {
		return nil
	}
	if d := a.store.Guard.Check(); !d.Allowed {
		return fmt.Errorf("%w: %s, redirecting to %s", errAccessDenied, d.Reason, d.Redirect)
	}
	return nil
}

// readLine prints label and reads one trimmed line. io.EOF is returned as is.
func (a *app) readLine(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	return strings.TrimSpace(line), err
}

func (a *app) prompt(label string) (string, error) {
	line, err := a.readLine(label)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return line, nil
}

func (a *app) confirm(question string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	answer, err := a.prompt(question + " [y/N] ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "console",
		Short:             "Manage team, services, case studies and contact messages",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.guard,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newDashboardCmd(a),
		newTeamCmd(a),
		newServicesCmd(a),
		newCaseStudiesCmd(a),
		newMessagesCmd(a),
		newNotificationsCmd(a),
		newShellCmd(a),
	)
	return root
}

func newLoginCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:         "login",
		Short:       "Sign in and store the access token",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipGuard: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if username == "" {
				if username, err = a.prompt("Username: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.prompt("Password: "); err != nil {
					return err
				}
			}
			s := a.store.Session
			if err := s.Login(cmd.Context(), username, password); err != nil {
				return errors.New(s.State().Error)
			}
			a.store.Notifications.Add("Signed in", "Welcome back, "+username, notify.Success)
			fmt.Fprintf(a.out, "Signed in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "logout",
		Short:       "Revoke and forget the stored token",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipGuard: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.store.Session.SignOut(cmd.Context())
			return nil
		},
	}
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger.Init(cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := execute(ctx, newRootCmd(newApp(cfg, os.Stdin, os.Stdout, os.Stderr)), os.Args[1:])
	stop()
	logger.Sync()
	os.Exit(code)
}

// execute runs one command line and returns the exit code.
func execute(ctx context.Context, root *cobra.Command, args []string) int {
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		}
		return 1
	}
	return 0
}
