package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/futureed/backend/pkg/academy"
	"github.com/urfave/cli/v2"
)

var Version = "dev"

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".academy-session.json"
	}
	return filepath.Join(dir, "futureed", "session.json")
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:    "academyctl",
		Usage:   "FutureEd Academy account and fee payment client",
		Version: Version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   "Backend base URL",
				Value:   "http://localhost:5000",
				EnvVars: []string{"ACADEMY_URL"},
			},
			&cli.StringFlag{
				Name:    "anon-key",
				Usage:   "Public key sent as bearer on checkout calls",
				EnvVars: []string{"ACADEMY_ANON_KEY"},
			},
			&cli.StringFlag{
				Name:    "origin",
				Usage:   "Site origin used for checkout redirect URLs",
				EnvVars: []string{"ACADEMY_ORIGIN"},
			},
			&cli.StringFlag{
				Name:    "session",
				Usage:   "Session file path",
				Value:   defaultSessionPath(),
				EnvVars: []string{"ACADEMY_SESSION"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Per-command timeout",
				Value: 30 * time.Second,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "signup",
				Usage: "Create an account and sign in",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"ACADEMY_PASSWORD"}},
					&cli.StringFlag{Name: "name", Usage: "Full name", Required: true},
				},
				Action: signupCommand,
			},
			{
				Name:  "login",
				Usage: "Sign in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"ACADEMY_PASSWORD"}},
				},
				Action: loginCommand,
			},
			{
				Name:   "logout",
				Usage:  "Forget the stored session",
				Action: logoutCommand,
			},
			{
				Name:   "whoami",
				Usage:  "Show the signed-in user",
				Action: whoamiCommand,
			},
			{
				Name:   "pay",
				Usage:  "Start a college fee checkout and print the session id",
				Action: payCommand,
			},
		},
	}
}

func newClient(c *cli.Context) *academy.Client {
	var opts []academy.Option
	if key := c.String("anon-key"); key != "" {
		opts = append(opts, academy.WithAPIKey(key))
	}
	if origin := c.String("origin"); origin != "" {
		opts = append(opts, academy.WithOrigin(origin))
	}
	return academy.New(c.String("url"), opts...)
}

func newAuthContext(c *cli.Context) (*academy.AuthContext, error) {
	ac := academy.NewAuthContext(newClient(c), academy.NewFileStore(c.String("session")))
	if err := ac.Init(); err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return ac, nil
}

func commandContext(c *cli.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context, c.Duration("timeout"))
}

func signupCommand(c *cli.Context) error {
	ac, err := newAuthContext(c)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(c)
	defer cancel()

	u, err := ac.Signup(ctx, c.String("email"), c.String("password"), c.String("name"))
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(c.App.Writer, "Welcome, %s (%s)\n", u.FullName, u.Email)
	return nil
}

func loginCommand(c *cli.Context) error {
	ac, err := newAuthContext(c)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(c)
	defer cancel()

	u, err := ac.Login(ctx, c.String("email"), c.String("password"))
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(c.App.Writer, "Logged in as %s (%s)\n", u.FullName, u.Email)
	return nil
}

func logoutCommand(c *cli.Context) error {
	ac, err := newAuthContext(c)
	if err != nil {
		return err
	}
	if err := ac.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "Logged out")
	return nil
}

func whoamiCommand(c *cli.Context) error {
	ac, err := newAuthContext(c)
	if err != nil {
		return err
	}
	if !ac.LoggedIn() {
		fmt.Fprintln(c.App.Writer, "Not logged in")
		return nil
	}
	u := ac.User()
	fmt.Fprintf(c.App.Writer, "%s <%s> id=%s\n", u.FullName, u.Email, u.ID)
	return nil
}

func payCommand(c *cli.Context) error {
	ctx, cancel := commandContext(c)
	defer cancel()

	id, err := newClient(c).CreateCheckoutSession(ctx)
	if err != nil {
		return describe(err)
	}
	fmt.Fprintln(c.App.Writer, id)
	return nil
}

// describe keeps the server's message but adds the status for the terminal.
func describe(err error) error {
	var apiErr *academy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s (HTTP %d)", apiErr.Message, apiErr.Status)
	}
	return err
}
