// authctl is a terminal client for the auth API. It keeps the current
// session in a per-user file and exposes one subcommand per API operation:
//
//	authctl register            create an account and start a session
//	authctl login               start a session with existing credentials
//	authctl whoami              show the current profile
//	authctl update [flags]      change username, email and/or password
//	authctl delete              permanently delete the account
//	authctl logout              drop the local session
//
// The server address comes from -addr or the AUTH_API_ADDR environment
// variable, defaulting to http://localhost:8080.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/platformlab/auth-api/internal/client"
)

const defaultAddr = "http://localhost:8080"

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	path, err := client.DefaultSessionPath()
	if err != nil {
		fatal(err)
	}

	app := &app{
		store: client.NewFileStore(path),
		in:    bufio.NewReader(os.Stdin),
		out:   os.Stdout,
	}

	if err := app.run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "authctl:", err)
	os.Exit(1)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: authctl <register|login|whoami|update|delete|logout> [flags]")
}

type app struct {
	store client.SessionStore
	in    *bufio.Reader
	out   io.Writer
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	addr := fs.String("addr", envOr("AUTH_API_ADDR", defaultAddr), "auth API base URL")

	var username, email *string
	var password *bool
	if command == "update" {
		username = fs.String("username", "", "new username")
		email = fs.String("email", "", "new email")
		password = fs.Bool("password", false, "prompt for a new password")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	api := client.New(*addr)

	switch command {
	case "register":
		return a.register(ctx, api)
	case "login":
		return a.login(ctx, api)
	case "whoami":
		return a.whoami(ctx, api)
	case "update":
		return a.update(ctx, api, *username, *email, *password)
	case "delete":
		return a.delete(ctx, api)
	case "logout":
		if err := a.store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "logged out")
		return nil
	default:
		usage(os.Stderr)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) register(ctx context.Context, api *client.Client) error {
	username, err := a.prompt("Username")
	if err != nil {
		return err
	}
	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := a.promptPassword()
	if err != nil {
		return err
	}

	sess, err := api.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	if err := a.store.Save(sess); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "registered as %s (id %s)\n", sess.Username, sess.UserID)
	return nil
}

func (a *app) login(ctx context.Context, api *client.Client) error {
	username, err := a.prompt("Username")
	if err != nil {
		return err
	}
	password, err := a.promptPassword()
	if err != nil {
		return err
	}

	sess, err := api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := a.store.Save(sess); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "logged in as %s\n", sess.Username)
	return nil
}

func (a *app) whoami(ctx context.Context, api *client.Client) error {
	sess, err := a.session()
	if err != nil {
		return err
	}

	profile, err := api.GetProfile(ctx, sess)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "id:       %s\n", profile.ID)
	fmt.Fprintf(a.out, "username: %s\n", profile.Username)
	fmt.Fprintf(a.out, "email:    %s\n", profile.Email)
	fmt.Fprintf(a.out, "created:  %s\n", profile.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func (a *app) update(ctx context.Context, api *client.Client, username, email string, password bool) error {
	sess, err := a.session()
	if err != nil {
		return err
	}

	var upd client.ProfileUpdate
	if username != "" {
		upd.Username = &username
	}
	if email != "" {
		upd.Email = &email
	}
	if password {
		pw, err := a.promptPassword()
		if err != nil {
			return err
		}
		upd.Password = &pw
	}
	if upd.Username == nil && upd.Email == nil && upd.Password == nil {
		return errors.New("nothing to update; pass -username, -email and/or -password")
	}

	if err := api.UpdateProfile(ctx, sess, upd); err != nil {
		return err
	}

	if upd.Username != nil {
		sess.Username = *upd.Username
		if err := a.store.Save(sess); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.out, "profile updated")
	return nil
}

func (a *app) delete(ctx context.Context, api *client.Client) error {
	sess, err := a.session()
	if err != nil {
		return err
	}

	confirm, err := a.prompt(fmt.Sprintf("Delete account %q permanently? Type yes to confirm", sess.Username))
	if err != nil {
		return err
	}
	if confirm != "yes" {
		fmt.Fprintln(a.out, "aborted")
		return nil
	}

	if err := api.DeleteProfile(ctx, sess); err != nil {
		return err
	}
	if err := a.store.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "account deleted")
	return nil
}

func (a *app) session() (*client.Session, error) {
	sess, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, errors.New("not logged in; run authctl login first")
	}
	return sess, nil
}

func (a *app) prompt(label string) (string, error) {
	if _, err := fmt.Fprintf(a.out, "%s: ", label); err != nil {
		return "", err
	}
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) promptPassword() (string, error) {
	if _, err := fmt.Fprint(a.out, "Password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
