package command

import (
	"errors"
	"time"

	"github.com/jrsteele09/ular-tangga-admin/api"
	"github.com/jrsteele09/ular-tangga-admin/session"
	"github.com/urfave/cli/v2"
)

var errNotLoggedIn = errors.New("not logged in, run `admin-cli login` first")

func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:      "login",
		Usage:     "Sign in and keep the session for later commands",
		ArgsUsage: "[key=value ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", EnvVars: []string{"ULAR_TANGGA_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			creds := api.Credentials{}
			setIfPresent(creds, "email", c.String("email"))
			setIfPresent(creds, "password", c.String("password"))
			if err := payloadArgs(c, creds); err != nil {
				return err
			}

			a, err := loadApp(c)
			if err != nil {
				return err
			}
			return finish(c, a.Session.Login(c.Context, creds))
		},
	}
}

func RegisterCommand() *cli.Command {
	return &cli.Command{
		Name:      "register",
		Usage:     "Create an account and sign in with it",
		ArgsUsage: "[key=value ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Display name"},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", EnvVars: []string{"ULAR_TANGGA_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			data := api.RegistrationData{}
			setIfPresent(data, "name", c.String("name"))
			setIfPresent(data, "email", c.String("email"))
			setIfPresent(data, "password", c.String("password"))
			if err := payloadArgs(c, data); err != nil {
				return err
			}

			a, err := loadApp(c)
			if err != nil {
				return err
			}
			return finish(c, a.Session.Register(c.Context, data))
		},
	}
}

func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "End the session and forget the stored token",
		Action: func(c *cli.Context) error {
			a, err := loadApp(c)
			if err != nil {
				return err
			}
			a.Shell.Logout(c.Context)
			return render(c, session.Result{Success: true})
		},
	}
}

func WhoAmICommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the signed-in user",
		Action: func(c *cli.Context) error {
			a, err := loadApp(c)
			if err != nil {
				return err
			}
			snap := a.Session.Snapshot()
			if !snap.IsAuthenticated() {
				return errNotLoggedIn
			}
			return render(c, newWhoAmI(snap))
		},
	}
}

func setIfPresent(payload map[string]any, key, value string) {
	if value != "" {
		payload[key] = value
	}
}

// finish renders a login or register result; failures become the command's error
func finish(c *cli.Context, result session.Result) error {
	if !result.Success {
		return errors.New(result.Error)
	}
	return render(c, loginResult(result))
}

type whoAmI struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Email     string     `json:"email" yaml:"email"`
	Role      string     `json:"role,omitempty" yaml:"role,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

func newWhoAmI(snap session.Session) whoAmI {
	w := whoAmI{
		ID:    snap.User.ID,
		Name:  snap.User.DisplayName(),
		Email: snap.User.Email,
		Role:  snap.User.Role,
	}
	if !snap.ExpiresAt.IsZero() {
		exp := snap.ExpiresAt
		w.ExpiresAt = &exp
	}
	return w
}
