// Package command defines the admin-cli commands. Every invocation restores
// the session persisted by the previous one, so `login` followed by
// `dashboard` works across processes.
package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/jrsteele09/ular-tangga-admin/internal/app"
	"github.com/jrsteele09/ular-tangga-admin/internal/cli/output"
	"github.com/jrsteele09/ular-tangga-admin/internal/config"
	"github.com/urfave/cli/v2"
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

const appKey = "app"

// App creates the CLI application
func App() *cli.App {
	return &cli.App{
		Name:     "admin-cli",
		Usage:    "Ular Tangga admin from the terminal",
		Version:  fmt.Sprintf("%s (commit: %s)", Version, Commit),
		Flags:    globalFlags(),
		Metadata: map[string]any{},
		Commands: []*cli.Command{
			LoginCommand(),
			RegisterCommand(),
			LogoutCommand(),
			WhoAmICommand(),
			TabsCommand(),
			DashboardCommand(),
		},
		Before: func(c *cli.Context) error {
			_, err := output.ParseFormat(c.String("output"))
			return err
		},
		After: func(c *cli.Context) error {
			if a, ok := c.App.Metadata[appKey].(*app.App); ok {
				delete(c.App.Metadata, appKey)
				return a.Close()
			}
			return nil
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "api-url",
			Usage:   "Ular Tangga API base URL (e.g., http://localhost:8000/api)",
			EnvVars: []string{"API_BASE_URL"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
	}
}

// cliConfig lets global flags override the environment
type cliConfig struct {
	config.Config
	apiURL   string
	logLevel string
}

func (c cliConfig) GetAPIBaseURL() string {
	if c.apiURL != "" {
		return strings.TrimRight(c.apiURL, "/")
	}
	return c.Config.GetAPIBaseURL()
}

func (c cliConfig) GetLogLevel() string {
	if c.logLevel != "" {
		return c.logLevel
	}
	return c.Config.GetLogLevel()
}

// loadApp builds the application on first use and restores the persisted
// session. Commands that never need it don't touch storage or the network.
func loadApp(c *cli.Context) (*app.App, error) {
	if a, ok := c.App.Metadata[appKey].(*app.App); ok {
		return a, nil
	}

	base, err := config.New()
	if err != nil {
		return nil, err
	}
	cfg := cliConfig{Config: base, apiURL: c.String("api-url"), logLevel: "warn"}
	if c.Bool("verbose") {
		cfg.logLevel = "debug"
	}

	errWriter := c.App.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	a, err := app.New(cfg, app.NewLogger(cfg, errWriter), "ular-tangga-admin-cli/"+Version)
	if err != nil {
		return nil, err
	}
	a.Start(c.Context)
	c.App.Metadata[appKey] = a
	return a, nil
}

// render writes data to the app's writer in the format chosen by --output
func render(c *cli.Context, data any) error {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return err
	}
	w := c.App.Writer
	if w == nil {
		w = os.Stdout
	}
	return output.NewFormatter(format).Format(w, data)
}

// payloadArgs turns trailing key=value arguments into payload fields
func payloadArgs(c *cli.Context, payload map[string]any) error {
	for _, arg := range c.Args().Slice() {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return fmt.Errorf("argument %q is not key=value", arg)
		}
		payload[key] = value
	}
	return nil
}
