package command

import (
	"fmt"

	"github.com/jrsteele09/ular-tangga-admin/shell"
	"github.com/urfave/cli/v2"
)

func TabsCommand() *cli.Command {
	return &cli.Command{
		Name:  "tabs",
		Usage: "List the dashboard tabs",
		Action: func(c *cli.Context) error {
			return render(c, tabList(shell.Tabs()))
		},
	}
}

func DashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Show one dashboard tab",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tab", Aliases: []string{"t"}, Usage: "Tab id: overview, users, questions, analytics", Value: shell.TabOverview},
			&cli.IntFlag{Name: "page", Usage: "Page for the users and questions tabs", Value: 1},
		},
		Action: func(c *cli.Context) error {
			a, err := loadApp(c)
			if err != nil {
				return err
			}
			if !a.Session.IsAuthenticated() {
				return errNotLoggedIn
			}

			a.Shell.Mount(c.Context)
			a.Shell.SelectTab(c.String("tab"))

			view := a.Shell.Content()
			shell.SetPage(view, c.Int("page"), a.Config.GetUsersPageSize())
			if loader, ok := view.(shell.Loader); ok {
				if err := loader.Load(c.Context, a.Client, a.Session.Token()); err != nil {
					return fmt.Errorf("load %s: %w", view.TabID(), err)
				}
			}
			return render(c, viewResult(view))
		},
	}
}
