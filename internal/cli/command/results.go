package command

import (
	"fmt"
	"strconv"

	"github.com/jrsteele09/ular-tangga-admin/api"
	"github.com/jrsteele09/ular-tangga-admin/internal/cli/output"
	"github.com/jrsteele09/ular-tangga-admin/session"
	"github.com/jrsteele09/ular-tangga-admin/shell"
	"github.com/jrsteele09/ular-tangga-admin/users"
)

type loginResult session.Result

func (r loginResult) Table() *output.Table {
	return &output.Table{
		Headers: []string{"ID", "NAME", "EMAIL", "ROLE"},
		Rows:    [][]string{{r.User.ID, r.User.DisplayName(), r.User.Email, r.User.Role}},
	}
}

func (w whoAmI) Table() *output.Table {
	expires := "-"
	if w.ExpiresAt != nil {
		expires = w.ExpiresAt.Local().Format("2006-01-02 15:04")
	}
	return &output.Table{
		Headers: []string{"ID", "NAME", "EMAIL", "ROLE", "EXPIRES"},
		Rows:    [][]string{{w.ID, w.Name, w.Email, w.Role, expires}},
	}
}

type tabList []shell.Tab

func (l tabList) Table() *output.Table {
	t := &output.Table{Headers: []string{"ID", "LABEL", "ICON"}}
	for _, tab := range l {
		t.Rows = append(t.Rows, []string{tab.ID, tab.Label, tab.Icon})
	}
	return t
}

type overviewResult struct {
	TotalUsers int `json:"total_users" yaml:"total_users"`
}

func (o overviewResult) Table() *output.Table {
	return &output.Table{
		Headers: []string{"TOTAL USERS"},
		Rows:    [][]string{{strconv.Itoa(o.TotalUsers)}},
	}
}

type usersResult users.ListResponse

func (r *usersResult) Table() *output.Table {
	t := &output.Table{Headers: []string{"ID", "NAME", "EMAIL", "ROLE"}}
	for _, u := range r.Users {
		t.Rows = append(t.Rows, []string{u.ID, u.DisplayName(), u.Email, u.Role})
	}
	return t
}

type questionsResult api.QuestionListResponse

func (r *questionsResult) Table() *output.Table {
	t := &output.Table{Headers: []string{"ID", "QUESTION", "CATEGORY", "DIFFICULTY", "ANSWER"}}
	for _, q := range r.Questions {
		t.Rows = append(t.Rows, []string{fmt.Sprint(q.ID), q.Text, q.Category, q.Difficulty, q.Answer})
	}
	return t
}

type analyticsResult api.Analytics

func (r *analyticsResult) Table() *output.Table {
	return &output.Table{
		Headers: []string{"GAMES", "ACTIVE PLAYERS", "ANSWERED", "CORRECT", "AVG SCORE"},
		Rows: [][]string{{
			strconv.Itoa(r.TotalGames),
			strconv.Itoa(r.ActivePlayers),
			strconv.Itoa(r.QuestionsAnswered),
			fmt.Sprintf("%.0f%%", r.CorrectRate*100),
			fmt.Sprintf("%.1f", r.AverageScore),
		}},
	}
}

// viewResult adapts a loaded dashboard view to something output can render
func viewResult(v shell.View) any {
	switch view := v.(type) {
	case *shell.UsersView:
		return (*usersResult)(view.Users)
	case *shell.QuestionBankView:
		return (*questionsResult)(view.Questions)
	case *shell.AnalyticsView:
		return (*analyticsResult)(view.Summary)
	case *shell.OverviewView:
		return overviewResult{TotalUsers: view.TotalUsers}
	default:
		return nil
	}
}
