package shell

import (
	"context"

	"github.com/jrsteele09/ular-tangga-admin/api"
	"github.com/jrsteele09/ular-tangga-admin/users"
)

// View is the content rendered under the tab bar
type View interface {
	TabID() string
}

// ContentSource is what the self-loading views fetch from
type ContentSource interface {
	users.Lister
	ListQuestions(ctx context.Context, token string, page, limit int) (*api.QuestionListResponse, error)
	Analytics(ctx context.Context, token string) (*api.Analytics, error)
}

var _ ContentSource = (*api.Client)(nil)

// Loader is implemented by views that fetch their own data
type Loader interface {
	View
	Load(ctx context.Context, src ContentSource, token string) error
}

// OverviewView is the only view fed by the shell itself
type OverviewView struct {
	TotalUsers int
}

func (*OverviewView) TabID() string { return TabOverview }

type UsersView struct {
	Page     int
	PageSize int
	Users    *users.ListResponse
}

func (*UsersView) TabID() string { return TabUsers }

func (v *UsersView) Load(ctx context.Context, src ContentSource, token string) error {
	v.Page, v.PageSize = normalisePage(v.Page, v.PageSize)
	resp, err := src.ListUsers(ctx, token, v.Page, v.PageSize)
	if err != nil {
		return err
	}
	v.Users = resp
	return nil
}

type QuestionBankView struct {
	Page      int
	PageSize  int
	Questions *api.QuestionListResponse
}

func (*QuestionBankView) TabID() string { return TabQuestions }

func (v *QuestionBankView) Load(ctx context.Context, src ContentSource, token string) error {
	v.Page, v.PageSize = normalisePage(v.Page, v.PageSize)
	resp, err := src.ListQuestions(ctx, token, v.Page, v.PageSize)
	if err != nil {
		return err
	}
	v.Questions = resp
	return nil
}

type AnalyticsView struct {
	Summary *api.Analytics
}

func (*AnalyticsView) TabID() string { return TabAnalytics }

func (v *AnalyticsView) Load(ctx context.Context, src ContentSource, token string) error {
	summary, err := src.Analytics(ctx, token)
	if err != nil {
		return err
	}
	v.Summary = summary
	return nil
}

// SetPage points a paginated view at page. Pages below 1 become 1 and a
// size below 1 becomes the default page size. Views without pages are left
// alone; the return value reports whether v was paginated.
func SetPage(v View, page, size int) bool {
	page, size = normalisePage(page, size)
	switch view := v.(type) {
	case *UsersView:
		view.Page, view.PageSize = page, size
	case *QuestionBankView:
		view.Page, view.PageSize = page, size
	default:
		return false
	}
	return true
}

func normalisePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	return page, size
}

// Dispatch maps a tab id to its view. Only the overview receives
// totalUsers; unknown ids fall back to the overview.
func Dispatch(tabID string, totalUsers int) View {
	switch tabID {
	case TabUsers:
		return &UsersView{}
	case TabQuestions:
		return &QuestionBankView{}
	case TabAnalytics:
		return &AnalyticsView{}
	default:
		return &OverviewView{TotalUsers: totalUsers}
	}
}
