// Package shell is the admin dashboard: header, tab bar and the content
// area under it. It reads the session but never changes it, apart from
// asking the session store to log out.
package shell

import (
	"context"
	"sync"

	"github.com/jrsteele09/ular-tangga-admin/internal/i18n"
	"github.com/jrsteele09/ular-tangga-admin/session"
	"github.com/jrsteele09/ular-tangga-admin/users"
	"github.com/rs/zerolog"
	"golang.org/x/text/message"
)

const (
	summaryPage     = 1
	defaultPageSize = 10
)

// SessionReader is the session store as seen by the shell
type SessionReader interface {
	Snapshot() session.Session
	Logout(ctx context.Context)
}

var _ SessionReader = (*session.Store)(nil)

// Header is the greeting bar above the tabs
type Header struct {
	UserName        string
	Greeting        string
	LogoutLabel     string
	TotalUsersLabel string
}

type Shell struct {
	session SessionReader
	lister  users.Lister
	logger  zerolog.Logger
	printer *message.Printer

	mu         sync.RWMutex
	mounted    bool
	activeTab  string
	totalUsers int
}

type Option func(*Shell)

func WithLogger(logger zerolog.Logger) Option {
	return func(sh *Shell) {
		sh.logger = logger
	}
}

func WithLocale(locale string) Option {
	return func(sh *Shell) {
		sh.printer = i18n.Printer(locale)
	}
}

func New(s SessionReader, lister users.Lister, opts ...Option) *Shell {
	sh := &Shell{
		session:   s,
		lister:    lister,
		logger:    zerolog.Nop(),
		printer:   i18n.Printer(""),
		activeTab: DefaultTab(),
	}
	for _, opt := range opts {
		opt(sh)
	}
	return sh
}

// Mount fetches the user total for the overview. It runs once per mount;
// a failed fetch is logged and leaves the total at 0.
func (sh *Shell) Mount(ctx context.Context) {
	sh.mu.Lock()
	if sh.mounted {
		sh.mu.Unlock()
		return
	}
	sh.mounted = true
	sh.mu.Unlock()

	total := 0
	resp, err := sh.lister.ListUsers(ctx, sh.session.Snapshot().Token, summaryPage, defaultPageSize)
	if err != nil {
		sh.logger.Error().Err(err).Msg("[shell Mount] failed to fetch user total")
	} else {
		total = resp.Total()
	}

	sh.mu.Lock()
	sh.totalUsers = total
	sh.mu.Unlock()
}

func (sh *Shell) Mounted() bool {
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return sh.mounted
}

func (sh *Shell) Tabs() []Tab {
	return Tabs()
}

func (sh *Shell) ActiveTab() string {
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return sh.activeTab
}

// SelectTab changes the active tab. Nothing is fetched here.
func (sh *Shell) SelectTab(id string) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.activeTab = id
}

func (sh *Shell) TotalUsers() int {
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return sh.totalUsers
}

// Content returns the view for the active tab
func (sh *Shell) Content() View {
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return Dispatch(sh.activeTab, sh.totalUsers)
}

func (sh *Shell) Header() Header {
	name := sh.session.Snapshot().User.DisplayName()
	return Header{
		UserName:        name,
		Greeting:        sh.printer.Sprintf(i18n.MsgGreeting, name),
		LogoutLabel:     sh.printer.Sprintf(i18n.MsgLogout),
		TotalUsersLabel: sh.printer.Sprintf(i18n.MsgTotalUsers),
	}
}

// LoadFailed is the message shown in place of a view whose data could not
// be fetched
func (sh *Shell) LoadFailed(v View) string {
	return sh.printer.Sprintf(i18n.MsgLoadFailed, TabLabel(v.TabID()))
}

// Logout ends the session and unmounts the shell
func (sh *Shell) Logout(ctx context.Context) {
	sh.session.Logout(ctx)
	sh.Unmount()
}

// Unmount resets the shell to its initial state. The next Mount fetches
// the summary again.
func (sh *Shell) Unmount() {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.mounted = false
	sh.activeTab = DefaultTab()
	sh.totalUsers = 0
}
