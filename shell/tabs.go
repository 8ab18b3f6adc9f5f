package shell

// Tab identifiers
const (
	TabOverview  = "overview"
	TabUsers     = "users"
	TabQuestions = "questions"
	TabAnalytics = "analytics"
)

// Tab is one entry of the dashboard tab bar. Icon names an icon in the
// stylesheet's icon set.
type Tab struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Icon  string `json:"icon" yaml:"icon"`
}

var tabs = [...]Tab{
	{ID: TabOverview, Label: "Overview", Icon: "layout-dashboard"},
	{ID: TabUsers, Label: "Users", Icon: "users"},
	{ID: TabQuestions, Label: "Bank Soal", Icon: "book-open"},
	{ID: TabAnalytics, Label: "Analytics", Icon: "bar-chart"},
}

// Tabs returns the dashboard tabs in display order
func Tabs() []Tab {
	out := make([]Tab, len(tabs))
	copy(out, tabs[:])
	return out
}

// DefaultTab is the tab selected when the shell mounts
func DefaultTab() string {
	return tabs[0].ID
}

// IsKnownTab reports whether id names one of the four tabs
func IsKnownTab(id string) bool {
	for _, t := range tabs {
		if t.ID == id {
			return true
		}
	}
	return false
}

// TabLabel returns the display label for id, or id itself for an unknown tab
func TabLabel(id string) string {
	for _, t := range tabs {
		if t.ID == id {
			return t.Label
		}
	}
	return id
}
