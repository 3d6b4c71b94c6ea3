// Package app holds the navigation state of the site's client surfaces and
// the single transition function that changes it.
package app

// View is the top-level screen.
type View string

const (
	ViewPublic View = "public"
	ViewLogin  View = "login"
	ViewAdmin  View = "admin"
)

// Tab is a section of the admin back office.
type Tab string

const (
	TabDashboard  Tab = "dashboard"
	TabJobs       Tab = "jobs"
	TabCandidates Tab = "candidates"
	TabMessages   Tab = "messages"
	TabClients    Tab = "clients"
	TabOnboarding Tab = "onboarding"
)

// Tabs lists the admin tabs in display order.
var Tabs = []Tab{TabDashboard, TabJobs, TabCandidates, TabMessages, TabClients, TabOnboarding}

// Label returns the sidebar title of a tab.
func (t Tab) Label() string {
	switch t {
	case TabDashboard:
		return "Dashboard"
	case TabJobs:
		return "Jobs"
	case TabCandidates:
		return "Talent Bank"
	case TabMessages:
		return "Messages"
	case TabClients:
		return "Clients"
	case TabOnboarding:
		return "Onboarding"
	default:
		return string(t)
	}
}

// State is the whole navigation state. It is a value; Transition returns a
// new one instead of mutating.
type State struct {
	View  View
	Tab   Tab
	Email string
	Token string
	// Error is the last user-visible failure, cleared by the next action.
	Error string
	// Busy is set while a sign-in is in flight.
	Busy bool
}

// Initial is the state a client starts in.
func Initial() State {
	return State{View: ViewPublic, Tab: TabDashboard}
}

// SignedIn reports whether the state carries a session.
func (s State) SignedIn() bool {
	return s.Token != ""
}
