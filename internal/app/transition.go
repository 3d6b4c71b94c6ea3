package app

// Action is anything that can change State.
type Action interface {
	isAction()
}

type (
	// OpenLogin moves from the public site to the sign-in screen.
	OpenLogin struct{}
	// BackToSite returns to the public site without signing in.
	BackToSite struct{}
	// LoginSubmitted marks a sign-in attempt as in flight.
	LoginSubmitted struct{}
	// LoginSucceeded carries the new session.
	LoginSucceeded struct {
		Email string
		Token string
	}
	// LoginFailed carries the user-visible reason.
	LoginFailed struct {
		Reason string
	}
	// SessionRestored is an observed, still valid session (e.g. on start).
	SessionRestored struct {
		Email string
		Token string
	}
	// SessionExpired is raised when the back end rejects the token.
	SessionExpired struct{}
	// Logout ends the session.
	Logout struct{}
	// SelectTab jumps to a tab.
	SelectTab struct {
		Tab Tab
	}
	// NextTab and PrevTab cycle through Tabs.
	NextTab struct{}
	PrevTab struct{}
	// Failed records a recoverable failure of some other operation.
	Failed struct {
		Reason string
	}
)

func (OpenLogin) isAction()       {}
func (BackToSite) isAction()      {}
func (LoginSubmitted) isAction()  {}
func (LoginSucceeded) isAction()  {}
func (LoginFailed) isAction()     {}
func (SessionRestored) isAction() {}
func (SessionExpired) isAction()  {}
func (Logout) isAction()          {}
func (SelectTab) isAction()       {}
func (NextTab) isAction()         {}
func (PrevTab) isAction()         {}
func (Failed) isAction()          {}

// Transition applies a to s. Actions that make no sense in the current view
// leave the state unchanged apart from clearing a stale error.
func Transition(s State, a Action) State {
	next := s
	next.Error = ""

	switch a := a.(type) {
	case OpenLogin:
		if s.View == ViewPublic {
			next.View = ViewLogin
		}
	case BackToSite:
		if s.View == ViewLogin {
			next.View = ViewPublic
			next.Busy = false
		}
	case LoginSubmitted:
		if s.View == ViewLogin {
			next.Busy = true
		}
	case LoginSucceeded:
		if s.View == ViewLogin {
			next = signedIn(a.Email, a.Token)
		}
	case SessionRestored:
		if s.View != ViewAdmin {
			next = signedIn(a.Email, a.Token)
		}
	case LoginFailed:
		if s.View == ViewLogin {
			next.Busy = false
			next.Error = a.Reason
		}
	case SessionExpired:
		if s.View == ViewAdmin {
			next = signedOut()
			next.Error = "session expired, please sign in again"
		}
	case Logout:
		if s.View == ViewAdmin {
			next = signedOut()
		}
	case SelectTab:
		if s.View == ViewAdmin && validTab(a.Tab) {
			next.Tab = a.Tab
		}
	case NextTab:
		if s.View == ViewAdmin {
			next.Tab = shiftTab(s.Tab, 1)
		}
	case PrevTab:
		if s.View == ViewAdmin {
			next.Tab = shiftTab(s.Tab, -1)
		}
	case Failed:
		next.Busy = false
		next.Error = a.Reason
	}

	return next
}

func signedIn(email, token string) State {
	return State{View: ViewAdmin, Tab: TabDashboard, Email: email, Token: token}
}

func signedOut() State {
	return State{View: ViewLogin, Tab: TabDashboard}
}

func validTab(t Tab) bool {
	for _, known := range Tabs {
		if known == t {
			return true
		}
	}
	return false
}

func shiftTab(t Tab, delta int) Tab {
	idx := 0
	for i, known := range Tabs {
		if known == t {
			idx = i
			break
		}
	}
	n := len(Tabs)
	return Tabs[((idx+delta)%n+n)%n]
}
