package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/hevilin/talentsite/internal/app"
	"github.com/hevilin/talentsite/internal/client"
	"github.com/hevilin/talentsite/internal/db"
	"github.com/hevilin/talentsite/internal/types"
)

// Snapshots is a live feed of collection snapshots.
type Snapshots interface {
	Next() (client.Snapshot, error)
	Close() error
}

// API is what the console needs from the server.
type API interface {
	SetToken(token string)
	Login(ctx context.Context, email, password string) (*types.LoginResponse, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (*types.SessionResponse, error)
	Dashboard(ctx context.Context) (*types.DashboardResponse, error)
	UpdateJob(ctx context.Context, id uuid.UUID, req types.UpdateJobRequest) (*db.Job, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
	DeleteCandidate(ctx context.Context, id uuid.UUID) error
	DeleteMessage(ctx context.Context, id uuid.UUID) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
	DeleteOnboarding(ctx context.Context, id uuid.UUID) error
	Watch(ctx context.Context, collections ...db.Collection) (Snapshots, error)
}

// ClientAPI adapts *client.Client to API.
type ClientAPI struct {
	*client.Client
}

// Watch opens the live stream.
func (c ClientAPI) Watch(ctx context.Context, collections ...db.Collection) (Snapshots, error) {
	s, err := c.Client.Watch(ctx, collections...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

const requestTimeout = 15 * time.Second

type (
	sessionMsg struct {
		session *types.SessionResponse
		token   string
		err     error
	}
	loginMsg struct {
		resp *types.LoginResponse
		err  error
	}
	logoutMsg    struct{}
	streamMsg    struct{ stream Snapshots }
	snapshotMsg  struct{ snap client.Snapshot }
	streamEndMsg struct{ err error }
	dashboardMsg struct {
		dash *types.DashboardResponse
		err  error
	}
	doneMsg struct{ err error }
)

// ConsoleModel is the admin back office in the terminal.
type ConsoleModel struct {
	api    API
	ctx    context.Context
	cancel context.CancelFunc
	state  app.State
	styles Styles

	email    textinput.Model
	password textinput.Model
	focus    int

	stream    Snapshots
	table     table.Model
	dashboard types.DashboardResponse

	jobs        []db.Job
	candidates  []db.Candidate
	messages    []db.Message
	clients     []db.ClientCompany
	onboardings []db.OnboardingProcess
	clientNames map[uuid.UUID]string
	jobTitles   map[uuid.UUID]string

	width, height int
	initialToken  string
	notice        string
}

// NewConsoleModel creates the console. A non-empty token is checked on
// start and, when still valid, skips the sign-in screen.
func NewConsoleModel(api API, token string) ConsoleModel {
	ctx, cancel := context.WithCancel(context.Background())

	email := textinput.New()
	email.Placeholder = "admin@example.com"
	email.Focus()
	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	t := table.New(table.WithFocused(true), table.WithHeight(12))

	return ConsoleModel{
		api:          api,
		ctx:          ctx,
		cancel:       cancel,
		state:        app.Transition(app.Initial(), app.OpenLogin{}),
		styles:       DefaultStyles(),
		email:        email,
		password:     password,
		table:        t,
		clientNames:  map[uuid.UUID]string{},
		jobTitles:    map[uuid.UUID]string{},
		initialToken: token,
	}
}

// State returns the navigation state.
func (m ConsoleModel) State() app.State {
	return m.state
}

// Init implements tea.Model.
func (m ConsoleModel) Init() tea.Cmd {
	if m.initialToken == "" {
		return textinput.Blink
	}
	return m.checkSession(m.initialToken)
}

func (m ConsoleModel) checkSession(token string) tea.Cmd {
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		api.SetToken(token)
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		s, err := api.Session(ctx)
		return sessionMsg{session: s, token: token, err: err}
	}
}

func (m ConsoleModel) login(email, password string) tea.Cmd {
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		resp, err := api.Login(ctx, email, password)
		return loginMsg{resp: resp, err: err}
	}
}

func (m ConsoleModel) logout() tea.Cmd {
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		_ = api.Logout(ctx)
		return logoutMsg{}
	}
}

func (m ConsoleModel) openStream() tea.Cmd {
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		s, err := api.Watch(ctx)
		if err != nil {
			return streamEndMsg{err: err}
		}
		return streamMsg{stream: s}
	}
}

func waitSnapshot(s Snapshots) tea.Cmd {
	return func() tea.Msg {
		snap, err := s.Next()
		if err != nil {
			return streamEndMsg{err: err}
		}
		return snapshotMsg{snap: snap}
	}
}

func (m ConsoleModel) loadDashboard() tea.Cmd {
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		d, err := api.Dashboard(ctx)
		return dashboardMsg{dash: d, err: err}
	}
}

func (m ConsoleModel) run(op func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		return doneMsg{err: op(ctx)}
	}
}

// failure turns an API error into the state change it implies.
func failure(err error) app.Action {
	if client.IsUnauthorized(err) {
		return app.SessionExpired{}
	}
	return app.Failed{Reason: userMessage(err)}
}

func userMessage(err error) string {
	var apiErr *client.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
		return apiErr.Message
	}
	return "could not reach the server, please try again"
}

// apply runs a transition and tears the session down when it ends.
func (m ConsoleModel) apply(a app.Action) (ConsoleModel, tea.Cmd) {
	wasSignedIn := m.state.SignedIn()
	m.state = app.Transition(m.state, a)
	if wasSignedIn && !m.state.SignedIn() {
		m.closeStream()
		m.api.SetToken("")
		m.password.SetValue("")
		m.focus = 1
		m.email.Blur()
		m.password.Focus()
	}
	m.refreshTable()
	return m, nil
}

func (m *ConsoleModel) closeStream() {
	if m.stream != nil {
		_ = m.stream.Close()
		m.stream = nil
	}
}

func (m ConsoleModel) signedIn(a app.Action) (tea.Model, tea.Cmd) {
	m, _ = m.apply(a)
	if !m.state.SignedIn() {
		return m, nil
	}
	return m, tea.Batch(m.openStream(), m.loadDashboard())
}

// Update implements tea.Model.
func (m ConsoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(max(msg.Width-2, 20))
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil

	case sessionMsg:
		if msg.err != nil {
			m.api.SetToken("")
			if client.IsUnauthorized(msg.err) {
				return m, nil
			}
			return m.apply(app.Failed{Reason: userMessage(msg.err)})
		}
		return m.signedIn(app.SessionRestored{Email: msg.session.User.Email, Token: msg.token})

	case loginMsg:
		if msg.err != nil {
			return m.apply(app.LoginFailed{Reason: userMessage(msg.err)})
		}
		return m.signedIn(app.LoginSucceeded{Email: msg.resp.User.Email, Token: msg.resp.Token})

	case logoutMsg:
		return m, nil

	case streamMsg:
		if !m.state.SignedIn() {
			_ = msg.stream.Close()
			return m, nil
		}
		m.closeStream()
		m.stream = msg.stream
		return m, waitSnapshot(msg.stream)

	case snapshotMsg:
		if m.stream == nil {
			return m, nil
		}
		if err := m.applySnapshot(msg.snap); err != nil {
			m, _ = m.apply(app.Failed{Reason: err.Error()})
		}
		m.refreshTable()
		return m, tea.Batch(waitSnapshot(m.stream), m.loadDashboard())

	case streamEndMsg:
		if !m.state.SignedIn() || errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		m.stream = nil
		if errors.Is(msg.err, io.EOF) {
			return m.apply(app.Failed{Reason: "live updates stopped, press ctrl+r to reconnect"})
		}
		return m.apply(failure(msg.err))

	case dashboardMsg:
		if msg.err != nil {
			return m.apply(failure(msg.err))
		}
		m.dashboard = *msg.dash
		return m, nil

	case doneMsg:
		if msg.err != nil {
			return m.apply(failure(msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancel()
			m.closeStream()
			return m, tea.Quit
		}
		if m.state.View == app.ViewAdmin {
			return m.updateAdmin(msg)
		}
		return m.updateLogin(msg)
	}
	return m, nil
}

func (m ConsoleModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.cancel()
		return m, tea.Quit
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.focus = 1 - m.focus
		if m.focus == 0 {
			m.email.Focus()
			m.password.Blur()
		} else {
			m.password.Focus()
			m.email.Blur()
		}
		return m, nil
	case tea.KeyEnter:
		if m.state.Busy {
			return m, nil
		}
		if m.focus == 0 {
			m.focus = 1
			m.email.Blur()
			m.password.Focus()
			return m, nil
		}
		email := strings.TrimSpace(m.email.Value())
		if email == "" || m.password.Value() == "" {
			return m.apply(app.LoginFailed{Reason: "enter your email and password"})
		}
		m, _ = m.apply(app.LoginSubmitted{})
		return m, m.login(email, m.password.Value())
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m ConsoleModel) updateAdmin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.cancel()
		m.closeStream()
		return m, tea.Quit
	case "tab", "right", "l":
		return m.apply(app.NextTab{})
	case "shift+tab", "left", "h":
		return m.apply(app.PrevTab{})
	case "1", "2", "3", "4", "5", "6":
		return m.apply(app.SelectTab{Tab: app.Tabs[msg.String()[0]-'1']})
	case "ctrl+o":
		m, _ = m.apply(app.Logout{})
		return m, m.logout()
	case "ctrl+r":
		m.closeStream()
		return m, tea.Batch(m.openStream(), m.loadDashboard())
	case "d", "delete":
		return m, m.deleteSelected()
	case "a":
		return m, m.toggleSelectedJob()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selectedID returns the id of the highlighted row on list tabs.
func (m ConsoleModel) selectedID() (uuid.UUID, bool) {
	i := m.table.Cursor()
	switch m.state.Tab {
	case app.TabJobs:
		if i >= 0 && i < len(m.jobs) {
			return m.jobs[i].ID, true
		}
	case app.TabCandidates:
		if i >= 0 && i < len(m.candidates) {
			return m.candidates[i].ID, true
		}
	case app.TabMessages:
		if i >= 0 && i < len(m.messages) {
			return m.messages[i].ID, true
		}
	case app.TabClients:
		if i >= 0 && i < len(m.clients) {
			return m.clients[i].ID, true
		}
	case app.TabOnboarding:
		if i >= 0 && i < len(m.onboardings) {
			return m.onboardings[i].ID, true
		}
	}
	return uuid.Nil, false
}

func (m ConsoleModel) deleteSelected() tea.Cmd {
	id, ok := m.selectedID()
	if !ok {
		return nil
	}
	var del func(context.Context, uuid.UUID) error
	switch m.state.Tab {
	case app.TabJobs:
		del = m.api.DeleteJob
	case app.TabCandidates:
		del = m.api.DeleteCandidate
	case app.TabMessages:
		del = m.api.DeleteMessage
	case app.TabClients:
		del = m.api.DeleteClient
	case app.TabOnboarding:
		del = m.api.DeleteOnboarding
	default:
		return nil
	}
	return m.run(func(ctx context.Context) error { return del(ctx, id) })
}

func (m ConsoleModel) toggleSelectedJob() tea.Cmd {
	if m.state.Tab != app.TabJobs {
		return nil
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.jobs) {
		return nil
	}
	job := m.jobs[i]
	active := !job.Active
	api := m.api
	return m.run(func(ctx context.Context) error {
		_, err := api.UpdateJob(ctx, job.ID, types.UpdateJobRequest{Active: &active})
		return err
	})
}

func (m *ConsoleModel) applySnapshot(snap client.Snapshot) error {
	var err error
	switch snap.Collection {
	case db.CollectionJobs:
		m.jobs, err = client.DecodeItems[db.Job](snap)
		m.jobTitles = make(map[uuid.UUID]string, len(m.jobs))
		for _, j := range m.jobs {
			m.jobTitles[j.ID] = j.Title
		}
	case db.CollectionCandidates:
		m.candidates, err = client.DecodeItems[db.Candidate](snap)
	case db.CollectionMessages:
		m.messages, err = client.DecodeItems[db.Message](snap)
	case db.CollectionClients:
		m.clients, err = client.DecodeItems[db.ClientCompany](snap)
		m.clientNames = make(map[uuid.UUID]string, len(m.clients))
		for _, c := range m.clients {
			m.clientNames[c.ID] = c.Name
		}
	case db.CollectionOnboardings:
		m.onboardings, err = client.DecodeItems[db.OnboardingProcess](snap)
	}
	return err
}

func date(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// refreshTable rebuilds the table for the current tab.
func (m *ConsoleModel) refreshTable() {
	var cols []table.Column
	var rows []table.Row

	switch m.state.Tab {
	case app.TabJobs:
		cols = []table.Column{{Title: "Title", Width: 28}, {Title: "Location", Width: 16}, {Title: "Type", Width: 10}, {Title: "Status", Width: 8}, {Title: "Created", Width: 10}}
		for _, j := range m.jobs {
			status := "closed"
			if j.Active {
				status = "open"
			}
			rows = append(rows, table.Row{j.Title, j.Location, j.Type, status, date(j.CreatedAt)})
		}
	case app.TabCandidates:
		cols = []table.Column{{Title: "Name", Width: 22}, {Title: "Role", Width: 20}, {Title: "Email", Width: 26}, {Title: "Phone", Width: 16}, {Title: "Applied to", Width: 20}}
		for _, c := range m.candidates {
			applied := "talent bank"
			if c.JobID != nil {
				applied = m.jobTitles[*c.JobID]
				if applied == "" {
					applied = "(removed job)"
				}
			}
			rows = append(rows, table.Row{c.Name, c.Role, c.Email, c.Phone, applied})
		}
	case app.TabMessages:
		cols = []table.Column{{Title: "From", Width: 20}, {Title: "Email", Width: 26}, {Title: "Message", Width: 40}, {Title: "Received", Width: 10}}
		for _, msg := range m.messages {
			rows = append(rows, table.Row{msg.Name, msg.Email, strings.ReplaceAll(msg.Message, "\n", " "), date(msg.CreatedAt)})
		}
	case app.TabClients:
		cols = []table.Column{{Title: "Company", Width: 26}, {Title: "Contact", Width: 22}, {Title: "Email", Width: 28}}
		for _, c := range m.clients {
			rows = append(rows, table.Row{c.Name, c.ContactPerson, c.Email})
		}
	case app.TabOnboarding:
		cols = []table.Column{{Title: "Candidate", Width: 22}, {Title: "Client", Width: 22}, {Title: "Status", Width: 18}, {Title: "Docs", Width: 30}}
		for _, o := range m.onboardings {
			rows = append(rows, table.Row{o.CandidateName, m.clientNames[o.ClientID], string(o.Status), o.DocsURL})
		}
	default:
		cols = []table.Column{{Title: "", Width: 1}}
	}

	// Rows must be cleared before narrowing the columns.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	// An empty table leaves the cursor at -1.
	if c := m.table.Cursor(); c < 0 || c >= len(rows) {
		m.table.SetCursor(max(min(c, len(rows)-1), 0))
	}
}

// View implements tea.Model.
func (m ConsoleModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Talent consultancy back office"))
	b.WriteString("\n\n")

	if m.state.View != app.ViewAdmin {
		b.WriteString(m.styles.Title.Render("Sign in"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Label.Render("Email") + "\n" + m.email.View() + "\n\n")
		b.WriteString(m.styles.Label.Render("Password") + "\n" + m.password.View() + "\n\n")
		if m.state.Busy {
			b.WriteString(m.styles.Muted.Render("signing in...") + "\n")
		}
		if m.state.Error != "" {
			b.WriteString(m.styles.Error.Render(m.state.Error) + "\n")
		}
		b.WriteString(m.styles.Help.Render("enter to continue • tab switches field • esc quits"))
		return b.String()
	}

	tabs := make([]string, 0, len(app.Tabs))
	for i, t := range app.Tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Label())
		if t == m.state.Tab {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("signed in as " + m.state.Email))
	b.WriteString("\n\n")

	if m.state.Tab == app.TabDashboard {
		d := m.dashboard
		cards := []string{
			m.styles.Card.Render(fmt.Sprintf("Open jobs\n%d / %d", d.ActiveJobs, d.Jobs)),
			m.styles.Card.Render(fmt.Sprintf("Candidates\n%d", d.Candidates)),
			m.styles.Card.Render(fmt.Sprintf("Messages\n%d", d.Messages)),
			m.styles.Card.Render(fmt.Sprintf("Clients\n%d", d.Clients)),
			m.styles.Card.Render(fmt.Sprintf("Onboarding\n%d", d.Onboardings)),
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	} else if len(m.table.Rows()) == 0 {
		b.WriteString(m.styles.Muted.Render("nothing here yet"))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n\n")

	if m.state.Error != "" {
		b.WriteString(m.styles.Error.Render(m.state.Error) + "\n")
	}
	help := "tab/1-6 switch • ↑/↓ select • d delete • ctrl+r reconnect • ctrl+o sign out • q quit"
	if m.state.Tab == app.TabJobs {
		help = "a open/close job • " + help
	}
	b.WriteString(m.styles.Help.Render(help))
	return b.String()
}
