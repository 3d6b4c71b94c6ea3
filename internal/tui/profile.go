package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hevilin/talentsite/internal/profile"
)

type profileField struct {
	label       string
	placeholder string
}

var profileFields = []profileField{
	{"Name", "Ana Souza"},
	{"Role", "Data Analyst"},
	{"Area", "Finance"},
	{"Years of experience", "5"},
	{"Skills", "SQL, Python, Power BI"},
	{"Key achievement", "cut reporting time by 40%"},
}

// ProfileModel is the interactive generator: fill the form, generate, copy
// the texts, regenerate with edits.
type ProfileModel struct {
	flow    *profile.Flow
	inputs  []textinput.Model
	focus   int
	styles  Styles
	width   int
	copied  string
	Quitted bool
}

// NewProfileModel creates the form using the given copy.
func NewProfileModel(t profile.Templates) ProfileModel {
	inputs := make([]textinput.Model, len(profileFields))
	for i, f := range profileFields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.CharLimit = 200
		ti.Width = 48
		inputs[i] = ti
	}
	inputs[0].Focus()

	return ProfileModel{
		flow:   profile.NewFlow(t),
		inputs: inputs,
		styles: DefaultStyles(),
	}
}

// Init implements tea.Model.
func (m ProfileModel) Init() tea.Cmd {
	return textinput.Blink
}

// Stage exposes the flow position.
func (m ProfileModel) Stage() profile.Stage {
	return m.flow.Stage
}

// Result returns the generated texts, or nil while collecting.
func (m ProfileModel) Result() *profile.Generated {
	return m.flow.Result
}

func (m ProfileModel) formInputs() profile.Inputs {
	v := func(i int) string { return strings.TrimSpace(m.inputs[i].Value()) }
	return profile.Inputs{
		Name:              v(0),
		Role:              v(1),
		Area:              v(2),
		YearsOfExperience: v(3),
		Skills:            v(4),
		Achievement:       v(5),
	}
}

func (m *ProfileModel) setFocus(i int) {
	n := len(m.inputs)
	m.focus = ((i % n) + n) % n
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// Update implements tea.Model.
func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			m.Quitted = true
			return m, tea.Quit
		}
		if m.flow.Stage == profile.StageShowing {
			return m.updateShowing(msg)
		}
		return m.updateCollecting(msg)
	}
	return m, nil
}

func (m ProfileModel) updateCollecting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		m.setFocus(m.focus + 1)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.setFocus(m.focus - 1)
		return m, nil
	case tea.KeyEnter:
		if m.focus < len(m.inputs)-1 {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		fallthrough
	case tea.KeyCtrlG:
		m.flow.SetInputs(m.formInputs())
		m.flow.Generate()
		m.copied = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m ProfileModel) updateShowing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.flow.Regenerate()
		m.setFocus(0)
	case "n":
		m.flow.Reset()
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
		m.setFocus(0)
	case "1", "2", "3", "4", "5":
		idx := int(msg.String()[0] - '1')
		texts := append(append([]string{}, m.flow.Result.Headlines...), m.flow.Result.Abouts...)
		if idx < len(texts) {
			m.copied = texts[idx]
			return m, tea.Println(texts[idx])
		}
	case "q":
		m.Quitted = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m ProfileModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("LinkedIn profile generator"))
	b.WriteString("\n\n")

	if m.flow.Stage == profile.StageCollecting {
		for i, f := range profileFields {
			b.WriteString(m.styles.Label.Render(f.label))
			b.WriteString("\n")
			b.WriteString(m.inputs[i].View())
			b.WriteString("\n\n")
		}
		b.WriteString(m.styles.Help.Render("tab/shift+tab move • enter on the last field or ctrl+g generates • esc quits"))
		return b.String()
	}

	n := 1
	b.WriteString(m.styles.Title.Render("Headlines"))
	b.WriteString("\n")
	for _, h := range m.flow.Result.Headlines {
		b.WriteString(m.styles.Card.Render(lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Muted.Render(string(rune('0'+n))+" "), h)))
		b.WriteString("\n")
		n++
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render("About"))
	b.WriteString("\n")
	width := 72
	if m.width > 8 && m.width-4 < width {
		width = m.width - 4
	}
	for _, a := range m.flow.Result.Abouts {
		b.WriteString(m.styles.Card.Width(width).Render(m.styles.Muted.Render(string(rune('0'+n))+" ") + a))
		b.WriteString("\n")
		n++
	}
	if m.copied != "" {
		b.WriteString(m.styles.Success.Render("printed for copying"))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("1-5 print a text for copying • r edit and regenerate • n new profile • q quits"))
	return b.String()
}
