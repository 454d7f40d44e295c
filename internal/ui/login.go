package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	focusUsername = iota
	focusPassword
)

type loginModel struct {
	username   textinput.Model
	password   textinput.Model
	focused    int
	submitting bool
	styles     styles
}

func newLoginModel(st styles) loginModel {
	user := textinput.New()
	user.Placeholder = "Username"
	user.Width = 32
	user.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan))

	pass := textinput.New()
	pass.Placeholder = "Password"
	pass.Width = 32
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan))

	return loginModel{username: user, password: pass, styles: st}
}

func (m *loginModel) reset() {
	m.username.SetValue("")
	m.password.SetValue("")
	m.focused = focusUsername
	m.submitting = false
	m.username.Focus()
	m.password.Blur()
}

func (m *loginModel) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (m *loginModel) update(msg tea.Msg, a *App) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyDown, tea.KeyUp:
			m.toggleFocus()
			return textinput.Blink
		case tea.KeyEnter:
			return m.submit(a)
		}
	}

	var cmd tea.Cmd
	if m.focused == focusUsername {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return cmd
}

func (m *loginModel) toggleFocus() {
	if m.focused == focusUsername {
		m.focused = focusPassword
		m.username.Blur()
		m.password.Focus()
	} else {
		m.focused = focusUsername
		m.password.Blur()
		m.username.Focus()
	}
}

func (m *loginModel) submit(a *App) tea.Cmd {
	if m.focused == focusUsername {
		m.toggleFocus()
		return textinput.Blink
	}
	if m.submitting {
		return nil
	}

	m.submitting = true
	a.sessions.ClearError()
	return a.loginCmd(strings.TrimSpace(m.username.Value()), m.password.Value())
}

func (m *loginModel) view(a *App) string {
	var b strings.Builder

	b.WriteString(m.styles.widgetHd.Render("Sign in") + "\n\n")
	b.WriteString(m.username.View() + "\n")
	b.WriteString(m.password.View() + "\n\n")

	st := a.sessions.Snapshot()
	switch {
	case st.IsLoading || m.submitting:
		b.WriteString(m.styles.muted.Render("Signing in..."))
	case st.Error != "":
		b.WriteString(m.styles.errBox.Render(st.Error))
	default:
		b.WriteString(m.styles.help.Render("Press enter to sign in"))
	}

	return m.styles.panel.Render(b.String())
}
