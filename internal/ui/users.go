package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/netdash/netdash/internal/model"
)

type usersMode int

const (
	usersList usersMode = iota
	usersCreate
	usersPassword
)

var roleOrder = []model.Role{model.RoleViewer, model.RoleOperator, model.RoleAdministrator}

type usersModel struct {
	users   []model.User
	loadErr string
	loading bool

	cursor int
	mode   usersMode
	notice string
	formErr string

	username  textinput.Model
	password  textinput.Model
	roleIndex int
	formFocus int

	styles styles
}

func newUsersModel(st styles) usersModel {
	user := textinput.New()
	user.Placeholder = "Username"
	user.Width = 24

	pass := textinput.New()
	pass.Placeholder = "Password"
	pass.Width = 24
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return usersModel{username: user, password: pass, styles: st}
}

func (m *usersModel) reset() {
	m.loading = true
	m.loadErr = ""
	m.cursor = 0
	m.mode = usersList
	m.notice = ""
	m.formErr = ""
}

func (m *usersModel) capturesKeys() bool {
	return m.mode != usersList
}

func (m *usersModel) setUsers(users []model.User, err error) {
	m.loading = false
	if err != nil {
		m.loadErr = err.Error()
		return
	}
	m.loadErr = ""
	m.users = users
	if m.cursor >= len(users) && len(users) > 0 {
		m.cursor = len(users) - 1
	}
}

// setMutationResult records the outcome of a create/delete/password call.
// A nil return with a nil error tells the app to reload the user list.
func (m *usersModel) setMutationResult(notice string, err error) tea.Cmd {
	if err != nil {
		m.formErr = err.Error()
		return nil
	}
	m.notice = notice
	m.formErr = ""
	m.mode = usersList
	return nil
}

func (m *usersModel) update(msg tea.Msg, a *App) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch m.mode {
	case usersList:
		return m.updateList(keyMsg, a)
	case usersCreate:
		return m.updateCreate(keyMsg, a)
	case usersPassword:
		return m.updatePassword(keyMsg, a)
	}
	return nil
}

func (m *usersModel) updateList(msg tea.KeyMsg, a *App) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.users)-1 {
			m.cursor++
		}
	case "n":
		m.enterCreate()
		return textinput.Blink
	case "p":
		if len(m.users) > 0 {
			m.enterPassword()
			return textinput.Blink
		}
	case "x":
		if len(m.users) > 0 {
			return m.deleteCmd(a, m.users[m.cursor])
		}
	}
	return nil
}

func (m *usersModel) enterCreate() {
	m.mode = usersCreate
	m.notice = ""
	m.formErr = ""
	m.username.SetValue("")
	m.password.SetValue("")
	m.roleIndex = 0
	m.formFocus = 0
	m.username.Focus()
	m.password.Blur()
}

func (m *usersModel) enterPassword() {
	m.mode = usersPassword
	m.notice = ""
	m.formErr = ""
	m.password.SetValue("")
	m.password.Focus()
}

func (m *usersModel) updateCreate(msg tea.KeyMsg, a *App) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = usersList
		return nil
	case tea.KeyTab, tea.KeyDown:
		m.cycleFormFocus(1)
		return textinput.Blink
	case tea.KeyShiftTab, tea.KeyUp:
		m.cycleFormFocus(-1)
		return textinput.Blink
	case tea.KeyLeft, tea.KeyRight:
		if m.formFocus == 2 {
			if msg.Type == tea.KeyLeft {
				m.roleIndex = (m.roleIndex + len(roleOrder) - 1) % len(roleOrder)
			} else {
				m.roleIndex = (m.roleIndex + 1) % len(roleOrder)
			}
			return nil
		}
	case tea.KeyEnter:
		if m.formFocus < 2 {
			m.cycleFormFocus(1)
			return textinput.Blink
		}
		return m.createCmd(a)
	}

	return m.updateInputs(msg)
}

func (m *usersModel) cycleFormFocus(delta int) {
	m.formFocus = (m.formFocus + delta + 3) % 3
	m.username.Blur()
	m.password.Blur()
	switch m.formFocus {
	case 0:
		m.username.Focus()
	case 1:
		m.password.Focus()
	}
}

func (m *usersModel) updatePassword(msg tea.KeyMsg, a *App) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = usersList
		return nil
	case tea.KeyEnter:
		target := m.users[m.cursor]
		newPassword := m.password.Value()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
			defer cancel()
			err := a.client.ChangePassword(ctx, target.ID, newPassword)
			return userMutationMsg{notice: "Password updated for " + target.Username, err: err}
		}
	}
	return m.updateInputs(msg)
}

func (m *usersModel) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.username.Focused() {
		m.username, cmd = m.username.Update(msg)
	} else if m.password.Focused() {
		m.password, cmd = m.password.Update(msg)
	}
	return cmd
}

func (m *usersModel) createCmd(a *App) tea.Cmd {
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	role := roleOrder[m.roleIndex]
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		_, err := a.client.CreateUser(ctx, username, password, role)
		return userMutationMsg{notice: "User " + username + " created", err: err}
	}
}

func (m *usersModel) deleteCmd(a *App, target model.User) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		err := a.client.DeleteUser(ctx, target.ID)
		return userMutationMsg{notice: "User " + target.Username + " deleted", err: err}
	}
}

func (m *usersModel) view(a *App) string {
	var b strings.Builder
	b.WriteString(m.styles.widgetHd.Render("User Management") + "\n\n")

	if m.loading {
		b.WriteString(m.styles.muted.Render("Loading users..."))
		return b.String()
	}
	if m.loadErr != "" {
		b.WriteString(m.styles.errBox.Render("Error loading users: "+m.loadErr) + "\n")
		b.WriteString(m.styles.muted.Render("Press r to retry."))
		return b.String()
	}

	switch m.mode {
	case usersCreate:
		b.WriteString(m.createFormView())
	case usersPassword:
		b.WriteString(m.passwordFormView())
	default:
		b.WriteString(m.listView())
	}

	return b.String()
}

func (m *usersModel) listView() string {
	var b strings.Builder

	header := fmt.Sprintf("%-24s %s", "USERNAME", "ROLE")
	b.WriteString(m.styles.tableHd.Render(header) + "\n")
	for i, u := range m.users {
		row := fmt.Sprintf("%-24s %s", truncate(u.Username, 24), u.Role)
		if i == m.cursor {
			b.WriteString(m.styles.selected.Render(row))
		} else {
			b.WriteString(row)
		}
		b.WriteRune('\n')
	}

	b.WriteRune('\n')
	switch {
	case m.formErr != "":
		b.WriteString(m.styles.errBox.Render(m.formErr) + "\n")
	case m.notice != "":
		b.WriteString(m.styles.success.Render(m.notice) + "\n")
	}
	b.WriteString(m.styles.help.Render("↑/↓ select · n new user · p change password · x delete"))

	return b.String()
}

func (m *usersModel) createFormView() string {
	var b strings.Builder

	b.WriteString("New user\n\n")
	b.WriteString(m.username.View() + "\n")
	b.WriteString(m.password.View() + "\n")

	roleLine := "Role: " + string(roleOrder[m.roleIndex])
	if m.formFocus == 2 {
		roleLine = m.styles.selected.Render(roleLine) + m.styles.muted.Render("  ←/→ change")
	}
	b.WriteString(roleLine + "\n\n")

	if m.formErr != "" {
		b.WriteString(m.styles.errBox.Render(m.formErr) + "\n")
	}
	b.WriteString(m.styles.help.Render("tab next field · enter submit · esc cancel"))

	return m.styles.panel.Render(b.String())
}

func (m *usersModel) passwordFormView() string {
	var b strings.Builder

	b.WriteString("Change password for " + m.users[m.cursor].Username + "\n\n")
	b.WriteString(m.password.View() + "\n\n")
	if m.formErr != "" {
		b.WriteString(m.styles.errBox.Render(m.formErr) + "\n")
	}
	b.WriteString(m.styles.help.Render("enter submit · esc cancel"))

	return m.styles.panel.Render(b.String())
}
