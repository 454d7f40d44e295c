// Package ui renders the dashboard. Pages are a pure function of store
// state; every page switch runs through the route guard.
package ui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/netdash/netdash/internal/api"
	"github.com/netdash/netdash/internal/devices"
	"github.com/netdash/netdash/internal/guard"
	"github.com/netdash/netdash/internal/model"
	"github.com/netdash/netdash/internal/session"
)

// SessionExpiredMsg is sent into the program when the backend rejects a
// request with 401. The app clears the session and returns to the login
// page.
type SessionExpiredMsg struct{}

type loginResultMsg struct{ err error }

type devicesResultMsg struct{ err error }

type healthResultMsg struct {
	health *model.Health
	err    error
}

type usersLoadedMsg struct {
	users []model.User
	err   error
}

type userMutationMsg struct {
	notice string
	err    error
}

// App is the root bubbletea model.
type App struct {
	sessions *session.Store
	devices  *devices.Store
	client   *api.Client
	logger   *slog.Logger
	timeout  time.Duration

	page     guard.Page
	returnTo guard.Page
	width    int
	height   int

	login     loginModel
	inventory inventoryModel
	users     usersModel
	health    *model.Health

	styles styles
}

// NewApp wires the stores into the root model.
func NewApp(sessions *session.Store, deviceStore *devices.Store, client *api.Client, logger *slog.Logger, timeout time.Duration) *App {
	st := newStyles()
	return &App{
		sessions:  sessions,
		devices:   deviceStore,
		client:    client,
		logger:    logger,
		timeout:   timeout,
		page:      guard.PageDashboard,
		login:     newLoginModel(st),
		inventory: newInventoryModel(st),
		users:     newUsersModel(st),
		styles:    st,
	}
}

// Init navigates to the dashboard; the guard bounces an unauthenticated
// session to the login page.
func (a *App) Init() tea.Cmd {
	return a.navigate(guard.PageDashboard)
}

// navigate runs the guard for the requested page and switches to whatever
// it decides, kicking off that page's data loads.
func (a *App) navigate(requested guard.Page) tea.Cmd {
	st := a.sessions.Snapshot()
	role := model.RoleUnknown
	if st.User != nil {
		role = st.User.Role
	}

	decision := guard.Decide(requested, guard.PageRequirements(requested), st.IsAuthenticated, role)
	if decision.Render {
		a.page = requested
		return a.enterPage(requested)
	}

	if decision.Redirect == guard.PageLogin {
		a.returnTo = decision.ReturnTo
	}
	a.page = decision.Redirect
	return a.enterPage(decision.Redirect)
}

// enterPage starts the data loads a page needs on entry.
func (a *App) enterPage(p guard.Page) tea.Cmd {
	switch p {
	case guard.PageDashboard:
		return tea.Batch(a.fetchDevicesCmd(), a.healthCmd())
	case guard.PageInventory:
		a.inventory.reset()
		return a.fetchDevicesCmd()
	case guard.PageUsers:
		a.users.reset()
		return a.loadUsersCmd()
	case guard.PageLogin:
		a.login.reset()
		return a.login.focusCmd()
	}
	return nil
}

func (a *App) fetchDevicesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		err := a.devices.Fetch(ctx)
		return devicesResultMsg{err: err}
	}
}

func (a *App) healthCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		health, err := a.client.HealthCheck(ctx)
		return healthResultMsg{health: health, err: err}
	}
}

func (a *App) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		return loginResultMsg{err: a.sessions.Login(ctx, username, password)}
	}
}

func (a *App) loadUsersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		users, err := a.client.Users(ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

// Update is the single message loop; page models handle their own keys
// first, then global navigation keys apply.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case SessionExpiredMsg:
		a.sessions.Logout()
		return a, a.navigate(guard.PageLogin)

	case loginResultMsg:
		if msg.err != nil {
			a.login.submitting = false
			return a, nil
		}
		target := a.returnTo
		a.returnTo = ""
		if target == "" || target == guard.PageLogin {
			target = guard.PageDashboard
		}
		return a, a.navigate(target)

	case devicesResultMsg:
		// Store state already carries the outcome; nothing else to do.
		return a, nil

	case healthResultMsg:
		if msg.err == nil {
			a.health = msg.health
		}
		return a, nil

	case usersLoadedMsg:
		a.users.setUsers(msg.users, msg.err)
		return a, nil

	case userMutationMsg:
		cmd := a.users.setMutationResult(msg.notice, msg.err)
		if cmd == nil && msg.err == nil {
			return a, a.loadUsersCmd()
		}
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, a.updatePage(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	// Pages with focused inputs consume keys before global bindings.
	if a.pageCapturesKeys() {
		return a, a.updatePage(msg)
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "d":
		return a, a.navigate(guard.PageDashboard)
	case "i":
		return a, a.navigate(guard.PageInventory)
	case "u":
		return a, a.navigate(guard.PageUsers)
	case "r":
		return a, a.enterPage(a.page)
	case "l":
		if a.sessions.Snapshot().IsAuthenticated {
			a.sessions.Logout()
			return a, a.navigate(guard.PageLogin)
		}
	}

	return a, a.updatePage(msg)
}

// pageCapturesKeys reports whether the current page holds keyboard focus in
// a text input.
func (a *App) pageCapturesKeys() bool {
	switch a.page {
	case guard.PageLogin:
		return true
	case guard.PageUsers:
		return a.users.capturesKeys()
	}
	return false
}

// updatePage routes a message to the current page model.
func (a *App) updatePage(msg tea.Msg) tea.Cmd {
	switch a.page {
	case guard.PageLogin:
		return a.login.update(msg, a)
	case guard.PageInventory:
		return a.inventory.update(msg, a)
	case guard.PageUsers:
		return a.users.update(msg, a)
	}
	return nil
}

// View renders the header, the current page, and the help footer.
func (a *App) View() string {
	var body string
	switch a.page {
	case guard.PageLogin:
		body = a.login.view(a)
	case guard.PageDashboard:
		body = a.dashboardView()
	case guard.PageInventory:
		body = a.inventory.view(a)
	case guard.PageUsers:
		body = a.users.view(a)
	}

	return a.styles.app.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		a.headerView(),
		"",
		body,
		"",
		a.helpView(),
	))
}

func (a *App) headerView() string {
	title := a.styles.title.Render("NetDash")

	st := a.sessions.Snapshot()
	who := a.styles.muted.Render("not signed in")
	if st.User != nil {
		who = a.styles.header.Render(st.User.Username) +
			a.styles.muted.Render(" ("+string(st.User.Role)+")")
	}

	backend := a.styles.muted.Render("backend: unknown")
	if a.health != nil {
		backend = a.styles.muted.Render("backend: ") + a.styles.success.Render(a.health.Status) +
			a.styles.muted.Render(" v"+a.health.Version)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", who, "  ", backend)
}

func (a *App) helpView() string {
	if a.page == guard.PageLogin {
		return a.styles.help.Render("enter submit · tab switch field · ctrl+c quit")
	}

	help := "d dashboard · i inventory · r refresh · l logout · q quit"
	if st := a.sessions.Snapshot(); st.User != nil && st.User.Role == model.RoleAdministrator {
		help = "d dashboard · i inventory · u users · r refresh · l logout · q quit"
	}
	return a.styles.help.Render(help)
}
