// Package tui implements the interactive terminal client: chat list, upload,
// analysis result pages, forms, and the quiz editor, as Bubble Tea models.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chattolabs/chatto/internal/api"
	"github.com/chattolabs/chatto/internal/chats"
	"github.com/chattolabs/chatto/internal/session"
	"go.uber.org/zap"
)

// requestTimeout bounds every network call issued from the UI.
const requestTimeout = 30 * time.Second

// App bundles the shared dependencies every page needs.
type App struct {
	Session *session.Manager
	Board   *chats.Board
	Mode    api.Mode
	Logger  *zap.Logger
}

// NewApp wires the shared state for a TUI run.
func NewApp(mgr *session.Manager, mode api.Mode, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		Session: mgr,
		Board:   chats.NewBoard(),
		Mode:    mode,
		Logger:  logger,
	}
}

func (a *App) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// Navigation messages emitted by child pages.
type (
	navChatsMsg  struct{}
	navResultMsg struct {
		kind api.Kind
		id   string
	}
	navQuizMsg struct {
		kind       api.Kind
		analysisID string
	}
	bootstrapDoneMsg struct{ err error }
	loggedInMsg      struct{}
)

// Model is the root model: it runs the initial session check, guards the
// authenticated subtree, and routes between pages.
type Model struct {
	app    *App
	status session.Status
	page   tea.Model
	spin   spinner.Model
	err    error
	quit   bool
	width  int
	height int
}

// NewModel creates the root model.
func NewModel(app *App) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		app:    app,
		status: session.StatusChecking,
		spin:   sp,
	}
}

// Init starts the session bootstrap. Children are not rendered until it
// resolves.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.bootstrap())
}

func (m Model) bootstrap() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.app.ctx()
		defer cancel()
		return bootstrapDoneMsg{err: m.app.Session.Bootstrap(ctx)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quit = true
			return m, tea.Quit
		}

	case bootstrapDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = session.StatusUnauthenticated
			return m.route(navChatsMsg{})
		}
		m.status = m.app.Session.Status()
		return m.route(navChatsMsg{})

	case loggedInMsg:
		m.status = session.StatusAuthenticated
		return m.route(navChatsMsg{})

	case navChatsMsg, navResultMsg, navQuizMsg:
		return m.route(msg)

	case spinner.TickMsg:
		if m.status == session.StatusChecking {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	}

	if m.page != nil {
		var cmd tea.Cmd
		m.page, cmd = m.page.Update(msg)
		return m, cmd
	}
	return m, nil
}

// route swaps the active page, sending unauthenticated users to the login
// page whenever they aim at the guarded subtree.
func (m Model) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.status != session.StatusAuthenticated {
		login := newLoginModel(m.app)
		m.page = login
		return m, login.Init()
	}

	switch nav := msg.(type) {
	case navResultMsg:
		page := newResultModel(m.app, nav.kind, nav.id)
		m.page = page
		return m, page.Init()
	case navQuizMsg:
		page := newQuizModel(m.app, nav.kind, nav.analysisID)
		m.page = page
		return m, page.Init()
	default:
		page := newChatsModel(m.app)
		m.page = page
		return m, page.Init()
	}
}

// View renders the active page, or the session check while it is in flight.
func (m Model) View() string {
	if m.quit {
		return ""
	}
	if m.status == session.StatusChecking {
		return containerStyle.Render(
			headerStyle.Render(" Chatto ") + "\n\n" +
				m.spin.View() + dimStyle.Render(" 로그인 상태를 확인하는 중..."))
	}
	if m.page == nil {
		return ""
	}
	return m.page.View()
}
