package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginDoneMsg struct{ err error }

// loginModel is the unauthenticated entry page.
type loginModel struct {
	app      *App
	username textinput.Model
	password textinput.Model
	focusPw  bool
	busy     bool
	err      error
}

func newLoginModel(app *App) *loginModel {
	user := textinput.New()
	user.Placeholder = "아이디"
	user.Focus()

	pw := textinput.New()
	pw.Placeholder = "비밀번호"
	pw.EchoMode = textinput.EchoPassword

	return &loginModel{app: app, username: user, password: pw}
}

func (m *loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *loginModel) submit() tea.Cmd {
	username := m.username.Value()
	password := m.password.Value()
	return func() tea.Msg {
		ctx, cancel := m.app.ctx()
		defer cancel()
		return loginDoneMsg{err: m.app.Session.Login(ctx, username, password)}
	}
}

func (m *loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab":
			m.focusPw = !m.focusPw
			if m.focusPw {
				m.username.Blur()
				return m, m.password.Focus()
			}
			m.password.Blur()
			return m, m.username.Focus()
		case "enter":
			if !m.focusPw {
				m.focusPw = true
				m.username.Blur()
				return m, m.password.Focus()
			}
			m.busy = true
			m.err = nil
			return m, m.submit()
		case "q":
			if !m.focusPw && m.username.Value() == "" {
				return m, tea.Quit
			}
		}

	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, func() tea.Msg { return loggedInMsg{} }
	}

	var cmd tea.Cmd
	if m.focusPw {
		m.password, cmd = m.password.Update(msg)
	} else {
		m.username, cmd = m.username.Update(msg)
	}
	return m, cmd
}

func (m *loginModel) View() string {
	content := headerStyle.Render(" Chatto 로그인 ") + "\n\n"
	content += labelStyle.Render("아이디   ") + m.username.View() + "\n"
	content += labelStyle.Render("비밀번호 ") + m.password.View() + "\n"

	if m.busy {
		content += "\n" + dimStyle.Render("로그인 중...")
	}
	if m.err != nil {
		content += "\n" + errorStyle.Render(m.err.Error())
	}
	content += "\n" + footer("tab", "이동", "enter", "로그인", "ctrl+c", "종료")
	return containerStyle.Render(content)
}
