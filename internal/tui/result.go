package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chattolabs/chatto/internal/analysis"
	"github.com/chattolabs/chatto/internal/api"
)

type (
	pageLoadedMsg    struct{ err error }
	reanalyzeDoneMsg struct {
		result *api.Analysis
		err    error
	}
	shareIssuedMsg struct {
		uuid string
		err  error
	}
	resultDeletedMsg struct{ err error }
)

// resultModel is the analysis detail page: report, charts, the parameter
// form, and the re-analyze gate.
type resultModel struct {
	app  *App
	page *analysis.Page

	cursor  int
	editing bool
	input   textinput.Model

	confirmDelete bool
	shareUUID     string
	busy          bool
	err           string
}

func newResultModel(app *App, kind api.Kind, id string) *resultModel {
	return &resultModel{
		app:   app,
		page:  analysis.NewPage(app.Session.Authorized(), kind, id, app.Logger),
		input: textinput.New(),
		busy:  true,
	}
}

func (m *resultModel) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.app.ctx()
		defer cancel()
		return pageLoadedMsg{err: m.page.Load(ctx)}
	}
}

func (m *resultModel) fields() []analysis.FieldKey {
	return analysis.Fields(m.page.Kind())
}

func (m *resultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case pageLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err.Error()
		}

	case reanalyzeDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		result := msg.result
		return m, func() tea.Msg {
			return navResultMsg{kind: result.Kind, id: result.ID}
		}

	case shareIssuedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.shareUUID = msg.uuid
		}

	case resultDeletedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return navChatsMsg{} }
	}
	return m, nil
}

func (m *resultModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			return m.commitField()
		case "esc":
			m.editing = false
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.confirmDelete {
		m.confirmDelete = false
		if msg.String() == "y" {
			m.busy = true
			return m, func() tea.Msg {
				ctx, cancel := m.app.ctx()
				defer cancel()
				err := m.app.Session.Authorized().DeleteAnalysis(ctx, m.page.Kind(), m.page.Result().ID)
				return resultDeletedMsg{err: err}
			}
		}
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc", "b":
		return m, func() tea.Msg { return navChatsMsg{} }

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.fields())-1 {
			m.cursor++
		}

	case "enter":
		key := m.fields()[m.cursor]
		current := analysis.Get(m.page.Form(), key)
		if analysis.IsDateSentinel(current) || current == api.NotProvided {
			current = ""
		}
		m.input.SetValue(current)
		m.input.CursorEnd()
		m.editing = true
		return m, m.input.Focus()

	case "0":
		m.page.ResetForm()
		m.err = ""

	case "a":
		return m.reanalyze()

	case "s":
		if m.page.Result() == nil {
			return m, nil
		}
		m.busy = true
		return m, func() tea.Msg {
			ctx, cancel := m.app.ctx()
			defer cancel()
			link, err := m.app.Session.Authorized().IssueShareLink(ctx, m.page.Kind(), m.page.Result().ID)
			if err != nil {
				return shareIssuedMsg{err: err}
			}
			return shareIssuedMsg{uuid: link.UUID}
		}

	case "z":
		if result := m.page.Result(); result != nil {
			return m, func() tea.Msg {
				return navQuizMsg{kind: result.Kind, analysisID: result.ID}
			}
		}

	case "x":
		if m.page.Result() != nil {
			m.confirmDelete = true
		}
	}
	return m, nil
}

// commitField validates and stores the edited field. Dates are normalized
// before they land in the form; a blank date falls back to its sentinel.
func (m *resultModel) commitField() (tea.Model, tea.Cmd) {
	key := m.fields()[m.cursor]
	value := m.input.Value()
	if key == analysis.FieldDateFrom || key == analysis.FieldDateTo {
		if value != "" && !analysis.IsDateSentinel(value) {
			normalized, err := analysis.NormalizeDate(value)
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			value = normalized
		}
	}
	m.page.SetField(key, value)
	m.editing = false
	m.err = ""
	return m, nil
}

func (m *resultModel) reanalyze() (tea.Model, tea.Cmd) {
	if gate := m.page.Gate(); !gate.Allowed() {
		m.err = gate.Reason()
		return m, nil
	}
	m.busy = true
	m.err = ""
	return m, func() tea.Msg {
		ctx, cancel := m.app.ctx()
		defer cancel()
		result, err := m.page.Reanalyze(ctx)
		return reanalyzeDoneMsg{result: result, err: err}
	}
}

func (m *resultModel) View() string {
	content := headerStyle.Render(fmt.Sprintf(" %s 분석 ", m.page.Kind())) + "\n"

	result := m.page.Result()
	if result == nil {
		if m.busy {
			content += dimStyle.Render("불러오는 중...")
		} else if pageErr := m.page.Err(); pageErr != "" {
			content += errorStyle.Render(pageErr)
		} else if m.err != "" {
			content += errorStyle.Render(m.err)
		}
		content += "\n" + footer("b", "뒤로", "q", "종료")
		return containerStyle.Render(content)
	}

	content += labelStyle.Render("대화 ") + valueStyle.Render(result.ChatTitle) +
		dimStyle.Render("  "+result.CreatedAt.Format("2006-01-02 15:04")) + "\n"

	content += sectionStyle.Render("┃ 리포트") + "\n"
	content += renderReportText(result.Spec)
	if chart := renderBars(result.SpecPersonal); chart != "" {
		content += chart
	} else if chart := renderBars(result.SpecTable); chart != "" {
		content += chart
	}
	if trend := renderTrend(result.SpecPeriod); trend != "" {
		content += trend
	}

	content += sectionStyle.Render("┃ 분석 조건") + "\n"
	editing := ""
	if m.editing {
		editing = m.input.View()
	}
	content += renderForm(m.page.Kind(), m.page.Form(), m.cursor, editing)

	if gate := m.page.Gate(); !gate.Allowed() {
		content += "\n" + mutedStyle.Render(gate.Reason())
	}
	if m.shareUUID != "" {
		content += "\n" + labelStyle.Render("공유 링크 ") + valueStyle.Render("/share/"+m.shareUUID+"/")
	}
	if m.confirmDelete {
		content += "\n" + errorStyle.Render("이 분석 결과를 삭제할까요? [y/n]")
	}
	if m.err != "" {
		content += "\n" + errorStyle.Render(m.err)
	}
	if m.busy {
		content += "\n" + dimStyle.Render("요청 중...")
	}

	content += "\n" + footer(
		"enter", "수정", "0", "초기화", "a", "다시 분석", "s", "공유",
		"z", "퀴즈", "x", "삭제", "b", "뒤로",
	)
	return containerStyle.Render(content)
}
