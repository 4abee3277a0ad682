package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chattolabs/chatto/internal/api"
	"github.com/chattolabs/chatto/internal/quiz"
)

type (
	quizLoadedMsg struct{ err error }
	quizSavedMsg  struct{ err error }
)

// pendingAction marks which destructive confirmation is on screen.
type pendingAction int

const (
	pendingNone pendingAction = iota
	pendingEdit
	pendingDeleteOne
	pendingDeleteAll
)

// quizModel is the quiz editor for one analysis result: question list plus
// an inline add/edit form. Edits warn first because they wipe participant
// answers on the backend.
type quizModel struct {
	app    *App
	editor *quiz.Editor

	cursor  int
	pending pendingAction
	target  string

	formOpen  bool
	formEdit  bool
	inputs    []textinput.Model
	formFocus int

	busy bool
	err  string
}

func newQuizModel(app *App, kind api.Kind, analysisID string) *quizModel {
	inputs := make([]textinput.Model, 6)
	for i := range inputs {
		inputs[i] = textinput.New()
	}
	inputs[0].Placeholder = "질문"
	for i := 1; i <= 4; i++ {
		inputs[i].Placeholder = fmt.Sprintf("보기 %d", i)
	}
	inputs[5].Placeholder = "정답 (1~4)"
	inputs[5].CharLimit = 1

	return &quizModel{
		app:    app,
		editor: quiz.NewEditor(app.Session.Authorized(), kind, analysisID, app.Logger),
		inputs: inputs,
		busy:   true,
	}
}

func (m *quizModel) Init() tea.Cmd {
	return m.refresh()
}

func (m *quizModel) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.app.ctx()
		defer cancel()
		return quizLoadedMsg{err: m.editor.Refresh(ctx)}
	}
}

func (m *quizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case quizLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err.Error()
		}
		if n := len(m.editor.Questions()); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}

	case quizSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.err = ""
			m.closeForm()
		}
		if n := len(m.editor.Questions()); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}
	}
	return m, nil
}

func (m *quizModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.formOpen {
		return m.handleFormKey(msg)
	}

	if m.pending != pendingNone {
		action := m.pending
		m.pending = pendingNone
		if msg.String() != "y" {
			m.editor.CancelEdit()
			return m, nil
		}
		switch action {
		case pendingEdit:
			if err := m.editor.BeginEdit(m.target); err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.openForm(true)
			return m, m.inputs[0].Focus()
		case pendingDeleteOne:
			id := m.target
			m.busy = true
			return m, func() tea.Msg {
				ctx, cancel := m.app.ctx()
				defer cancel()
				return quizSavedMsg{err: m.editor.Delete(ctx, id)}
			}
		case pendingDeleteAll:
			m.busy = true
			return m, func() tea.Msg {
				ctx, cancel := m.app.ctx()
				defer cancel()
				return quizSavedMsg{err: m.editor.DeleteAll(ctx)}
			}
		}
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	questions := m.editor.Questions()
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
		if m.cursor < len(questions)-1 {
			m.cursor++
		}

	case "a":
		m.openForm(false)
		return m, m.inputs[0].Focus()

	case "e":
		if m.cursor < len(questions) {
			m.pending = pendingEdit
			m.target = questions[m.cursor].ID
		}

	case "d":
		if m.cursor < len(questions) {
			m.pending = pendingDeleteOne
			m.target = questions[m.cursor].ID
		}

	case "D":
		if len(questions) > 0 {
			m.pending = pendingDeleteAll
		}

	case "g":
		m.busy = true
		return m, m.refresh()
	}
	return m, nil
}

func (m *quizModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editor.CancelEdit()
		m.closeForm()
		return m, nil

	case "tab", "shift+tab", "up", "down":
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.formFocus--
		} else {
			m.formFocus++
		}
		if m.formFocus < 0 {
			m.formFocus = len(m.inputs) - 1
		}
		if m.formFocus >= len(m.inputs) {
			m.formFocus = 0
		}
		cmds := make([]tea.Cmd, 0, 1)
		for i := range m.inputs {
			if i == m.formFocus {
				cmds = append(cmds, m.inputs[i].Focus())
			} else {
				m.inputs[i].Blur()
			}
		}
		return m, tea.Batch(cmds...)

	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.formFocus], cmd = m.inputs[m.formFocus].Update(msg)
	return m, cmd
}

func (m *quizModel) submitForm() (tea.Model, tea.Cmd) {
	answer, _ := strconv.Atoi(m.inputs[5].Value())
	input := api.QuestionInput{
		Title:  m.inputs[0].Value(),
		Answer: answer,
	}
	for i := 0; i < 4; i++ {
		input.Options[i] = m.inputs[i+1].Value()
	}
	if err := input.Validate(); err != nil {
		m.err = err.Error()
		return m, nil
	}

	edit := m.formEdit
	m.busy = true
	return m, func() tea.Msg {
		ctx, cancel := m.app.ctx()
		defer cancel()
		if edit {
			m.editor.SetDraft(input)
			return quizSavedMsg{err: m.editor.CommitEdit(ctx)}
		}
		return quizSavedMsg{err: m.editor.Add(ctx, input)}
	}
}

func (m *quizModel) openForm(edit bool) {
	m.formOpen = true
	m.formEdit = edit
	m.formFocus = 0
	m.err = ""

	var prefill api.QuestionInput
	if edit {
		if draft := m.editor.Draft(); draft != nil {
			prefill = *draft
		}
	}
	m.inputs[0].SetValue(prefill.Title)
	for i := 0; i < 4; i++ {
		m.inputs[i+1].SetValue(prefill.Options[i])
	}
	if prefill.Answer > 0 {
		m.inputs[5].SetValue(strconv.Itoa(prefill.Answer))
	} else {
		m.inputs[5].SetValue("")
	}
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *quizModel) closeForm() {
	m.formOpen = false
	m.formEdit = false
	for i := range m.inputs {
		m.inputs[i].Blur()
		m.inputs[i].SetValue("")
	}
}

func (m *quizModel) View() string {
	content := headerStyle.Render(" 퀴즈 ") + "\n"

	if m.formOpen {
		title := "새 질문"
		if m.formEdit {
			title = "질문 수정"
		}
		content += sectionStyle.Render("┃ "+title) + "\n"
		labels := []string{"질문", "보기 1", "보기 2", "보기 3", "보기 4", "정답"}
		for i, input := range m.inputs {
			content += "  " + labelStyle.Render(fmt.Sprintf("%-5s", labels[i])) + " " + input.View() + "\n"
		}
		if m.err != "" {
			content += "\n" + errorStyle.Render(m.err)
		}
		content += "\n" + footer("tab", "다음 칸", "enter", "저장", "esc", "취소")
		return containerStyle.Render(content)
	}

	questions := m.editor.Questions()
	if len(questions) == 0 {
		content += dimStyle.Render("아직 질문이 없습니다. [a]로 추가해보세요.") + "\n"
	}
	for i, question := range questions {
		line := fmt.Sprintf("%d. %s", question.Index, question.Title)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		content += "  " + line + "\n"
	}

	switch m.pending {
	case pendingEdit:
		content += "\n" + errorStyle.Render(quiz.EditWarning+" [y/n]")
	case pendingDeleteOne:
		content += "\n" + errorStyle.Render("이 질문을 삭제할까요? 참여자 답변 기록도 함께 삭제됩니다. [y/n]")
	case pendingDeleteAll:
		content += "\n" + errorStyle.Render(quiz.DeleteAllWarning+" [y/n]")
	}

	if editorErr := m.editor.Err(); editorErr != "" {
		content += "\n" + errorStyle.Render(editorErr)
	} else if m.err != "" {
		content += "\n" + errorStyle.Render(m.err)
	}
	if m.busy {
		content += "\n" + dimStyle.Render("요청 중...")
	}

	content += "\n" + footer(
		"a", "추가", "e", "수정", "d", "삭제", "D", "전체 삭제",
		"g", "새로고침", "b", "뒤로",
	)
	return containerStyle.Render(content)
}
