package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chattolabs/chatto/internal/api"
	"github.com/chattolabs/chatto/internal/chats"
	"github.com/chattolabs/chatto/internal/upload"
)

type (
	chatsLoadedMsg   struct{ err error }
	historyLoadedMsg struct {
		items []api.AnalysisSummary
		err   error
	}
	mutationDoneMsg struct{ err error }
	uploadDoneMsg   struct {
		chat *api.Chat
		err  error
	}
	analysisRequestedMsg struct {
		result *api.Analysis
		err    error
	}
)

// chatsModel is the main page: the uploaded chat list with its buckets,
// inline rename, delete, upload, and the analysis history.
type chatsModel struct {
	app      *App
	list     *chats.List
	uploader *upload.Uploader
	history  []api.AnalysisSummary

	cursor     int
	histCursor int
	onHistory  bool

	editingID string
	edit      textinput.Model

	confirmID string

	uploading bool
	pathInput textinput.Model

	busy bool
	err  string
}

func newChatsModel(app *App) *chatsModel {
	client := app.Session.Authorized()
	edit := textinput.New()
	path := textinput.New()
	path.Placeholder = "업로드할 파일 경로 (.txt, .csv)"

	m := &chatsModel{
		app:       app,
		list:      chats.NewList(client, app.Mode, app.Board, app.Logger),
		uploader:  upload.NewUploader(client, app.Mode, app.Board, app.Logger),
		edit:      edit,
		pathInput: path,
	}
	m.list.Attach()
	return m
}

func (m *chatsModel) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.loadHistory())
}

func (m *chatsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.app.ctx()
		defer cancel()
		return chatsLoadedMsg{err: m.list.Refresh(ctx)}
	}
}

// loadHistory fetches the analysis history for every kind on this side.
func (m *chatsModel) loadHistory() tea.Cmd {
	kinds := []api.Kind{api.KindChemi, api.KindSome, api.KindMBTI}
	if m.app.Mode == api.ModeBusiness {
		kinds = []api.Kind{api.KindContrib}
	}
	client := m.app.Session.Authorized()
	return func() tea.Msg {
		ctx, cancel := m.app.ctx()
		defer cancel()

		var all []api.AnalysisSummary
		for _, kind := range kinds {
			items, err := client.ListAnalyses(ctx, kind)
			if err != nil {
				return historyLoadedMsg{err: err}
			}
			all = append(all, items...)
		}
		return historyLoadedMsg{items: all}
	}
}

// visibleChats flattens the grouped view in render order: pin first, then
// the three buckets.
func (m *chatsModel) visibleChats() []api.Chat {
	g := m.list.Grouped(time.Now())
	var out []api.Chat
	if g.Selected != nil {
		out = append(out, *g.Selected)
	}
	out = append(out, g.Today...)
	out = append(out, g.Recent...)
	out = append(out, g.Older...)
	return out
}

func (m *chatsModel) chatAtCursor() (api.Chat, bool) {
	visible := m.visibleChats()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return api.Chat{}, false
	}
	return visible[m.cursor], true
}

func (m *chatsModel) clampCursors() {
	if n := len(m.visibleChats()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
	if n := len(m.history); m.histCursor >= n && n > 0 {
		m.histCursor = n - 1
	} else if n == 0 {
		m.histCursor = 0
	}
}

func (m *chatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case chatsLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.err = ""
		}
		m.clampCursors()

	case historyLoadedMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.history = msg.items
		}
		m.clampCursors()

	case mutationDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err.Error()
		}
		m.clampCursors()

	case uploadDoneMsg:
		m.busy = false
		m.uploading = false
		m.pathInput.SetValue("")
		if msg.err != nil {
			m.err = msg.err.Error()
		}

	case analysisRequestedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		result := msg.result
		return m, func() tea.Msg {
			return navResultMsg{kind: result.Kind, id: result.ID}
		}
	}

	var cmd tea.Cmd
	if m.editingID != "" {
		m.edit, cmd = m.edit.Update(msg)
	} else if m.uploading {
		m.pathInput, cmd = m.pathInput.Update(msg)
	}
	return m, cmd
}

func (m *chatsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Inline rename owns the keyboard while active: enter commits, esc
	// reverts.
	if m.editingID != "" {
		switch msg.String() {
		case "enter":
			id, title := m.editingID, m.edit.Value()
			m.editingID = ""
			m.busy = true
			return m, func() tea.Msg {
				ctx, cancel := m.app.ctx()
				defer cancel()
				return mutationDoneMsg{err: m.list.Rename(ctx, id, title)}
			}
		case "esc":
			m.editingID = ""
			return m, nil
		}
		var cmd tea.Cmd
		m.edit, cmd = m.edit.Update(msg)
		return m, cmd
	}

	if m.uploading {
		switch msg.String() {
		case "enter":
			path := m.pathInput.Value()
			m.busy = true
			return m, func() tea.Msg {
				ctx, cancel := m.app.ctx()
				defer cancel()
				chat, err := m.uploader.Upload(ctx, path)
				return uploadDoneMsg{chat: chat, err: err}
			}
		case "esc":
			m.uploading = false
			m.pathInput.SetValue("")
			return m, nil
		}
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}

	// Inline delete confirmation: y commits, anything else cancels.
	if m.confirmID != "" {
		id := m.confirmID
		m.confirmID = ""
		if msg.String() == "y" {
			m.busy = true
			return m, func() tea.Msg {
				ctx, cancel := m.app.ctx()
				defer cancel()
				return mutationDoneMsg{err: m.list.Delete(ctx, id)}
			}
		}
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "q":
		m.list.Close()
		return m, tea.Quit

	case "tab":
		m.onHistory = !m.onHistory

	case "up", "k":
		if m.onHistory && m.histCursor > 0 {
			m.histCursor--
		} else if !m.onHistory && m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.onHistory && m.histCursor < len(m.history)-1 {
			m.histCursor++
		} else if !m.onHistory && m.cursor < len(m.visibleChats())-1 {
			m.cursor++
		}

	case "enter", " ":
		if m.onHistory {
			if m.histCursor < len(m.history) {
				item := m.history[m.histCursor]
				return m, func() tea.Msg {
					return navResultMsg{kind: item.Kind, id: item.ID}
				}
			}
			return m, nil
		}
		if chat, ok := m.chatAtCursor(); ok {
			m.app.Board.ToggleSelect(chat.ID)
			m.cursor = 0
		}

	case "r":
		if chat, ok := m.chatAtCursor(); ok {
			m.editingID = chat.ID
			m.edit.SetValue(chat.Title)
			m.edit.CursorEnd()
			return m, m.edit.Focus()
		}

	case "d":
		if chat, ok := m.chatAtCursor(); ok {
			m.confirmID = chat.ID
		}

	case "u":
		m.uploading = true
		return m, m.pathInput.Focus()

	case "g":
		m.busy = true
		return m, tea.Batch(m.refresh(), m.loadHistory())

	case "1", "2", "3", "4":
		return m.requestAnalysis(msg.String())
	}
	return m, nil
}

// requestAnalysis submits a new analysis of the chosen kind against the
// selected chat, with every parameter left at the not-provided sentinel.
// Parameters are edited later from the result page.
func (m *chatsModel) requestAnalysis(key string) (tea.Model, tea.Cmd) {
	selected := m.app.Board.SelectedChatID()
	if selected == "" {
		m.err = "먼저 분석할 대화를 선택해주세요."
		return m, nil
	}

	var kind api.Kind
	switch key {
	case "1":
		kind = api.KindChemi
	case "2":
		kind = api.KindSome
	case "3":
		kind = api.KindMBTI
	case "4":
		kind = api.KindContrib
	}
	if api.ModeFor(kind) != m.app.Mode {
		m.err = "이 모드에서 요청할 수 없는 분석입니다."
		return m, nil
	}

	client := m.app.Session.Authorized()
	m.busy = true
	m.err = ""
	return m, func() tea.Msg {
		ctx, cancel := m.app.ctx()
		defer cancel()
		result, err := client.RequestAnalysis(ctx, kind, selected, api.Params{})
		return analysisRequestedMsg{result: result, err: err}
	}
}

func (m *chatsModel) View() string {
	content := headerStyle.Render(" Chatto ") + " "
	if profile := m.app.Session.Profile(); profile != nil {
		content += dimStyle.Render(profile.Username) +
			labelStyle.Render("  크레딧 ") + valueStyle.Render(fmt.Sprintf("%d", profile.Credit))
	}
	content += "\n"

	g := m.list.Grouped(time.Now())
	row := 0
	renderChat := func(chat api.Chat, pinned bool) string {
		line := fmt.Sprintf("%s (%d명)", chat.Title, chat.PeopleNum)
		if m.editingID == chat.ID {
			line = m.edit.View()
		}
		prefix := "  "
		if pinned {
			prefix = "● "
		}
		switch {
		case m.confirmID == chat.ID:
			line += errorStyle.Render("  삭제할까요? [y/n]")
		case !m.onHistory && row == m.cursor:
			line = selectedStyle.Render(prefix + line)
			row++
			return "  " + line + "\n"
		}
		row++
		return "  " + prefix + line + "\n"
	}

	if g.Selected != nil {
		content += sectionStyle.Render("┃ 선택된 대화") + "\n"
		content += renderChat(*g.Selected, true)
	}
	for _, group := range []struct {
		bucket chats.Bucket
		items  []api.Chat
	}{
		{chats.BucketToday, g.Today},
		{chats.BucketRecent, g.Recent},
		{chats.BucketOlder, g.Older},
	} {
		if len(group.items) == 0 {
			continue
		}
		content += sectionStyle.Render("┃ "+group.bucket.Label()) + "\n"
		for _, chat := range group.items {
			content += renderChat(chat, false)
		}
	}
	if row == 0 {
		content += dimStyle.Render("  아직 업로드한 대화가 없습니다. [u]로 내보내기 파일을 올려보세요.") + "\n"
	}

	if len(m.history) > 0 {
		content += sectionStyle.Render("┃ 최근 분석") + "\n"
		for i, item := range m.history {
			line := fmt.Sprintf("[%s] %s", item.Kind, item.ChatTitle)
			if m.onHistory && i == m.histCursor {
				line = selectedStyle.Render(line)
			}
			content += "  " + line + "\n"
		}
	}

	if m.uploading {
		content += "\n" + labelStyle.Render("파일 경로: ") + m.pathInput.View() + "\n"
	}
	if listErr := m.list.Err(); listErr != "" {
		content += "\n" + errorStyle.Render(listErr)
	} else if m.err != "" {
		content += "\n" + errorStyle.Render(m.err)
	}
	if m.busy {
		content += "\n" + dimStyle.Render("요청 중...")
	}

	content += "\n" + footer(
		"enter", "선택", "r", "이름 변경", "d", "삭제", "u", "업로드",
		"1-4", "분석 요청", "tab", "기록", "g", "새로고침", "q", "종료",
	)
	return containerStyle.Render(content)
}
