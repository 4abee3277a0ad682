package chattotest

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleSignup(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil || req.Username == "" || req.Password == "" {
		return c.NoContent(http.StatusBadRequest)
	}
	if req.Username == Username {
		return c.NoContent(http.StatusBadRequest) // taken
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) handleLogin(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	if req.Username != Username || req.Password != Password {
		return c.NoContent(http.StatusUnauthorized)
	}
	return c.JSON(http.StatusOK, map[string]string{"access_token": Token})
}

func (s *Server) handleLogout(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (s *Server) handleProfile(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.profile)
}

func (s *Server) handleUpdateProfile(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.Email != "" {
		s.profile.Email = req.Email
	}
	if req.Phone != "" {
		s.profile.Phone = req.Phone
	}
	return c.JSON(http.StatusOK, s.profile)
}

func (s *Server) handleUpload(mode string) echo.HandlerFunc {
	return func(c echo.Context) error {
		file, err := c.FormFile("file")
		if err != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		if !strings.HasSuffix(file.Filename, ".txt") && !strings.HasSuffix(file.Filename, ".csv") {
			return c.NoContent(http.StatusUnsupportedMediaType)
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		id := s.nextID("chat")
		// The real backend parses the export; room name extraction is out
		// of scope here, so every upload gets the untitled default.
		rec := &chatRecord{
			ID:         id,
			Title:      "제목 없음",
			PeopleNum:  2,
			UploadedAt: time.Now(),
			Mode:       mode,
		}
		s.chats[id] = rec
		return c.JSON(http.StatusCreated, rec)
	}
}

func (s *Server) handleListChats(mode string) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]*chatRecord, 0, len(s.chats))
		for _, chat := range s.chats {
			if chat.Mode == mode {
				out = append(out, chat)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			return out[i].UploadedAt.After(out[j].UploadedAt)
		})
		return c.JSON(http.StatusOK, out)
	}
}

func (s *Server) handleRename(c echo.Context) error {
	var req struct {
		Title string `json:"title"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		return c.NoContent(http.StatusBadRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats[c.Param("id")]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	chat.Title = req.Title
	return c.JSON(http.StatusOK, chat)
}

func (s *Server) handleDeleteChat(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	if _, ok := s.chats[id]; !ok {
		return c.NoContent(http.StatusNotFound)
	}
	// No cascade: analyses keep referencing the dead chat id.
	delete(s.chats, id)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleAnalyze(c echo.Context) error {
	var params map[string]string
	if err := c.Bind(&params); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats[c.Param("id")]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	if s.profile.Credit <= 0 {
		return c.NoContent(http.StatusPaymentRequired)
	}
	s.profile.Credit--
	s.usage = append(s.usage, creditEvent{
		ID:        s.nextID("usage"),
		Amount:    -1,
		Detail:    "분석 요청",
		CreatedAt: time.Now(),
	})

	id := s.nextID("analysis")
	rec := &analysisRecord{
		ID:        id,
		ChatID:    chat.ID,
		ChatTitle: chat.Title,
		Kind:      kindFromSlug(c.Param("slug")),
		CreatedAt: time.Now(),
		Spec:      map[string]any{"score": 87},
	}
	applyParams(rec, params)
	s.analyses[id] = rec
	return c.JSON(http.StatusCreated, rec)
}

func (s *Server) handleListAnalyses(c echo.Context) error {
	kind := kindFromSlug(c.Param("slug"))
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*analysisRecord, 0)
	for _, rec := range s.analyses {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleAnalysisDetail(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.analyses[c.Param("id")]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, rec)
}

func (s *Server) handleDeleteAnalysis(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	if _, ok := s.analyses[id]; !ok {
		return c.NoContent(http.StatusNotFound)
	}
	delete(s.analyses, id)
	if su, ok := s.shares[id]; ok {
		delete(s.sharesByUUID, su)
		delete(s.shares, id)
	}
	delete(s.questions, id)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleIssueShare(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	if _, ok := s.analyses[id]; !ok {
		return c.NoContent(http.StatusNotFound)
	}
	// Fetch-or-create: issuing twice returns the same UUID.
	su, ok := s.shares[id]
	if !ok {
		su = newShareUUID()
		s.shares[id] = su
		s.sharesByUUID[su] = id
	}
	return c.JSON(http.StatusOK, map[string]string{"uuid": su})
}

func (s *Server) handleSharedAnalysis(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.sharesByUUID[c.Param("uuid")]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, s.analyses[id])
}

func (s *Server) resolveShare(c echo.Context) (string, bool) {
	id, ok := s.sharesByUUID[c.Param("uuid")]
	return id, ok
}

func (s *Server) handleListQuestions(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.questionList(c.Param("id")))
}

func (s *Server) handleSharedQuiz(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.resolveShare(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	// Guests never see the answers.
	out := make([]*questionRecord, 0)
	for _, q := range s.questions[id] {
		masked := *q
		masked.Answer = 0
		out = append(out, &masked)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) questionList(analysisID string) []*questionRecord {
	qs := s.questions[analysisID]
	if qs == nil {
		return []*questionRecord{}
	}
	return qs
}

func (s *Server) handleAddQuestion(c echo.Context) error {
	var req questionRecord
	if err := c.Bind(&req); err != nil || req.Title == "" || req.Answer < 1 || req.Answer > 4 {
		return c.NoContent(http.StatusBadRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	if _, ok := s.analyses[id]; !ok {
		return c.NoContent(http.StatusNotFound)
	}
	req.ID = s.nextID("question")
	req.Index = len(s.questions[id]) + 1
	s.questions[id] = append(s.questions[id], &req)
	return c.JSON(http.StatusCreated, &req)
}

func (s *Server) handleUpdateQuestion(c echo.Context) error {
	var req questionRecord
	if err := c.Bind(&req); err != nil || req.Title == "" || req.Answer < 1 || req.Answer > 4 {
		return c.NoContent(http.StatusBadRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.questions[c.Param("id")] {
		if q.ID == c.Param("q") {
			q.Title = req.Title
			q.Options = req.Options
			q.Answer = req.Answer
			// Editing discards guest answers to this question.
			for _, p := range s.participants {
				delete(p.Answers, q.ID)
			}
			return c.JSON(http.StatusOK, q)
		}
	}
	return c.NoContent(http.StatusNotFound)
}

func (s *Server) handleDeleteQuestion(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	qs := s.questions[id]
	for i, q := range qs {
		if q.ID == c.Param("q") {
			s.questions[id] = append(qs[:i], qs[i+1:]...)
			for j, rest := range s.questions[id] {
				rest.Index = j + 1
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
	return c.NoContent(http.StatusNotFound)
}

func (s *Server) handleDeleteAllQuestions(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	delete(s.questions, id)
	for _, p := range s.participants {
		if p.AnalysisID == id {
			p.Answers = make(map[string]int)
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleCreateParticipant(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.NoContent(http.StatusBadRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.resolveShare(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	p := &participantRecord{
		ID:         s.nextID("qp"),
		Name:       req.Name,
		AnalysisID: id,
		Answers:    make(map[string]int),
	}
	s.participants[p.ID] = p
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) handleAnswer(c echo.Context) error {
	var req struct {
		QuestionID string `json:"questionId"`
		Answer     int    `json:"answer"`
	}
	if err := c.Bind(&req); err != nil || req.Answer < 1 || req.Answer > 4 {
		return c.NoContent(http.StatusBadRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[c.Param("qp")]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	p.Answers[req.QuestionID] = req.Answer
	return c.NoContent(http.StatusOK)
}

func (s *Server) handleParticipantResult(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[c.Param("qp")]
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}

	qs := s.questions[p.AnalysisID]
	correct := make([]bool, 0, len(qs))
	score := 0
	for _, q := range qs {
		hit := p.Answers[q.ID] == q.Answer
		if hit {
			score++
		}
		correct = append(correct, hit)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"qpId":    p.ID,
		"name":    p.Name,
		"score":   score,
		"total":   len(qs),
		"correct": correct,
	})
}

func (s *Server) handlePurchase(c echo.Context) error {
	var req struct {
		Amount int `json:"amount"`
	}
	if err := c.Bind(&req); err != nil || req.Amount <= 0 {
		return c.NoContent(http.StatusBadRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Credit += req.Amount
	s.purchases = append(s.purchases, creditEvent{
		ID:        s.nextID("purchase"),
		Amount:    req.Amount,
		Detail:    "크레딧 구매",
		CreatedAt: time.Now(),
	})
	return c.JSON(http.StatusOK, s.profile)
}

func (s *Server) handlePurchaseHistory(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.purchases)
}

func (s *Server) handleUsageHistory(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.usage)
}
