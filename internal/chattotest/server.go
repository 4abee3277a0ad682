// Package chattotest provides an in-memory Chatto backend for tests.
//
// The fake mirrors the REST surface the client consumes: account, chat,
// analysis, share, quiz, and credit endpoints, with bearer-token auth on
// everything except signup/login and the share reads. State lives in maps
// behind one mutex; handlers are deliberately literal so test failures read
// like backend behavior, not fixture indirection.
package chattotest

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Token is the access token the fake accepts after login.
const Token = "test-access-token"

// Credentials the fake's single account accepts.
const (
	Username = "tester"
	Password = "password123"
)

// Server is the fake backend.
type Server struct {
	mu sync.Mutex

	echo         *echo.Echo
	chats        map[string]*chatRecord
	analyses     map[string]*analysisRecord
	shares       map[string]string // analysis id -> share uuid
	sharesByUUID map[string]string // share uuid -> analysis id
	questions    map[string][]*questionRecord
	participants map[string]*participantRecord
	usage        []creditEvent
	purchases    []creditEvent

	profile profileRecord
	seq     int
}

type chatRecord struct {
	ID         string    `json:"chat_id"`
	Title      string    `json:"title"`
	PeopleNum  int       `json:"people_num"`
	UploadedAt time.Time `json:"uploaded_at"`
	Mode       string    `json:"-"`
}

type analysisRecord struct {
	ID        string         `json:"id"`
	ChatID    string         `json:"chat"`
	ChatTitle string         `json:"chat_title"`
	Kind      string         `json:"kind"`
	CreatedAt time.Time      `json:"created_at"`
	Spec      map[string]any `json:"spec"`

	Relation    string `json:"relation"`
	Situation   string `json:"situation"`
	Age         string `json:"age"`
	TeamType    string `json:"team_type"`
	ProjectType string `json:"project_type"`
	DateFrom    string `json:"analysis_start"`
	DateTo      string `json:"analysis_end"`
}

type questionRecord struct {
	ID      string    `json:"questionId"`
	Index   int       `json:"questionIndex"`
	Title   string    `json:"title"`
	Options [4]string `json:"options"`
	Answer  int       `json:"answer"`
}

type participantRecord struct {
	ID         string `json:"qpId"`
	Name       string `json:"name"`
	AnalysisID string `json:"-"`
	Answers    map[string]int
}

type profileRecord struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Credit   int    `json:"credit"`
	Point    int    `json:"point"`
}

type creditEvent struct {
	ID        string    `json:"id"`
	Amount    int       `json:"amount"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates an empty fake backend.
func New() *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:         e,
		chats:        make(map[string]*chatRecord),
		analyses:     make(map[string]*analysisRecord),
		shares:       make(map[string]string),
		sharesByUUID: make(map[string]string),
		questions:    make(map[string][]*questionRecord),
		participants: make(map[string]*participantRecord),
		profile: profileRecord{
			Username: Username,
			Email:    "tester@example.com",
			Phone:    "010-0000-0000",
			Credit:   10,
			Point:    0,
		},
	}
	s.registerRoutes()
	return s
}

// Handler exposes the fake as an http.Handler for httptest.NewServer.
func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) registerRoutes() {
	e := s.echo

	// Public surface.
	e.POST("/account/signup/", s.handleSignup)
	e.POST("/account/login/", s.handleLogin)
	e.GET("/share/:uuid/", s.handleSharedAnalysis)
	e.GET("/share/:uuid/quiz/", s.handleSharedQuiz)
	e.POST("/share/:uuid/quiz/participant/", s.handleCreateParticipant)
	e.POST("/share/:uuid/quiz/participant/:qp/answer/", s.handleAnswer)
	e.GET("/share/:uuid/quiz/participant/:qp/result/", s.handleParticipantResult)

	// Authenticated surface.
	auth := e.Group("", s.requireAuth)
	auth.POST("/account/logout/", s.handleLogout)
	auth.GET("/account/profile/", s.handleProfile)
	auth.PUT("/account/profile/", s.handleUpdateProfile)

	for _, mode := range []string{"play", "business"} {
		g := auth.Group("/" + mode)
		g.POST("/chat/", s.handleUpload(mode))
		g.GET("/chat/", s.handleListChats(mode))
		g.PUT("/chat/:id/", s.handleRename)
		g.DELETE("/chat/:id/", s.handleDeleteChat)
		g.POST("/chat/:id/analyze/:slug/", s.handleAnalyze)
		g.GET("/analysis/:slug/all/", s.handleListAnalyses)
		g.GET("/analysis/:slug/:id/detail/", s.handleAnalysisDetail)
		g.DELETE("/analysis/:slug/:id/detail/", s.handleDeleteAnalysis)
		g.POST("/analysis/:slug/:id/share/", s.handleIssueShare)
		g.GET("/analysis/:slug/:id/quiz/", s.handleListQuestions)
		g.POST("/analysis/:slug/:id/quiz/", s.handleAddQuestion)
		g.DELETE("/analysis/:slug/:id/quiz/", s.handleDeleteAllQuestions)
		g.PUT("/analysis/:slug/:id/quiz/:q/", s.handleUpdateQuestion)
		g.DELETE("/analysis/:slug/:id/quiz/:q/", s.handleDeleteQuestion)
	}

	auth.POST("/credit/purchase/", s.handlePurchase)
	auth.GET("/credit/purchase/", s.handlePurchaseHistory)
	auth.GET("/credit/usage/", s.handleUsageHistory)
}

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if header != "Bearer "+Token {
			return c.NoContent(http.StatusUnauthorized)
		}
		return next(c)
	}
}

func (s *Server) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

// SeedChat inserts a chat directly (bypassing upload) and returns its id.
func (s *Server) SeedChat(mode, title string, peopleNum int, uploadedAt time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID("chat")
	s.chats[id] = &chatRecord{
		ID:         id,
		Title:      title,
		PeopleNum:  peopleNum,
		UploadedAt: uploadedAt,
		Mode:       mode,
	}
	return id
}

// SeedAnalysis inserts an analysis for a chat and returns its id.
func (s *Server) SeedAnalysis(kind, chatID string, params map[string]string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID("analysis")
	rec := &analysisRecord{
		ID:        id,
		ChatID:    chatID,
		Kind:      kind,
		CreatedAt: time.Now(),
		Spec:      map[string]any{"score": 87},
	}
	if chat, ok := s.chats[chatID]; ok {
		rec.ChatTitle = chat.Title
	}
	applyParams(rec, params)
	s.analyses[id] = rec
	return id
}

func applyParams(rec *analysisRecord, params map[string]string) {
	get := func(key string) string {
		if v, ok := params[key]; ok {
			return v
		}
		return "입력 안 함"
	}
	rec.Relation = get("relation")
	rec.Situation = get("situation")
	rec.Age = get("age")
	rec.TeamType = get("team_type")
	rec.ProjectType = get("project_type")
	rec.DateFrom = get("analysis_start")
	rec.DateTo = get("analysis_end")
}

// RemoveChat deletes a chat server-side without going through the API,
// simulating another session's delete racing the local list.
func (s *Server) RemoveChat(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chats, chatID)
}

// Credit returns the fake account's current credit balance.
func (s *Server) Credit() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Credit
}

func kindFromSlug(slug string) string {
	if slug == "chem" {
		return "chemi"
	}
	return slug
}

func newShareUUID() string { return uuid.NewString() }
