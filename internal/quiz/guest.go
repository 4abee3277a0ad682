package quiz

import (
	"context"
	"fmt"
	"sync"

	"github.com/chattolabs/chatto/internal/api"
)

// GuestSession is one guest's run through a shared quiz, keyed by the qpId
// the backend mints for the display name.
type GuestSession struct {
	mu        sync.Mutex
	qpID      string
	name      string
	questions []api.Question
	answered  map[string]int

	client    *api.Client
	shareUUID string
}

// NewGuestSession prepares a session against a share link. The client must
// be the public (unauthenticated) instance.
func NewGuestSession(client *api.Client, shareUUID string) *GuestSession {
	return &GuestSession{
		client:    client,
		shareUUID: shareUUID,
		answered:  make(map[string]int),
	}
}

// Start registers the guest by name and loads the questions.
func (s *GuestSession) Start(ctx context.Context, name string) error {
	participant, err := s.client.CreateParticipant(ctx, s.shareUUID, name)
	if err != nil {
		return err
	}
	questions, err := s.client.ListSharedQuestions(ctx, s.shareUUID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.qpID = participant.ID
	s.name = participant.Name
	s.questions = questions
	s.mu.Unlock()
	return nil
}

// Questions returns the quiz questions, answers hidden by the backend.
func (s *GuestSession) Questions() []api.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Answer submits one choice (1..4). Re-answering a question is rejected
// locally; the backend scores the first submission.
func (s *GuestSession) Answer(ctx context.Context, questionID string, choice int) error {
	s.mu.Lock()
	if s.qpID == "" {
		s.mu.Unlock()
		return fmt.Errorf("참여자 등록이 필요합니다")
	}
	if _, done := s.answered[questionID]; done {
		s.mu.Unlock()
		return fmt.Errorf("이미 답변한 질문입니다")
	}
	s.mu.Unlock()

	if err := s.client.SubmitAnswer(ctx, s.shareUUID, s.qpID, questionID, choice); err != nil {
		return err
	}

	s.mu.Lock()
	s.answered[questionID] = choice
	s.mu.Unlock()
	return nil
}

// Remaining reports how many questions are still unanswered.
func (s *GuestSession) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions) - len(s.answered)
}

// Result fetches the scored outcome for this guest.
func (s *GuestSession) Result(ctx context.Context) (*api.ParticipantResult, error) {
	s.mu.Lock()
	qpID := s.qpID
	s.mu.Unlock()
	if qpID == "" {
		return nil, fmt.Errorf("참여자 등록이 필요합니다")
	}
	return s.client.GetParticipantResult(ctx, s.shareUUID, qpID)
}
