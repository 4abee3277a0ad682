// Package quiz implements the quiz editing and guest-taking flows over
// backend-generated questions.
//
// Editing is optimistic only at the draft level: entering edit mode
// snapshots the question, and nothing is sent until the edit is committed.
// Every successful mutation re-fetches the whole question list rather than
// patching local state, trading a round-trip for correctness.
package quiz

import (
	"context"
	"fmt"
	"sync"

	"github.com/chattolabs/chatto/internal/api"
	"go.uber.org/zap"
)

// EditWarning is shown before committing an edit: rewriting a question
// discards every guest answer recorded against it.
const EditWarning = "질문을 수정하면 기존 참여자들의 답변 기록이 사라집니다. 계속할까요?"

// DeleteAllWarning is shown before clearing the quiz.
const DeleteAllWarning = "모든 질문과 참여 기록이 삭제됩니다. 계속할까요?"

// Editor manages one quiz's question list.
type Editor struct {
	mu        sync.Mutex
	questions []api.Question
	draft     *draft
	lastErr   string

	client     *api.Client
	kind       api.Kind
	analysisID string
	logger     *zap.Logger
}

type draft struct {
	questionID string
	input      api.QuestionInput
}

// NewEditor creates an editor for the quiz of one analysis result.
func NewEditor(client *api.Client, kind api.Kind, analysisID string, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor{
		client:     client,
		kind:       kind,
		analysisID: analysisID,
		logger:     logger,
	}
}

// Refresh re-fetches the full question list.
func (e *Editor) Refresh(ctx context.Context) error {
	questions, err := e.client.ListQuestions(ctx, e.kind, e.analysisID)
	if err != nil {
		e.setErr(err.Error())
		return err
	}
	e.mu.Lock()
	e.questions = questions
	e.lastErr = ""
	e.mu.Unlock()
	return nil
}

// Questions returns the current list.
func (e *Editor) Questions() []api.Question {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]api.Question, len(e.questions))
	copy(out, e.questions)
	return out
}

// Err returns the retained error message, or "".
func (e *Editor) Err() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// BeginEdit snapshots a question into the draft. Only one draft exists at a
// time; beginning a new edit drops the old draft.
func (e *Editor) BeginEdit(questionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, q := range e.questions {
		if q.ID == questionID {
			e.draft = &draft{
				questionID: questionID,
				input: api.QuestionInput{
					Title:   q.Title,
					Options: q.Options,
					Answer:  q.Answer,
				},
			}
			return nil
		}
	}
	return fmt.Errorf("질문을 찾을 수 없습니다: %s", questionID)
}

// Draft returns a copy of the current draft, or nil when not editing.
func (e *Editor) Draft() *api.QuestionInput {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return nil
	}
	in := e.draft.input
	return &in
}

// SetDraft replaces the draft contents while editing.
func (e *Editor) SetDraft(in api.QuestionInput) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft != nil {
		e.draft.input = in
	}
}

// CancelEdit drops the draft without sending anything.
func (e *Editor) CancelEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = nil
}

// CommitEdit sends the draft. The caller must have confirmed EditWarning
// with the user first. On success the draft is cleared and the list
// re-fetched.
func (e *Editor) CommitEdit(ctx context.Context) error {
	e.mu.Lock()
	d := e.draft
	e.mu.Unlock()
	if d == nil {
		return fmt.Errorf("수정 중인 질문이 없습니다")
	}

	if err := e.client.UpdateQuestion(ctx, e.kind, e.analysisID, d.questionID, d.input); err != nil {
		e.setErr(err.Error())
		return err
	}

	e.mu.Lock()
	e.draft = nil
	e.mu.Unlock()
	e.logger.Info("quiz question updated", zap.String("question_id", d.questionID))
	return e.Refresh(ctx)
}

// Add appends a question and re-fetches.
func (e *Editor) Add(ctx context.Context, in api.QuestionInput) error {
	if _, err := e.client.AddQuestion(ctx, e.kind, e.analysisID, in); err != nil {
		e.setErr(err.Error())
		return err
	}
	return e.Refresh(ctx)
}

// Delete removes one question and re-fetches.
func (e *Editor) Delete(ctx context.Context, questionID string) error {
	if err := e.client.DeleteQuestion(ctx, e.kind, e.analysisID, questionID); err != nil {
		e.setErr(err.Error())
		return err
	}
	return e.Refresh(ctx)
}

// DeleteAll clears the quiz and re-fetches. The caller must have confirmed
// DeleteAllWarning with the user first.
func (e *Editor) DeleteAll(ctx context.Context) error {
	if err := e.client.DeleteAllQuestions(ctx, e.kind, e.analysisID); err != nil {
		e.setErr(err.Error())
		return err
	}
	return e.Refresh(ctx)
}

func (e *Editor) setErr(msg string) {
	e.mu.Lock()
	e.lastErr = msg
	e.mu.Unlock()
}
