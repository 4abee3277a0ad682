package api

import (
	"context"
	"fmt"
	"net/http"
)

// QuestionInput is the writable part of a quiz question.
type QuestionInput struct {
	Title   string    `json:"title"`
	Options [4]string `json:"options"`
	Answer  int       `json:"answer"`
}

// Validate rejects inputs the backend would bounce with a 400 anyway.
func (q QuestionInput) Validate() error {
	if q.Title == "" {
		return fmt.Errorf("질문을 입력해주세요: %w", ErrBadRequest)
	}
	for i, opt := range q.Options {
		if opt == "" {
			return fmt.Errorf("%d번 보기를 입력해주세요: %w", i+1, ErrBadRequest)
		}
	}
	if q.Answer < 1 || q.Answer > 4 {
		return fmt.Errorf("정답은 1~4 사이여야 합니다: %w", ErrBadRequest)
	}
	return nil
}

// ListQuestions fetches the full ordered question list of a quiz.
func (c *Client) ListQuestions(ctx context.Context, kind Kind, analysisID string) ([]Question, error) {
	var out []Question
	path := fmt.Sprintf("/%s/analysis/%s/%s/quiz/", ModeFor(kind), kind.slug(), analysisID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// AddQuestion appends one question to the quiz.
func (c *Client) AddQuestion(ctx context.Context, kind Kind, analysisID string, in QuestionInput) (*Question, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out Question
	path := fmt.Sprintf("/%s/analysis/%s/%s/quiz/", ModeFor(kind), kind.slug(), analysisID)
	if err := c.do(ctx, http.MethodPost, path, in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateQuestion rewrites one question in place. The backend discards every
// guest answer recorded against the old version.
func (c *Client) UpdateQuestion(ctx context.Context, kind Kind, analysisID, questionID string, in QuestionInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	path := fmt.Sprintf("/%s/analysis/%s/%s/quiz/%s/", ModeFor(kind), kind.slug(), analysisID, questionID)
	return c.do(ctx, http.MethodPut, path, in, nil, messages{
		404: "이미 삭제된 질문입니다.",
	})
}

// DeleteQuestion removes one question.
func (c *Client) DeleteQuestion(ctx context.Context, kind Kind, analysisID, questionID string) error {
	path := fmt.Sprintf("/%s/analysis/%s/%s/quiz/%s/", ModeFor(kind), kind.slug(), analysisID, questionID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, messages{
		404: "이미 삭제된 질문입니다.",
	})
}

// DeleteAllQuestions clears the quiz, including all guest history.
func (c *Client) DeleteAllQuestions(ctx context.Context, kind Kind, analysisID string) error {
	path := fmt.Sprintf("/%s/analysis/%s/%s/quiz/", ModeFor(kind), kind.slug(), analysisID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Guest flow. These are public endpoints keyed by the share UUID and work on
// the unauthenticated client.

// ListSharedQuestions fetches a quiz through its share link, answers hidden.
func (c *Client) ListSharedQuestions(ctx context.Context, shareUUID string) ([]Question, error) {
	var out []Question
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/share/%s/quiz/", shareUUID), nil, &out, messages{
		404: "공유된 퀴즈를 찾을 수 없습니다.",
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateParticipant registers a guest by display name and returns the qpId
// all of their answers are keyed by.
func (c *Client) CreateParticipant(ctx context.Context, shareUUID, name string) (*Participant, error) {
	var out Participant
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/share/%s/quiz/participant/", shareUUID), map[string]string{
		"name": name,
	}, &out, messages{
		400: "이름을 입력해주세요.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitAnswer records one guest answer (1..4) to one question.
func (c *Client) SubmitAnswer(ctx context.Context, shareUUID, qpID, questionID string, answer int) error {
	if answer < 1 || answer > 4 {
		return fmt.Errorf("정답은 1~4 사이여야 합니다: %w", ErrBadRequest)
	}
	path := fmt.Sprintf("/share/%s/quiz/participant/%s/answer/", shareUUID, qpID)
	return c.do(ctx, http.MethodPost, path, map[string]any{
		"questionId": questionID,
		"answer":     answer,
	}, nil, nil)
}

// GetParticipantResult fetches one guest's scored outcome.
func (c *Client) GetParticipantResult(ctx context.Context, shareUUID, qpID string) (*ParticipantResult, error) {
	var out ParticipantResult
	path := fmt.Sprintf("/share/%s/quiz/participant/%s/result/", shareUUID, qpID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
