package api

import (
	"context"
	"fmt"
	"net/http"
)

// RequestAnalysis asks the backend to compute a new analysis of the given
// kind against a chat. The result is a fresh record every time; parameters
// are stored as submitted (callers normalize blanks beforehand).
func (c *Client) RequestAnalysis(ctx context.Context, kind Kind, chatID string, params Params) (*Analysis, error) {
	var out Analysis
	path := fmt.Sprintf("/%s/chat/%s/analyze/%s/", ModeFor(kind), chatID, kind.slug())
	err := c.do(ctx, http.MethodPost, path, params, &out, messages{
		402: "크레딧이 부족합니다.",
		404: "분석할 대화를 찾을 수 없습니다. 삭제된 대화일 수 있습니다.",
	})
	if err != nil {
		return nil, err
	}
	if out.Kind == "" {
		out.Kind = kind
	}
	return &out, nil
}

// GetAnalysis fetches the full detail of one analysis result.
func (c *Client) GetAnalysis(ctx context.Context, kind Kind, id string) (*Analysis, error) {
	var out Analysis
	path := fmt.Sprintf("/%s/analysis/%s/%s/detail/", ModeFor(kind), kind.slug(), id)
	err := c.do(ctx, http.MethodGet, path, nil, &out, messages{
		404: "분석 결과를 찾을 수 없습니다.",
	})
	if err != nil {
		return nil, err
	}
	if out.Kind == "" {
		out.Kind = kind
	}
	return &out, nil
}

// ListAnalyses fetches the user's analysis history for one kind.
func (c *Client) ListAnalyses(ctx context.Context, kind Kind) ([]AnalysisSummary, error) {
	var out []AnalysisSummary
	path := fmt.Sprintf("/%s/analysis/%s/all/", ModeFor(kind), kind.slug())
	if err := c.do(ctx, http.MethodGet, path, nil, &out, nil); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Kind == "" {
			out[i].Kind = kind
		}
	}
	return out, nil
}

// DeleteAnalysis removes one analysis result and everything hanging off it
// (share link, quiz).
func (c *Client) DeleteAnalysis(ctx context.Context, kind Kind, id string) error {
	path := fmt.Sprintf("/%s/analysis/%s/%s/detail/", ModeFor(kind), kind.slug(), id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, messages{
		404: "이미 삭제된 분석 결과입니다.",
	})
}
