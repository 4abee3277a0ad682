package api

import (
	"context"
	"fmt"
	"net/http"
)

// ShareLink is the public handle minted for one analysis result.
type ShareLink struct {
	UUID string `json:"uuid"`
}

// IssueShareLink fetches or creates the share UUID for an analysis result.
// The backend is idempotent here: repeated calls return the same UUID for
// the lifetime of the result.
func (c *Client) IssueShareLink(ctx context.Context, kind Kind, analysisID string) (*ShareLink, error) {
	var out ShareLink
	path := fmt.Sprintf("/%s/analysis/%s/%s/share/", ModeFor(kind), kind.slug(), analysisID)
	err := c.do(ctx, http.MethodPost, path, nil, &out, messages{
		404: "분석 결과를 찾을 수 없습니다.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSharedAnalysis resolves a share UUID to its read-only analysis view.
// Public endpoint; works on the unauthenticated client.
func (c *Client) GetSharedAnalysis(ctx context.Context, shareUUID string) (*Analysis, error) {
	var out Analysis
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/share/%s/", shareUUID), nil, &out, messages{
		404: "공유된 분석 결과를 찾을 수 없습니다. 링크가 만료되었을 수 있습니다.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
