package api

import (
	"context"
	"net/http"
)

// PurchaseCredit buys credit. The backend settles payment out of band; this
// records the order and returns the updated profile.
func (c *Client) PurchaseCredit(ctx context.Context, amount int) (*Profile, error) {
	var out Profile
	err := c.do(ctx, http.MethodPost, "/credit/purchase/", map[string]int{
		"amount": amount,
	}, &out, messages{
		400: "구매 수량이 올바르지 않습니다.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreditUsageHistory lists credit spending, newest first.
func (c *Client) CreditUsageHistory(ctx context.Context) ([]CreditEvent, error) {
	var out []CreditEvent
	if err := c.do(ctx, http.MethodGet, "/credit/usage/", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// CreditPurchaseHistory lists past purchases, newest first.
func (c *Client) CreditPurchaseHistory(ctx context.Context) ([]CreditEvent, error) {
	var out []CreditEvent
	if err := c.do(ctx, http.MethodGet, "/credit/purchase/", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}
