package api

import (
	"context"
	"net/http"
)

// SignupRequest is the account creation payload.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the access token exchanged for credentials.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// Signup creates an account. Public endpoint.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.do(ctx, http.MethodPost, "/account/signup/", req, nil, messages{
		400: "이미 사용 중이거나 올바르지 않은 정보입니다.",
	})
}

// Login exchanges credentials for an access token. Public endpoint.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/account/login/", loginRequest{
		Username: username,
		Password: password,
	}, &out, messages{
		400: "아이디 또는 비밀번호가 올바르지 않습니다.",
		401: "아이디 또는 비밀번호가 올바르지 않습니다.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the current token server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/account/logout/", nil, nil, nil)
}

// GetProfile fetches the authenticated user's account record.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/account/profile/", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile writes editable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, email, phone string) (*Profile, error) {
	var out Profile
	err := c.do(ctx, http.MethodPut, "/account/profile/", map[string]string{
		"email": email,
		"phone": phone,
	}, &out, nil)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
