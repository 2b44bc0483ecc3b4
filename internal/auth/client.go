// Package auth delegates sign-up, sign-in and sign-out to a Supabase-compatible
// auth API.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrNotConfigured = errors.New("auth backend not configured")
	ErrMissingToken  = errors.New("access token required")
)

// APIError is a failure reported by the auth backend. Message is safe to show users.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("auth api returned status %d: %s", e.Status, e.Message)
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

func NewClient(baseURL, anonKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Configured() bool { return c.baseURL != "" && c.anonKey != "" }

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp registers a user. Depending on the backend's confirmation settings the
// returned session may carry no access token until the email is confirmed.
func (c *Client) SignUp(ctx context.Context, email, password string) (Session, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "/auth/v1/signup", "", credentials{email, password}, &raw); err != nil {
		return Session{}, err
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, fmt.Errorf("parse signup response: %w", err)
	}
	if s.User.ID == "" {
		// Unconfirmed sign-ups return the bare user object.
		if err := json.Unmarshal(raw, &s.User); err != nil {
			return Session{}, fmt.Errorf("parse signup user: %w", err)
		}
	}
	return s, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	var s Session
	if err := c.do(ctx, "/auth/v1/token?grant_type=password", "", credentials{email, password}, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return ErrMissingToken
	}
	return c.do(ctx, "/auth/v1/logout", accessToken, nil, nil)
}

func (c *Client) do(ctx context.Context, path, token string, body, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(respBody)}
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// errorMessage picks the human-readable field out of the backend's error shapes.
func errorMessage(body []byte) string {
	var e struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil {
		for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
			if s != "" {
				return s
			}
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return "unknown error"
}
