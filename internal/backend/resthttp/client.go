// Package resthttp implements the service.Service interface over the
// task-manager REST API.
package resthttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"organizo/internal/service"
	"organizo/internal/session"
)

const (
	// APITimeout is the per-call timeout.
	APITimeout = 10 * time.Second
)

// Client implements service.Service against one configured base URL.
type Client struct {
	base string
	http *http.Client
}

// New creates a client for the given base URL. When the session carries a
// token, every request goes out with an Authorization: Bearer header; the
// token is opaque and never refreshed client-side.
func New(ctx context.Context, baseURL string, sess session.Session) *Client {
	httpClient := &http.Client{}
	if sess.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: sess.Token,
			TokenType:   "Bearer",
		})
		httpClient = oauth2.NewClient(ctx, src)
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: httpClient,
	}
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{base: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// do performs one request. body is JSON-encoded when non-nil; out, when
// non-nil, receives the decoded response body. Non-success statuses become
// *APIError; undecodable bodies become *MalformedResponseError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("request timed out")
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &MalformedResponseError{Endpoint: path, Err: err}
	}
	return nil
}

// apiError extracts the body's message field when present.
func apiError(status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return &APIError{Status: status, Message: payload.Message}
	}
	return &APIError{Status: status, Message: fmt.Sprintf("request failed with status %d", status)}
}

// ListTasks implements service.Service. The server wraps the list in a
// tasks field.
func (c *Client) ListTasks(ctx context.Context, category, userID string) ([]service.Task, error) {
	path := "/api/tasks"
	if category != "" || userID != "" {
		q := url.Values{}
		if category != "" {
			q.Set("category", category)
		}
		if userID != "" {
			q.Set("userId", userID)
		}
		path += "?" + q.Encode()
	}

	var payload struct {
		Tasks []service.Task `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	for _, t := range payload.Tasks {
		if err := t.Validate(); err != nil {
			return nil, &MalformedResponseError{Endpoint: "/api/tasks", Err: err}
		}
	}
	return payload.Tasks, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, draft service.TaskDraft) (service.Task, error) {
	var created service.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks/create", draft, &created); err != nil {
		return service.Task{}, err
	}
	if err := created.Validate(); err != nil {
		return service.Task{}, &MalformedResponseError{Endpoint: "/api/tasks/create", Err: err}
	}
	return created, nil
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, id string, draft service.TaskDraft) (service.Task, error) {
	var updated service.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/update/"+url.PathEscape(id), draft, &updated); err != nil {
		return service.Task{}, err
	}
	if err := updated.Validate(); err != nil {
		return service.Task{}, &MalformedResponseError{Endpoint: "/api/tasks/update", Err: err}
	}
	return updated, nil
}

// AssignTask implements service.Service. Only the assignee field is sent;
// the response is the full updated task.
func (c *Client) AssignTask(ctx context.Context, id, assigneeID string) (service.Task, error) {
	body := map[string]string{"assignee": assigneeID}
	var updated service.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/update/"+url.PathEscape(id), body, &updated); err != nil {
		return service.Task{}, err
	}
	if err := updated.Validate(); err != nil {
		return service.Task{}, &MalformedResponseError{Endpoint: "/api/tasks/update", Err: err}
	}
	return updated, nil
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/delete/"+url.PathEscape(id), nil, nil)
}

// ListUsers implements service.Service. The server returns a bare array.
func (c *Client) ListUsers(ctx context.Context) ([]service.User, error) {
	var users []service.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/", nil, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		if err := u.Validate(); err != nil {
			return nil, &MalformedResponseError{Endpoint: "/api/auth/", Err: err}
		}
	}
	return users, nil
}

// UpdateUser implements service.Service.
func (c *Client) UpdateUser(ctx context.Context, id string, draft service.UserDraft) (service.User, error) {
	var updated service.User
	if err := c.do(ctx, http.MethodPut, "/api/auth/update/"+url.PathEscape(id), draft, &updated); err != nil {
		return service.User{}, err
	}
	if err := updated.Validate(); err != nil {
		return service.User{}, &MalformedResponseError{Endpoint: "/api/auth/update", Err: err}
	}
	return updated, nil
}

// DeleteUser implements service.Service.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/auth/delete/"+url.PathEscape(id), nil, nil)
}

// ListNotifications implements service.Service.
func (c *Client) ListNotifications(ctx context.Context) ([]service.Notification, error) {
	var notifications []service.Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications/", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// CreateNotification implements service.Service.
func (c *Client) CreateNotification(ctx context.Context, message string) (service.Notification, error) {
	body := map[string]string{"message": message}
	var created service.Notification
	if err := c.do(ctx, http.MethodPost, "/api/notifications/", body, &created); err != nil {
		return service.Notification{}, err
	}
	return created, nil
}

// ListLogs implements service.Service.
func (c *Client) ListLogs(ctx context.Context) ([]service.ActivityLog, error) {
	var logs []service.ActivityLog
	if err := c.do(ctx, http.MethodGet, "/api/logs", nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// LogAction implements service.Service.
func (c *Client) LogAction(ctx context.Context, action string) error {
	body := map[string]string{"action": action}
	return c.do(ctx, http.MethodPost, "/api/logs", body, nil)
}

// credentialsPayload is the login/register response shape.
type credentialsPayload struct {
	Token string `json:"token"`
	User  struct {
		ID   string       `json:"id"`
		Role service.Role `json:"role"`
	} `json:"user"`
}

func (p credentialsPayload) credentials(endpoint string) (service.Credentials, error) {
	if p.Token == "" || p.User.ID == "" {
		return service.Credentials{}, &MalformedResponseError{
			Endpoint: endpoint,
			Err:      fmt.Errorf("missing token or user id"),
		}
	}
	if _, err := service.ParseRole(string(p.User.Role)); err != nil {
		return service.Credentials{}, &MalformedResponseError{Endpoint: endpoint, Err: err}
	}
	return service.Credentials{Token: p.Token, UserID: p.User.ID, Role: p.User.Role}, nil
}

// Login implements service.Service.
func (c *Client) Login(ctx context.Context, username, password string) (service.Credentials, error) {
	body := map[string]string{"username": username, "password": password}
	var payload credentialsPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &payload); err != nil {
		return service.Credentials{}, err
	}
	return payload.credentials("/api/auth/login")
}

// Register implements service.Service.
func (c *Client) Register(ctx context.Context, reg service.Registration) (service.Credentials, error) {
	var payload credentialsPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", reg, &payload); err != nil {
		return service.Credentials{}, err
	}
	return payload.credentials("/api/auth/register")
}

// ForgotPassword implements service.Service.
func (c *Client) ForgotPassword(ctx context.Context, username string) error {
	body := map[string]string{"username": username}
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", body, nil)
}

// RequestReset implements service.Service.
func (c *Client) RequestReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/auth/request-reset", body, nil)
}

// VerifyOTP implements service.Service.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	body := map[string]string{"email": email, "otp": otp}
	return c.do(ctx, http.MethodPost, "/api/auth/verify-otp", body, nil)
}

// ResetPassword implements service.Service.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, "/api/auth/reset-password", body, nil)
}
