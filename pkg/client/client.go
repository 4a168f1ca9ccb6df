package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/nemesisgroup/jobportal/pkg/domain"
	"github.com/nemesisgroup/jobportal/pkg/logger"
)

// MessageHistoryLimit bounds a room history fetch to the most recent messages.
const MessageHistoryLimit = 50

// Client is the job portal API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a new API client.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: logger.Get().With().Str("component", "client").Logger(),
	}
}

// WithToken returns a copy of the client that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Ping checks that the backend is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodGet, "/ping", nil, nil); err != nil {
		return fmt.Errorf("client.Ping: %w", err)
	}
	return nil
}

// --- Auth ---

// LoginRequest is the payload for the candidate/employer login.
type LoginRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     domain.Role `json:"role" validate:"required,oneof=candidate employer"`
}

// LoginResponse is the session issued by the backend.
type LoginResponse struct {
	Token string          `json:"token"`
	User  domain.AuthUser `json:"user"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*domain.Session, error) {
	var resp LoginResponse
	if err := c.post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("client.Login: response carried no token")
	}
	if resp.User.Role == "" {
		resp.User.Role = req.Role
	}
	user := resp.User
	return &domain.Session{Token: resp.Token, User: &user}, nil
}

// --- Jobs ---

// ListJobs fetches every job and normalizes both historical shapes.
func (c *Client) ListJobs(ctx context.Context) ([]domain.Job, error) {
	var raw []domain.RawJob
	if err := c.getList(ctx, "/jobs", &raw); err != nil {
		return nil, fmt.Errorf("client.ListJobs: %w", err)
	}
	return domain.NormalizeJobs(raw), nil
}

// GetJob fetches a single job by id.
func (c *Client) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	var raw domain.RawJob
	if err := c.getOne(ctx, "/jobs/"+url.PathEscape(id), &raw); err != nil {
		return nil, fmt.Errorf("client.GetJob: %w", err)
	}
	job := raw.Normalize()
	return &job, nil
}

// --- Chat ---

// ListRooms returns the community rooms, optionally limited to a category.
func (c *Client) ListRooms(ctx context.Context, category string) ([]domain.ChatRoom, error) {
	path := "/chat/rooms"
	if category != "" {
		params := url.Values{}
		params.Set("category", category)
		path += "?" + params.Encode()
	}
	var rooms []domain.ChatRoom
	if err := c.getList(ctx, path, &rooms); err != nil {
		return nil, fmt.Errorf("client.ListRooms: %w", err)
	}
	return rooms, nil
}

// JoinRoom joins a chat room.
func (c *Client) JoinRoom(ctx context.Context, roomID domain.ID) error {
	if err := c.doRequest(ctx, http.MethodPost, "/chat/rooms/"+url.PathEscape(roomID.String())+"/join", nil, nil); err != nil {
		return fmt.Errorf("client.JoinRoom: %w", err)
	}
	return nil
}

// FetchMessages returns the most recent MessageHistoryLimit messages of a room.
func (c *Client) FetchMessages(ctx context.Context, roomID domain.ID) ([]domain.ChatMessage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(MessageHistoryLimit))

	var msgs []domain.ChatMessage
	if err := c.getList(ctx, "/chat/rooms/"+url.PathEscape(roomID.String())+"/messages?"+params.Encode(), &msgs); err != nil {
		return nil, fmt.Errorf("client.FetchMessages: %w", err)
	}
	if len(msgs) > MessageHistoryLimit {
		msgs = msgs[len(msgs)-MessageHistoryLimit:]
	}
	return msgs, nil
}

// SendMessage posts a message to a room and returns the stored record.
func (c *Client) SendMessage(ctx context.Context, roomID domain.ID, body string) (*domain.ChatMessage, error) {
	var msg domain.ChatMessage
	if err := c.getOneVia(ctx, http.MethodPost, "/chat/rooms/"+url.PathEscape(roomID.String())+"/messages", map[string]string{"body": body}, &msg); err != nil {
		return nil, fmt.Errorf("client.SendMessage: %w", err)
	}
	return &msg, nil
}

// --- Dashboards ---

// CandidateApplications lists the signed-in candidate's applications.
func (c *Client) CandidateApplications(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if err := c.getList(ctx, "/candidate/applications", &apps); err != nil {
		return nil, fmt.Errorf("client.CandidateApplications: %w", err)
	}
	return apps, nil
}

// EmployerJobs lists the jobs posted by the signed-in employer.
func (c *Client) EmployerJobs(ctx context.Context) ([]domain.Job, error) {
	var raw []domain.RawJob
	if err := c.getList(ctx, "/employer/jobs", &raw); err != nil {
		return nil, fmt.Errorf("client.EmployerJobs: %w", err)
	}
	return domain.NormalizeJobs(raw), nil
}

// --- Admin ---

// AdminLoginRequest is the admin console login payload.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin exchanges admin credentials for an admin token.
func (c *Client) AdminLogin(ctx context.Context, req AdminLoginRequest) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.post(ctx, "/admin/login", req, &resp); err != nil {
		return "", fmt.Errorf("client.AdminLogin: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("client.AdminLogin: response carried no token")
	}
	return resp.Token, nil
}

// AdminSummary returns the aggregate counts for the admin dashboard.
func (c *Client) AdminSummary(ctx context.Context) (*domain.DashSummary, error) {
	var s domain.DashSummary
	if err := c.getOne(ctx, "/admin/summary", &s); err != nil {
		return nil, fmt.Errorf("client.AdminSummary: %w", err)
	}
	return &s, nil
}

// AdminList returns the rows of an admin resource (customers, employees, ...).
func (c *Client) AdminList(ctx context.Context, resource string) ([]domain.Row, error) {
	var rows []domain.Row
	if err := c.getList(ctx, "/admin/"+url.PathEscape(resource), &rows); err != nil {
		return nil, fmt.Errorf("client.AdminList: %w", err)
	}
	return rows, nil
}

// getList decodes a collection that the backend sends either bare or wrapped
// as {"data": [...]}. Any other shape decodes as an empty list.
func (c *Client) getList(ctx context.Context, path string, out any) error {
	var raw json.RawMessage
	if err := c.get(ctx, path, &raw); err != nil {
		return err
	}
	return decodeList(raw, out)
}

// getOne decodes a single object, bare or wrapped in {"data": {...}}.
func (c *Client) getOne(ctx context.Context, path string, out any) error {
	return c.getOneVia(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) getOneVia(ctx context.Context, method, path string, body any, out any) error {
	var raw json.RawMessage
	if err := c.doRequest(ctx, method, path, body, &raw); err != nil {
		return err
	}
	return decodeObject(raw, out)
}

func decodeList(raw json.RawMessage, out any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		raw = bytes.TrimSpace(env.Data)
	}
	if len(raw) == 0 || raw[0] != '[' {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeObject(raw json.RawMessage, out any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if raw[0] == '{' && json.Unmarshal(raw, &env) == nil {
		if data := bytes.TrimSpace(env.Data); len(data) > 0 && data[0] == '{' {
			raw = data
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("request")

	if resp.StatusCode >= 400 {
		return newHTTPError(resp, method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}
