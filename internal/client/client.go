// ABOUTME: HTTP gateway client for the NeuroStudy API
// ABOUTME: Attaches the bearer token, decodes the data envelope, and reports 401s

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is applied to every request
const DefaultTimeout = 30 * time.Second

// MaxUploadBytes matches the backend's multipart limit
const MaxUploadBytes = 10 << 20

// TokenSource supplies the persisted bearer token, "" when logged out
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is the API client for the NeuroStudy backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource

	mu             sync.Mutex
	onUnauthorized []func()
}

// Option configures a Client
type Option func(*Client)

// WithTokenSource sets where bearer tokens are read from
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base URL requests are resolved against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// OnUnauthorized registers fn to run synchronously whenever the backend answers 401.
// Hooks run before the failing call returns.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = append(c.onUnauthorized, fn)
}

// Register calls POST /auth/register
func (c *Client) Register(ctx context.Context, in *RegisterRequest) (*AuthResult, error) {
	var out AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login calls POST /auth/login
func (c *Client) Login(ctx context.Context, in *LoginRequest) (*AuthResult, error) {
	var out AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload calls POST /upload with the image as multipart field "image"
func (c *Client) Upload(ctx context.Context, filename string, image io.Reader) (*UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, escapeQuotes(filepath.Base(filename))))
	h.Set("Content-Type", ContentTypeFor(filename))
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	n, err := io.Copy(part, io.LimitReader(image, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if n > MaxUploadBytes {
		return nil, fmt.Errorf("image is larger than %d MB", MaxUploadBytes>>20)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var out UploadResult
	if err := c.do(ctx, http.MethodPost, "/upload", &body, mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Process calls POST /process
func (c *Client) Process(ctx context.Context, in *ProcessRequest) (*ProcessResult, error) {
	var out ProcessResult
	if err := c.doJSON(ctx, http.MethodPost, "/process", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StudySession calls GET /study/{id}
func (c *Client) StudySession(ctx context.Context, id string) (*StudySession, error) {
	var out StudySession
	if err := c.do(ctx, http.MethodGet, "/study/"+url.PathEscape(id), nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecentSessions calls GET /study/recent
func (c *Client) RecentSessions(ctx context.Context) ([]SessionSummary, error) {
	var out []SessionSummary
	if err := c.do(ctx, http.MethodGet, "/study/recent", nil, "", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []SessionSummary{}
	}
	return out, nil
}

// Health calls GET /health on the backend origin; it is served outside the API base path
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	healthURL, err := c.healthURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	return &health, nil
}

func (c *Client) healthURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid API URL %q", c.baseURL)
	}
	return u.Scheme + "://" + u.Host + "/health", nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}
	return c.do(ctx, method, path, bytes.NewReader(body), "application/json", out)
}

// do sends one request and decodes the envelope's data into out
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			slog.Warn("Reading auth token failed, sending request without it", "error", err)
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("Request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	slog.Debug("Request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		c.notifyUnauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.handleErrorResponse(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

func (c *Client) notifyUnauthorized() {
	c.mu.Lock()
	hooks := make([]func(), len(c.onUnauthorized))
	copy(hooks, c.onUnauthorized)
	c.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// handleRequestError converts transport failures to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return &NetworkError{Message: "request canceled", Err: err}
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &NetworkError{Message: "request timed out", Err: err}
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return &NetworkError{Message: "request timed out", Err: err}
	}
	return &NetworkError{Message: fmt.Sprintf("cannot connect to backend at %s", c.baseURL), Err: err}
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &RemoteError{StatusCode: resp.StatusCode}
	}
	return &RemoteError{StatusCode: resp.StatusCode, Message: env.Error}
}

// ContentTypeFor derives an image MIME type from the file extension, defaulting to image/jpeg
func ContentTypeFor(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch ext {
	case "", "jpg", "jpeg":
		return "image/jpeg"
	default:
		return "image/" + ext
	}
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
