package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/imararent/imararent/internal/client/models"
	"github.com/imararent/imararent/internal/common"
)

// HTTPClient talks JSON to the ImaraRent backend. The access token returned
// by a successful login is kept and attached to subsequent requests.
type HTTPClient struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
}

// NewHTTPClient constructs a client for the backend at baseURL
// (e.g. "http://127.0.0.1:8080").
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resendRequest struct {
	Email string `json:"email"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *HTTPClient) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return mapStatusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) mapTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return common.ErrUnavailable
	}
	// Connection refused and friends surface as *url.Error wrapping syscall
	// errors; treat anything that never produced a response as unavailable.
	return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
}

func mapStatusError(resp *http.Response) error {
	var body errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusForbidden:
		return common.ErrNotVerified
	case http.StatusConflict:
		return common.ErrEmailTaken
	case http.StatusNotFound:
		return common.ErrCodeInvalid
	case http.StatusGone:
		return common.ErrCodeExpired
	case http.StatusTooManyRequests:
		return common.ErrResendTooSoon
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return common.ErrUnavailable
	default:
		if body.Message != "" {
			return fmt.Errorf("%w: %s", common.ErrInternal, body.Message)
		}
		return common.ErrInternal
	}
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) error {
	return c.post(ctx, "/api/auth/register", registerRequest{Name: name, Email: email, Password: password}, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp loginResponse
	if err := c.post(ctx, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.accessToken = resp.Token
	user := resp.User
	return &user, nil
}

func (c *HTTPClient) VerifyCode(ctx context.Context, email, code string) error {
	return c.post(ctx, "/api/auth/verify", verifyRequest{Email: email, Code: code}, nil)
}

func (c *HTTPClient) ResendCode(ctx context.Context, email string) error {
	return c.post(ctx, "/api/auth/resend", resendRequest{Email: email}, nil)
}

// Ping checks backend liveness via the health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return common.ErrUnavailable
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return common.ErrUnavailable
	}
	return nil
}

// Close releases client resources. The underlying http.Client needs no
// explicit teardown; idle connections are dropped.
func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
