package lemmy

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

	"github.com/CrestNiraj12/lemmyterm/domain"
)

const (
	apiVersion       = "v3"
	maxResponseBytes = 8 << 20
	maxErrorSnippet  = 200
)

// Client is a thin HTTP wrapper for the Lemmy API.
// It builds URLs from the session's instance, injects the session's JWT and
// classifies every failure as a *domain.APIError.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient creates a Lemmy API client. timeout bounds every request.
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Get performs a GET request. The JWT, if any, travels as the auth query parameter.
func (c *Client) Get(ctx context.Context, s domain.Session, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	if s.JWT != "" {
		query.Set("auth", s.JWT)
	}
	return c.do(ctx, http.MethodGet, s, path, query, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, s domain.Session, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, s, path, nil, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, s domain.Session, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, s, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method string, s domain.Session, path string, query url.Values, body, out any) error {
	if s.InstanceURL == "" {
		return domain.ErrNoInstance
	}
	endpoint := apiURL(s.InstanceURL) + path
	return c.doURL(ctx, method, endpoint, s.JWT, query, body, out)
}

func apiURL(instanceURL string) string {
	return strings.TrimRight(instanceURL, "/") + "/api/" + apiVersion
}

func (c *Client) doURL(ctx context.Context, method, endpoint, jwt string, query url.Values, body, out any) error {
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &domain.APIError{Kind: domain.ErrorKindInternal, Err: fmt.Errorf("encoding request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &domain.APIError{Kind: domain.ErrorKindTransport, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if jwt != "" {
		req.Header.Set("Authorization", "Bearer "+jwt)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// *url.Error repeats the full URL, auth parameter included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return &domain.APIError{Kind: domain.ErrorKindTransport, Err: fmt.Errorf("%s %s: %w", method, clean(req.URL), err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &domain.APIError{Kind: domain.ErrorKindTransport, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.APIError{
			Kind:    domain.ErrorKindServer,
			Status:  resp.StatusCode,
			Message: serverMessage(data),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &domain.APIError{Kind: domain.ErrorKindMalformed, Err: fmt.Errorf("decoding %s: %w", clean(req.URL), err)}
	}
	return nil
}

// serverMessage extracts Lemmy's {"error": "..."} payload, or a snippet of the raw body.
func serverMessage(data []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	msg := strings.TrimSpace(string(data))
	if len(msg) > maxErrorSnippet {
		msg = msg[:maxErrorSnippet]
	}
	return msg
}

// clean returns the request path without its query, so tokens never reach error messages or logs.
func clean(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.Path
}

func requireLogin(s domain.Session) error {
	if !s.LoggedIn() {
		return domain.ErrNotLoggedIn
	}
	return nil
}
