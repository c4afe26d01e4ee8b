// Package backend is the thin REST client for the store API. There is one
// method per endpoint the admin console uses; none of them retry.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New builds a client for baseURL. A zero timeout means requests wait as long
// as the caller's context allows.
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx answer, or a 2xx answer whose envelope says success=false.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d", e.Method, e.Path, e.Status)
}

// MessageOr returns the backend's own message when err carries one, else fallback.
func MessageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// envelope is the { success, data, message } wrapper most endpoints use.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		_ = json.Unmarshal(raw, &env)
		return nil, &APIError{Method: method, Path: path, Status: resp.StatusCode, Message: env.Message}
	}

	var env envelope
	if json.Unmarshal(raw, &env) == nil && env.Success != nil && !*env.Success {
		return nil, &APIError{Method: method, Path: path, Status: resp.StatusCode, Message: env.Message}
	}
	return raw, nil
}

// decode accepts an enveloped payload, a raw array or a raw object.
func decode(raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || out == nil {
		return nil
	}
	if trimmed[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return err
		}
		_, hasData := probe["data"]
		_, hasSuccess := probe["success"]
		if hasData || hasSuccess {
			data := probe["data"]
			if len(data) == 0 || string(data) == "null" {
				return nil
			}
			return json.Unmarshal(data, out)
		}
	}
	return json.Unmarshal(trimmed, out)
}

func message(raw []byte) string {
	var env envelope
	_ = json.Unmarshal(raw, &env)
	return env.Message
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	raw, err := c.do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	if err := decode(raw, out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

// sendJSON issues a JSON body request and returns the backend's message, if any.
func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) (string, error) {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return "", err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	raw, err := c.do(ctx, method, path, nil, body, contentType)
	if err != nil {
		return "", err
	}
	if err := decode(raw, out); err != nil {
		return "", fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return message(raw), nil
}

// postFile uploads one file under the "file" form field.
func (c *Client) postFile(ctx context.Context, path, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	raw, err := c.do(ctx, http.MethodPost, path, nil, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	if err := decode(raw, out); err != nil {
		return fmt.Errorf("POST %s: decode: %w", path, err)
	}
	return nil
}

func escape(id string) string { return url.PathEscape(id) }
