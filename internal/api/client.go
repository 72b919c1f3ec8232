package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"sync"
)

// FilePart is an optional file attachment for a multipart request.
type FilePart struct {
	Field    string
	FileName string
	Reader   io.Reader
}

// Client is the single request-issuing facility. Every request carries the
// current access token as a bearer credential when one is set; there is no
// retry, no backoff and no token refresh here. Deliberately no client-side
// timeout either: the remote service's behavior is inherited as-is, and
// callers cancel through the context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// SetToken installs the default bearer credential. Only the auth controller
// calls this.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the default bearer credential.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the currently installed access token, if any.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetUnauthorizedHook registers a callback fired after any 401 response to a
// request that carried a bearer token. The application wires it to the auth
// controller's Logout so an expired credential tears the session down.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

// GetJSON issues a GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// PostJSON issues a POST with a JSON body and decodes the response into out.
// Both body and out may be nil.
func (c *Client) PostJSON(ctx context.Context, path string, body, out interface{}) error {
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		buf = bytes.NewReader(raw)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", buf, out)
}

// Delete issues a DELETE; the response body is discarded.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, nil)
}

// PostMultipart issues a POST with form fields and an optional file part.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, file *FilePart, out interface{}) error {
	body, contentType, err := encodeMultipart(fields, file)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, contentType, body, out)
}

// PatchMultipart issues a PATCH with form fields and an optional file part.
func (c *Client) PatchMultipart(ctx context.Context, path string, fields map[string]string, file *FilePart, out interface{}) error {
	body, contentType, err := encodeMultipart(fields, file)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, contentType, body, out)
}

func encodeMultipart(fields map[string]string, file *FilePart) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, "", fmt.Errorf("encode form field %s: %w", k, err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(file.Field, file.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("encode file part: %w", err)
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return nil, "", fmt.Errorf("encode file part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finish multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	token := c.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindTransient, Message: "request failed to complete", cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransient, Message: "request failed to complete", cause: err}
	}

	if resp.StatusCode >= 400 {
		apiErr := decodeError(resp.StatusCode, raw)
		c.logger.Debug("request rejected",
			"method", method, "path", path, "status", resp.StatusCode)
		if resp.StatusCode == http.StatusUnauthorized && token != "" {
			c.mu.RLock()
			hook := c.onUnauthorized
			c.mu.RUnlock()
			if hook != nil {
				hook()
			}
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError maps a remote failure onto the client's error taxonomy. Bodies
// follow the remote service's conventions: {"detail": "..."},
// {"error": "..."} or a per-field map {"field": ["msg", ...]}.
func decodeError(status int, raw []byte) *Error {
	e := &Error{StatusCode: status}
	switch status {
	case http.StatusUnauthorized:
		e.Kind = KindAuthentication
	case http.StatusForbidden:
		e.Kind = KindAuthorization
	case http.StatusNotFound:
		e.Kind = KindNotFound
	case http.StatusBadRequest:
		e.Kind = KindValidation
	default:
		e.Kind = KindServer
	}

	var generic map[string]json.RawMessage
	if err := json.Unmarshal(raw, &generic); err != nil {
		e.Message = http.StatusText(status)
		return e
	}

	for _, key := range []string{"detail", "error"} {
		if msg, ok := generic[key]; ok {
			var s string
			if json.Unmarshal(msg, &s) == nil {
				e.Message = s
				return e
			}
		}
	}

	// Field-level validation map.
	fields := make(map[string][]string, len(generic))
	for k, v := range generic {
		var list []string
		if json.Unmarshal(v, &list) == nil {
			fields[k] = list
			continue
		}
		var single string
		if json.Unmarshal(v, &single) == nil {
			fields[k] = []string{single}
		}
	}
	if len(fields) > 0 {
		e.Fields = fields
		return e
	}

	e.Message = http.StatusText(status)
	return e
}
