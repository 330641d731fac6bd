package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rryowa/bookstore/internal/models"
	"github.com/rryowa/bookstore/internal/util"
)

// RequestOptions are merged over the defaults built by the Client. Header
// values set here win over the defaults.
type RequestOptions struct {
	Method string
	Body   io.Reader
	Header http.Header
	Query  url.Values
}

// Body is a decoded 2xx answer. A nil *Body means the server sent nothing
// (204 or Content-Length: 0).
type Body struct {
	ContentType string
	// JSON is set when the server declared application/json.
	JSON json.RawMessage
	// Text is set for every other content type.
	Text string
}

func (b *Body) IsJSON() bool {
	return b != nil && b.JSON != nil
}

func (b *Body) Decode(v any) error {
	if !b.IsJSON() {
		ct := ""
		if b != nil {
			ct = b.ContentType
		}
		return fmt.Errorf("%w: %q", ErrUnexpectedContentType, ct)
	}
	if err := json.Unmarshal(b.JSON, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Request sends a JSON request to path under the API root.
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions) (*Body, error) {
	return c.do(ctx, path, opts, true)
}

// RequestMultipart is Request without a forced Content-Type, so the caller
// can send a multipart body with its own boundary.
func (c *Client) RequestMultipart(ctx context.Context, path string, opts RequestOptions) (*Body, error) {
	return c.do(ctx, path, opts, false)
}

func (c *Client) do(ctx context.Context, path string, opts RequestOptions, jsonContent bool) (*Body, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + path
	if len(opts.Query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + opts.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, opts.Body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header = c.defaultHeaders(method, jsonContent)
	for k, vs := range opts.Header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Errorw("API request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	return c.handleResponse(ctx, method, path, resp)
}

func (c *Client) defaultHeaders(method string, jsonContent bool) http.Header {
	h := make(http.Header)
	if jsonContent {
		h.Set("Content-Type", "application/json")
	}
	if token := c.AccessToken(); token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	if method != http.MethodGet {
		if csrf := c.CSRFToken(); csrf != "" {
			h.Set(models.HeaderCSRFToken, csrf)
		}
	}
	return h
}

func (c *Client) handleResponse(ctx context.Context, method, path string, resp *http.Response) (*Body, error) {
	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Infow("API rejected credentials, redirecting to login", "method", method, "path", path)
		if err := c.ClearCredentials(context.WithoutCancel(ctx)); err != nil {
			c.log.Warnw("failed to clear credentials", "error", err)
		}
		c.navigator.Navigate(c.loginPath)
		return nil, ErrAuthenticationRequired
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.log.Debugw("API error response", "method", method, "path", path, "status", resp.StatusCode)
		return nil, util.NewResponseError(resp.StatusCode, "HTTP error! status: %d", resp.StatusCode)
	}

	if resp.StatusCode == http.StatusNoContent || resp.ContentLength == 0 || resp.Header.Get("Content-Length") == "0" {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		if !json.Valid(data) {
			return nil, fmt.Errorf("decode response: invalid JSON from %s %s", method, path)
		}
		return &Body{ContentType: contentType, JSON: json.RawMessage(data)}, nil
	}
	return &Body{ContentType: contentType, Text: string(data)}, nil
}

// requestJSON encodes in (when not nil) as the JSON body and decodes the
// answer into out (when not nil and the server sent one).
func (c *Client) requestJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	b, err := c.Request(ctx, path, RequestOptions{Method: method, Body: body, Query: query})
	if err != nil {
		return err
	}
	if out == nil || b == nil {
		return nil
	}
	return b.Decode(out)
}
