// Package agentmail is a small client for the AgentMail REST API.
//
// Every call returns the typed record together with the raw response
// (Raw field) so callers can print either a formatted view or the exact
// result. Non-2xx responses are returned as *Error.
package agentmail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"agentmail/internal/render"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.agentmail.to/v0"

// API is the set of remote operations the CLI uses.
type API interface {
	CreateInbox(ctx context.Context, req CreateInboxRequest) (*Inbox, error)
	ListInboxes(ctx context.Context, opts ListOptions) (*InboxList, error)
	GetInbox(ctx context.Context, inboxID string) (*Inbox, error)
	DeleteInbox(ctx context.Context, inboxID string) error

	SendMessage(ctx context.Context, inboxID string, req SendMessageRequest) (*SendResult, error)
	ListMessages(ctx context.Context, inboxID string, opts ListOptions) (*MessageList, error)
	GetMessage(ctx context.Context, inboxID, messageID string) (*Message, error)

	DeleteThread(ctx context.Context, inboxID, threadID string) error
}

// Client talks to the API over HTTP. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient returns a Client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateInbox creates an inbox. Unset request fields are left to the
// server's defaults.
func (c *Client) CreateInbox(ctx context.Context, req CreateInboxRequest) (*Inbox, error) {
	var inbox Inbox
	raw, err := c.do(ctx, http.MethodPost, "/inboxes", nil, req, &inbox)
	if err != nil {
		return nil, err
	}
	inbox.Raw = raw
	return &inbox, nil
}

// ListInboxes returns one page of inboxes.
func (c *Client) ListInboxes(ctx context.Context, opts ListOptions) (*InboxList, error) {
	var list InboxList
	raw, err := c.do(ctx, http.MethodGet, "/inboxes", opts.query(), nil, &list)
	if err != nil {
		return nil, err
	}
	list.Raw = raw
	return &list, nil
}

// GetInbox fetches a single inbox.
func (c *Client) GetInbox(ctx context.Context, inboxID string) (*Inbox, error) {
	var inbox Inbox
	raw, err := c.do(ctx, http.MethodGet, "/inboxes/"+url.PathEscape(inboxID), nil, nil, &inbox)
	if err != nil {
		return nil, err
	}
	inbox.Raw = raw
	return &inbox, nil
}

// DeleteInbox deletes an inbox and everything in it.
func (c *Client) DeleteInbox(ctx context.Context, inboxID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/inboxes/"+url.PathEscape(inboxID), nil, nil, nil)
	return err
}

// SendMessage sends a new message from inboxID.
func (c *Client) SendMessage(ctx context.Context, inboxID string, req SendMessageRequest) (*SendResult, error) {
	var res SendResult
	raw, err := c.do(ctx, http.MethodPost, "/inboxes/"+url.PathEscape(inboxID)+"/messages/send", nil, req, &res)
	if err != nil {
		return nil, err
	}
	res.Raw = raw
	return &res, nil
}

// ListMessages returns one page of messages in inboxID.
func (c *Client) ListMessages(ctx context.Context, inboxID string, opts ListOptions) (*MessageList, error) {
	var list MessageList
	raw, err := c.do(ctx, http.MethodGet, "/inboxes/"+url.PathEscape(inboxID)+"/messages", opts.query(), nil, &list)
	if err != nil {
		return nil, err
	}
	list.Raw = raw
	return &list, nil
}

// GetMessage fetches a message including its body.
func (c *Client) GetMessage(ctx context.Context, inboxID, messageID string) (*Message, error) {
	var msg Message
	path := "/inboxes/" + url.PathEscape(inboxID) + "/messages/" + url.PathEscape(messageID)
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil, &msg)
	if err != nil {
		return nil, err
	}
	msg.Raw = raw
	return &msg, nil
}

// DeleteThread deletes a thread and all of its messages.
func (c *Client) DeleteThread(ctx context.Context, inboxID, threadID string) error {
	path := "/inboxes/" + url.PathEscape(inboxID) + "/threads/" + url.PathEscape(threadID)
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Limit != nil {
		q.Set("limit", strconv.Itoa(*o.Limit))
	}
	if o.PageToken != nil {
		q.Set("page_token", *o.PageToken)
	}
	return q
}

// do sends a request and decodes a successful response into out. It
// returns the response body as a camelCase render.Value.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (render.Value, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{StatusCode: resp.StatusCode, Body: errorBody(data)}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return render.Null{}, nil
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	raw, err := render.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return render.CamelKeys(raw), nil
}

// errorBody decodes an error response, falling back to plain text.
func errorBody(data []byte) render.Value {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	if v, err := render.Decode(trimmed); err == nil {
		return v
	}
	return render.Text(trimmed)
}
