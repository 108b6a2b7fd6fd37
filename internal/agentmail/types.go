package agentmail

import (
	"time"

	"agentmail/internal/render"
)

// Inbox is an email address managed by the service.
type Inbox struct {
	InboxID     string    `json:"inbox_id"`
	PodID       string    `json:"pod_id,omitempty"`
	DisplayName *string   `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Raw is the response exactly as received, with camelCase keys.
	Raw render.Value `json:"-"`
}

// InboxList is one page of inboxes.
type InboxList struct {
	Count         int     `json:"count"`
	Limit         *int    `json:"limit,omitempty"`
	NextPageToken *string `json:"next_page_token,omitempty"`
	Inboxes       []Inbox `json:"inboxes"`

	Raw render.Value `json:"-"`
}

// Message is a received or sent email. List endpoints return the
// summary fields only; GetMessage fills in the body and size.
type Message struct {
	MessageID string    `json:"message_id"`
	InboxID   string    `json:"inbox_id"`
	ThreadID  string    `json:"thread_id"`
	From      string    `json:"from"`
	To        []string  `json:"to"`
	CC        []string  `json:"cc,omitempty"`
	BCC       []string  `json:"bcc,omitempty"`
	Subject   *string   `json:"subject,omitempty"`
	Preview   *string   `json:"preview,omitempty"`
	Text      *string   `json:"text,omitempty"`
	HTML      *string   `json:"html,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Labels    []string  `json:"labels"`
	Size      int64     `json:"size"`

	Raw render.Value `json:"-"`
}

// MessageList is one page of messages.
type MessageList struct {
	Count         int       `json:"count"`
	Limit         *int      `json:"limit,omitempty"`
	NextPageToken *string   `json:"next_page_token,omitempty"`
	Messages      []Message `json:"messages"`

	Raw render.Value `json:"-"`
}

// SendResult identifies a message that was just sent.
type SendResult struct {
	MessageID string `json:"message_id"`
	ThreadID  string `json:"thread_id"`

	Raw render.Value `json:"-"`
}

// CreateInboxRequest holds the optional inbox attributes. Nil fields are
// left out of the request body.
type CreateInboxRequest struct {
	Username    *string `json:"username,omitempty"`
	Domain      *string `json:"domain,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
}

// SendMessageRequest is the body of a send call. Nil fields and nil
// recipient lists are left out of the request body.
type SendMessageRequest struct {
	To      []string `json:"to"`
	CC      []string `json:"cc,omitempty"`
	BCC     []string `json:"bcc,omitempty"`
	Subject *string  `json:"subject,omitempty"`
	Text    *string  `json:"text,omitempty"`
	HTML    *string  `json:"html,omitempty"`
}

// ListOptions pages through list endpoints.
type ListOptions struct {
	Limit     *int
	PageToken *string
}
