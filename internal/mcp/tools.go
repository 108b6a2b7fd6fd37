package mcp

import (
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names as constants for consistent reference.
const (
	ToolCreateInbox   = "create_inbox"
	ToolListInboxes   = "list_inboxes"
	ToolGetInbox      = "get_inbox"
	ToolDeleteInbox   = "delete_inbox"
	ToolSendMessage   = "send_message"
	ToolListMessages  = "list_messages"
	ToolGetMessage    = "get_message"
	ToolDeleteMessage = "delete_message"
)

// CreateInboxArgs is the input of create_inbox. Omitted fields are left
// out of the request.
type CreateInboxArgs struct {
	Username    *string `json:"username,omitempty"`
	Domain      *string `json:"domain,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
}

// ListArgs pages through list_inboxes and list_messages.
type ListArgs struct {
	InboxID   string  `json:"inbox_id,omitempty"`
	Limit     *int    `json:"limit,omitempty"`
	PageToken *string `json:"page_token,omitempty"`
}

// InboxArgs identifies an inbox.
type InboxArgs struct {
	InboxID string `json:"inbox_id"`
}

// MessageArgs identifies a message within an inbox.
type MessageArgs struct {
	InboxID   string `json:"inbox_id"`
	MessageID string `json:"message_id"`
}

// SendMessageArgs is the input of send_message.
type SendMessageArgs struct {
	InboxID string   `json:"inbox_id"`
	To      []string `json:"to"`
	CC      []string `json:"cc,omitempty"`
	BCC     []string `json:"bcc,omitempty"`
	Subject *string  `json:"subject,omitempty"`
	Text    *string  `json:"text,omitempty"`
	HTML    *string  `json:"html,omitempty"`
}

func createInboxSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"username": {"type": "string", "description": "Local part of the address (random if omitted)"},
			"domain": {"type": "string", "description": "Domain of the address (service default if omitted)"},
			"display_name": {"type": "string", "description": "Display name shown to recipients"}
		}
	}`)
}

func listInboxesSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"limit": {"type": "integer", "minimum": 1, "description": "Maximum number of inboxes to return"},
			"page_token": {"type": "string", "description": "Token of the page to fetch"}
		}
	}`)
}

func inboxSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"inbox_id": {"type": "string", "description": "Inbox ID (its email address)"}
		},
		"required": ["inbox_id"]
	}`)
}

func sendMessageSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"inbox_id": {"type": "string", "description": "Inbox to send from"},
			"to": {"type": "array", "items": {"type": "string"}, "minItems": 1, "description": "Recipient addresses"},
			"cc": {"type": "array", "items": {"type": "string"}},
			"bcc": {"type": "array", "items": {"type": "string"}},
			"subject": {"type": "string"},
			"text": {"type": "string", "description": "Plain text body"},
			"html": {"type": "string", "description": "HTML body"}
		},
		"required": ["inbox_id", "to"]
	}`)
}

func listMessagesSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"inbox_id": {"type": "string", "description": "Inbox ID (its email address)"},
			"limit": {"type": "integer", "minimum": 1, "description": "Maximum number of messages to return"},
			"page_token": {"type": "string", "description": "Token of the page to fetch"}
		},
		"required": ["inbox_id"]
	}`)
}

func messageSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"inbox_id": {"type": "string", "description": "Inbox ID (its email address)"},
			"message_id": {"type": "string", "description": "Message ID"}
		},
		"required": ["inbox_id", "message_id"]
	}`)
}

// registerTools registers all AgentMail tools with the MCP server.
func registerTools(s *Server) {
	h := &handlers{clients: s.clients, logger: s.logger}
	srv := s.MCPServer()

	srv.AddTool(&mcp.Tool{
		Name:        ToolCreateInbox,
		Description: "Create a new email inbox",
		InputSchema: createInboxSchema(),
	}, h.createInbox)

	srv.AddTool(&mcp.Tool{
		Name:        ToolListInboxes,
		Description: "List inboxes, one page at a time",
		InputSchema: listInboxesSchema(),
	}, h.listInboxes)

	srv.AddTool(&mcp.Tool{
		Name:        ToolGetInbox,
		Description: "Get the details of an inbox",
		InputSchema: inboxSchema(),
	}, h.getInbox)

	srv.AddTool(&mcp.Tool{
		Name:        ToolDeleteInbox,
		Description: "Delete an inbox and everything in it",
		InputSchema: inboxSchema(),
	}, h.deleteInbox)

	srv.AddTool(&mcp.Tool{
		Name:        ToolSendMessage,
		Description: "Send an email from an inbox",
		InputSchema: sendMessageSchema(),
	}, h.sendMessage)

	srv.AddTool(&mcp.Tool{
		Name:        ToolListMessages,
		Description: "List the messages of an inbox, one page at a time",
		InputSchema: listMessagesSchema(),
	}, h.listMessages)

	srv.AddTool(&mcp.Tool{
		Name:        ToolGetMessage,
		Description: "Get a message including its body",
		InputSchema: messageSchema(),
	}, h.getMessage)

	srv.AddTool(&mcp.Tool{
		Name:        ToolDeleteMessage,
		Description: "Delete the thread that contains a message",
		InputSchema: messageSchema(),
	}, h.deleteMessage)
}
