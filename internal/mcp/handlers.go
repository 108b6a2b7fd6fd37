package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"agentmail/internal/agentmail"
	"agentmail/internal/render"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// handlers implements the tools on top of the shared client accessor.
type handlers struct {
	clients *agentmail.Accessor
	logger  *log.Logger
}

// errorResult returns a tool result flagged as an error.
func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

// jsonResult encodes v as the tool's text content.
func jsonResult(v render.Value) *mcp.CallToolResult {
	b, err := render.MarshalIndent(v)
	if err != nil {
		return errorResult("failed to encode response: %v", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

// decodeArgs unmarshals the tool arguments into dst. Missing arguments
// leave dst untouched.
func decodeArgs(req *mcp.CallToolRequest, dst any) *mcp.CallToolResult {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Params.Arguments, dst); err != nil {
		return errorResult("failed to parse arguments: %v", err)
	}
	return nil
}

// remoteError turns a failed API call into an error result. The error
// body's message is appended when present.
func (h *handlers) remoteError(tool string, err error) *mcp.CallToolResult {
	h.logger.Printf("%s failed: %v", tool, err)

	var apiErr *agentmail.Error
	if errors.As(err, &apiErr) {
		if detail, ok := apiErr.Detail(); ok {
			return errorResult("%v: %s", err, detail)
		}
	}
	return errorResult("%v", err)
}

func (h *handlers) client() (agentmail.API, *mcp.CallToolResult) {
	api, err := h.clients.Client()
	if errors.Is(err, agentmail.ErrNoAPIKey) {
		return nil, errorResult("API key not set: set AGENTMAIL_API_KEY or run `agentmail config set-key <api-key>`")
	}
	if err != nil {
		return nil, errorResult("%v", err)
	}
	return api, nil
}

func requireField(name, value string) *mcp.CallToolResult {
	if value == "" {
		return errorResult("missing required argument: %s", name)
	}
	return nil
}

func (h *handlers) createInbox(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args CreateInboxArgs
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}
	api, res := h.client()
	if res != nil {
		return res, nil
	}

	inbox, err := api.CreateInbox(ctx, agentmail.CreateInboxRequest{
		Username:    args.Username,
		Domain:      args.Domain,
		DisplayName: args.DisplayName,
	})
	if err != nil {
		return h.remoteError(ToolCreateInbox, err), nil
	}
	return jsonResult(inbox.Raw), nil
}

func (h *handlers) listInboxes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args ListArgs
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}
	api, res := h.client()
	if res != nil {
		return res, nil
	}

	list, err := api.ListInboxes(ctx, agentmail.ListOptions{Limit: args.Limit, PageToken: args.PageToken})
	if err != nil {
		return h.remoteError(ToolListInboxes, err), nil
	}
	return jsonResult(list.Raw), nil
}

func (h *handlers) getInbox(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args InboxArgs
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}
	if res := requireField("inbox_id", args.InboxID); res != nil {
		return res, nil
	}
	api, res := h.client()
	if res != nil {
		return res, nil
	}

	inbox, err := api.GetInbox(ctx, args.InboxID)
	if err != nil {
		return h.remoteError(ToolGetInbox, err), nil
	}
	return jsonResult(inbox.Raw), nil
}

func (h *handlers) deleteInbox(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args InboxArgs
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}
	if res := requireField("inbox_id", args.InboxID); res != nil {
		return res, nil
	}
	api, res := h.client()
	if res != nil {
		return res, nil
	}

	if err := api.DeleteInbox(ctx, args.InboxID); err != nil {
		return h.remoteError(ToolDeleteInbox, err), nil
	}
	return jsonResult(render.NewMapping().
		Set("success", render.Bool(true)).
		Set("inboxId", render.Text(args.InboxID)).
		Set("message", render.Text("Inbox deleted"))), nil
}

func (h *handlers) sendMessage(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args SendMessageArgs
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}
	if res := requireField("inbox_id", args.InboxID); res != nil {
		return res, nil
	}
	if len(args.To) == 0 {
		return errorResult("missing required argument: to"), nil
	}
	api, res := h.client()
	if res != nil {
		return res, nil
	}

	sent, err := api.SendMessage(ctx, args.InboxID, agentmail.SendMessageRequest{
		To:      args.To,
		CC:      args.CC,
		BCC:     args.BCC,
		Subject: args.Subject,
		Text:    args.Text,
		HTML:    args.HTML,
	})
	if err != nil {
		return h.remoteError(ToolSendMessage, err), nil
	}
	return jsonResult(sent.Raw), nil
}

func (h *handlers) listMessages(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args ListArgs
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}
	if res := requireField("inbox_id", args.InboxID); res != nil {
		return res, nil
	}
	api, res := h.client()
	if res != nil {
		return res, nil
	}

	list, err := api.ListMessages(ctx, args.InboxID, agentmail.ListOptions{Limit: args.Limit, PageToken: args.PageToken})
	if err != nil {
		return h.remoteError(ToolListMessages, err), nil
	}
	return jsonResult(list.Raw), nil
}

func (h *handlers) getMessage(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args MessageArgs
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}
	if res := requireField("inbox_id", args.InboxID); res != nil {
		return res, nil
	}
	if res := requireField("message_id", args.MessageID); res != nil {
		return res, nil
	}
	api, res := h.client()
	if res != nil {
		return res, nil
	}

	msg, err := api.GetMessage(ctx, args.InboxID, args.MessageID)
	if err != nil {
		return h.remoteError(ToolGetMessage, err), nil
	}
	return jsonResult(msg.Raw), nil
}

func (h *handlers) deleteMessage(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args MessageArgs
	if res := decodeArgs(req, &args); res != nil {
		return res, nil
	}
	if res := requireField("inbox_id", args.InboxID); res != nil {
		return res, nil
	}
	if res := requireField("message_id", args.MessageID); res != nil {
		return res, nil
	}
	api, res := h.client()
	if res != nil {
		return res, nil
	}

	threadID, err := agentmail.DeleteMessage(ctx, api, args.InboxID, args.MessageID)
	if err != nil {
		return h.remoteError(ToolDeleteMessage, err), nil
	}
	return jsonResult(render.NewMapping().
		Set("success", render.Bool(true)).
		Set("messageId", render.Text(args.MessageID)).
		Set("threadId", render.Text(threadID)).
		Set("message", render.Text("Thread containing message deleted"))), nil
}
