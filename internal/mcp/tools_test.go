package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentmail/internal/agentmail"
	"agentmail/internal/render"
)

// testImpl is a test implementation for the MCP client.
var testImpl = &mcp.Implementation{Name: "agentmail-test", Version: "test"}

// fakeAPI records calls and returns canned results.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	createReq *agentmail.CreateInboxRequest
	sendReq   *agentmail.SendMessageRequest
	listOpts  *agentmail.ListOptions

	errs map[string]error
}

func (f *fakeAPI) record(method string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("%s(%s)", method, strings.Join(args, ",")))
	return f.errs[method]
}

func (f *fakeAPI) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func raw(js string) render.Value {
	v, err := render.Decode([]byte(js))
	if err != nil {
		panic(err)
	}
	return v
}

func (f *fakeAPI) CreateInbox(_ context.Context, req agentmail.CreateInboxRequest) (*agentmail.Inbox, error) {
	f.createReq = &req
	if err := f.record("CreateInbox"); err != nil {
		return nil, err
	}
	return &agentmail.Inbox{InboxID: "new@x.com", Raw: raw(`{"inboxId":"new@x.com"}`)}, nil
}

func (f *fakeAPI) ListInboxes(_ context.Context, opts agentmail.ListOptions) (*agentmail.InboxList, error) {
	f.listOpts = &opts
	if err := f.record("ListInboxes"); err != nil {
		return nil, err
	}
	return &agentmail.InboxList{Raw: raw(`{"count":0,"inboxes":[]}`)}, nil
}

func (f *fakeAPI) GetInbox(_ context.Context, inboxID string) (*agentmail.Inbox, error) {
	if err := f.record("GetInbox", inboxID); err != nil {
		return nil, err
	}
	return &agentmail.Inbox{InboxID: inboxID, Raw: raw(`{"inboxId":"` + inboxID + `"}`)}, nil
}

func (f *fakeAPI) DeleteInbox(_ context.Context, inboxID string) error {
	return f.record("DeleteInbox", inboxID)
}

func (f *fakeAPI) SendMessage(_ context.Context, inboxID string, req agentmail.SendMessageRequest) (*agentmail.SendResult, error) {
	f.sendReq = &req
	if err := f.record("SendMessage", inboxID); err != nil {
		return nil, err
	}
	return &agentmail.SendResult{MessageID: "m1", ThreadID: "t1", Raw: raw(`{"messageId":"m1","threadId":"t1"}`)}, nil
}

func (f *fakeAPI) ListMessages(_ context.Context, inboxID string, opts agentmail.ListOptions) (*agentmail.MessageList, error) {
	f.listOpts = &opts
	if err := f.record("ListMessages", inboxID); err != nil {
		return nil, err
	}
	return &agentmail.MessageList{Raw: raw(`{"count":0,"messages":[]}`)}, nil
}

func (f *fakeAPI) GetMessage(_ context.Context, inboxID, messageID string) (*agentmail.Message, error) {
	if err := f.record("GetMessage", inboxID, messageID); err != nil {
		return nil, err
	}
	return &agentmail.Message{
		MessageID: messageID,
		ThreadID:  "t-" + messageID,
		Raw:       raw(`{"messageId":"` + messageID + `","html":"<p>hi</p>"}`),
	}, nil
}

func (f *fakeAPI) DeleteThread(_ context.Context, inboxID, threadID string) error {
	return f.record("DeleteThread", inboxID, threadID)
}

// setupTestServer creates a connected server and client for testing tools.
func setupTestServer(t *testing.T, clients *agentmail.Accessor) *mcp.ClientSession {
	t.Helper()

	server, err := NewServer(&ServerOptions{
		Clients: clients,
		Logger:  log.New(io.Discard, "", 0),
	})
	require.NoError(t, err)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx := context.Background()
	_, err = server.MCPServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(testImpl, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

// callTool invokes a tool and returns its single text content.
func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T, want *mcp.TextContent", result.Content[0])
	return text.Text, result.IsError
}

func TestRegisterTools_AllToolsExposed(t *testing.T) {
	session := setupTestServer(t, agentmail.StaticAccessor(&fakeAPI{}))

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %s has no description", tool.Name)
	}
	assert.ElementsMatch(t, []string{
		ToolCreateInbox, ToolListInboxes, ToolGetInbox, ToolDeleteInbox,
		ToolSendMessage, ToolListMessages, ToolGetMessage, ToolDeleteMessage,
	}, names)
}

func TestCreateInboxTool(t *testing.T) {
	api := &fakeAPI{}
	session := setupTestServer(t, agentmail.StaticAccessor(api))

	text, isErr := callTool(t, session, ToolCreateInbox, map[string]any{"display_name": "Support"})

	require.False(t, isErr, text)
	assert.JSONEq(t, `{"inboxId":"new@x.com"}`, text)
	require.NotNil(t, api.createReq)
	assert.Equal(t, "Support", *api.createReq.DisplayName)
	assert.Nil(t, api.createReq.Username)
	assert.Nil(t, api.createReq.Domain)
}

func TestListTools_PassPaging(t *testing.T) {
	api := &fakeAPI{}
	session := setupTestServer(t, agentmail.StaticAccessor(api))

	text, isErr := callTool(t, session, ToolListMessages, map[string]any{
		"inbox_id":   "in@x.com",
		"limit":      5,
		"page_token": "next",
	})

	require.False(t, isErr, text)
	assert.JSONEq(t, `{"count":0,"messages":[]}`, text)
	require.NotNil(t, api.listOpts)
	assert.Equal(t, 5, *api.listOpts.Limit)
	assert.Equal(t, "next", *api.listOpts.PageToken)
	assert.Equal(t, []string{"ListMessages(in@x.com)"}, api.recorded())
}

func TestSendMessageTool(t *testing.T) {
	api := &fakeAPI{}
	session := setupTestServer(t, agentmail.StaticAccessor(api))

	text, isErr := callTool(t, session, ToolSendMessage, map[string]any{
		"inbox_id": "in@x.com",
		"to":       []string{"a@x.com", "b@x.com"},
		"subject":  "Hi",
	})

	require.False(t, isErr, text)
	assert.JSONEq(t, `{"messageId":"m1","threadId":"t1"}`, text)
	require.NotNil(t, api.sendReq)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, api.sendReq.To)
	assert.Nil(t, api.sendReq.CC)
	assert.Nil(t, api.sendReq.Text)
}

func TestGetMessageTool_KeepsHTMLUnescaped(t *testing.T) {
	session := setupTestServer(t, agentmail.StaticAccessor(&fakeAPI{}))

	text, isErr := callTool(t, session, ToolGetMessage, map[string]any{"inbox_id": "in@x.com", "message_id": "m1"})

	require.False(t, isErr, text)
	assert.Contains(t, text, `"html": "<p>hi</p>"`)
}

func TestDeleteMessageTool(t *testing.T) {
	api := &fakeAPI{}
	session := setupTestServer(t, agentmail.StaticAccessor(api))

	text, isErr := callTool(t, session, ToolDeleteMessage, map[string]any{"inbox_id": "in@x.com", "message_id": "m1"})

	require.False(t, isErr, text)
	assert.Equal(t, []string{"GetMessage(in@x.com,m1)", "DeleteThread(in@x.com,t-m1)"}, api.recorded())

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.Equal(t, "t-m1", out["threadId"])
	assert.Equal(t, true, out["success"])
}

func TestTools_Errors(t *testing.T) {
	tests := []struct {
		name     string
		api      *fakeAPI
		tool     string
		args     map[string]any
		wantText string
		calls    []string
	}{
		{
			name:     "missing inbox id",
			api:      &fakeAPI{},
			tool:     ToolGetInbox,
			args:     map[string]any{},
			wantText: "missing required argument: inbox_id",
		},
		{
			name:     "missing recipients",
			api:      &fakeAPI{},
			tool:     ToolSendMessage,
			args:     map[string]any{"inbox_id": "in@x.com"},
			wantText: "missing required argument: to",
		},
		{
			name: "remote error with detail",
			api: &fakeAPI{errs: map[string]error{"GetInbox": &agentmail.Error{
				StatusCode: 404,
				Body: render.NewMapping().
					Set("name", render.Text("NotFoundError")).
					Set("message", render.Text("Inbox not found")),
			}}},
			tool:     ToolGetInbox,
			args:     map[string]any{"inbox_id": "gone@x.com"},
			wantText: "NotFoundError (status code 404): Inbox not found",
			calls:    []string{"GetInbox(gone@x.com)"},
		},
		{
			name:     "failed lookup skips thread delete",
			api:      &fakeAPI{errs: map[string]error{"GetMessage": &agentmail.Error{StatusCode: 404}}},
			tool:     ToolDeleteMessage,
			args:     map[string]any{"inbox_id": "in@x.com", "message_id": "m1"},
			wantText: "Not Found (status code 404)",
			calls:    []string{"GetMessage(in@x.com,m1)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := setupTestServer(t, agentmail.StaticAccessor(tt.api))

			text, isErr := callTool(t, session, tt.tool, tt.args)

			assert.True(t, isErr)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.calls, tt.api.recorded())
		})
	}
}

type emptyKeys struct{}

func (emptyKeys) APIKey() string { return "" }

func TestTools_NoAPIKey(t *testing.T) {
	clients := agentmail.NewAccessorFunc(emptyKeys{}, func(string) agentmail.API {
		t.Error("client must not be built without a key")
		return nil
	})
	session := setupTestServer(t, clients)

	text, isErr := callTool(t, session, ToolListInboxes, nil)

	assert.True(t, isErr)
	assert.Contains(t, text, "API key not set")
}
