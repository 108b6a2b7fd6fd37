package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"agentmail/internal/agentmail"
	"agentmail/internal/config"
	"agentmail/internal/render"
)

// fakeAPI records calls and returns canned results. errs maps a method
// name to the error it should return.
type fakeAPI struct {
	calls []string

	createReq *agentmail.CreateInboxRequest
	sendReq   *agentmail.SendMessageRequest
	listOpts  *agentmail.ListOptions

	inbox      *agentmail.Inbox
	inboxes    *agentmail.InboxList
	messages   *agentmail.MessageList
	message    *agentmail.Message
	sendResult *agentmail.SendResult

	errs map[string]error
}

func (f *fakeAPI) record(method string, args ...string) error {
	f.calls = append(f.calls, fmt.Sprintf("%s(%s)", method, strings.Join(args, ",")))
	return f.errs[method]
}

func (f *fakeAPI) CreateInbox(_ context.Context, req agentmail.CreateInboxRequest) (*agentmail.Inbox, error) {
	f.createReq = &req
	if err := f.record("CreateInbox"); err != nil {
		return nil, err
	}
	return f.inbox, nil
}

func (f *fakeAPI) ListInboxes(_ context.Context, opts agentmail.ListOptions) (*agentmail.InboxList, error) {
	f.listOpts = &opts
	if err := f.record("ListInboxes"); err != nil {
		return nil, err
	}
	return f.inboxes, nil
}

func (f *fakeAPI) GetInbox(_ context.Context, inboxID string) (*agentmail.Inbox, error) {
	if err := f.record("GetInbox", inboxID); err != nil {
		return nil, err
	}
	return f.inbox, nil
}

func (f *fakeAPI) DeleteInbox(_ context.Context, inboxID string) error {
	return f.record("DeleteInbox", inboxID)
}

func (f *fakeAPI) SendMessage(_ context.Context, inboxID string, req agentmail.SendMessageRequest) (*agentmail.SendResult, error) {
	f.sendReq = &req
	if err := f.record("SendMessage", inboxID); err != nil {
		return nil, err
	}
	return f.sendResult, nil
}

func (f *fakeAPI) ListMessages(_ context.Context, inboxID string, opts agentmail.ListOptions) (*agentmail.MessageList, error) {
	f.listOpts = &opts
	if err := f.record("ListMessages", inboxID); err != nil {
		return nil, err
	}
	return f.messages, nil
}

func (f *fakeAPI) GetMessage(_ context.Context, inboxID, messageID string) (*agentmail.Message, error) {
	if err := f.record("GetMessage", inboxID, messageID); err != nil {
		return nil, err
	}
	return f.message, nil
}

func (f *fakeAPI) DeleteThread(_ context.Context, inboxID, threadID string) error {
	return f.record("DeleteThread", inboxID, threadID)
}

type testEnv struct {
	Env
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	env    map[string]string
}

// newTestEnv returns an Env writing to buffers, with a config store in a
// temp dir and api as the client.
func newTestEnv(t *testing.T, api agentmail.API) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		env:    map[string]string{},
	}
	store := &config.Store{
		Path:   filepath.Join(t.TempDir(), config.RootDir, config.FileName),
		Getenv: func(key string) string { return te.env[key] },
	}
	te.Env = Env{
		Stdin:   strings.NewReader(""),
		Stdout:  te.stdout,
		Stderr:  te.stderr,
		Config:  store,
		Clients: agentmail.StaticAccessor(api),
	}
	return te
}

// rawValue decodes a JSON literal for use as a Raw field.
func rawValue(t *testing.T, js string) render.Value {
	t.Helper()
	v, err := render.Decode([]byte(js))
	require.NoError(t, err)
	return v
}
