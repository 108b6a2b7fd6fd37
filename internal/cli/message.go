package cli

import (
	"context"
	"fmt"
	"strings"

	"agentmail/internal/agentmail"
	"agentmail/internal/format"
	"agentmail/internal/render"
)

// MessageSendOptions configures message send. From and To are required;
// nil optional fields were not given and are left out of the request.
type MessageSendOptions struct {
	OutputOptions
	From    string
	To      string
	Subject *string
	Text    *string
	HTML    *string
	CC      *string // comma-separated
	BCC     *string // comma-separated
}

// SplitAddresses splits a comma-separated address list and trims each
// entry.
func SplitAddresses(list string) []string {
	parts := strings.Split(list, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func splitOptional(list *string) []string {
	if list == nil {
		return nil
	}
	return SplitAddresses(*list)
}

// MessageSend implements `agentmail message send`.
func MessageSend(ctx context.Context, env Env, opts MessageSendOptions) int {
	if opts.From == "" {
		fmt.Fprintln(env.Stderr, "error: required option '--from <inbox-id>' not specified")
		return 1
	}
	if opts.To == "" {
		fmt.Fprintln(env.Stderr, "error: required option '--to <email>' not specified")
		return 1
	}

	api, code := env.client()
	if api == nil {
		return code
	}

	res, err := api.SendMessage(ctx, opts.From, agentmail.SendMessageRequest{
		To:      SplitAddresses(opts.To),
		CC:      splitOptional(opts.CC),
		BCC:     splitOptional(opts.BCC),
		Subject: opts.Subject,
		Text:    opts.Text,
		HTML:    opts.HTML,
	})
	if err != nil {
		return reportError(env, err, opts.OutputOptions)
	}

	p := opts.printer(env.Stdout)
	if opts.JSON {
		_ = p.Print(res.Raw)
		return 0
	}

	_ = render.Success(env.Stdout, "Message sent successfully")
	_ = p.Linef("  Message ID: %s", res.MessageID)
	_ = p.Linef("  Thread ID: %s", res.ThreadID)
	return 0
}

// MessageList implements `agentmail message list <inbox-id>`.
func MessageList(ctx context.Context, args []string, env Env, opts ListOptions) int {
	if !requireArgs(env.Stderr, args, "inbox-id") {
		return 1
	}
	api, code := env.client()
	if api == nil {
		return code
	}

	list, err := api.ListMessages(ctx, args[0], opts.request())
	if err != nil {
		return reportError(env, err, opts.OutputOptions)
	}

	p := opts.printer(env.Stdout)
	if opts.JSON {
		_ = p.Print(list.Raw)
		return 0
	}

	if len(list.Messages) == 0 {
		_ = p.Line("No messages found.")
		return 0
	}

	_ = p.Linef("Found %d message(s):", list.Count)
	_ = p.Line("")
	for i := range list.Messages {
		if i > 0 {
			_ = p.Line("---")
		}
		_ = p.Print(format.Message(&list.Messages[i]))
	}
	printNextPage(p, list.NextPageToken)
	return 0
}

// MessageGet implements `agentmail message get <inbox-id> <message-id>`.
func MessageGet(ctx context.Context, args []string, env Env, opts OutputOptions) int {
	if !requireArgs(env.Stderr, args, "inbox-id", "message-id") {
		return 1
	}
	api, code := env.client()
	if api == nil {
		return code
	}

	msg, err := api.GetMessage(ctx, args[0], args[1])
	if err != nil {
		return reportError(env, err, opts)
	}

	p := opts.printer(env.Stdout)
	if opts.JSON {
		_ = p.Print(msg.Raw)
		return 0
	}
	_ = p.Print(format.MessageFull(msg))
	return 0
}

// MessageDelete implements `agentmail message delete <inbox-id> <message-id>`.
//
// The API only deletes whole threads, so the message is fetched first to
// learn its thread, and that thread is deleted. The thread ID is reported
// so the wider deletion is visible.
func MessageDelete(ctx context.Context, args []string, env Env, opts OutputOptions) int {
	if !requireArgs(env.Stderr, args, "inbox-id", "message-id") {
		return 1
	}
	api, code := env.client()
	if api == nil {
		return code
	}

	inboxID, messageID := args[0], args[1]
	threadID, err := agentmail.DeleteMessage(ctx, api, inboxID, messageID)
	if err != nil {
		return reportError(env, err, opts)
	}

	if opts.JSON {
		_ = opts.printer(env.Stdout).Print(render.NewMapping().
			Set("success", render.Bool(true)).
			Set("messageId", render.Text(messageID)).
			Set("threadId", render.Text(threadID)).
			Set("message", render.Text("Thread containing message deleted")))
		return 0
	}
	_ = render.Success(env.Stdout, fmt.Sprintf("Thread %s (containing message %s) deleted", threadID, messageID))
	return 0
}
