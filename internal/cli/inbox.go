package cli

import (
	"context"

	"agentmail/internal/agentmail"
	"agentmail/internal/format"
	"agentmail/internal/render"
)

// InboxCreateOptions configures inbox create. Nil fields were not given
// on the command line and are left out of the request.
type InboxCreateOptions struct {
	OutputOptions
	Domain      *string
	Username    *string
	DisplayName *string
}

// ListOptions configures the list commands.
type ListOptions struct {
	OutputOptions
	Limit     *int
	PageToken *string
}

func (o ListOptions) request() agentmail.ListOptions {
	return agentmail.ListOptions{Limit: o.Limit, PageToken: o.PageToken}
}

// InboxCreate implements `agentmail inbox create`.
func InboxCreate(ctx context.Context, env Env, opts InboxCreateOptions) int {
	api, code := env.client()
	if api == nil {
		return code
	}

	inbox, err := api.CreateInbox(ctx, agentmail.CreateInboxRequest{
		Domain:      opts.Domain,
		Username:    opts.Username,
		DisplayName: opts.DisplayName,
	})
	if err != nil {
		return reportError(env, err, opts.OutputOptions)
	}

	p := opts.printer(env.Stdout)
	if opts.JSON {
		_ = p.Print(inbox.Raw)
		return 0
	}

	_ = render.Success(env.Stdout, "Inbox created successfully")
	_ = p.Line("")
	_ = p.Print(format.Inbox(inbox))
	return 0
}

// InboxList implements `agentmail inbox list`.
func InboxList(ctx context.Context, env Env, opts ListOptions) int {
	api, code := env.client()
	if api == nil {
		return code
	}

	list, err := api.ListInboxes(ctx, opts.request())
	if err != nil {
		return reportError(env, err, opts.OutputOptions)
	}

	p := opts.printer(env.Stdout)
	if opts.JSON {
		_ = p.Print(list.Raw)
		return 0
	}

	if len(list.Inboxes) == 0 {
		_ = p.Line("No inboxes found.")
		return 0
	}

	_ = p.Linef("Found %d inbox(es):", list.Count)
	_ = p.Line("")
	for i := range list.Inboxes {
		if i > 0 {
			_ = p.Line("---")
		}
		_ = p.Print(format.Inbox(&list.Inboxes[i]))
	}
	printNextPage(p, list.NextPageToken)
	return 0
}

// InboxGet implements `agentmail inbox get <inbox-id>`.
func InboxGet(ctx context.Context, args []string, env Env, opts OutputOptions) int {
	if !requireArgs(env.Stderr, args, "inbox-id") {
		return 1
	}
	api, code := env.client()
	if api == nil {
		return code
	}

	inbox, err := api.GetInbox(ctx, args[0])
	if err != nil {
		return reportError(env, err, opts)
	}

	p := opts.printer(env.Stdout)
	if opts.JSON {
		_ = p.Print(inbox.Raw)
		return 0
	}
	_ = p.Print(format.Inbox(inbox))
	return 0
}

// InboxDelete implements `agentmail inbox delete <inbox-id>`.
func InboxDelete(ctx context.Context, args []string, env Env, opts OutputOptions) int {
	if !requireArgs(env.Stderr, args, "inbox-id") {
		return 1
	}
	api, code := env.client()
	if api == nil {
		return code
	}

	inboxID := args[0]
	if err := api.DeleteInbox(ctx, inboxID); err != nil {
		return reportError(env, err, opts)
	}

	if opts.JSON {
		_ = opts.printer(env.Stdout).Print(render.NewMapping().
			Set("success", render.Bool(true)).
			Set("inboxId", render.Text(inboxID)).
			Set("message", render.Text("Inbox deleted")))
		return 0
	}
	_ = render.Success(env.Stdout, "Inbox "+inboxID+" deleted")
	return 0
}

// printNextPage tells the user how to fetch the following page.
func printNextPage(p *render.Printer, token *string) {
	if token == nil || *token == "" {
		return
	}
	_ = p.Line("")
	_ = p.Linef("More results available: --page-token %s", *token)
}
