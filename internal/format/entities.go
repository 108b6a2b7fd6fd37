// Package format maps API records to the labelled views printed in
// human mode.
package format

import (
	"fmt"
	"strings"

	"agentmail/internal/agentmail"
	"agentmail/internal/render"
)

// PreviewLimit is the number of characters of a message preview shown in
// list output.
const PreviewLimit = 100

const (
	notSet    = "(not set)"
	noSubject = "(no subject)"
	noLabels  = "(none)"
	noPreview = "(empty)"
)

// Inbox returns the labelled view of an inbox.
func Inbox(in *agentmail.Inbox) *render.Mapping {
	displayName := notSet
	if in.DisplayName != nil && *in.DisplayName != "" {
		displayName = *in.DisplayName
	}

	return render.NewMapping().
		Set("Inbox ID", render.Text(in.InboxID)).
		Set("Email", render.Text(in.InboxID)).
		Set("Display Name", render.Text(displayName)).
		Set("Created", render.Text(render.FormatTime(in.CreatedAt))).
		Set("Updated", render.Text(render.FormatTime(in.UpdatedAt)))
}

// Message returns the summary view used when listing messages.
func Message(msg *agentmail.Message) *render.Mapping {
	preview := noPreview
	if msg.Preview != nil && *msg.Preview != "" {
		preview = Truncate(*msg.Preview, PreviewLimit)
	}

	return render.NewMapping().
		Set("Message ID", render.Text(msg.MessageID)).
		Set("Thread ID", render.Text(msg.ThreadID)).
		Set("From", render.Text(msg.From)).
		Set("To", render.Text(strings.Join(msg.To, ", "))).
		Set("Subject", render.Text(subject(msg))).
		Set("Preview", render.Text(preview)).
		Set("Date", render.Text(render.FormatTime(msg.Timestamp))).
		Set("Labels", render.Text(labels(msg)))
}

// MessageFull returns the detailed view of a single message. CC and BCC
// appear only when non-empty; the body is the plain text part, else the
// HTML part, never both.
func MessageFull(msg *agentmail.Message) *render.Mapping {
	m := render.NewMapping().
		Set("Message ID", render.Text(msg.MessageID)).
		Set("Thread ID", render.Text(msg.ThreadID)).
		Set("From", render.Text(msg.From)).
		Set("To", render.Text(strings.Join(msg.To, ", ")))

	if len(msg.CC) > 0 {
		m.Set("CC", render.Text(strings.Join(msg.CC, ", ")))
	}
	if len(msg.BCC) > 0 {
		m.Set("BCC", render.Text(strings.Join(msg.BCC, ", ")))
	}

	m.Set("Subject", render.Text(subject(msg))).
		Set("Date", render.Text(render.FormatTime(msg.Timestamp))).
		Set("Labels", render.Text(labels(msg))).
		Set("Size", render.Text(fmt.Sprintf("%d bytes", msg.Size)))

	switch {
	case msg.Text != nil && *msg.Text != "":
		m.Set("Body", render.Text(*msg.Text))
	case msg.HTML != nil && *msg.HTML != "":
		m.Set("Body (HTML)", render.Text(*msg.HTML))
	}
	return m
}

// Truncate shortens s to limit characters, appending "..." only when
// something was cut.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func subject(msg *agentmail.Message) string {
	if msg.Subject == nil || *msg.Subject == "" {
		return noSubject
	}
	return *msg.Subject
}

func labels(msg *agentmail.Message) string {
	if len(msg.Labels) == 0 {
		return noLabels
	}
	return strings.Join(msg.Labels, ", ")
}
