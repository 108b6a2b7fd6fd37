package agentmail

import "context"

// DeleteMessage removes a message by deleting the thread that contains
// it; the API has no narrower delete. The message is fetched first to
// learn its thread, and the delete is only issued once that succeeded.
// It returns the deleted thread's ID.
func DeleteMessage(ctx context.Context, api API, inboxID, messageID string) (string, error) {
	msg, err := api.GetMessage(ctx, inboxID, messageID)
	if err != nil {
		return "", err
	}
	if err := api.DeleteThread(ctx, inboxID, msg.ThreadID); err != nil {
		return "", err
	}
	return msg.ThreadID, nil
}
