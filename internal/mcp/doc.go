// Package mcp provides an MCP (Model Context Protocol) server for AgentMail,
// letting AI agents manage inboxes and messages over STDIO transport.
//
// The server exposes one tool per CLI operation:
//
//   - create_inbox, list_inboxes, get_inbox, delete_inbox
//   - send_message, list_messages, get_message, delete_message
//
// Every tool returns the API response as JSON text. Remote failures are
// reported as error results rather than protocol errors.
//
// While running, the server watches the config file and re-reads the API
// key after it changes.
//
// Usage:
//
//	agentmail mcp
package mcp
