package mcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"agentmail/internal/agentmail"
	"agentmail/internal/config"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is set by build flags, defaults to "dev" for development builds.
var Version = "dev"

// Server wraps the MCP SDK server with the AgentMail tools registered.
type Server struct {
	mcpServer  *mcp.Server
	logger     *log.Logger
	clients    *agentmail.Accessor
	configPath string
}

// ServerOptions configures the MCP server.
type ServerOptions struct {
	// Clients hands out the API client used by every tool. Required.
	Clients *agentmail.Accessor
	// ConfigPath is watched while the server runs; a change drops the
	// memoized client so the next tool call picks up the new key.
	// Empty disables watching.
	ConfigPath string
	// Logger receives diagnostics (defaults to stderr).
	Logger *log.Logger
}

// NewServer creates the AgentMail MCP server and registers its tools.
func NewServer(opts *ServerOptions) (*Server, error) {
	if opts == nil || opts.Clients == nil {
		return nil, errors.New("mcp: no client accessor configured")
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "[agentmail-mcp] ", log.LstdFlags)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "agentmail",
		Version: Version,
	}, nil)

	s := &Server{
		mcpServer:  mcpServer,
		logger:     logger,
		clients:    opts.Clients,
		configPath: opts.ConfigPath,
	}
	registerTools(s)

	return s, nil
}

// Run serves MCP over STDIO until ctx is cancelled or the client hangs up.
func (s *Server) Run(ctx context.Context) error {
	return s.serve(ctx, &mcp.StdioTransport{})
}

func (s *Server) serve(ctx context.Context, transport mcp.Transport) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.configPath != "" {
		w, err := config.NewWatcher(s.configPath, s.logger)
		if err != nil {
			// Tools still work; key changes just need a restart.
			s.logger.Printf("warning: cannot watch config file: %v", err)
		} else {
			go func() {
				if err := w.Run(runCtx, s.reloadKey); err != nil {
					s.logger.Printf("warning: config watcher stopped: %v", err)
				}
			}()
		}
	}

	s.logger.Println("starting MCP server on STDIO transport")

	err := s.mcpServer.Run(runCtx, transport)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Printf("error: server stopped: %v", err)
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

// reloadKey drops the memoized client after a config change.
func (s *Server) reloadKey() {
	s.logger.Println("config file changed, API key will be re-read")
	s.clients.Reset()
}

// MCPServer returns the underlying MCP SDK server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcpServer
}

// Logger returns the server's logger.
func (s *Server) Logger() *log.Logger {
	return s.logger
}
