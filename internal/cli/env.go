package cli

import (
	"errors"
	"fmt"
	"io"

	"agentmail/internal/agentmail"
	"agentmail/internal/config"
	"agentmail/internal/render"
)

// Env carries the dependencies shared by every command handler. main
// builds one Env per process.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Config  *config.Store
	Clients *agentmail.Accessor
}

// OutputOptions selects JSON output.
type OutputOptions struct {
	JSON bool
}

func (o OutputOptions) printer(w io.Writer) *render.Printer {
	return render.NewPrinter(w, render.ModeFor(o.JSON))
}

// client returns the API client. When no key is configured it prints
// the setup instructions and returns exit code 1.
func (e Env) client() (agentmail.API, int) {
	api, err := e.Clients.Client()
	if err == nil {
		return api, 0
	}
	if errors.Is(err, agentmail.ErrNoAPIKey) {
		fmt.Fprintln(e.Stderr, "Error: API key not set.")
		fmt.Fprintf(e.Stderr, "Set it via environment variable %s or run:\n", config.EnvAPIKey)
		fmt.Fprintln(e.Stderr, "  agentmail config set-key <api-key>")
		return nil, 1
	}
	fmt.Fprintf(e.Stderr, "error: %v\n", err)
	return nil, 1
}

// requireArgs checks that the positional arguments named in names are
// present.
func requireArgs(stderr io.Writer, args []string, names ...string) bool {
	if len(args) >= len(names) {
		return true
	}
	fmt.Fprintf(stderr, "error: missing required argument '%s'\n", names[len(args)])
	return false
}
