package cli

import (
	"fmt"
	"io"
)

// Version is set by build flags.
var Version = "1.0.0"

// PrintVersion implements `agentmail version`.
func PrintVersion(stdout io.Writer) int {
	fmt.Fprintf(stdout, "agentmail version %s\n", Version)
	return 0
}
