package cli

import (
	"os"
	"strings"

	"github.com/charmbracelet/huh"
)

// IsStdinPipe returns true if stdin is a pipe or redirect (not a terminal).
// config set-key uses it to read the key from piped input instead of
// prompting.
func IsStdinPipe() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// PromptAPIKey asks for the API key on the terminal without echoing it.
func PromptAPIKey() (string, error) {
	var key string
	err := huh.NewInput().
		Title("AgentMail API key").
		Description("Find it in the AgentMail console.").
		EchoMode(huh.EchoModePassword).
		Value(&key).
		Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}
