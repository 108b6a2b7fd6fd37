package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"agentmail/internal/config"
	"agentmail/internal/render"
)

// SetKeyOptions configures the config set-key command.
// The function fields exist so tests can replace terminal interaction.
type SetKeyOptions struct {
	StdinIsPipe func() bool            // Defaults to IsStdinPipe
	Prompt      func() (string, error) // Defaults to PromptAPIKey
}

// ConfigSetKey implements `agentmail config set-key [<api-key>]`.
//
// Without an argument the key is read from piped stdin, or prompted for
// when stdin is a terminal.
func ConfigSetKey(ctx context.Context, args []string, env Env, opts SetKeyOptions) int {
	key, err := resolveKeyInput(args, env.Stdin, opts)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: failed to read API key: %v\n", err)
		return 1
	}
	if key == "" {
		fmt.Fprintln(env.Stderr, "error: no API key provided")
		fmt.Fprintln(env.Stderr, "usage: agentmail config set-key <api-key>")
		return 1
	}

	if err := env.Config.SetAPIKey(key); err != nil {
		_ = render.Failure(env.Stderr, fmt.Sprintf("failed to save config: %v", err))
		return 1
	}

	_ = render.Success(env.Stdout, "API key saved to "+env.Config.Path)
	return 0
}

func resolveKeyInput(args []string, stdin io.Reader, opts SetKeyOptions) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	isPipe := IsStdinPipe
	if opts.StdinIsPipe != nil {
		isPipe = opts.StdinIsPipe
	}
	if isPipe() && stdin != nil {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}

	prompt := PromptAPIKey
	if opts.Prompt != nil {
		prompt = opts.Prompt
	}
	return prompt()
}

// ConfigShow implements `agentmail config show [--json]`.
func ConfigShow(ctx context.Context, env Env, opts OutputOptions) int {
	store := env.Config
	activeKey := store.APIKey()

	var preview render.Value = render.Null{}
	if activeKey != "" {
		preview = render.Text(config.Preview(activeKey))
	}

	info := render.NewMapping().
		Set("configPath", render.Text(store.Path)).
		Set("apiKeySource", render.Text(store.Source())).
		Set("apiKeySet", render.Bool(activeKey != "")).
		Set("apiKeyPreview", preview)

	p := opts.printer(env.Stdout)
	if opts.JSON {
		_ = p.Print(info)
		return 0
	}

	_ = p.Line("AgentMail CLI Configuration")
	_ = p.Line("===========================")
	_ = p.Linef("Config file: %s", store.Path)
	_ = p.Linef("API key source: %s", store.Source())
	if activeKey != "" {
		_ = p.Linef("API key: %s", config.Preview(activeKey))
	} else {
		_ = p.Line("API key: (not configured)")
	}
	return 0
}
