package main

import (
	"flag"
	"os"
)

// parseInterspersed parses fs from args while allowing flags after
// positional arguments, as in `agentmail inbox get <id> --json`. It
// returns the positional arguments in order. Everything after "--" is
// positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for len(args) > 0 {
		before := len(args)
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			break
		}
		// flag.Parse consumed a "--" terminator.
		if consumed := before - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
	return positional, nil
}

// given reports the flags that were set on the command line.
func given(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// optString returns &value when the flag was given, nil otherwise, so
// that an explicitly empty value still reaches the request.
func optString(set map[string]bool, name, value string) *string {
	if !set[name] {
		return nil
	}
	return &value
}

func optInt(set map[string]bool, name string, value int) *int {
	if !set[name] {
		return nil
	}
	return &value
}

// exitWith terminates the process for non-zero handler exit codes.
func exitWith(code int) error {
	if code != 0 {
		os.Exit(code)
	}
	return nil
}
