package cli

import (
	"errors"
	"fmt"

	"agentmail/internal/agentmail"
	"agentmail/internal/render"
)

// reportError prints a failed remote call and returns exit code 1.
//
// JSON mode writes {"success": false, "error": ..., "statusCode"?,
// "details"?} to stdout. Human mode writes a marked line to stderr and,
// when the error body has a message, an indented details line.
func reportError(env Env, err error, opts OutputOptions) int {
	var apiErr *agentmail.Error
	isAPIErr := errors.As(err, &apiErr)

	if opts.JSON {
		out := render.NewMapping().
			Set("success", render.Bool(false)).
			Set("error", render.Text(err.Error()))
		if isAPIErr {
			out.Set("statusCode", render.Int(int64(apiErr.StatusCode)))
			if apiErr.Body != nil {
				out.Set("details", apiErr.Body)
			}
		}
		_ = render.NewPrinter(env.Stdout, render.ModeJSON).Print(out)
		return 1
	}

	_ = render.Failure(env.Stderr, err.Error())
	if isAPIErr {
		if detail, ok := apiErr.Detail(); ok {
			fmt.Fprintf(env.Stderr, "  Details: %s\n", detail)
		}
	}
	return 1
}
