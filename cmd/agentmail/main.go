package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"agentmail/internal/agentmail"
	"agentmail/internal/cli"
	"agentmail/internal/config"
	"agentmail/internal/mcp"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

func main() {
	// Missing or unreadable .env files are not an error.
	if err := config.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	// env is filled in after the root flags are parsed and before any
	// command runs.
	var env cli.Env

	// Root flags, also settable as AGENTMAIL_BASE_URL / AGENTMAIL_DEBUG.
	rootFlagSet := flag.NewFlagSet("agentmail", flag.ContinueOnError)
	var (
		baseURL string
		debug   bool
	)
	rootFlagSet.StringVar(&baseURL, "base-url", "", "API base URL (default "+agentmail.DefaultBaseURL+")")
	rootFlagSet.BoolVar(&debug, "debug", false, "log HTTP requests to stderr")

	// config set-key
	setKeyFlagSet := flag.NewFlagSet("agentmail config set-key", flag.ContinueOnError)
	setKeyCmd := &ffcli.Command{
		Name:       "set-key",
		ShortUsage: "agentmail config set-key [<api-key>]",
		ShortHelp:  "Save your API key",
		LongHelp: `Save the API key to ~/.agentmail/config.json.

Without an argument the key is read from stdin when it is piped, or
prompted for otherwise.

Examples:
  agentmail config set-key am_xxxxxxxx
  echo "$KEY" | agentmail config set-key`,
		FlagSet: setKeyFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			return exitWith(cli.ConfigSetKey(ctx, args, env, cli.SetKeyOptions{}))
		},
	}

	// config show
	showFlagSet := flag.NewFlagSet("agentmail config show", flag.ContinueOnError)
	showJSON := showFlagSet.Bool("json", false, "output as JSON")
	showCmd := &ffcli.Command{
		Name:       "show",
		ShortUsage: "agentmail config show [--json]",
		ShortHelp:  "Show current configuration",
		FlagSet:    showFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			if _, err := parseInterspersed(showFlagSet, args); err != nil {
				return err
			}
			return exitWith(cli.ConfigShow(ctx, env, cli.OutputOptions{JSON: *showJSON}))
		},
	}

	configCmd := group("config", "Manage CLI configuration", setKeyCmd, showCmd)

	// inbox create
	createFlagSet := flag.NewFlagSet("agentmail inbox create", flag.ContinueOnError)
	var (
		createDomain      string
		createUsername    string
		createDisplayName string
	)
	createFlagSet.StringVar(&createDomain, "domain", "", "domain for the inbox")
	createFlagSet.StringVar(&createUsername, "username", "", "username (local part) for the inbox")
	createFlagSet.StringVar(&createDisplayName, "display-name", "", "display name for the inbox")
	createJSON := createFlagSet.Bool("json", false, "output as JSON")
	inboxCreateCmd := &ffcli.Command{
		Name:       "create",
		ShortUsage: "agentmail inbox create [--domain <d>] [--username <u>] [--display-name <n>] [--json]",
		ShortHelp:  "Create a new inbox",
		FlagSet:    createFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			if _, err := parseInterspersed(createFlagSet, args); err != nil {
				return err
			}
			set := given(createFlagSet)
			return exitWith(cli.InboxCreate(ctx, env, cli.InboxCreateOptions{
				OutputOptions: cli.OutputOptions{JSON: *createJSON},
				Domain:        optString(set, "domain", createDomain),
				Username:      optString(set, "username", createUsername),
				DisplayName:   optString(set, "display-name", createDisplayName),
			}))
		},
	}

	// inbox list
	inboxListFlagSet := flag.NewFlagSet("agentmail inbox list", flag.ContinueOnError)
	inboxListOpts := listFlags(inboxListFlagSet)
	inboxListCmd := &ffcli.Command{
		Name:       "list",
		ShortUsage: "agentmail inbox list [--limit <n>] [--page-token <t>] [--json]",
		ShortHelp:  "List inboxes",
		FlagSet:    inboxListFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			if _, err := parseInterspersed(inboxListFlagSet, args); err != nil {
				return err
			}
			return exitWith(cli.InboxList(ctx, env, inboxListOpts()))
		},
	}

	// inbox get
	inboxGetFlagSet := flag.NewFlagSet("agentmail inbox get", flag.ContinueOnError)
	inboxGetJSON := inboxGetFlagSet.Bool("json", false, "output as JSON")
	inboxGetCmd := &ffcli.Command{
		Name:       "get",
		ShortUsage: "agentmail inbox get <inbox-id> [--json]",
		ShortHelp:  "Get inbox details",
		FlagSet:    inboxGetFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			pos, err := parseInterspersed(inboxGetFlagSet, args)
			if err != nil {
				return err
			}
			return exitWith(cli.InboxGet(ctx, pos, env, cli.OutputOptions{JSON: *inboxGetJSON}))
		},
	}

	// inbox delete
	inboxDeleteFlagSet := flag.NewFlagSet("agentmail inbox delete", flag.ContinueOnError)
	inboxDeleteJSON := inboxDeleteFlagSet.Bool("json", false, "output as JSON")
	inboxDeleteCmd := &ffcli.Command{
		Name:       "delete",
		ShortUsage: "agentmail inbox delete <inbox-id> [--json]",
		ShortHelp:  "Delete an inbox",
		FlagSet:    inboxDeleteFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			pos, err := parseInterspersed(inboxDeleteFlagSet, args)
			if err != nil {
				return err
			}
			return exitWith(cli.InboxDelete(ctx, pos, env, cli.OutputOptions{JSON: *inboxDeleteJSON}))
		},
	}

	inboxCmd := group("inbox", "Manage inboxes", inboxCreateCmd, inboxListCmd, inboxGetCmd, inboxDeleteCmd)

	// message send
	sendFlagSet := flag.NewFlagSet("agentmail message send", flag.ContinueOnError)
	var (
		sendFrom    string
		sendTo      string
		sendSubject string
		sendText    string
		sendHTML    string
		sendCC      string
		sendBCC     string
	)
	sendFlagSet.StringVar(&sendFrom, "from", "", "inbox ID to send from (required)")
	sendFlagSet.StringVar(&sendTo, "to", "", "recipient email(s), comma-separated (required)")
	sendFlagSet.StringVar(&sendSubject, "subject", "", "email subject")
	sendFlagSet.StringVar(&sendText, "text", "", "plain text body")
	sendFlagSet.StringVar(&sendHTML, "html", "", "HTML body")
	sendFlagSet.StringVar(&sendCC, "cc", "", "CC recipients, comma-separated")
	sendFlagSet.StringVar(&sendBCC, "bcc", "", "BCC recipients, comma-separated")
	sendJSON := sendFlagSet.Bool("json", false, "output as JSON")
	messageSendCmd := &ffcli.Command{
		Name:       "send",
		ShortUsage: "agentmail message send --from <inbox-id> --to <email> [flags]",
		ShortHelp:  "Send an email",
		LongHelp: `Send an email from one of your inboxes.

Examples:
  agentmail message send --from me@agentmail.to --to you@example.com --subject Hi --text "Hello"
  agentmail message send --from me@agentmail.to --to "a@example.com, b@example.com" --html "<p>Hi</p>"`,
		FlagSet: sendFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			if _, err := parseInterspersed(sendFlagSet, args); err != nil {
				return err
			}
			set := given(sendFlagSet)
			return exitWith(cli.MessageSend(ctx, env, cli.MessageSendOptions{
				OutputOptions: cli.OutputOptions{JSON: *sendJSON},
				From:          sendFrom,
				To:            sendTo,
				Subject:       optString(set, "subject", sendSubject),
				Text:          optString(set, "text", sendText),
				HTML:          optString(set, "html", sendHTML),
				CC:            optString(set, "cc", sendCC),
				BCC:           optString(set, "bcc", sendBCC),
			}))
		},
	}

	// message list
	messageListFlagSet := flag.NewFlagSet("agentmail message list", flag.ContinueOnError)
	messageListOpts := listFlags(messageListFlagSet)
	messageListCmd := &ffcli.Command{
		Name:       "list",
		ShortUsage: "agentmail message list <inbox-id> [--limit <n>] [--page-token <t>] [--json]",
		ShortHelp:  "List messages in an inbox",
		FlagSet:    messageListFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			pos, err := parseInterspersed(messageListFlagSet, args)
			if err != nil {
				return err
			}
			return exitWith(cli.MessageList(ctx, pos, env, messageListOpts()))
		},
	}

	// message get
	messageGetFlagSet := flag.NewFlagSet("agentmail message get", flag.ContinueOnError)
	messageGetJSON := messageGetFlagSet.Bool("json", false, "output as JSON")
	messageGetCmd := &ffcli.Command{
		Name:       "get",
		ShortUsage: "agentmail message get <inbox-id> <message-id> [--json]",
		ShortHelp:  "Get a message",
		FlagSet:    messageGetFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			pos, err := parseInterspersed(messageGetFlagSet, args)
			if err != nil {
				return err
			}
			return exitWith(cli.MessageGet(ctx, pos, env, cli.OutputOptions{JSON: *messageGetJSON}))
		},
	}

	// message delete
	messageDeleteFlagSet := flag.NewFlagSet("agentmail message delete", flag.ContinueOnError)
	messageDeleteJSON := messageDeleteFlagSet.Bool("json", false, "output as JSON")
	messageDeleteCmd := &ffcli.Command{
		Name:       "delete",
		ShortUsage: "agentmail message delete <inbox-id> <message-id> [--json]",
		ShortHelp:  "Delete the thread containing a message",
		LongHelp: `Delete a message. The API deletes whole threads, so the thread that
contains the message is deleted and its ID is reported.`,
		FlagSet: messageDeleteFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			pos, err := parseInterspersed(messageDeleteFlagSet, args)
			if err != nil {
				return err
			}
			return exitWith(cli.MessageDelete(ctx, pos, env, cli.OutputOptions{JSON: *messageDeleteJSON}))
		},
	}

	messageCmd := group("message", "Send and manage messages",
		messageSendCmd, messageListCmd, messageGetCmd, messageDeleteCmd)

	// version
	versionCmd := &ffcli.Command{
		Name:       "version",
		ShortUsage: "agentmail version",
		ShortHelp:  "Print the version",
		FlagSet:    flag.NewFlagSet("agentmail version", flag.ContinueOnError),
		Exec: func(ctx context.Context, args []string) error {
			return exitWith(cli.PrintVersion(env.Stdout))
		},
	}

	// mcp
	mcpCmd := &ffcli.Command{
		Name:       "mcp",
		ShortUsage: "agentmail mcp",
		ShortHelp:  "Start MCP server (STDIO transport)",
		LongHelp: `Start the Model Context Protocol (MCP) server for AI agent integration.

Tools:
  create_inbox, list_inboxes, get_inbox, delete_inbox
  send_message, list_messages, get_message, delete_message

The server re-reads the API key when the config file changes.

Examples:
  agentmail mcp`,
		FlagSet: flag.NewFlagSet("agentmail mcp", flag.ContinueOnError),
		Exec: func(ctx context.Context, args []string) error {
			mcp.Version = cli.Version
			server, err := mcp.NewServer(&mcp.ServerOptions{
				Clients:    env.Clients,
				ConfigPath: env.Config.Path,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			if err := server.Run(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return nil
		},
	}

	rootHelp := `agentmail - command-line client for the AgentMail email API

Commands:
  config   Manage CLI configuration
  inbox    Manage inboxes
  message  Send and manage messages
  version  Print the version
  mcp      Start MCP server (STDIO transport)

Use "agentmail <command> --help" for more information about a command.`

	root := &ffcli.Command{
		ShortUsage:  "agentmail [--base-url <url>] [--debug] <command> [flags] [arguments]",
		ShortHelp:   "Command-line client for the AgentMail email API",
		LongHelp:    rootHelp,
		FlagSet:     rootFlagSet,
		Options:     []ff.Option{ff.WithEnvVarPrefix("AGENTMAIL")},
		Subcommands: []*ffcli.Command{configCmd, inboxCmd, messageCmd, versionCmd, mcpCmd},
		Exec: func(ctx context.Context, args []string) error {
			fmt.Fprintln(os.Stderr, rootHelp)
			os.Exit(1)
			return nil
		},
	}

	if err := root.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	path, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	store := config.NewStore(path)

	clientOpts := []agentmail.Option{agentmail.WithBaseURL(baseURL)}
	if debug {
		logger := log.New(os.Stderr, "[agentmail] ", log.LstdFlags)
		clientOpts = append(clientOpts, agentmail.WithHTTPClient(agentmail.NewDebugHTTPClient(logger)))
	}

	env = cli.Env{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  store,
		Clients: agentmail.NewAccessor(store, clientOpts...),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Run(ctx); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// group builds a namespace command that only holds subcommands.
func group(name, help string, subcommands ...*ffcli.Command) *ffcli.Command {
	cmd := &ffcli.Command{
		Name:        name,
		ShortUsage:  "agentmail " + name + " <subcommand> [flags] [arguments]",
		ShortHelp:   help,
		FlagSet:     flag.NewFlagSet("agentmail "+name, flag.ContinueOnError),
		Subcommands: subcommands,
	}
	cmd.Exec = func(ctx context.Context, args []string) error {
		fmt.Fprintln(os.Stderr, ffcli.DefaultUsageFunc(cmd))
		os.Exit(1)
		return nil
	}
	return cmd
}

// listFlags registers the paging flags on fs and returns a function that
// builds the options once fs has been parsed.
func listFlags(fs *flag.FlagSet) func() cli.ListOptions {
	var (
		limit     int
		pageToken string
	)
	fs.IntVar(&limit, "limit", 0, "maximum number of results")
	fs.StringVar(&pageToken, "page-token", "", "token of the page to fetch")
	asJSON := fs.Bool("json", false, "output as JSON")

	return func() cli.ListOptions {
		set := given(fs)
		return cli.ListOptions{
			OutputOptions: cli.OutputOptions{JSON: *asJSON},
			Limit:         optInt(set, "limit", limit),
			PageToken:     optString(set, "page-token", pageToken),
		}
	}
}
