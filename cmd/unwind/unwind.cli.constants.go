package main

// Command names
const (
	CmdNameDemo    = "demo"
	CmdNameVersion = "version"
	CmdNameHelp    = "help"
)

// Flag names
const (
	FlagIterations   = "n"
	FlagAt           = "at"
	FlagPayload      = "payload"
	FlagStatus       = "status"
	FlagHandlerRaise = "handler-raise"
	FlagConfig       = "c"
	FlagFormat       = "format"
	FlagFormatShort  = "F"
	FlagVerbose      = "v"
)

// Flag default values
const (
	FlagDefaultIterations = 10
	FlagDefaultAt         = 10
	FlagDefaultPayload    = PayloadKindMessage
	FlagDefaultStatus     = 1
	FlagDefaultFormat     = "text"
)

// Payload kinds accepted by the demo
const (
	PayloadKindMessage = "message"
	PayloadKindStatus  = "status"
	PayloadKindOpaque  = "opaque"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeUsageError = 2
)

// Error messages
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgInvalidFlags      = "invalid flags"
	ErrMsgInvalidIterations = "iterations must not be negative"
	ErrMsgInvalidAt         = "raising call must be at least 1"
	ErrMsgInvalidPayload    = "payload must be one of message, status, opaque"
	ErrMsgLoadConfigFailed  = "failed to load config"
	ErrMsgSetupFailed       = "failed to set up diagnostics"
)

// Demo output
const (
	DemoFmtBarRaise      = "bar: call %d raising %s\n"
	DemoFmtBarMessage    = "bar panicked unexpectedly on call %d!"
	DemoFmtFooReturned   = "foo: call %d returned\n"
	DemoFmtFooCaught     = "foo: call %d caught %s\n"
	DemoFmtMainCaught    = "main: caught %s\n"
	DemoMsgMainDone      = "main: loop finished"
	DemoMsgHandlerRaise  = "foo handler panicked too"
	DemoFmtExit          = "exit status %d\n"
	DemoOpaqueValueLabel = "bar"
)

// Help text templates
const (
	HelpMainUsage = `go-unwind - panic unwinding demo CLI

Usage:
    unwind <command> [options]

Commands:
    demo        Run the foo/bar unwinding demo
    version     Show version information
    help        Show help for a command

Use "unwind help <command>" for more information about a command.`

	HelpDemoUsage = `Run the foo/bar unwinding demo

main loops over foo, foo guards a call to bar, and bar raises on one call.
Diagnostics go to stderr, the walk through the handlers goes to stdout and
the process exits with the status the root computed.

Usage:
    unwind demo [options]

Options:
    -n <count>              Loop iterations (default: 10)
    -at <call>              Call of bar that raises (default: 10)
    -payload <kind>         Payload kind: message, status, opaque (default: message)
    -status <code>          Code carried by a status payload (default: 1)
    -handler-raise          Raise again from foo's handler to force an abort
    -c <file>               YAML config file
    -F, --format <format>   Diagnostic format: text, json
    -v                      Debug logging to stderr

Examples:
    unwind demo
    unwind demo -at 3 -payload status -status 7
    unwind demo -handler-raise
    unwind demo -c unwind.yaml -F json`

	HelpVersionUsage = `Show version information

Usage:
    unwind version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    unwind help [command]

Commands:
    demo        Show help for demo command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "go-unwind version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
)

// CLI metadata
const (
	CLIName = "unwind"
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)
