package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/itsatony/go-unwind"
)

// demoConfig holds parsed demo command configuration
type demoConfig struct {
	iterations   int
	at           int
	payload      string
	status       int
	handlerRaise bool
	configPath   string
	format       string
	verbose      bool
}

// demo is the main -> foo -> bar chain. bar counts its calls across the loop.
type demo struct {
	cfg     *demoConfig
	stdout  io.Writer
	calls   int
	aborted bool
}

func runDemo(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseDemoFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	opts, closeFn, err := demoOptions(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgSetupFailed, err)
		return ExitCodeError
	}
	defer func() { _ = closeFn() }()

	d := &demo{cfg: cfg, stdout: stdout}
	hooks := unwind.NewHookRegistry()
	hooks.Register(unwind.HookAbort, func(context.Context, unwind.HookPoint, *unwind.HookData) error {
		d.aborted = true
		return nil
	})
	opts = append(opts, unwind.WithHooks(hooks))

	status := unwind.Run(context.Background(), d.main, opts...)
	// Nothing follows the abort diagnostic.
	if !d.aborted {
		fmt.Fprintf(stdout, DemoFmtExit, status)
	}
	return status
}

func parseDemoFlags(args []string) (*demoConfig, error) {
	fs := flag.NewFlagSet(CmdNameDemo, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &demoConfig{}
	fs.IntVar(&cfg.iterations, FlagIterations, FlagDefaultIterations, "")
	fs.IntVar(&cfg.at, FlagAt, FlagDefaultAt, "")
	fs.StringVar(&cfg.payload, FlagPayload, FlagDefaultPayload, "")
	fs.IntVar(&cfg.status, FlagStatus, FlagDefaultStatus, "")
	fs.BoolVar(&cfg.handlerRaise, FlagHandlerRaise, false, "")
	fs.StringVar(&cfg.configPath, FlagConfig, "", "")
	fs.StringVar(&cfg.format, FlagFormat, "", "")
	fs.StringVar(&cfg.format, FlagFormatShort, "", "")
	fs.BoolVar(&cfg.verbose, FlagVerbose, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.iterations < 0 {
		return nil, errors.New(ErrMsgInvalidIterations)
	}
	if cfg.at < 1 {
		return nil, errors.New(ErrMsgInvalidAt)
	}
	switch cfg.payload {
	case PayloadKindMessage, PayloadKindStatus, PayloadKindOpaque:
	default:
		return nil, errors.New(ErrMsgInvalidPayload)
	}
	if cfg.format != "" && cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

// demoOptions builds thread options from the optional config file and flags.
// Abort never exits the process here so the CLI can report the status itself.
func demoOptions(cfg *demoConfig, stderr io.Writer) ([]unwind.Option, func() error, error) {
	conf := unwind.DefaultConfig()
	if cfg.configPath != "" {
		loaded, err := unwind.LoadConfig(cfg.configPath)
		if err != nil {
			return nil, nil, err
		}
		conf = loaded
	}
	if cfg.format != "" {
		conf.Diagnostics.Format = cfg.format
	}

	opts, closeFn, err := conf.Options(stderr)
	if err != nil {
		return nil, nil, err
	}

	if cfg.verbose {
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(stderr),
			zapcore.DebugLevel,
		)
		opts = append(opts, unwind.WithLogger(zap.New(core)))
	}

	opts = append(opts, unwind.WithExit(func(int) {}))
	return opts, closeFn, nil
}

func (d *demo) main(th *unwind.Thread) int {
	th.Register(func() {
		for i := 1; i <= d.cfg.iterations; i++ {
			d.foo(th, i)
		}
	}, func(p unwind.Payload) {
		fmt.Fprintf(d.stdout, DemoFmtMainCaught, unwind.FormatPayload(p))
	})

	fmt.Fprintln(d.stdout, DemoMsgMainDone)
	return ExitCodeSuccess
}

func (d *demo) foo(th *unwind.Thread, call int) {
	th.Register(func() {
		d.bar(th)
		fmt.Fprintf(d.stdout, DemoFmtFooReturned, call)
	}, func(p unwind.Payload) {
		fmt.Fprintf(d.stdout, DemoFmtFooCaught, call, unwind.FormatPayload(p))
		if d.cfg.handlerRaise {
			th.RaiseMessage(DemoMsgHandlerRaise)
		}
	})
}

func (d *demo) bar(th *unwind.Thread) {
	d.calls++
	if d.calls != d.cfg.at {
		return
	}

	p := d.payload()
	fmt.Fprintf(d.stdout, DemoFmtBarRaise, d.calls, unwind.FormatPayload(p))
	th.Raise(p)
}

func (d *demo) payload() unwind.Payload {
	switch d.cfg.payload {
	case PayloadKindStatus:
		return unwind.Status(d.cfg.status)
	case PayloadKindOpaque:
		return unwind.Opaque(map[string]int{DemoOpaqueValueLabel: d.calls})
	default:
		return unwind.Message(fmt.Sprintf(DemoFmtBarMessage, d.calls))
	}
}
