package unwind

import (
	"os"

	"go.uber.org/zap"
)

// Option is a functional option for configuring a Thread.
type Option func(*threadConfig)

// ExitCodes maps uncaught panics to process exit statuses. Status payloads
// always exit with their own code.
type ExitCodes struct {
	Message int
	Opaque  int
	Abort   int
}

// DefaultExitCodes returns the default exit status mapping.
func DefaultExitCodes() ExitCodes {
	return ExitCodes{
		Message: DefaultExitCodeMessage,
		Opaque:  DefaultExitCodeOpaque,
		Abort:   DefaultExitCodeAbort,
	}
}

// threadConfig holds the internal configuration for a Thread.
type threadConfig struct {
	logger       *zap.Logger
	sink         Sink
	hooks        *HookRegistry
	exit         func(int)
	exitCodes    ExitCodes
	captureStack bool
}

// defaultThreadConfig returns the default thread configuration.
func defaultThreadConfig() *threadConfig {
	return &threadConfig{
		logger:    nil,
		sink:      NewWriterSink(os.Stderr, FormatText),
		hooks:     nil,
		exit:      os.Exit,
		exitCodes: DefaultExitCodes(),
	}
}

func applyOptions(opts []Option) *threadConfig {
	cfg := defaultThreadConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.exit == nil {
		cfg.exit = os.Exit
	}
	return cfg
}

// WithLogger sets the logger.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *threadConfig) {
		c.logger = logger
	}
}

// WithSink sets where root and abort diagnostics go. A nil sink discards them.
// Default: text lines on os.Stderr
func WithSink(sink Sink) Option {
	return func(c *threadConfig) {
		c.sink = sink
	}
}

// WithHooks sets the hook registry.
func WithHooks(hooks *HookRegistry) Option {
	return func(c *threadConfig) {
		c.hooks = hooks
	}
}

// WithExit sets the function called with the abort status after a double
// panic. If it returns, Run returns the abort status without running any
// further handler.
// Default: os.Exit
func WithExit(exit func(int)) Option {
	return func(c *threadConfig) {
		c.exit = exit
	}
}

// WithExitCodes sets the exit status mapping.
func WithExitCodes(codes ExitCodes) Option {
	return func(c *threadConfig) {
		c.exitCodes = codes
	}
}

// WithStackCapture records the goroutine stack at every raise and attaches
// it to the root diagnostic.
// Default: false
func WithStackCapture(enabled bool) Option {
	return func(c *threadConfig) {
		c.captureStack = enabled
	}
}
