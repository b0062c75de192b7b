package form

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Option configures engine construction.
type Option func(*options)

type options struct {
	defaultStrategy  Strategy
	debounceInterval time.Duration
	asyncTimeout     time.Duration
	logger           *slog.Logger
	err              error
}

func defaultOptions() options {
	return options{
		defaultStrategy:  OnFirstChange,
		debounceInterval: 700 * time.Millisecond,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithDefaultStrategy sets the form-level validation strategy applied to
// every field without an override.
func WithDefaultStrategy(s Strategy) Option {
	return func(o *options) {
		if s == StrategyDefault {
			return
		}
		if _, ok := strategyNames[s]; !ok {
			o.err = errors.Join(ErrInvalidStrategy, fmt.Errorf("default strategy %v", s))
			return
		}
		o.defaultStrategy = s
	}
}

// WithDebounceInterval sets the quiet interval for debounced async
// validators. A negative interval disables debouncing entirely; async
// validators then trigger on every successful sync check.
func WithDebounceInterval(d time.Duration) Option {
	return func(o *options) { o.debounceInterval = d }
}

// WithAsyncTimeout bounds how long the engine waits for an async validator's
// future. On expiry the field commits a failing result instead of blocking
// submission forever. Zero (the default) waits indefinitely.
func WithAsyncTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.asyncTimeout = d
		}
	}
}

// WithLogger sets the structured logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConfig applies an environment-derived Config.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.debounceInterval = cfg.DebounceInterval
		if cfg.AsyncTimeout > 0 {
			o.asyncTimeout = cfg.AsyncTimeout
		}
		if cfg.DefaultStrategy != "" {
			s, err := ParseStrategy(cfg.DefaultStrategy)
			if err != nil {
				o.err = err
				return
			}
			if s != StrategyDefault {
				o.defaultStrategy = s
			}
		}
	}
}
