package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// CommandTriggerSearch is the keyboard command toggling search in the active tab.
const CommandTriggerSearch = "trigger-search"

// Host relays toggle requests to pages.
type Host struct {
	channel  Channel
	injector Injector
	tabs     TabSource
	config   *Config
	logger   *slog.Logger
}

// Option configures a Host.
type Option func(*Host) error

// WithConfig replaces the default configuration.
func WithConfig(cfg *Config) Option {
	return func(h *Host) error {
		if cfg == nil {
			return errors.New("config cannot be nil")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		h.config = cfg
		return nil
	}
}

// WithTabSource sets the source of the active tab used by HandleCommand.
func WithTabSource(tabs TabSource) Option {
	return func(h *Host) error {
		if tabs == nil {
			return errors.New("tab source cannot be nil")
		}
		h.tabs = tabs
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		h.logger = logger
		return nil
	}
}

// New creates a Host sending over channel and injecting with injector.
func New(channel Channel, injector Injector, opts ...Option) (*Host, error) {
	if channel == nil {
		return nil, errors.New("channel is required")
	}
	if injector == nil {
		return nil, errors.New("injector is required")
	}

	h := &Host{
		channel:  channel,
		injector: injector,
		config:   DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}
	h.logger = h.logger.With("component", "host")
	return h, nil
}

// HandleCommand runs a keyboard command against the active tab.
func (h *Host) HandleCommand(ctx context.Context, command string) error {
	if command != CommandTriggerSearch {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
	if h.tabs == nil {
		return ErrNoActiveTab
	}
	tab, err := h.tabs.ActiveTab(ctx)
	if err != nil {
		h.logger.Error("no active tab found", "error", err)
		return err
	}
	return h.HandleToggle(ctx, tab)
}

// HandleToggle toggles search in tab. If the page has no listener, the
// script and stylesheet are injected and the toggle is sent once more after
// the configured delay. Failures are logged and returned.
func (h *Host) HandleToggle(ctx context.Context, tab Tab) error {
	logger := h.logger.With("tab", tab.ID)

	if h.config.IsRestricted(tab.URL) {
		logger.Info("cannot inject into browser page", "url", tab.URL)
		return fmt.Errorf("%w: %q", ErrRestrictedURL, tab.URL)
	}

	err := h.channel.SendToggle(ctx, tab.ID)
	if err == nil {
		logger.Debug("toggle sent")
		return nil
	}
	if !errors.Is(err, ErrNoListener) {
		logger.Error("failed to send toggle", "error", err)
		return fmt.Errorf("failed to send toggle: %w", err)
	}

	logger.Info("page listener not ready, injecting", "error", err)
	if err := h.injector.InjectScript(ctx, tab.ID); err != nil {
		logger.Error("failed to inject script", "error", err)
		return fmt.Errorf("failed to inject script: %w", err)
	}
	if err := h.injector.InjectCSS(ctx, tab.ID); err != nil {
		logger.Error("failed to inject stylesheet", "error", err)
		return fmt.Errorf("failed to inject stylesheet: %w", err)
	}

	if err := sleep(ctx, h.config.RetryDelay); err != nil {
		return err
	}

	if err := h.channel.SendToggle(ctx, tab.ID); err != nil {
		logger.Error("failed to send toggle after injection", "error", err)
		return fmt.Errorf("failed to send toggle after injection: %w", err)
	}
	logger.Debug("toggle sent after injection")
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
