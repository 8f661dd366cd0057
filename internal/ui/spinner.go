package ui

import (
	"fmt"
	"sync"

	"github.com/pterm/pterm"
)

// Spinner wraps pterm's spinner behind an enabled flag so commands can
// run it unconditionally; when disabled (no TTY, --no-color, tests)
// every call is a no-op.
type Spinner struct {
	mu      sync.Mutex
	spinner *pterm.SpinnerPrinter
	enabled bool
	active  bool
}

// NewSpinner creates a spinner. Pass enabled=false to disable it.
func NewSpinner(enabled bool) *Spinner {
	return &Spinner{enabled: enabled}
}

// Start begins spinning with a message.
func (s *Spinner) Start(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return nil
	}
	if s.active {
		return fmt.Errorf("spinner already active")
	}

	spinner, err := pterm.DefaultSpinner.Start(message)
	if err != nil {
		return fmt.Errorf("failed to start spinner: %w", err)
	}

	s.spinner = spinner
	s.active = true
	return nil
}

// Success stops the spinner with a success mark.
func (s *Spinner) Success(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || !s.active || s.spinner == nil {
		return
	}
	s.spinner.Success(message)
	s.active = false
}

// Fail stops the spinner with a failure mark.
func (s *Spinner) Fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || !s.active || s.spinner == nil {
		return
	}
	s.spinner.Fail(message)
	s.active = false
}

// Stop stops the spinner without a verdict.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active || s.spinner == nil {
		return
	}
	_ = s.spinner.Stop()
	s.active = false
}
