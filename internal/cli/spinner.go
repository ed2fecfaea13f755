package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a status line on w until stopped or until its context ends.
type spinner struct {
	w       io.Writer
	message string
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex
	running bool
	stopped chan struct{}
}

func newSpinner(parent context.Context, w io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(parent)
	return &spinner{w: w, message: message, parent: parent, ctx: ctx, cancel: cancel}
}

// Start begins the animation. Calling it twice is a no-op.
func (s *spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopped = make(chan struct{})
	go s.loop(s.stopped)
}

func (s *spinner) loop(stopped chan struct{}) {
	defer close(stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-ticker.C:
			s.mu.Lock()
			fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message))
			s.mu.Unlock()
		}
	}
}

// Stop ends the animation and clears the line. Safe before Start and
// safe to call repeatedly.
func (s *spinner) Stop() {
	s.cancel()
	s.mu.Lock()
	stopped := s.stopped
	s.mu.Unlock()
	if stopped != nil {
		<-stopped
	}
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// Cancelled reports whether the parent context ended. Stop alone does not
// count as cancellation.
func (s *spinner) Cancelled() bool {
	return s.parent.Err() != nil
}

// withSpinner runs fn while a spinner labelled message animates on stderr.
// If ctx ends while fn runs, the context error is returned in place of
// whatever fn reported, so an interrupt always surfaces as cancellation.
func withSpinner(ctx context.Context, message string, fn func(context.Context) error) error {
	spin := newSpinner(ctx, os.Stderr, message)
	spin.Start()
	err := fn(ctx)
	spin.Stop()
	if spin.Cancelled() {
		return fmt.Errorf("%s: %w", strings.TrimSuffix(message, "..."), ctx.Err())
	}
	return err
}
