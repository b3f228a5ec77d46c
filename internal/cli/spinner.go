package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a message on one terminal line while a step runs. It
// clears the line when stopped or when its context ends.
type Spinner struct {
	out     io.Writer
	message string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
	mu     sync.Mutex // serializes writes to out

	stopping    atomic.Bool
	interrupted atomic.Bool
}

// newSpinnerWithContext creates a spinner on stderr.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

func newSpinnerTo(ctx context.Context, out io.Writer, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{out: out, message: message, ctx: ctx, cancel: cancel}
}

// Start runs the animation in the background until Stop or cancellation.
func (s *Spinner) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Spinner) run() {
	defer s.wg.Done()
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			if !s.stopping.Load() {
				s.interrupted.Store(true)
			}
			s.clearLine()
			return
		case <-tick.C:
			glyph := spinnerFrames[frame%len(spinnerFrames)]
			s.write("\r" + styleIconSpinner.Render(glyph) + " " + StyleDim.Render(s.message))
		}
	}
}

// Stop ends the animation and waits for the line to be cleared. Later
// calls do nothing.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.stopping.Store(true)
		s.cancel()
		s.wg.Wait()
		s.clearLine()
	})
}

// StopWithError stops the spinner and prints message as a failure line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context ended before Stop.
func (s *Spinner) Cancelled() bool {
	return s.interrupted.Load()
}

func (s *Spinner) clearLine() {
	s.write("\r" + strings.Repeat(" ", len(s.message)+4) + "\r")
}

func (s *Spinner) write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.out, text)
}
