package spinner

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Spinner renders a single-line progress indicator while a blocking
// operation (typically an external checker run) is in flight.
type Spinner struct {
	frames  []string
	message string
	mu      sync.Mutex
	running bool
	done    chan struct{}
}

func New(message string) *Spinner {
	return &Spinner{
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		message: message,
		done:    make(chan struct{}),
	}
}

func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.done = make(chan struct{})

	go func(done chan struct{}) {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.mu.Lock()
				fmt.Printf("\r%s %s", s.frames[i%len(s.frames)], s.message)
				s.mu.Unlock()
			}
		}
	}(s.done)
}

func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.done)

	fmt.Print("\r" + strings.Repeat(" ", len(s.message)+4) + "\r")
}
