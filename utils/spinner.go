package utils

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"
)

// Spinner is the process indicator shown while a pipeline step runs. It
// degrades to a plain message when stderr is not a terminal.
type Spinner struct {
	stopChan chan struct{}
	enabled  bool
}

// NewSpinner instantiates a new Spinner struct.
func NewSpinner() *Spinner {
	return &Spinner{enabled: term.IsTerminal(int(os.Stderr.Fd()))}
}

// Start starts the process indicator.
func (s *Spinner) Start(message string) {
	if !s.enabled {
		fmt.Fprintln(os.Stderr, message)
		return
	}
	s.stopChan = make(chan struct{}, 1)

	go func() {
		for {
			for _, r := range `-\|/` {
				select {
				case <-s.stopChan:
					return
				default:
					fmt.Fprintf(os.Stderr, "\r%s%s %c%s", message, SuccessColor, r, DefaultColor)
					time.Sleep(time.Millisecond * 100)
				}
			}
		}
	}()
}

// Stop stops the process indicator and clears its line.
func (s *Spinner) Stop() {
	if !s.enabled {
		return
	}
	s.stopChan <- struct{}{}
	fmt.Fprint(os.Stderr, "\r\x1b[2K")
}
