package eval

import (
	"io"
	"sync"

	"src.crush.sh/pkg/diag"
)

// Buffer size of the channel in Printer. The value has been chosen
// arbitrarily.
const printerChanSize = 32

// Printer is the shared sink for errors and messages from running stages.
// Writes are relayed through a channel to a single goroutine, so concurrent
// stages never interleave their output.
type Printer struct {
	ch chan func(io.Writer)

	mu     sync.RWMutex
	closed bool
}

// NewPrinter returns a Printer that writes to w. It also returns a cleanup
// function that flushes pending output and stops the relay; the Printer
// discards everything printed after that. A nil *Printer discards everything.
func NewPrinter(w io.Writer) (*Printer, func()) {
	p := &Printer{ch: make(chan func(io.Writer), printerChanSize)}
	relayDone := make(chan struct{})
	go func() {
		for f := range p.ch {
			f(w)
		}
		close(relayDone)
	}()
	return p, func() {
		p.mu.Lock()
		p.closed = true
		close(p.ch)
		p.mu.Unlock()
		<-relayDone
	}
}

func (p *Printer) send(f func(io.Writer)) {
	if p == nil {
		return
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	p.ch <- f
}

// Error prints an error, with its source context if it has one.
func (p *Printer) Error(err error) {
	p.send(func(w io.Writer) { diag.ShowError(w, err) })
}

// Line prints a line of text.
func (p *Printer) Line(s string) {
	p.send(func(w io.Writer) { io.WriteString(w, s+"\n") })
}
