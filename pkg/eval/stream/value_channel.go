package stream

import (
	"errors"
	"sync"

	"src.crush.sh/pkg/eval/errs"
	"src.crush.sh/pkg/eval/vals"
)

// ErrAlreadyReceived is returned when receiving twice from a ValueReceiver.
var ErrAlreadyReceived = errors.New("value already received")

// ValueSender is the sending end of a one-shot value channel. At most one
// value can be sent through it.
type ValueSender struct {
	ch      chan vals.Value
	bufSize int

	mu     sync.Mutex
	sent   bool
	closed bool
	out    *Output
}

// ValueReceiver is the receiving end of a one-shot value channel.
type ValueReceiver struct {
	ch chan vals.Value

	mu       sync.Mutex
	received bool
	value    vals.Value
}

// NewValueChannel creates a one-shot value channel. Streams created with
// Initialize on the sender get a buffer of bufSize rows.
func NewValueChannel(bufSize int) (*ValueSender, *ValueReceiver) {
	ch := make(chan vals.Value, 1)
	return &ValueSender{ch: ch, bufSize: bufSize}, &ValueReceiver{ch: ch}
}

// Send sends v. It never blocks. A second send fails with errs.AlreadySent.
func (s *ValueSender) Send(v vals.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.send(v)
}

func (s *ValueSender) send(v vals.Value) error {
	if s.sent || s.closed {
		return errs.AlreadySent{}
	}
	s.sent = true
	s.ch <- v
	return nil
}

// Initialize creates a stream with the given column types, sends its reading
// end and returns its writing end. The stream is closed along with the
// sender.
func (s *ValueSender) Initialize(types vals.ColumnTypes) (*Output, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, in := New(types, s.bufSize)
	if err := s.send(in); err != nil {
		return nil, err
	}
	s.out = out
	return out, nil
}

// Close closes the channel, and the stream created by Initialize if there is
// one. If nothing was sent, the receiver gets Empty.
func (s *ValueSender) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.out != nil {
		s.out.Close()
	}
	close(s.ch)
}

// Recv waits for the value. It returns Empty if the sender was closed without
// sending anything.
func (r *ValueReceiver) Recv() (vals.Value, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.received {
		return nil, ErrAlreadyReceived
	}
	r.received = true
	v, ok := <-r.ch
	if !ok {
		v = vals.Empty{}
	}
	r.value = v
	return v, nil
}

// Drain receives the value if it has not been received yet, and closes it if
// it is a stream, so that the writer of the stream does not block forever.
func (r *ValueReceiver) Drain() {
	r.Recv()
	r.mu.Lock()
	v := r.value
	r.mu.Unlock()
	if in, ok := v.(*Input); ok {
		in.Close()
	}
}

// EmptyReceiver returns a receiver that yields Empty.
func EmptyReceiver() *ValueReceiver {
	s, r := NewValueChannel(0)
	s.Close()
	return r
}

// ReceiverOf returns a receiver that yields v.
func ReceiverOf(v vals.Value) *ValueReceiver {
	s, r := NewValueChannel(0)
	s.Send(v)
	s.Close()
	return r
}

// DiscardSender returns a sender whose value is received and dropped. If the
// value is a stream, all of its rows are read and dropped.
func DiscardSender() *ValueSender {
	s, r := NewValueChannel(0)
	go func() {
		v, _ := r.Recv()
		if in, ok := v.(*Input); ok {
			for {
				if _, err := in.Read(); err != nil {
					return
				}
			}
		}
	}()
	return s
}
