// Package stream implements the channels that connect the stages of a job.
//
// Adjacent stages are connected by a one-shot value channel (ValueSender and
// ValueReceiver). A stage that produces tabular output sends a stream through
// it, which is a bounded channel of rows with a fixed list of column types
// (Output and Input).
package stream

import (
	"errors"
	"sync"
	"sync/atomic"

	"src.crush.sh/pkg/eval/errs"
	"src.crush.sh/pkg/eval/vals"
)

// DefaultBufferSize is the number of rows a stream can hold before Send
// blocks, used when a non-positive size is requested.
const DefaultBufferSize = 32

// EOS is returned by Read when a stream is exhausted. It is not a failure.
var EOS = errors.New("end of stream")

// ErrClosed is returned when sending to an Output that has been closed.
var ErrClosed = errors.New("send on closed stream")

type pipe struct {
	types vals.ColumnTypes
	data  chan vals.Row
	// Closed by the reader when it no longer wants any rows.
	stop      chan struct{}
	stopOnce  sync.Once
	closed    atomic.Bool
	closeOnce sync.Once
}

// Output is the sending end of a stream. Only one goroutine may send on it.
type Output struct {
	p *pipe
}

// Input is the receiving end of a stream. It is the value of kind Stream.
type Input struct {
	p *pipe
}

// New creates a stream with the given column types that can buffer up to
// bufSize rows.
func New(types vals.ColumnTypes, bufSize int) (*Output, *Input) {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	p := &pipe{
		types: append(vals.ColumnTypes(nil), types...),
		data:  make(chan vals.Row, bufSize),
		stop:  make(chan struct{}),
	}
	return &Output{p}, &Input{p}
}

// Types returns the column types of the stream.
func (o *Output) Types() vals.ColumnTypes { return o.p.types }

// Send sends a row. It blocks while the buffer is full. The row is checked
// against the column types of the stream first. If the reader has gone away,
// it returns errs.ReaderGone.
func (o *Output) Send(row vals.Row) error {
	if err := o.p.types.Check(row); err != nil {
		return err
	}
	if o.p.closed.Load() {
		return ErrClosed
	}
	select {
	case <-o.p.stop:
		return errs.ReaderGone{}
	default:
	}
	select {
	case o.p.data <- row:
		return nil
	case <-o.p.stop:
		return errs.ReaderGone{}
	}
}

// Close signals the end of the stream to the reader. It is safe to call Close
// more than once.
func (o *Output) Close() {
	o.p.closeOnce.Do(func() {
		o.p.closed.Store(true)
		close(o.p.data)
	})
}

func (*Input) Kind() vals.Kind { return vals.StreamKind }

// Types returns the column types of the stream.
func (i *Input) Types() vals.ColumnTypes { return i.p.types }

// Read returns the next row. It blocks until a row is available, and returns
// EOS once the writer has closed the stream and all rows have been read.
func (i *Input) Read() (vals.Row, error) {
	row, ok := <-i.p.data
	if !ok {
		return nil, EOS
	}
	return row, nil
}

// Close tells the writer that no more rows will be read. Subsequent sends
// fail with errs.ReaderGone.
func (i *Input) Close() {
	i.p.stopOnce.Do(func() { close(i.p.stop) })
}

func (i *Input) Repr() string {
	return "<stream " + i.p.types.String() + ">"
}
