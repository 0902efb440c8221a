package eval

import (
	"src.crush.sh/pkg/eval/stream"
	"src.crush.sh/pkg/eval/vals"
	"src.crush.sh/pkg/parse"
)

// Command is implemented by values that can be invoked as a stage of a job.
type Command interface {
	vals.Value
	// Invoke runs the command. It should send at most one value to
	// ctx.Output; the caller closes the output after Invoke returns.
	Invoke(ctx *ExecutionContext) error
}

// ExecutionContext is everything a running stage has access to.
type ExecutionContext struct {
	Input      *stream.ValueReceiver
	Output     *stream.ValueSender
	Arguments  Arguments
	Scope      *Scope
	Printer    *Printer
	BufferSize int
	// Source of the code containing the call.
	Source parse.Source
}

// Builtin is a command implemented in Go.
type Builtin struct {
	Name string
	Fn   func(ctx *ExecutionContext) error
}

var _ Command = (*Builtin)(nil)

// NewBuiltin creates a new Builtin.
func NewBuiltin(name string, fn func(*ExecutionContext) error) *Builtin {
	return &Builtin{name, fn}
}

func (*Builtin) Kind() vals.Kind { return vals.CommandKind }

func (b *Builtin) Repr() string { return "<builtin " + b.Name + ">" }

// Invoke calls the Go function.
func (b *Builtin) Invoke(ctx *ExecutionContext) error { return b.Fn(ctx) }

// ReadInput receives the input of the stage and returns it as a stream.Readable.
// It fails if the input is neither a stream nor a table.
func (ctx *ExecutionContext) ReadInput() (stream.Readable, error) {
	v, err := ctx.Input.Recv()
	if err != nil {
		return nil, err
	}
	r, ok := stream.AsReadable(v)
	if !ok {
		return nil, errInputNotTabular(v)
	}
	return r, nil
}
