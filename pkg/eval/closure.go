package eval

import (
	"fmt"

	"src.crush.sh/pkg/eval/stream"
	"src.crush.sh/pkg/eval/vals"
	"src.crush.sh/pkg/parse"
)

// Closure is a list of jobs bound to the scope it was defined in. Each
// Closure has its unique identity.
type Closure struct {
	Def      *parse.ClosureDef
	Captured *Scope
	// Source of the code the closure was defined in.
	Source parse.Source
}

var _ Command = (*Closure)(nil)

func (*Closure) Kind() vals.Kind { return vals.ClosureKind }

func (c *Closure) Repr() string { return fmt.Sprintf("<closure %p>", c) }

// Invoke runs the jobs of the closure in a fresh child of the captured scope.
// Named arguments are declared in that scope, and the positional arguments
// are bound to args as a list.
//
// The first job reads the input of the invocation, and the last job writes
// its output; the output of the other jobs is discarded. Each job finishes
// before the next one starts.
func (c *Closure) Invoke(ctx *ExecutionContext) error {
	local := c.Captured.CreateChild(false)
	for _, arg := range ctx.Arguments {
		if arg.Name != "" {
			if err := local.Declare(arg.Name, arg.Value); err != nil {
				return err
			}
		}
	}
	err := local.Declare("args", vals.MakeList(ctx.Arguments.Positional()...))
	if err != nil {
		return err
	}

	jobs := c.Def.Jobs
	for i, job := range jobs {
		jctx := JobContext{
			Input:      stream.EmptyReceiver(),
			Output:     stream.DiscardSender(),
			Scope:      local,
			Printer:    ctx.Printer,
			BufferSize: ctx.BufferSize,
			Source:     c.Source,
		}
		if i == 0 {
			jctx.Input = ctx.Input
		}
		if i == len(jobs)-1 {
			jctx.Output = ctx.Output
		}
		h, err := Invoke(job, jctx)
		if err != nil {
			jctx.Output.Close()
			return err
		}
		if err := h.Join(); err != nil {
			return err
		}
	}
	return nil
}
