package eval

import (
	"errors"
	"strings"
	"sync"

	"src.crush.sh/pkg/diag"
	"src.crush.sh/pkg/eval/errs"
	"src.crush.sh/pkg/eval/stream"
	"src.crush.sh/pkg/eval/vals"
	"src.crush.sh/pkg/logutil"
	"src.crush.sh/pkg/parse"
)

var logger = logutil.GetLogger("[eval] ")

// JobContext binds a job to the environment it runs in.
type JobContext struct {
	// Input of the first stage.
	Input *stream.ValueReceiver
	// Output of the last stage. It is closed when the last stage finishes.
	Output *stream.ValueSender
	Scope  *Scope
	// Sink for the errors of stages.
	Printer *Printer
	// Number of rows buffered between two stages. If not positive,
	// stream.DefaultBufferSize is used.
	BufferSize int
	Source     parse.Source
}

// JobHandle is a running job.
type JobHandle struct {
	wg sync.WaitGroup

	mu  sync.Mutex
	err error
}

// Join waits for all the stages of the job to finish, and returns the first
// error any of them returned.
func (h *JobHandle) Join() error {
	h.wg.Wait()
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *JobHandle) setErr(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err == nil {
		h.err = err
	}
}

const (
	constructionErrorType = "construction error"
	runtimeErrorType      = "runtime error"
)

// GetConstructionError returns the construction error in err's chain, or nil
// if there is none.
func GetConstructionError(err error) *diag.Error {
	return diag.ErrorOfType(err, constructionErrorType)
}

type stage struct {
	call *parse.CallDef
	cmd  Command
	args Arguments
}

// Invoke starts a job. Every command is resolved and every argument is
// evaluated before any stage starts; if that fails, the error is returned and
// nothing runs. Otherwise each call runs in its own goroutine, with the output
// of each stage connected to the input of the next.
func Invoke(def *parse.JobDef, ctx JobContext) (*JobHandle, error) {
	stages := make([]stage, len(def.Calls))
	for i, call := range def.Calls {
		cmd, err := resolveCommand(call, ctx.Scope)
		if err != nil {
			return nil, newContextError(constructionErrorType, ctx.Source, call, err)
		}
		args, err := evalArguments(call.Args, ctx)
		if err != nil {
			return nil, newContextError(constructionErrorType, ctx.Source, call, err)
		}
		stages[i] = stage{call, cmd, args}
	}

	logger.Printf("starting job %s", def)
	h := &JobHandle{}
	h.wg.Add(len(stages))
	input := ctx.Input
	for i, st := range stages {
		output := ctx.Output
		var nextInput *stream.ValueReceiver
		if i < len(stages)-1 {
			output, nextInput = stream.NewValueChannel(ctx.BufferSize)
		}
		ectx := &ExecutionContext{
			Input:      input,
			Output:     output,
			Arguments:  st.args,
			Scope:      ctx.Scope,
			Printer:    ctx.Printer,
			BufferSize: ctx.BufferSize,
			Source:     ctx.Source,
		}
		go runStage(h, st, ectx)
		input = nextInput
	}
	return h, nil
}

func runStage(h *JobHandle, st stage, ctx *ExecutionContext) {
	err := st.cmd.Invoke(ctx)
	if err != nil {
		if errors.Is(err, errs.ReaderGone{}) {
			// The downstream stage has finished; this is how a producer
			// learns to stop.
			logger.Printf("%s: %v", strings.Join(st.call.Name, "/"), err)
		} else {
			if !reported(err) {
				err = newContextError(runtimeErrorType, ctx.Source, st.call, err)
				ctx.Printer.Error(err)
			}
			h.setErr(err)
		}
	}
	// The error is recorded before downstream stages see the end of output.
	ctx.Output.Close()
	h.wg.Done()
	// Drain the input, so that the upstream stage does not block forever on
	// a stage that has stopped reading.
	ctx.Input.Drain()
}

func resolveCommand(call *parse.CallDef, scope *Scope) (Command, error) {
	name := strings.Join(call.Name, "/")
	v, err := scope.GetPath(call.Name)
	if err != nil {
		var noSuchName errs.NoSuchName
		if errors.As(err, &noSuchName) {
			return nil, errs.UnknownCommand{Name: name}
		}
		return nil, err
	}
	cmd, ok := v.(Command)
	if !ok {
		return nil, errs.NotCallable{Name: name, Actual: vals.KindOf(v).String()}
	}
	return cmd, nil
}

func evalArguments(defs []*parse.ArgumentDef, ctx JobContext) (Arguments, error) {
	args := make(Arguments, len(defs))
	for i, def := range defs {
		v, err := EvalCell(def.Value, ctx)
		if err != nil {
			return nil, err
		}
		args[i] = Argument{def.Name, v}
	}
	return args, nil
}

// Reports whether err comes from a stage and has thus been printed already.
func reported(err error) bool {
	return diag.ErrorOfType(err, runtimeErrorType) != nil
}

// Wraps err in a *diag.Error pointing at r. Errors that already carry a
// context are returned as is.
func newContextError(typ string, src parse.Source, r diag.Ranger, err error) error {
	var de *diag.Error
	if errors.As(err, &de) {
		return err
	}
	return &diag.Error{
		Type:    typ,
		Message: err.Error(),
		Context: *diag.NewContext(src.Name, src.Code, r),
		Cause:   err,
	}
}
