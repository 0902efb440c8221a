// Package eval runs parsed crush code.
//
// Code runs as jobs: pipelines of commands, each running in its own goroutine
// and exchanging values and row streams with its neighbors. Names are
// resolved in a tree of scopes; commands are values bound in scopes, either
// builtins implemented in Go or closures.
package eval

import (
	"src.crush.sh/pkg/eval/stream"
	"src.crush.sh/pkg/eval/vals"
	"src.crush.sh/pkg/parse"
)

// Evaler holds the state that persists between evaluations of different
// pieces of code. An Evaler is safe to use concurrently.
type Evaler struct {
	// The root scope, where builtin namespaces live.
	Root *Scope
	// Scope of user code, a child of Root.
	Global *Scope
	// Number of rows buffered between two stages.
	BufferSize int
}

// NewEvaler creates a new Evaler with an empty root scope.
func NewEvaler() *Evaler {
	root := NewRootScope()
	return &Evaler{root, root.CreateChild(false), stream.DefaultBufferSize}
}

// EvalCfg keeps configuration for the (*Evaler).Eval method.
type EvalCfg struct {
	// Sink for errors. If nil, errors are only returned.
	Printer *Printer
	// Called with the value of each job, while the job is still running. It
	// must read a stream value until the end. If nil, values are read and
	// dropped.
	PutValue func(vals.Value)
}

// Eval parses and runs src in the global scope. Jobs run one after another.
//
// A parse error is returned before anything runs. Construction errors are
// printed and the remaining jobs still run; errors of stages are printed by
// the stages themselves. The first error of any kind is returned.
func (ev *Evaler) Eval(src parse.Source, cfg EvalCfg) error {
	jobs, err := parse.Parse(src)
	if err != nil {
		return err
	}
	var firstErr error
	for _, job := range jobs {
		if err := ev.evalJob(src, job, cfg); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (ev *Evaler) evalJob(src parse.Source, job *parse.JobDef, cfg EvalCfg) error {
	s, r := stream.NewValueChannel(ev.BufferSize)
	h, err := Invoke(job, JobContext{
		Input:      stream.EmptyReceiver(),
		Output:     s,
		Scope:      ev.Global,
		Printer:    cfg.Printer,
		BufferSize: ev.BufferSize,
		Source:     src,
	})
	if err != nil {
		if !reported(err) {
			cfg.Printer.Error(err)
		}
		return err
	}
	v, _ := r.Recv()
	if cfg.PutValue != nil {
		cfg.PutValue(v)
	} else if in, ok := v.(*stream.Input); ok {
		for {
			if _, err := in.Read(); err != nil {
				break
			}
		}
	}
	// The value handler may have stopped early.
	r.Drain()
	return h.Join()
}
