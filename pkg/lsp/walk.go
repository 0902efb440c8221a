package lsp

import (
	"strings"

	"src.crush.sh/pkg/diag"
	"src.crush.sh/pkg/parse"
)

// Calls f on every call in jobs, including the calls nested in arguments.
func walkCalls(jobs []*parse.JobDef, f func(*parse.CallDef)) {
	for _, job := range jobs {
		for _, call := range job.Calls {
			f(call)
			for _, arg := range call.Args {
				walkCellCalls(arg.Value, f)
			}
		}
	}
}

func walkCellCalls(cell parse.CellDef, f func(*parse.CallDef)) {
	switch cell := cell.(type) {
	case *parse.List:
		for _, elem := range cell.Elems {
			walkCellCalls(elem, f)
		}
	case *parse.IndexedVariable:
		walkCellCalls(cell.Index, f)
	case *parse.JobCapture:
		walkCalls([]*parse.JobDef{cell.Job}, f)
	case *parse.ClosureDef:
		walkCalls(cell.Jobs, f)
	}
}

// A reference to a binding: a command name or a variable.
type ref struct {
	diag.Ranging
	path []string
}

func nameRange(c *parse.CallDef) diag.Ranging {
	return diag.Ranging{From: c.From, To: c.From + len(strings.Join(c.Name, "/"))}
}

// Finds the command name or variable that covers idx.
func findRef(jobs []*parse.JobDef, idx int) (ref, bool) {
	var found ref
	ok := false
	covers := func(r diag.Ranging) bool { return r.From <= idx && idx <= r.To }
	var walkCell func(parse.CellDef)
	walkCell = func(cell parse.CellDef) {
		switch cell := cell.(type) {
		case *parse.VariablePath:
			if covers(cell.Range()) {
				found, ok = ref{cell.Range(), cell.Path}, true
			}
		case *parse.IndexedVariable:
			r := diag.Ranging{From: cell.From, To: cell.From + 1 + len(strings.Join(cell.Path, "/"))}
			if covers(r) {
				found, ok = ref{r, cell.Path}, true
			}
			walkCell(cell.Index)
		case *parse.List:
			for _, elem := range cell.Elems {
				walkCell(elem)
			}
		}
	}
	walkCalls(jobs, func(c *parse.CallDef) {
		if r := nameRange(c); covers(r) {
			found, ok = ref{r, c.Name}, true
		}
		for _, arg := range c.Args {
			walkCell(arg.Value)
		}
	})
	return found, ok
}
