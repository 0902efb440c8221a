package shell

import (
	"io"
	"os"
	"strings"

	"src.crush.sh/pkg/diag"
	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/eval/stream"
	"src.crush.sh/pkg/eval/vals"
	"src.crush.sh/pkg/parse"
)

// Evaluates code, writing job values to stdout and errors to stderr.
func evalInTTY(ev *eval.Evaler, fds [3]*os.File, src parse.Source) error {
	printer, cleanup := eval.NewPrinter(fds[2])
	err := ev.Eval(src, eval.EvalCfg{
		Printer: printer,
		PutValue: func(v vals.Value) {
			if err := PrintValue(fds[1], v); err != nil {
				logger.Println("print value:", err)
			}
		},
	})
	cleanup()
	// Errors of jobs have been printed while running.
	if parse.GetError(err) != nil {
		diag.ShowError(fds[2], err)
	}
	return err
}

// PrintValue writes a human-readable rendition of v to w. Rows and streams
// are written as a header line with the column names followed by one line per
// row, with cells separated by tabs. Empty writes nothing; other values are
// written on their own line.
//
// A stream is read until its end. If writing fails, the stream is closed so
// that its writer stops.
func PrintValue(w io.Writer, v vals.Value) error {
	if _, ok := v.(vals.Empty); ok || v == nil {
		return nil
	}
	r, ok := stream.AsReadable(v)
	if !ok {
		_, err := io.WriteString(w, vals.ToString(v)+"\n")
		return err
	}
	err := printRows(w, r)
	if in, ok := r.(*stream.Input); ok && err != nil {
		in.Close()
	}
	return err
}

func printRows(w io.Writer, r stream.Readable) error {
	if _, err := io.WriteString(w, strings.Join(r.Types().Names(), "\t")+"\n"); err != nil {
		return err
	}
	cells := make([]string, len(r.Types()))
	for {
		row, err := r.Read()
		if err == stream.EOS {
			break
		} else if err != nil {
			return err
		}
		for i, cell := range row {
			cells[i] = vals.ToString(cell)
		}
		if _, err := io.WriteString(w, strings.Join(cells, "\t")+"\n"); err != nil {
			return err
		}
	}
	return nil
}
