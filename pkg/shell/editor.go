package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"src.crush.sh/pkg/parse"
	"src.crush.sh/pkg/sys"
)

// Prompt shown while a job started on a previous line is incomplete.
const continuationPrompt = "... "

// The interface that a line editor has to satisfy.
type editor interface {
	// ReadCode reads a piece of code that is complete or fails to parse for
	// some reason other than ending early. At the end of input it returns
	// what has been read so far together with io.EOF.
	ReadCode() (string, error)
}

type minEditor struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string
}

// Creates a line editor reading from in. The prompt is written to out only if
// in is a terminal; an empty prompt disables it.
func newMinEditor(in io.Reader, out io.Writer, prompt string) *minEditor {
	return &minEditor{bufio.NewReader(in), out, prompt}
}

func (ed *minEditor) ReadCode() (string, error) {
	var sb strings.Builder
	prompt := ed.prompt
	for {
		if prompt != "" {
			fmt.Fprint(ed.out, prompt)
		}
		line, err := ed.in.ReadString('\n')
		sb.WriteString(line)
		if err != nil {
			return strings.TrimRight(sb.String(), "\r\n"), err
		}
		if !incomplete(sb.String()) {
			return strings.TrimRight(sb.String(), "\r\n"), nil
		}
		if ed.prompt != "" {
			prompt = continuationPrompt
		}
	}
}

// Reports whether code fails to parse only because it ends early, like a
// closure without its closing brace.
func incomplete(code string) bool {
	_, err := parse.Parse(parse.Source{Code: code})
	e := parse.GetError(err)
	return e != nil && e.Partial
}

func isTerminal(f *os.File) bool {
	return f != nil && sys.IsATTY(f.Fd())
}
