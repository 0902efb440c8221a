// Package progtest contains utilities for testing a [prog.Program] by running
// it with command-line arguments and checking its exit status and output.
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"src.crush.sh/pkg/prog"
)

// Case is a test case for Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitStatus int
	out, err   output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return "text containing " + o.content
	}
	return o.content
}

// ThatCrush returns a new Case with the specified CLI arguments, excluding the
// program name.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "crush -c hello" writes "hello\n" to
// stdout reads:
//
//	ThatCrush("-c", "hello").WritesStdout("hello\n")
func ThatCrush(args ...string) Case {
	return Case{args: append([]string{"crush"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to stdin of
// the program.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise don't
// have any expectations, for example:
//
//	ThatCrush("-c", "").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program run to return
// with the given exit status.
func (c Case) ExitsWith(code int) Case {
	c.want.exitStatus = code
	return c
}

// WritesStdout returns an altered Case that requires the program run to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.out = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program run
// to write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.out = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program run to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.err = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program run
// to write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.err = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(p, c.args, c.stdin)
			if r.exitStatus != c.want.exitStatus {
				t.Errorf("got exit status %v, want %v", r.exitStatus, c.want.exitStatus)
			}
			if !matchOutput(r.out, c.want.out) {
				t.Errorf("got stdout %q, want %s", r.out.content, c.want.out)
			}
			if !matchOutput(r.err, c.want.err) {
				t.Errorf("got stderr %q, want %s", r.err.content, c.want.err)
			}
		})
	}
}

// Run runs a Program with the given arguments. It returns the Program's exit
// status and its stdout and stderr output.
func Run(p prog.Program, args ...string) (exit int, stdout, stderr string) {
	r := run(p, append([]string{"crush"}, args...), "")
	return r.exitStatus, r.out.content, r.err.content
}

func run(p prog.Program, args []string, stdin string) result {
	stdinR, stdinW := mustPipe()
	go func() {
		io.WriteString(stdinW, stdin)
		stdinW.Close()
	}()
	stdoutR, stdoutW := mustPipe()
	stdoutCh := readAllAsync(stdoutR)
	stderrR, stderrW := mustPipe()
	stderrCh := readAllAsync(stderrR)

	exit := prog.Run([3]*os.File{stdinR, stdoutW, stderrW}, args, p)
	stdinR.Close()
	stdoutW.Close()
	stderrW.Close()
	return result{
		exitStatus: exit,
		out:        output{content: <-stdoutCh},
		err:        output{content: <-stderrCh},
	}
}

func matchOutput(got, want output) bool {
	if want.partial {
		return strings.Contains(got.content, want.content)
	}
	return got.content == want.content
}

func mustPipe() (*os.File, *os.File) {
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	return r, w
}

// Reads everything from r in a goroutine, so that the writer never blocks on
// a full pipe.
func readAllAsync(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(r)
		r.Close()
		ch <- string(b)
	}()
	return ch
}
