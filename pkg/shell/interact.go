package shell

import (
	"fmt"
	"io"
	"os"
	"strings"

	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/parse"
	"src.crush.sh/pkg/store/storedefs"
	"src.crush.sh/pkg/sys"
)

// InteractiveRescueShell determines whether a panic results in a rescue shell
// being launched. It should be set to false by interactive mode unit tests.
var interactiveRescueShell = true

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	Evaler *eval.Evaler
	// Prompt shown before each command when stdin is a terminal.
	Prompt string
	// Where to record commands. May be nil.
	Store storedefs.Store
}

// Interactive mode panic handler.
func handlePanic() {
	r := recover()
	if r != nil {
		println()
		print(sys.DumpStack())
		println()
		fmt.Println(r)
		execRescueShell()
	}
}

// Interact runs an interactive shell session. It reads code line by line
// until the end of input, running each piece of code once it is complete.
// Errors are printed and do not end the session.
func Interact(fds [3]*os.File, cfg *InteractConfig) {
	if interactiveRescueShell {
		defer handlePanic()
	}
	prompt := ""
	if isTerminal(fds[0]) {
		prompt = cfg.Prompt
	}
	ed := newMinEditor(fds[0], fds[2], prompt)

	for cmdNum := 1; ; cmdNum++ {
		code, err := ed.ReadCode()
		if strings.TrimSpace(code) != "" {
			if cfg.Store != nil {
				if _, err := cfg.Store.AddCmd(code); err != nil {
					logger.Println("add history:", err)
				}
			}
			src := parse.Source{Name: fmt.Sprintf("[tty %v]", cmdNum), Code: code}
			evalInTTY(cfg.Evaler, fds, src)
		}
		if err == io.EOF {
			if prompt != "" {
				fmt.Fprintln(fds[2])
			}
			break
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			break
		}
	}
}
