package shell

import (
	"io"
	"os"
)

func ignoreSignal(os.Signal) bool { return false }

func signalName(sig os.Signal) string { return sig.String() }

func handleSignal(sig os.Signal, _ io.Writer) {
	if sig == os.Interrupt {
		os.Exit(130)
	}
}
