//go:build unix

package shell

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
	"src.crush.sh/pkg/sys"
)

func ignoreSignal(sig os.Signal) bool {
	// SIGURG is used internally by the Go runtime and occurs with great
	// frequency.
	return sig.(syscall.Signal) == syscall.SIGURG
}

func signalName(sig os.Signal) string {
	return unix.SignalName(sig.(syscall.Signal))
}

func handleSignal(sig os.Signal, stderr io.Writer) {
	switch sig {
	case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM:
		os.Exit(128 + int(sig.(syscall.Signal)))
	case syscall.SIGUSR1:
		fmt.Fprint(stderr, sys.DumpStack())
	}
}
