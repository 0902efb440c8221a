//go:build unix

package shell

import (
	"os"
	"syscall"
)

func execRescueShell() {
	println("\nExecing recovery shell /bin/sh")
	syscall.Exec("/bin/sh", []string{"/bin/sh"}, os.Environ())
}
