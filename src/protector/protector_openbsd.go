//go:build openbsd

package protector

import "golang.org/x/sys/unix"

// Protect restricts the process with pledge(2). Reading files and running
// the input command need rpath and proc/exec, the history file needs
// wpath/cpath.
func Protect() {
	unix.PledgePromises("stdio rpath wpath cpath tty proc exec")
}
