package util

import (
	"os"
	"sync"
)

var (
	atExitMutex sync.Mutex
	atExitFuncs []func()
)

// AtExit registers the function fn to be called on program termination.
// The functions will be called in reverse order they were registered,
// each at most once.
func AtExit(fn func()) {
	if fn == nil {
		panic("AtExit called with nil func")
	}
	once := &sync.Once{}
	atExitMutex.Lock()
	atExitFuncs = append(atExitFuncs, func() {
		once.Do(fn)
	})
	atExitMutex.Unlock()
}

// RunAtExitFuncs runs any functions registered with AtExit().
func RunAtExitFuncs() {
	atExitMutex.Lock()
	fns := make([]func(), len(atExitFuncs))
	copy(fns, atExitFuncs)
	atExitMutex.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// Exit executes any functions registered with AtExit() then exits the program
// with os.Exit(code). The terminal must be restored before the process goes
// away, so this is used instead of os.Exit.
func Exit(code int) {
	defer os.Exit(code)
	RunAtExitFuncs()
}
