// Package core holds process-wide crash handling for the terminal sandbox
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
)

var (
	crashMu     sync.Mutex
	crashScreen tcell.Screen

	// crashOut and exitFunc are swapped in tests
	crashOut io.Writer = os.Stderr
	exitFunc           = os.Exit
)

// SetCrashScreen registers the screen to restore before a crash report, nil clears it
func SetCrashScreen(screen tcell.Screen) {
	crashMu.Lock()
	crashScreen = screen
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler: restores the terminal, prints the stack trace, exits
// Call as defer func() { core.HandleCrash(recover()) }()
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	screen := crashScreen
	crashScreen = nil
	crashMu.Unlock()

	if screen != nil {
		screen.Fini()
	}

	fmt.Fprintf(crashOut, "\n\x1b[31mNODEFIELD CRASHED: %v\x1b[0m\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\n%s\n", debug.Stack())

	exitFunc(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword for anything running while the screen is active
func Go(fn func()) {
	go func() {
		defer func() {
			HandleCrash(recover())
		}()
		fn()
	}()
}
