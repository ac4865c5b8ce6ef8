package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
)

var (
	crashMu     sync.Mutex
	crashScreen tcell.Screen
)

// SetCrashScreen registers the screen restored by HandleCrash
// Pass nil to unregister after normal shutdown
func SetCrashScreen(s tcell.Screen) {
	crashMu.Lock()
	crashScreen = s
	crashMu.Unlock()
}

// EmergencyReset restores a sane terminal state without a registered screen
func EmergencyReset() {
	// Leave alternate screen, show cursor, reset attributes
	fmt.Fprint(os.Stdout, "\x1b[?1049l\x1b[?25h\x1b[0m")
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	s := crashScreen
	crashScreen = nil
	crashMu.Unlock()

	if s != nil {
		s.Fini()
	} else {
		EmergencyReset()
	}

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mHOLLYWOOD CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
