package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// Finalizer releases a terminal; satisfied by tcell.Screen
type Finalizer interface {
	Fini()
}

var (
	crashTerminal atomic.Pointer[Finalizer]

	// exit is replaced in tests
	exit = os.Exit
)

// Reset sequences restoring a sane terminal when the screen could not be finalized
var (
	csiMouseOff      = []byte("\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1006l")
	csiCursorShow    = []byte("\x1b[?25h")
	csiAltScreenExit = []byte("\x1b[?1049l")
	csiSGR0          = []byte("\x1b[0m")
	csiAutoWrapOn    = []byte("\x1b[?7h")
)

// RegisterCrashTerminal sets the screen finalized by HandleCrash; nil clears it
func RegisterCrashTerminal(t Finalizer) {
	if t == nil {
		crashTerminal.Store(nil)
		return
	}
	crashTerminal.Store(&t)
}

// EmergencyReset writes escape sequences that leave alt screen and mouse mode
func EmergencyReset(w io.Writer) {
	w.Write(csiMouseOff)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if t := crashTerminal.Load(); t != nil {
		(*t).Fini()
	} else {
		EmergencyReset(os.Stdout)
	}

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	exit(1)
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
