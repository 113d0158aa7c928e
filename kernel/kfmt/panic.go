package kfmt

import (
	"fbcon/kernel"
	"fbcon/kernel/cpu"
	"io"
)

var (
	// cpuHaltFn is mocked by tests.
	cpuHaltFn = cpu.Halt

	errRuntimePanic = &kernel.Error{Module: "rt", Message: "unknown cause"}
)

// FaultWriter is implemented by consoles that can render a fault report.
type FaultWriter interface {
	io.Writer

	// EnterPanicMode switches the writer to its alert palette.
	EnterPanicMode()
}

// Panic renders a report for the supplied error (if not nil) to w and halts
// the CPU. Calls to Panic never return.
//
// The console handle is passed in explicitly by the caller that captured it
// at boot time. If w is nil, the report ends up in the early print buffer.
func Panic(w FaultWriter, e interface{}) {
	Report(w, e)
	cpuHaltFn()
}

// Report switches w to its alert palette and writes a fault report for e
// without halting. It accepts *kernel.Error, error and string values; any
// other non-nil value is reported as an unknown cause.
func Report(w FaultWriter, e interface{}) {
	var err *kernel.Error

	switch t := e.(type) {
	case nil:
	case *kernel.Error:
		err = t
	case string:
		errRuntimePanic.Message = t
		err = errRuntimePanic
	case error:
		// Error must neither allocate nor panic; the runtime errors that
		// reach here at boot return static strings.
		errRuntimePanic.Message = t.Error()
		err = errRuntimePanic
	default:
		errRuntimePanic.Message = "unknown cause"
		err = errRuntimePanic
	}

	var out io.Writer
	if w != nil {
		w.EnterPanicMode()
		out = w
	}

	Fprintf(out, "\n-----------------------------------\n")
	if err != nil {
		Fprintf(out, "[%s] unrecoverable error: %s\n", err.Module, err.Message)
	}
	Fprintf(out, "*** kernel panic: system halted ***")
	Fprintf(out, "\n-----------------------------------\n")
}
