package main

import (
	"fbcon/kernel/hal/gop"
	"fbcon/kernel/kmain"
)

// firmwareModes is populated by the firmware entry trampoline with the modes
// reported by the graphics output protocol.
var firmwareModes []gop.ModeInfo

// main makes a dummy call to the actual kernel main entrypoint function. It
// is intentionally defined to prevent the Go compiler from optimizing away the
// real kernel code.
//
// A global variable is passed as an argument to Kmain to prevent the compiler
// from inlining the actual call and removing Kmain from the generated .o file.
func main() {
	kmain.Kmain(firmwareModes)
}
