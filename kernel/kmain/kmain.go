// Package kmain contains the kernel entrypoint that runs once the firmware
// has handed over its display mode list.
package kmain

import (
	"fbcon/kernel/cpu"
	"fbcon/kernel/hal"
	"fbcon/kernel/hal/gop"
	"fbcon/kernel/kfmt"
	"io"
)

// Status is the value reported back to the firmware if Kmain returns.
type Status uint8

const (
	// StatusSuccess is returned when the kernel ran to completion.
	StatusSuccess Status = iota

	// StatusUnsupported is returned when none of the firmware display
	// modes can host the console.
	StatusUnsupported
)

// String implements fmt.Stringer for Status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// The number of line-feeds printed before the banner so output starts at the
// bottom of the screen.
const leadingNewLines = 50

var (
	// Mocked by tests.
	idleFn  = cpu.Halt
	panicFn = kfmt.Panic
)

// Kmain is invoked by the boot stub with the display modes that the firmware
// reported. It attaches a console to the best mode, prints the welcome banner
// and idles. Kmain only returns if no usable display mode exists.
//
// Any panic raised after the console is up is rendered on screen with the
// panic palette before halting the CPU.
//
//go:noinline
func Kmain(modes []gop.ModeInfo) Status {
	cons, err := hal.InitConsole(modes)
	if err != nil {
		return StatusUnsupported
	}

	defer func() {
		if r := recover(); r != nil {
			panicFn(cons, r)
		}
	}()

	cons.Clear()
	for i := 0; i < leadingNewLines; i++ {
		cons.Print("\n")
	}

	// Replay the mode selection log captured before the console existed.
	kfmt.SetOutputSink(cons)

	PrintBanner(cons)
	idleFn()

	return StatusSuccess
}

// PrintBanner writes the welcome text to w. The text exercises every control
// character the console understands and ends with enough lines to scroll a
// 25 row screen.
func PrintBanner(w io.Writer) {
	kfmt.Fprintf(w, "Hello world !\nWelcome to fbcon :)\n\n")

	kfmt.Fprintf(w, "\t1. One\n")
	kfmt.Fprintf(w, "\t2. Two\n")
	kfmt.Fprintf(w, "\t3. Three...")
	kfmt.Fprintf(w, "\r\t3. Free !!!\n\n")

	kfmt.Fprintf(w, "The four next chars aren't printable and may be ignored : µéùà\n\n")

	kfmt.Fprintf(w, "%s\n\n", loremIpsum)

	for i := 1; i <= 10; i++ {
		pad := ""
		if i < 10 {
			pad = "0"
		}
		kfmt.Fprintf(w, "Will it scroll ? (%s%d/10)\n", pad, i)
	}
	kfmt.Fprintf(w, "Let's see...")
}

const loremIpsum = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Aliquam id maximus leo, " +
	"ut aliquam nulla. In hac habitasse platea dictumst. Pellentesque dictum egestas arcu vel " +
	"ultricies. Sed pretium fermentum quam vitae molestie. Aenean vitae imperdiet ex. Quisque nec " +
	"sagittis risus, quis accumsan ligula. Donec cursus convallis feugiat. Nullam eu velit odio. " +
	"Donec blandit diam a erat venenatis, vitae tempor enim dapibus. Ut in pretium urna. Aenean " +
	"convallis lacus at elit suscipit, vel posuere turpis hendrerit. Nulla lacus risus, tincidunt " +
	"vitae ipsum vel, egestas tempus nisi. Nullam tincidunt eget risus at elementum. In iaculis, " +
	"est sit amet congue volutpat, mauris arcu fringilla diam, a porttitor velit quam in magna."
