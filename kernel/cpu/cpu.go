// Package cpu exposes the processor operations the console core relies on.
package cpu

// Halt stops doing useful work. There are no interrupts to wait for so the
// processor simply spins until it is powered off.
func Halt() {
	for {
	}
}
