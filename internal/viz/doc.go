// Package viz hosts the attractor in a terminal.
//
// The package implements a TUI using the Bubble Tea framework:
//
//   - [Model]: forwards window sizes and frame ticks to a host adapter
//   - [Canvas]: braille surface with one truecolor ink per cell
//   - Theme selection with 5 built-in backgrounds
//
// # Key Bindings
//
//	Space - Pause/Resume
//	T     - Cycle themes
//	P     - Toggle the side panel
//	Q     - Quit
package viz
