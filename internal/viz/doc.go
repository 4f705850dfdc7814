// Package viz draws the wheel in the terminal.
//
// The TUI is a Bubble Tea program that owns one engine and acts as its
// renderer:
//
//   - [Model]: mouse drags feed the engine's pointer input, ticks advance it
//   - [Canvas]: braille raster used to draw the rim, spokes and pointer
//   - three colour themes, cycled at runtime
//
// # Key Bindings
//
//	drag  - Spin the wheel with the left mouse button
//	←/→   - Flick left or right (H/L for a hard flick)
//	T     - Cycle color themes
//	?     - Show help
//	Q     - Quit
//
// The current selection is hidden while a drag is in progress and shown
// again as soon as the pointer is released.
package viz
