// Package viz renders root-finding results in the terminal.
//
// Three surfaces share one set of themed styles:
//
//   - [Summary]: lipgloss panel with the distinct roots, per-method
//     diagnostics and any warning
//   - [Chart]: asciigraph line chart of f over the full or zoomed window
//   - [Canvas]: Braille pixel canvas used by the interactive plot
//
// # Key Bindings
//
//	j/k   - Select a or b
//	enter - Edit the selected coefficient
//	h/l   - Nudge the selected coefficient by 0.1
//	z     - Toggle the zoomed window around the roots
//	t     - Cycle color themes
//	q     - Quit
//
// Every change of a or b recomputes the result by calling the engine again.
package viz
