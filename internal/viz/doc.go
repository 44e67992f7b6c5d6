// Package viz renders a running arm in the terminal and doubles as its
// control panel.
//
// The [Model] is a Bubble Tea program fed by a [sim.Loop]: every published
// snapshot is drawn on a Braille [Canvas], pushed to a streaming per-joint
// velocity chart and summarised in a side panel. Key presses edit the shared
// [control.Panel], so the loop picks them up on its next frame.
//
// # Key Bindings
//
//	↑/↓   - commanded current
//	←/→   - selected link length
//	+/-   - selected link mass
//	[/]   - time scale
//	Tab   - select next link
//	A     - add a link
//	R     - reset to rest
//	Space - pause/resume
//	T     - cycle color themes
//	?     - show help
//	Q     - quit
package viz
