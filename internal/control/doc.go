// Package control holds the operator-facing inputs to the arm.
//
// A [Panel] stores the live [Settings] (commanded current, target link
// length and mass, selected link, time scale). Writers publish a whole new
// snapshot on every change, so a reader on another goroutine always sees a
// consistent set of values:
//
//	panel := control.NewPanel(control.Settings{Length: 0.2, Mass: 0.5}, control.DefaultLimits())
//	panel.Update(func(s *control.Settings) { s.Current += 1 })
//	s := panel.Snapshot()
//
// Headless runs use a [Profile] instead, which yields the current as a
// function of time: [Constant] or [Step].
package control
