// Package gesture recognizes drag gestures from raw pointer input.
//
// A Sensor turns the press, move and release events of one pointer into a
// drag session with well-defined phases:
//
//	Idle -> Pressed -> Dragging -> Ended | Cancelled
//
// A press binds the listeners the session needs on a pointer.Target and keeps
// the disposer. Every terminating transition (release, cancel, Close) invokes
// that disposer exactly once, so no listener of a finished session can fire.
//
// # Activation Policy
//
// Config decides when a press becomes a drag:
//
//   - Neither Delay nor Distance: the drag starts on press.
//   - Delay: the drag starts when the timer fires. Moving past Tolerance
//     before that cancels the session.
//   - Distance: the drag starts on the first move whose offset exceeds
//     Distance, unless it also exceeds Tolerance, which cancels instead.
//
// Delay and Distance are mutually exclusive; New rejects a config that sets
// both with ErrDelayAndDistance.
//
// # Kinematics
//
// Every sample recomputes the offset from the press position, its Euclidean
// length and the instantaneous velocity relative to the previous sample.
// Axis lock zeroes the other axis. Local accumulates offsets across sessions
// on the same sensor so a second drag continues where the first one ended.
//
// # Callbacks
//
// Callbacks run synchronously on the goroutine that delivered the triggering
// event (or the timer goroutine for delayed activation). The sensor never
// holds its lock while calling them, so callbacks may query the sensor.
package gesture
