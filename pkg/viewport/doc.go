// Package viewport owns the zoom and pan state of a diagram.
//
// A [Controller] wraps a single [Matrix] that maps layout coordinates to
// screen coordinates. It is created once per diagram and mutated for the rest
// of the session by gestures and programmatic calls:
//
//   - [Controller.Scale] multiplies the current scale, optionally keeping a
//     screen point fixed (zoom to cursor).
//   - [Controller.Translate] pans in screen space.
//   - [Controller.DragStart], [Controller.DragMove] and [Controller.DragEnd]
//     implement pointer dragging. Moves and ends without a start are ignored.
//   - [Controller.Reset] restores the configured initial transform.
//
// Scale bounds are enforced after every mutation by clamping. No operation in
// this package returns an error or panics on out-of-range input.
//
// The Controller is not safe for concurrent use; it is meant to be driven from
// a single event loop.
package viewport
