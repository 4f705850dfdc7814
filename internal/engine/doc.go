// Package engine runs one spinning wheel widget.
//
// An [Engine] owns a [physics.Body], a [gesture.Tracker] and the impulse
// mapping between them. Pointer input arrives through PointerDown/Move/Up/Leave;
// a [clock.Source] drives [Engine.Tick] through [Engine.Run]. The engine reports
// to its [Renderer]:
//
//   - OnFrame after every tick, with the post-integrate angle in degrees
//   - OnGestureStart when a drag begins
//   - OnGestureEnd with the selection window, once per completed drag
//
// Renderers may also implement [SettleObserver] to learn when a spin comes
// to rest, and [DragObserver] to follow drag speed while the pointer is held.
//
// # Selection Rule
//
// The window is chosen from the impulse applied at gesture end:
//
//	metric = |impulse| * InertiaScale
//	start  = floor(metric * SpreadFactor) mod N
//
// It is not resampled while the wheel decays. The displayed items change
// only on the next completed gesture.
//
// # Thread Safety
//
// Engine methods are safe to call from multiple goroutines. A single mutex
// serialises impulses and integration so a frame never observes a partial
// update. Renderer callbacks run after the lock is released and must not
// assume they run on any particular goroutine.
package engine
