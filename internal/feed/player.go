package feed

import "errors"

// ErrAutoplayBlocked is returned by Player.Play when the runtime refuses
// playback without a prior user gesture. It is not an error condition for
// the engine: the post falls back to active-paused and waits for a tap.
var ErrAutoplayBlocked = errors.New("autoplay blocked by runtime")

// Player is the media element behind one post. Implementations are expected
// to be cheap to call; the engine invokes them while holding post state.
type Player interface {
	// Play starts or resumes playback. ErrAutoplayBlocked means the
	// runtime wants a user gesture first.
	Play() error
	Pause()
	// Seek jumps to an absolute position in seconds.
	Seek(seconds float64)
	// Duration returns the media length in seconds, or 0 when unknown.
	Duration() float64
	SetMuted(muted bool)
}
