// Package feed implements the short-video feed engine: the per-post playback
// state machine, the visibility-driven activation policy, and the session
// that keeps at most one post playing at a time. The engine is headless;
// media playback, sharing, clipboard and navigation are injected ports so
// the whole thing runs under test without a viewport.
package feed

import "time"

// Video is one approved feed item as returned by the backend. Records are
// read-mostly: the engine never mutates a Video after fetch, only the
// per-post session state layered on top of it.
type Video struct {
	ID               string
	Title            string
	Description      string
	VideoURL         string
	UploaderUsername string
	UploadedAt       time.Time
	LikeCount        int

	// TourID links the video to a bookable tour. Empty when the uploader
	// attached no tour; the book-now action is then a guarded no-op.
	TourID string
}
