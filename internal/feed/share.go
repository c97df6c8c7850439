package feed

import (
	"context"
	"errors"
)

// ErrShareCanceled is returned by a Sharer when the user dismissed the
// native share sheet. Cancellation is not a failure and is swallowed.
var ErrShareCanceled = errors.New("share canceled by user")

// ShareRequest is the payload handed to the host runtime's share surface.
type ShareRequest struct {
	Title string
	Text  string
	URL   string
}

// Sharer is the native share capability of the host runtime. A nil Sharer
// means the capability is unavailable and the clipboard fallback is used.
type Sharer interface {
	Share(ctx context.Context, req ShareRequest) error
}

// Clipboard is the copy-link fallback when no native share exists.
type Clipboard interface {
	Copy(text string) error
}

// Navigator performs client-side route changes, e.g. to a tour detail page.
type Navigator interface {
	GoToTour(tourID string)
}

// Notifier surfaces a transient, non-blocking notice to the user (a toast).
type Notifier interface {
	Notify(message string)
}
