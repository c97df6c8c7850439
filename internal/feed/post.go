package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// PlayState is the post's position in the playback state machine.
type PlayState int

const (
	// Inactive: not the active feed item. Media is paused and will restart
	// from zero on the next activation.
	Inactive PlayState = iota
	ActivePlaying
	// ActivePaused: the active item, paused either by a tap or because the
	// runtime blocked autoplay.
	ActivePaused
)

func (s PlayState) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case ActivePlaying:
		return "active-playing"
	case ActivePaused:
		return "active-paused"
	default:
		return "unknown"
	}
}

// heartOverlayDuration is how long the double-tap heart stays on screen.
const heartOverlayDuration = 800 * time.Millisecond

// EngagementService persists like toggles server-side. The caller has
// already applied the optimistic update, so no payload comes back.
type EngagementService interface {
	SetLiked(ctx context.Context, videoID string, liked bool) error
}

// PostDeps are the ports one post unit needs beyond its player. Any of them
// may be nil; the corresponding action then degrades to a no-op (with a
// notice where the UI expects one).
type PostDeps struct {
	Engagement EngagementService
	Sharer     Sharer
	Clipboard  Clipboard
	Navigator  Navigator
	Notifier   Notifier

	// PageURL is the address shared or copied by the share action.
	PageURL string

	// RequestMute asks the session to flip the shared mute flag. The unit
	// never owns mute state; it only mirrors what the session pushes down.
	RequestMute func(muted bool)

	// Now is a clock hook for the heart overlay; defaults to time.Now.
	Now func() time.Time
}

// PostUnit owns the session state of one feed item: playback sub-state,
// scrub progress, the optimistic like copy, and the presentation flags.
// All methods are safe for concurrent use.
type PostUnit struct {
	mu     sync.Mutex
	video  Video
	player Player
	deps   PostDeps

	state    PlayState
	progress float64 // 0-100, percentage of playback elapsed

	// liked starts false every session: the client never fetches the
	// user's prior like state, engagement is ephemeral per page load.
	liked     bool
	likeCount int

	expanded          bool
	muted             bool
	heartVisibleUntil time.Time
}

func NewPostUnit(video Video, player Player, deps PostDeps) *PostUnit {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &PostUnit{
		video:     video,
		player:    player,
		deps:      deps,
		likeCount: video.LikeCount,
	}
}

func (p *PostUnit) Video() Video { return p.video }

func (p *PostUnit) State() PlayState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Activate makes this the playing post: seek to zero and attempt playback.
// A blocked autoplay is not an error; the post lands in ActivePaused and
// waits for a tap.
func (p *PostUnit) Activate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.player.Seek(0)
	p.progress = 0
	p.startPlaybackLocked()
}

// Deactivate pauses immediately, whatever the current sub-state.
func (p *PostUnit) Deactivate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Inactive {
		return
	}
	p.player.Pause()
	p.state = Inactive
}

// Tap toggles between playing and paused while the post is active. Taps on
// an inactive post are ignored; activation belongs to the session.
func (p *PostUnit) Tap() {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case ActivePlaying:
		p.player.Pause()
		p.state = ActivePaused
	case ActivePaused:
		p.startPlaybackLocked()
	}
}

func (p *PostUnit) startPlaybackLocked() {
	err := p.player.Play()
	switch {
	case err == nil:
		p.state = ActivePlaying
	case errors.Is(err, ErrAutoplayBlocked):
		p.state = ActivePaused
	default:
		slog.Error("feed: playback failed", "video_id", p.video.ID, "error", err)
		p.state = ActivePaused
	}
}

// DoubleTap shows the transient heart overlay and, when the post is not
// already liked, applies the like. It never touches the play/pause state.
func (p *PostUnit) DoubleTap(ctx context.Context) {
	p.mu.Lock()
	p.heartVisibleUntil = p.deps.Now().Add(heartOverlayDuration)
	alreadyLiked := p.liked
	p.mu.Unlock()

	if !alreadyLiked {
		p.ToggleLike(ctx)
	}
}

// HeartVisible reports whether the double-tap overlay is still on screen.
func (p *PostUnit) HeartVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.deps.Now().Before(p.heartVisibleUntil)
}

// ToggleLike flips the like state optimistically: local fields change
// immediately, then the engagement call confirms. On failure both fields
// revert to their pre-toggle values; a single failed attempt is final.
func (p *PostUnit) ToggleLike(ctx context.Context) Outcome {
	p.mu.Lock()
	target := !p.liked
	p.mu.Unlock()

	m := Mutation{
		Apply:  func() { p.applyLike(target) },
		Revert: func() { p.applyLike(!target) },
		Confirm: func(ctx context.Context) error {
			if p.deps.Engagement == nil {
				return nil
			}
			return p.deps.Engagement.SetLiked(ctx, p.video.ID, target)
		},
	}
	return m.Run(ctx)
}

func (p *PostUnit) applyLike(liked bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.liked = liked
	if liked {
		p.likeCount++
	} else {
		p.likeCount--
	}
}

func (p *PostUnit) IsLiked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.liked
}

func (p *PostUnit) LikeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.likeCount
}

// Scrub seeks to percent (0-100) of the media duration. It bypasses the
// play/pause machine entirely: scrubbing while paused stays paused,
// scrubbing while playing keeps playing.
func (p *PostUnit) Scrub(percent float64) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.player.Seek(percent / 100 * p.player.Duration())
	p.progress = percent
}

// OnTimeUpdate folds a media time tick into the rendered progress value.
func (p *PostUnit) OnTimeUpdate(current, duration float64) {
	if duration <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress = current / duration * 100
}

func (p *PostUnit) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.progress
}

// Share hands the post to the native share surface when one exists,
// otherwise copies the page URL to the clipboard. User cancellation of the
// native sheet is swallowed; clipboard outcomes surface a transient notice.
func (p *PostUnit) Share(ctx context.Context) {
	req := ShareRequest{
		Title: p.video.Title,
		Text:  "Check out this video on VietViVu!",
		URL:   p.deps.PageURL,
	}

	if p.deps.Sharer != nil {
		err := p.deps.Sharer.Share(ctx, req)
		if err != nil && !errors.Is(err, ErrShareCanceled) {
			slog.Error("feed: native share failed", "video_id", p.video.ID, "error", err)
		}
		return
	}

	if p.deps.Clipboard == nil {
		return
	}
	if err := p.deps.Clipboard.Copy(req.URL); err != nil {
		p.notify("Couldn't copy the link, please try again")
		return
	}
	p.notify("Link copied to clipboard")
}

// BookNow navigates to the linked tour. Videos without a tour get a
// transient notice instead; absence is a guarded no-op, not an error.
func (p *PostUnit) BookNow() {
	if p.video.TourID == "" {
		p.notify("This video has no linked tour yet")
		return
	}
	if p.deps.Navigator != nil {
		p.deps.Navigator.GoToTour(p.video.TourID)
	}
}

// ToggleMute asks the session to flip the shared mute flag. The new value
// comes back down through ApplyMute so every post stays in agreement.
func (p *PostUnit) ToggleMute() {
	p.mu.Lock()
	muted := p.muted
	p.mu.Unlock()

	if p.deps.RequestMute != nil {
		p.deps.RequestMute(!muted)
	}
}

// ApplyMute mirrors the session's shared mute flag onto the media element.
func (p *PostUnit) ApplyMute(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	p.player.SetMuted(muted)
}

func (p *PostUnit) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// ToggleDescription flips the truncated-description flag. Presentation
// only; nothing persists.
func (p *PostUnit) ToggleDescription() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expanded = !p.expanded
}

func (p *PostUnit) DescriptionExpanded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expanded
}

func (p *PostUnit) notify(message string) {
	if p.deps.Notifier != nil {
		p.deps.Notifier.Notify(message)
	}
}
