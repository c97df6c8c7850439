package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrSessionClosed is returned by Load when the session was closed while
// the fetch was in flight; the fetched list is discarded.
var ErrSessionClosed = errors.New("feed session closed")

// VideoSource fetches the approved-video list. The server decides what
// "approved" means; the client takes the list as-is, in server order.
type VideoSource interface {
	FetchApprovedVideos(ctx context.Context) ([]Video, error)
}

// PlayerFactory builds the media element for one feed item.
type PlayerFactory func(v Video) Player

// Session is the feed container: it owns the ordered video list, the
// shared mute flag, and the single-active-post invariant. Visibility
// reports come in batches from the scroll observer; the session resolves
// each batch to at most one playing post, swapping pause-old/play-new in
// one atomic pass so rapid fling events can never leave two posts playing.
type Session struct {
	source    VideoSource
	newPlayer PlayerFactory
	deps      PostDeps

	mu       sync.Mutex
	order    []string
	posts    map[string]*PostUnit
	activeID string
	muted    bool
	closed   bool
}

// NewSession wires a session over the given source. The deps are shared by
// every post unit; RequestMute is overridden to point back at the session
// so units never write the shared flag directly.
func NewSession(source VideoSource, newPlayer PlayerFactory, deps PostDeps) *Session {
	s := &Session{
		source:    source,
		newPlayer: newPlayer,
		posts:     make(map[string]*PostUnit),
	}
	deps.RequestMute = s.SetMuted
	s.deps = deps
	return s
}

// Load fetches the video list once and builds one post unit per item.
// A session closed while the fetch was in flight discards the result
// instead of touching destroyed state.
func (s *Session) Load(ctx context.Context) error {
	videos, err := s.source.FetchApprovedVideos(ctx)
	if err != nil {
		return fmt.Errorf("fetch approved videos: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	s.order = s.order[:0]
	s.posts = make(map[string]*PostUnit, len(videos))
	for _, v := range videos {
		post := NewPostUnit(v, s.newPlayer(v), s.deps)
		post.ApplyMute(s.muted)
		s.order = append(s.order, v.ID)
		s.posts[v.ID] = post
	}
	return nil
}

// HandleVisibility resolves one observer callback batch. The previous
// active post is paused and the winner activated under a single lock hold,
// so interleaved batches serialize and the at-most-one-playing invariant
// holds at every instant.
func (s *Session) HandleVisibility(reports []VisibilityReport) {
	winner, ok := SelectActive(reports)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || winner == s.activeID {
		return
	}
	next, known := s.posts[winner]
	if !known {
		return
	}

	if prev := s.posts[s.activeID]; prev != nil {
		prev.Deactivate()
	}
	next.Activate()
	s.activeID = winner
}

// SetMuted writes the shared mute flag and pushes it to every post. Units
// only ever request this through their RequestMute callback.
func (s *Session) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.muted = muted
	for _, id := range s.order {
		s.posts[id].ApplyMute(muted)
	}
}

func (s *Session) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// ActiveID returns the id of the post currently holding playback, or ""
// before the first qualifying visibility report.
func (s *Session) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Posts returns the units in server order.
func (s *Session) Posts() []*PostUnit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*PostUnit, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.posts[id])
	}
	return out
}

// Post returns the unit for one video id, or nil.
func (s *Session) Post(id string) *PostUnit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posts[id]
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Close tears the session down: the active post is paused and any
// in-flight Load result will be discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if prev := s.posts[s.activeID]; prev != nil {
		prev.Deactivate()
	}
	s.activeID = ""
}
