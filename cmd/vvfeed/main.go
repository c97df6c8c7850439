// Command vvfeed is a headless smoke driver for the feed engine: it loads
// the approved-video list from a real backend, simulates a scroll through
// the feed, and dumps the resulting session state. Useful for poking at a
// staging backend without a browser.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	sysclipboard "github.com/atotto/clipboard"
	"github.com/k0kubun/pp/v3"

	"github.com/vietvivu/vvfeed/internal/api"
	"github.com/vietvivu/vvfeed/internal/assistant"
	"github.com/vietvivu/vvfeed/internal/auth"
	"github.com/vietvivu/vvfeed/internal/feed"
	"github.com/vietvivu/vvfeed/internal/mediaurl"
)

func main() {
	apiURL := os.Getenv("VVFEED_API_URL")
	if apiURL == "" {
		log.Fatal("VVFEED_API_URL is required")
	}
	siteURL := getEnv("VVFEED_SITE_URL", apiURL)

	var tokens auth.TokenSource
	if raw := os.Getenv("VVFEED_ACCESS_TOKEN"); raw != "" {
		if tok, err := auth.ParseSessionToken(raw); err == nil {
			tokens = tok
		} else {
			log.Printf("token is not a JWT, sending it as-is: %v", err)
			tokens = auth.StaticToken(raw)
		}
	}

	client := api.New(api.Config{BaseURL: apiURL, SiteURL: siteURL, Tokens: tokens})
	log.Printf("session %s against %s", client.SessionID(), apiURL)

	session := feed.NewSession(client, newHeadlessPlayer, feed.PostDeps{
		Engagement: client,
		Clipboard:  systemClipboard{},
		Navigator:  consoleNavigator{client: client},
		Notifier:   consoleNotifier{},
		PageURL:    siteURL + "/videos",
	})
	defer session.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := session.Load(ctx); err != nil {
		log.Fatalf("load feed: %v", err)
	}
	log.Printf("loaded %d approved videos", session.Len())

	// Simulated scroll: each post becomes most-visible in turn.
	for _, post := range session.Posts() {
		session.HandleVisibility([]feed.VisibilityReport{{ID: post.Video().ID, Ratio: 0.85}})
	}

	if posts := session.Posts(); len(posts) > 0 {
		first := posts[0]
		outcome := first.ToggleLike(ctx)
		log.Printf("like on %s: %s", first.Video().ID, outcome)
		first.Scrub(50)
	}

	pp.Println(summarize(session))

	if assistantURL := os.Getenv("VVFEED_ASSISTANT_URL"); assistantURL != "" {
		reply, err := assistant.New(assistantURL).SendMessage(ctx, "What should I watch for a weekend in Hue?")
		if err != nil {
			log.Printf("assistant: %v", err)
		} else {
			pp.Println(reply)
		}
	}
}

type postSummary struct {
	ID        string
	Title     string
	State     string
	Liked     bool
	LikeCount int
	Progress  float64
	PosterURL string
}

func summarize(session *feed.Session) []postSummary {
	var out []postSummary
	for _, post := range session.Posts() {
		v := post.Video()
		summary := postSummary{
			ID:        v.ID,
			Title:     v.Title,
			State:     post.State().String(),
			Liked:     post.IsLiked(),
			LikeCount: post.LikeCount(),
			Progress:  post.Progress(),
			PosterURL: mediaurl.PosterURL(v.VideoURL),
		}
		out = append(out, summary)
	}
	return out
}

// headlessPlayer satisfies the engine's media port without any media: good
// enough to walk the state machine against a live backend.
type headlessPlayer struct {
	playing bool
	muted   bool
	pos     float64
}

func newHeadlessPlayer(feed.Video) feed.Player { return &headlessPlayer{} }

func (h *headlessPlayer) Play() error          { h.playing = true; return nil }
func (h *headlessPlayer) Pause()               { h.playing = false }
func (h *headlessPlayer) Seek(seconds float64) { h.pos = seconds }
func (h *headlessPlayer) Duration() float64    { return 30 }
func (h *headlessPlayer) SetMuted(muted bool)  { h.muted = muted }

type systemClipboard struct{}

func (systemClipboard) Copy(text string) error { return sysclipboard.WriteAll(text) }

type consoleNotifier struct{}

func (consoleNotifier) Notify(message string) { fmt.Println("»", message) }

// consoleNavigator prints the deep link a browser would navigate to.
type consoleNavigator struct {
	client *api.Client
}

func (n consoleNavigator) GoToTour(tourID string) {
	fmt.Println("→", n.client.TourURL(tourID))
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
