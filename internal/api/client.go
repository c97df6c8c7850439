// Package api is the thin HTTP client for the VietViVu backend. The
// response shapes are owned by the backend; this package decodes them into
// the engine's domain types and nothing more. No retries: a failed fetch is
// terminal for the page load and a failed engagement call is rolled back by
// the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vietvivu/vvfeed/internal/auth"
	"github.com/vietvivu/vvfeed/internal/feed"
)

var (
	_ feed.VideoSource       = (*Client)(nil)
	_ feed.EngagementService = (*Client)(nil)
)

const defaultTimeout = 15 * time.Second

type Config struct {
	// BaseURL is the API origin, e.g. "https://api.vietvivu.vn".
	BaseURL string
	// SiteURL is the public site origin used to build deep links; defaults
	// to BaseURL.
	SiteURL string
	// Tokens supplies the bearer token; nil means anonymous requests.
	Tokens auth.TokenSource
	// Timeout for each request; defaults to 15s.
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	siteURL    string
	tokens     auth.TokenSource
	sessionID  string
	httpClient *http.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	siteURL := cfg.SiteURL
	if siteURL == "" {
		siteURL = cfg.BaseURL
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		siteURL:   strings.TrimRight(siteURL, "/"),
		tokens:    cfg.Tokens,
		sessionID: uuid.NewString(),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SessionID is the per-client correlation id sent with every request.
func (c *Client) SessionID() string { return c.sessionID }

// videoRecord is the backend's wire shape for one approved video.
type videoRecord struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	VideoURL         string    `json:"videoUrl"`
	UploaderUsername string    `json:"uploaderUsername"`
	UploadedAt       time.Time `json:"uploadedAt"`
	LikeCount        int       `json:"likeCount"`
	TourID           string    `json:"tourId"`
}

func (r videoRecord) toDomain() feed.Video {
	return feed.Video{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		VideoURL:         r.VideoURL,
		UploaderUsername: r.UploaderUsername,
		UploadedAt:       r.UploadedAt,
		LikeCount:        r.LikeCount,
		TourID:           r.TourID,
	}
}

// FetchApprovedVideos returns the approved-video list in server order.
// Approval is a server-side filter; the client never re-filters.
func (c *Client) FetchApprovedVideos(ctx context.Context) ([]feed.Video, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/videos/approved", nil)
	if err != nil {
		return nil, err
	}

	var records []videoRecord
	if err := c.doJSON(req, &records); err != nil {
		return nil, fmt.Errorf("fetch approved videos: %w", err)
	}

	videos := make([]feed.Video, 0, len(records))
	for _, r := range records {
		videos = append(videos, r.toDomain())
	}
	return videos, nil
}

// SetLiked persists a like toggle. The response body carries nothing the
// caller needs: the optimistic update already happened locally.
func (c *Client) SetLiked(ctx context.Context, videoID string, liked bool) error {
	body, err := json.Marshal(struct {
		Liked bool `json:"liked"`
	}{Liked: liked})
	if err != nil {
		return fmt.Errorf("marshal like request: %w", err)
	}

	path := "/api/videos/" + url.PathEscape(videoID) + "/like"
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.doJSON(req, nil); err != nil {
		return fmt.Errorf("set liked: %w", err)
	}
	return nil
}

// Tour is the slice of the tour record the feed surfaces next to a video.
type Tour struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	PricePerPerson float64 `json:"pricePerPerson"`
}

// GetTour fetches the bookable tour a video deep-links to.
func (c *Client) GetTour(ctx context.Context, tourID string) (*Tour, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/tours/"+url.PathEscape(tourID), nil)
	if err != nil {
		return nil, err
	}

	var tour Tour
	if err := c.doJSON(req, &tour); err != nil {
		return nil, fmt.Errorf("get tour %s: %w", tourID, err)
	}
	return &tour, nil
}

// TourURL builds the public deep link for a tour detail page.
func (c *Client) TourURL(tourID string) string {
	return c.siteURL + "/tours/" + url.PathEscape(tourID)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("X-Session-ID", c.sessionID)
	if c.tokens != nil {
		token, err := c.tokens.Token()
		switch {
		case err == nil:
			req.Header.Set("Authorization", "Bearer "+token)
		case errors.Is(err, auth.ErrNoToken):
			// anonymous request
		default:
			return nil, fmt.Errorf("session token: %w", err)
		}
	}
	return req, nil
}

// doJSON executes the request and decodes a 2xx response into out. A nil
// out discards the body.
func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
