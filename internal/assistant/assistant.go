// Package assistant is the client half of the chat widget: it sends the
// user's text to the assistant service and decodes whatever structured
// reply comes back. All reasoning happens server-side.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TourSuggestion is a tour the assistant recommends alongside its reply.
type TourSuggestion struct {
	TourID string `json:"tourId"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Reply is the assistant's structured response. Suggestions may be empty;
// the widget then renders the message alone.
type Reply struct {
	Message     string           `json:"message"`
	Suggestions []TourSuggestion `json:"suggestions"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendMessage posts one user message and returns the assistant's reply.
func (c *Client) SendMessage(ctx context.Context, text string) (*Reply, error) {
	body, err := json.Marshal(struct {
		Message string `json:"message"`
	}{Message: text})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assistant returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var reply Reply
	if err := json.Unmarshal(respBody, &reply); err != nil {
		return nil, fmt.Errorf("unmarshal reply: %w", err)
	}
	return &reply, nil
}
