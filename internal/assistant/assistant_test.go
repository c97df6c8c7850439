package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Message != "beach tours near Da Nang?" {
			t.Errorf("message = %q", req.Message)
		}
		json.NewEncoder(w).Encode(Reply{
			Message: "My Khe beach is lovely in May. Two tours fit:",
			Suggestions: []TourSuggestion{
				{TourID: "tour-12", Name: "Da Nang coastal day trip", Reason: "beach focus"},
				{TourID: "tour-31", Name: "Hoi An + My Khe combo", Reason: "nearby"},
			},
		})
	}))
	defer srv.Close()

	reply, err := New(srv.URL).SendMessage(context.Background(), "beach tours near Da Nang?")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if reply.Message == "" || len(reply.Suggestions) != 2 {
		t.Errorf("reply = %+v", reply)
	}
	if reply.Suggestions[0].TourID != "tour-12" {
		t.Errorf("first suggestion = %+v", reply.Suggestions[0])
	}
}

func TestSendMessageWithoutSuggestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"Xin chao! How can I help plan your trip?"}`))
	}))
	defer srv.Close()

	reply, err := New(srv.URL).SendMessage(context.Background(), "hi")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if len(reply.Suggestions) != 0 {
		t.Errorf("suggestions = %v, want none", reply.Suggestions)
	}
}

func TestSendMessageServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).SendMessage(context.Background(), "hi"); err == nil {
		t.Error("expected error on 503")
	}
}
