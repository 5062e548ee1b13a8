package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// pollServer serves a participant view whose round advances on every fetch
func pollServer(t *testing.T, fetches *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := fetches.Add(1)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"participant": map[string]interface{}{"id": "p1", "name": "Alice"},
			"game": map[string]interface{}{
				"id":               "g1",
				"current_mode":     "question-1",
				"current_question": n,
			},
			"votes_cast": []interface{}{},
		})
	}))
}

func TestPoller_Run(t *testing.T) {
	var fetches atomic.Int64
	server := pollServer(t, &fetches)
	defer server.Close()

	p := NewPoller(New(server.URL), "p1", 10*time.Millisecond)

	var mu sync.Mutex
	updates := 0
	roundChanges := 0
	p.OnUpdate = func(current, prev *Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		updates++
		if current.RoundChanged(prev) {
			roundChanges++
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := p.Run(ctx); err != context.DeadlineExceeded {
		t.Errorf("expected deadline exceeded, got %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if updates < 2 {
		t.Errorf("expected at least 2 updates, got %d", updates)
	}
	// Every fetch advances the round, so each update after the first is a change
	if roundChanges != updates-1 {
		t.Errorf("round changes = %d, want %d", roundChanges, updates-1)
	}

	snap := p.Current()
	if snap == nil {
		t.Fatal("expected a snapshot after polling")
	}
	if snap.Participant.ID != "p1" {
		t.Errorf("participant id = %q, want p1", snap.Participant.ID)
	}
	if snap.FetchedAt.IsZero() {
		t.Error("expected FetchedAt to be set")
	}
}

func TestPoller_Nudge(t *testing.T) {
	var fetches atomic.Int64
	server := pollServer(t, &fetches)
	defer server.Close()

	p := NewPoller(New(server.URL), "p1", time.Hour)

	if p.Current() != nil {
		t.Error("expected nil snapshot before the first fetch")
	}

	p.Nudge(context.Background())
	if p.Current() == nil {
		t.Fatal("expected a snapshot after nudge")
	}
	if got := fetches.Load(); got != 1 {
		t.Errorf("fetches = %d, want 1", got)
	}
}

func TestPoller_KeepsLastGoodSnapshot(t *testing.T) {
	var failing atomic.Bool
	var fetches atomic.Int64
	inner := pollServer(t, &fetches)
	defer inner.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		inner.Config.Handler.ServeHTTP(w, r)
	}))
	defer server.Close()

	p := NewPoller(New(server.URL), "p1", time.Hour)
	p.Nudge(context.Background())

	snap := p.Current()
	if snap == nil {
		t.Fatal("expected a snapshot")
	}

	failing.Store(true)
	p.Nudge(context.Background())
	if p.Current() != snap {
		t.Error("expected the last good snapshot to survive a failed fetch")
	}

	failing.Store(false)
	p.Nudge(context.Background())
	if p.Current() == snap {
		t.Error("expected a fresh snapshot once fetches recover")
	}
}

func TestNewPoller_DefaultInterval(t *testing.T) {
	p := NewPoller(New("http://unused"), "p1", 0)
	if p.interval != DefaultPollInterval {
		t.Errorf("interval = %v, want %v", p.interval, DefaultPollInterval)
	}
}
