package client

import (
	"context"
	"sync"
	"time"

	"github.com/siddug/sag/internal/models"
)

// DefaultPollInterval is the tick between state fetches
const DefaultPollInterval = 3 * time.Second

// Snapshot is one observed participant state, re-derived on every tick
type Snapshot struct {
	Participant *models.Participant
	Game        *models.Game
	VotesCast   []models.Vote
	FetchedAt   time.Time
}

// Mode returns the parsed game phase
func (s *Snapshot) Mode() models.Mode {
	m, _ := models.ParseMode(s.Game.CurrentMode)
	return m
}

// QuestionText returns the question this participant should see for the
// current round: the fake variant for the imposter, the real one for
// everyone else. Empty outside question rounds.
func (s *Snapshot) QuestionText() string {
	m := s.Mode()
	if m.Kind != models.ModeQuestion && !m.IsVote() && !m.IsResult() {
		return ""
	}
	n := s.Game.CurrentQuestion
	if n < 1 || n > len(s.Game.QuestionPairs) {
		return ""
	}
	pair := s.Game.QuestionPairs[n-1]
	if s.Participant.HasFakeQuestion {
		return pair.FakeQ
	}
	return pair.RealQ
}

// HasAnswered reports whether this participant has an answer recorded
// for the current round
func (s *Snapshot) HasAnswered() bool {
	return s.Participant.Answer != nil &&
		s.Participant.QuestionNumber != nil &&
		*s.Participant.QuestionNumber == s.Game.CurrentQuestion
}

// HasVoted reports whether this voter already voted in the current round
func (s *Snapshot) HasVoted() bool {
	for _, v := range s.VotesCast {
		if v.QuestionNumber == s.Game.CurrentQuestion {
			return true
		}
	}
	return false
}

// RoundChanged reports whether the round moved on between two snapshots.
// A restart of the same round is not visible here; pending input is
// rejected server-side in that case.
func (s *Snapshot) RoundChanged(prev *Snapshot) bool {
	return prev != nil && prev.Game.CurrentQuestion != s.Game.CurrentQuestion
}

// Tally counts votes per voted-for participant from a full game state
func Tally(state *models.GameState, questionNumber int) map[string]int {
	counts := make(map[string]int)
	for _, v := range state.Votes {
		if v.QuestionNumber == questionNumber {
			counts[v.VotedForID]++
		}
	}
	return counts
}

// Poller repeatedly fetches a participant's state. Responses are applied
// last-fetch-wins: a tick is skipped while the previous fetch is still
// in flight rather than queued behind it.
type Poller struct {
	client        *Client
	participantID string
	interval      time.Duration

	mu       sync.RWMutex
	current  *Snapshot
	inFlight bool

	// OnUpdate, if set, runs after each successful fetch with the new
	// and previous snapshots
	OnUpdate func(current, prev *Snapshot)
}

// NewPoller creates a Poller for one participant
func NewPoller(c *Client, participantID string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		client:        c,
		participantID: participantID,
		interval:      interval,
	}
}

// Current returns the most recent snapshot, or nil before the first fetch
func (p *Poller) Current() *Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Run polls until the context is cancelled. The first fetch happens
// immediately, then on every interval tick.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// Nudge triggers an immediate out-of-band fetch, typically on a
// websocket game_updated message
func (p *Poller) Nudge(ctx context.Context) {
	p.poll(ctx)
}

func (p *Poller) poll(ctx context.Context) {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return
	}
	p.inFlight = true
	p.mu.Unlock()

	view, err := p.client.GetParticipant(ctx, p.participantID)

	p.mu.Lock()
	p.inFlight = false
	if err != nil {
		// Keep the last good snapshot; the next tick retries
		p.mu.Unlock()
		return
	}
	prev := p.current
	snap := &Snapshot{
		Participant: view.Participant,
		Game:        view.Game,
		VotesCast:   view.VotesCast,
		FetchedAt:   time.Now(),
	}
	p.current = snap
	onUpdate := p.OnUpdate
	p.mu.Unlock()

	if onUpdate != nil {
		onUpdate(snap, prev)
	}
}
