package models

import "time"

// Participant roles
const (
	RoleParticipant = "participant"
	RoleVoter       = "voter"
)

// Team is one scored team inside an Imposters game
type Team struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// QuestionPair is one round's real/fake question variant.
// The imposter receives FakeQ, everyone else RealQ.
type QuestionPair struct {
	RealQ string `json:"realQ"`
	FakeQ string `json:"fakeQ"`
}

// Game is an Imposters game session owned by an admin
type Game struct {
	ID                  string         `json:"id"`
	AdminID             string         `json:"admin_id"`
	Name                string         `json:"name"`
	Teams               []Team         `json:"teams"`
	QuestionPairs       []QuestionPair `json:"question_pairs"`
	ParticipantsPerTeam int            `json:"participants_per_team"`
	VotersPerTeam       int            `json:"voters_per_team"`
	CurrentMode         string         `json:"current_mode"`
	CurrentQuestion     int            `json:"current_question"`
	CreatedAt           time.Time      `json:"created_at"`
}

// TotalRounds returns the number of playable rounds
func (g *Game) TotalRounds() int {
	return len(g.QuestionPairs)
}

// HasTeam reports whether a team with the given name is defined
func (g *Game) HasTeam(name string) bool {
	for _, t := range g.Teams {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Participant is a player who joined a game, either answering
// questions (participant) or casting votes (voter)
type Participant struct {
	ID              string    `json:"id"`
	GameID          string    `json:"game_id"`
	Name            string    `json:"name"`
	TeamName        string    `json:"team_name"`
	Role            string    `json:"role"`
	HasFakeQuestion bool      `json:"has_fake_question"`
	Answer          *string   `json:"answer"`
	QuestionNumber  *int      `json:"question_number"`
	CreatedAt       time.Time `json:"created_at"`
}

// Vote is one voter's imposter guess for a round
type Vote struct {
	ID             string    `json:"id"`
	GameID         string    `json:"game_id"`
	QuestionNumber int       `json:"question_number"`
	VoterID        string    `json:"voter_id"`
	VotedForID     string    `json:"voted_for_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// GameState is the full polled view of a game: the record plus its
// nested participants and votes, recomputed by clients on every tick
type GameState struct {
	Game         *Game         `json:"game"`
	Participants []Participant `json:"participants"`
	Votes        []Vote        `json:"votes"`
}

// ScoreTeam is one team in the score tracker, with a member roster
type ScoreTeam struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
	Score   int      `json:"score"`
}

// ScoreHistoryEntry records one score adjustment
type ScoreHistoryEntry struct {
	Team      string    `json:"team"`
	Delta     int       `json:"delta"`
	Timestamp time.Time `json:"timestamp"`
}

// ScoreGame is a standalone additive score tracker session
type ScoreGame struct {
	ID        string              `json:"id"`
	AdminID   string              `json:"admin_id"`
	Name      string              `json:"name"`
	Teams     []ScoreTeam         `json:"teams"`
	History   []ScoreHistoryEntry `json:"history"`
	CreatedAt time.Time           `json:"created_at"`
}

// AIGameTemplate is an admin-authored AI chat challenge
type AIGameTemplate struct {
	ID                  string            `json:"id"`
	AdminID             string            `json:"admin_id"`
	Name                string            `json:"name"`
	GameType            string            `json:"game_type"`
	SystemPrompt        string            `json:"system_prompt"`
	ScoringInstructions string            `json:"scoring_instructions"`
	InitialScore        int               `json:"initial_score"`
	APIKeys             map[string]string `json:"-"` // provider name -> key, never serialized out
	CreatedAt           time.Time         `json:"created_at"`
}

// WSMessage is a message pushed over the per-game WebSocket room
type WSMessage struct {
	GameID  string      `json:"game_id"`
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
