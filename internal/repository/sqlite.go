package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/siddug/sag/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite works best with single connection
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	// Run migrations
	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			admin_id TEXT NOT NULL,
			name TEXT NOT NULL,
			teams TEXT NOT NULL,
			question_pairs TEXT NOT NULL,
			participants_per_team INTEGER NOT NULL DEFAULT 3,
			voters_per_team INTEGER NOT NULL DEFAULT 5,
			current_mode TEXT NOT NULL DEFAULT 'signup',
			current_question INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS participants (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			name TEXT NOT NULL,
			team_name TEXT NOT NULL,
			role TEXT NOT NULL,
			has_fake_question BOOLEAN NOT NULL DEFAULT 0,
			answer TEXT,
			question_number INTEGER,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (game_id) REFERENCES games(id),
			UNIQUE(game_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS votes (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			question_number INTEGER NOT NULL,
			voter_id TEXT NOT NULL,
			voted_for_id TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (game_id) REFERENCES games(id),
			UNIQUE(voter_id, question_number)
		)`,
		`CREATE TABLE IF NOT EXISTS score_games (
			id TEXT PRIMARY KEY,
			admin_id TEXT NOT NULL,
			name TEXT NOT NULL,
			teams TEXT NOT NULL,
			score_history TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ai_game_templates (
			id TEXT PRIMARY KEY,
			admin_id TEXT NOT NULL,
			name TEXT NOT NULL,
			game_type TEXT NOT NULL,
			system_prompt TEXT NOT NULL,
			scoring_instructions TEXT,
			initial_score INTEGER NOT NULL DEFAULT 0,
			api_keys TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_participants_game ON participants(game_id)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_game_question ON votes(game_id, question_number)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_voter ON votes(voter_id)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// isUniqueViolation reports whether err is a sqlite uniqueness constraint error
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if stderrors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}

// ==================== Game Methods ====================

// CreateGame inserts a new game record
func (r *Repository) CreateGame(ctx context.Context, game *models.Game) error {
	teamsJSON, err := json.Marshal(game.Teams)
	if err != nil {
		return err
	}
	pairsJSON, err := json.Marshal(game.QuestionPairs)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO games (id, admin_id, name, teams, question_pairs,
			participants_per_team, voters_per_team, current_mode, current_question, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, game.ID, game.AdminID, game.Name, string(teamsJSON), string(pairsJSON),
		game.ParticipantsPerTeam, game.VotersPerTeam, game.CurrentMode, game.CurrentQuestion, game.CreatedAt)
	return err
}

// GetGame retrieves a game by id
func (r *Repository) GetGame(ctx context.Context, id string) (*models.Game, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, admin_id, name, teams, question_pairs,
		       participants_per_team, voters_per_team, current_mode, current_question, created_at
		FROM games WHERE id = ?
	`, id)
	return scanGame(row)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGame(row rowScanner) (*models.Game, error) {
	var game models.Game
	var teamsJSON, pairsJSON string
	err := row.Scan(&game.ID, &game.AdminID, &game.Name, &teamsJSON, &pairsJSON,
		&game.ParticipantsPerTeam, &game.VotersPerTeam, &game.CurrentMode, &game.CurrentQuestion, &game.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(teamsJSON), &game.Teams); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(pairsJSON), &game.QuestionPairs); err != nil {
		return nil, err
	}
	return &game, nil
}

// ListGames returns all games owned by an admin, newest first
func (r *Repository) ListGames(ctx context.Context, adminID string) ([]models.Game, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, admin_id, name, teams, question_pairs,
		       participants_per_team, voters_per_team, current_mode, current_question, created_at
		FROM games WHERE admin_id = ?
		ORDER BY created_at DESC
	`, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *game)
	}
	return games, rows.Err()
}

// UpdateGameMode sets the game's current mode string
func (r *Repository) UpdateGameMode(ctx context.Context, id, mode string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE games SET current_mode = ? WHERE id = ?`, mode, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// UpdateGameTeams replaces the serialized teams list (last writer wins)
func (r *Repository) UpdateGameTeams(ctx context.Context, id string, teams []models.Team) error {
	teamsJSON, err := json.Marshal(teams)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, `UPDATE games SET teams = ? WHERE id = ?`, string(teamsJSON), id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteGameCascade removes a game with all of its participants and
// votes in a single transaction so polling clients never observe a
// partially deleted game.
func (r *Repository) DeleteGameCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE game_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM participants WHERE game_id = ?`, id); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := requireRow(result); err != nil {
		return err
	}
	return tx.Commit()
}

// StartRound performs the atomic round-start sequence: reset every
// answering participant for the new round, purge any stale votes for
// that round number, re-read the freshly reset participant set, assign
// the fake question to the participant at the index chosen by pick, and
// advance the game phase. Runs in one transaction; a failure at any
// step leaves the previous round state intact.
func (r *Repository) StartRound(ctx context.Context, gameID string, questionNumber int, pick func(n int) int) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE participants
		SET answer = NULL, has_fake_question = 0, question_number = ?
		WHERE game_id = ? AND role = ?
	`, questionNumber, gameID, models.RoleParticipant)
	if err != nil {
		return "", err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM votes WHERE game_id = ? AND question_number = ?`, gameID, questionNumber)
	if err != nil {
		return "", err
	}

	// Re-read inside the transaction: assignment must see the reset
	// rows, not pre-reset data.
	rows, err := tx.QueryContext(ctx, `
		SELECT id FROM participants
		WHERE game_id = ? AND role = ?
		ORDER BY created_at, id
	`, gameID, models.RoleParticipant)
	if err != nil {
		return "", err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return "", err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return "", err
	}

	var imposterID string
	if len(ids) > 0 {
		imposterID = ids[pick(len(ids))]
		if _, err := tx.ExecContext(ctx, `UPDATE participants SET has_fake_question = 1 WHERE id = ?`, imposterID); err != nil {
			return "", err
		}
	}

	mode := fmt.Sprintf("question-%d", questionNumber)
	result, err := tx.ExecContext(ctx, `
		UPDATE games SET current_mode = ?, current_question = ? WHERE id = ?
	`, mode, questionNumber, gameID)
	if err != nil {
		return "", err
	}
	if err := requireRow(result); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return imposterID, nil
}

// ==================== Participant Methods ====================

// CreateParticipant inserts a participant; returns ErrDuplicate if the
// name is already taken within the game.
func (r *Repository) CreateParticipant(ctx context.Context, p *models.Participant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO participants (id, game_id, name, team_name, role, has_fake_question, answer, question_number, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.GameID, p.Name, p.TeamName, p.Role, p.HasFakeQuestion, p.Answer, p.QuestionNumber, p.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetParticipant retrieves a participant by id
func (r *Repository) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, game_id, name, team_name, role, has_fake_question, answer, question_number, created_at
		FROM participants WHERE id = ?
	`, id)
	return scanParticipant(row)
}

func scanParticipant(row rowScanner) (*models.Participant, error) {
	var p models.Participant
	var answer sql.NullString
	var questionNumber sql.NullInt64
	err := row.Scan(&p.ID, &p.GameID, &p.Name, &p.TeamName, &p.Role,
		&p.HasFakeQuestion, &answer, &questionNumber, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if answer.Valid {
		p.Answer = &answer.String
	}
	if questionNumber.Valid {
		n := int(questionNumber.Int64)
		p.QuestionNumber = &n
	}
	return &p, nil
}

// ListParticipants returns a game's participants in join order
func (r *Repository) ListParticipants(ctx context.Context, gameID string) ([]models.Participant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, game_id, name, team_name, role, has_fake_question, answer, question_number, created_at
		FROM participants WHERE game_id = ?
		ORDER BY created_at, id
	`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, *p)
	}
	return participants, rows.Err()
}

// ParticipantNameTaken checks whether a name is already used in a game
func (r *Repository) ParticipantNameTaken(ctx context.Context, gameID, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM participants WHERE game_id = ? AND name = ?)`,
		gameID, name).Scan(&exists)
	return exists, err
}

// SetAnswerForRound writes an answer pinned to a round number. If the
// participant's assigned round has moved on since the caller read it,
// the write is rejected with ErrStaleRound instead of resurrecting a
// previous round's answer.
func (r *Repository) SetAnswerForRound(ctx context.Context, id string, questionNumber int, answer string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE participants SET answer = ? WHERE id = ? AND question_number = ?
	`, answer, id, questionNumber)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	// Distinguish a missing participant from a stale round pin
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM participants WHERE id = ?)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrStaleRound
}

// DeleteParticipantCascade removes a participant together with votes
// cast by them and votes cast for them, so no dangling vote references
// survive removal.
func (r *Repository) DeleteParticipantCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE voter_id = ? OR voted_for_id = ?`, id, id); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM participants WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := requireRow(result); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Vote Methods ====================

// CreateVote inserts a vote; the UNIQUE(voter_id, question_number)
// index rejects a concurrent duplicate that slipped past VoteExists.
func (r *Repository) CreateVote(ctx context.Context, v *models.Vote) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO votes (id, game_id, question_number, voter_id, voted_for_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, v.ID, v.GameID, v.QuestionNumber, v.VoterID, v.VotedForID, v.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// VoteExists checks whether a voter has already voted in a round
func (r *Repository) VoteExists(ctx context.Context, voterID string, questionNumber int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM votes WHERE voter_id = ? AND question_number = ?)`,
		voterID, questionNumber).Scan(&exists)
	return exists, err
}

// ListVotes returns all votes for a game
func (r *Repository) ListVotes(ctx context.Context, gameID string) ([]models.Vote, error) {
	return r.queryVotes(ctx, `
		SELECT id, game_id, question_number, voter_id, voted_for_id, created_at
		FROM votes WHERE game_id = ? ORDER BY created_at, id
	`, gameID)
}

// ListVotesForRound returns a game's votes for one round
func (r *Repository) ListVotesForRound(ctx context.Context, gameID string, questionNumber int) ([]models.Vote, error) {
	return r.queryVotes(ctx, `
		SELECT id, game_id, question_number, voter_id, voted_for_id, created_at
		FROM votes WHERE game_id = ? AND question_number = ? ORDER BY created_at, id
	`, gameID, questionNumber)
}

func (r *Repository) queryVotes(ctx context.Context, query string, args ...interface{}) ([]models.Vote, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.GameID, &v.QuestionNumber, &v.VoterID, &v.VotedForID, &v.CreatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// ==================== Score Tracker Methods ====================

// CreateScoreGame inserts a score tracker game
func (r *Repository) CreateScoreGame(ctx context.Context, g *models.ScoreGame) error {
	teamsJSON, err := json.Marshal(g.Teams)
	if err != nil {
		return err
	}
	historyJSON, err := json.Marshal(g.History)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO score_games (id, admin_id, name, teams, score_history, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, g.ID, g.AdminID, g.Name, string(teamsJSON), string(historyJSON), g.CreatedAt)
	return err
}

// GetScoreGame retrieves a score tracker game by id
func (r *Repository) GetScoreGame(ctx context.Context, id string) (*models.ScoreGame, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, admin_id, name, teams, score_history, created_at
		FROM score_games WHERE id = ?
	`, id)
	return scanScoreGame(row)
}

func scanScoreGame(row rowScanner) (*models.ScoreGame, error) {
	var g models.ScoreGame
	var teamsJSON, historyJSON string
	err := row.Scan(&g.ID, &g.AdminID, &g.Name, &teamsJSON, &historyJSON, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(teamsJSON), &g.Teams); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(historyJSON), &g.History); err != nil {
		return nil, err
	}
	return &g, nil
}

// ListScoreGames returns an admin's score tracker games, newest first
func (r *Repository) ListScoreGames(ctx context.Context, adminID string) ([]models.ScoreGame, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, admin_id, name, teams, score_history, created_at
		FROM score_games WHERE admin_id = ?
		ORDER BY created_at DESC
	`, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []models.ScoreGame
	for rows.Next() {
		g, err := scanScoreGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

// UpdateScoreGame replaces the teams and history blobs
func (r *Repository) UpdateScoreGame(ctx context.Context, id string, teams []models.ScoreTeam, history []models.ScoreHistoryEntry) error {
	teamsJSON, err := json.Marshal(teams)
	if err != nil {
		return err
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE score_games SET teams = ?, score_history = ? WHERE id = ?`,
		string(teamsJSON), string(historyJSON), id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteScoreGame removes a score tracker game
func (r *Repository) DeleteScoreGame(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM score_games WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// ==================== AI Game Template Methods ====================

// CreateTemplate inserts an AI chat game template
func (r *Repository) CreateTemplate(ctx context.Context, t *models.AIGameTemplate) error {
	keysJSON, err := json.Marshal(t.APIKeys)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO ai_game_templates (id, admin_id, name, game_type, system_prompt, scoring_instructions, initial_score, api_keys, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.AdminID, t.Name, t.GameType, t.SystemPrompt, t.ScoringInstructions, t.InitialScore, string(keysJSON), t.CreatedAt)
	return err
}

// GetTemplate retrieves a template by id
func (r *Repository) GetTemplate(ctx context.Context, id string) (*models.AIGameTemplate, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, admin_id, name, game_type, system_prompt, scoring_instructions, initial_score, api_keys, created_at
		FROM ai_game_templates WHERE id = ?
	`, id)
	return scanTemplate(row)
}

func scanTemplate(row rowScanner) (*models.AIGameTemplate, error) {
	var t models.AIGameTemplate
	var scoring sql.NullString
	var keysJSON string
	err := row.Scan(&t.ID, &t.AdminID, &t.Name, &t.GameType, &t.SystemPrompt, &scoring, &t.InitialScore, &keysJSON, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.ScoringInstructions = scoring.String
	if err := json.Unmarshal([]byte(keysJSON), &t.APIKeys); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTemplates returns an admin's templates, newest first
func (r *Repository) ListTemplates(ctx context.Context, adminID string) ([]models.AIGameTemplate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, admin_id, name, game_type, system_prompt, scoring_instructions, initial_score, api_keys, created_at
		FROM ai_game_templates WHERE admin_id = ?
		ORDER BY created_at DESC
	`, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []models.AIGameTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// DeleteTemplate removes a template
func (r *Repository) DeleteTemplate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ai_game_templates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// requireRow converts a zero-row update/delete into ErrNotFound
func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
