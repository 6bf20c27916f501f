package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/foot-api/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrGoalPlayerInvalid = errors.New("goal references an unknown player")
)

// MatchRepository reads match skeletons (both sides' teams, stadium, kickoff)
// and the raw goal-event log. Scores are never stored: the service layer
// recomputes them from the log on every read.
type MatchRepository interface {
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context) ([]*models.Match, error)
	GoalsByMatch(ctx context.Context, matchID int) ([]models.PlayerScorer, error)
	AppendGoals(ctx context.Context, matchID int, goals []models.PlayerScorer) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchSelect = `
	SELECT m.id, m.stadium, m.datetime,
	       ta.id, ta.name, ta.crest_key,
	       tb.id, tb.name, tb.crest_key
	FROM matches m
	JOIN teams ta ON ta.id = m.team_a_id
	JOIN teams tb ON tb.id = m.team_b_id`

func scanMatch(row interface{ Scan(...any) error }) (*models.Match, error) {
	match := &models.Match{}
	err := row.Scan(
		&match.ID,
		&match.Stadium,
		&match.Datetime,
		&match.TeamA.Team.ID,
		&match.TeamA.Team.Name,
		&match.TeamA.Team.CrestKey,
		&match.TeamB.Team.ID,
		&match.TeamB.Team.Name,
		&match.TeamB.Team.CrestKey,
	)
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := matchSelect + ` WHERE m.id = $1`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	query := matchSelect + ` ORDER BY m.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

// GoalsByMatch returns the event log in insertion order. The serial goal id
// is the ordering key; events are never re-sorted by score time.
func (r *postgresMatchRepository) GoalsByMatch(ctx context.Context, matchID int) ([]models.PlayerScorer, error) {
	query := `
		SELECT p.id, p.name, t.name, p.guardian, g.score_time, g.is_og
		FROM goals g
		JOIN players p ON p.id = g.player_id
		JOIN teams t ON t.id = p.team_id
		WHERE g.match_id = $1
		ORDER BY g.id`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]models.PlayerScorer, 0)
	for rows.Next() {
		var goal models.PlayerScorer
		if scanErr := rows.Scan(
			&goal.Player.ID,
			&goal.Player.Name,
			&goal.Player.TeamName,
			&goal.Player.Guardian,
			&goal.ScoreTime,
			&goal.IsOG,
		); scanErr != nil {
			return nil, scanErr
		}
		goals = append(goals, goal)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return goals, nil
}

// AppendGoals writes the whole batch in one transaction, locking the match
// row first so concurrent submissions against the same match are serialized
// by the store.
func (r *postgresMatchRepository) AppendGoals(ctx context.Context, matchID int, goals []models.PlayerScorer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var locked int
	err = tx.QueryRowContext(ctx, `SELECT id FROM matches WHERE id = $1 FOR UPDATE`, matchID).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMatchNotFound
		}
		return err
	}

	insert := `INSERT INTO goals (match_id, player_id, score_time, is_og) VALUES ($1, $2, $3, $4)`
	for _, goal := range goals {
		if _, err = tx.ExecContext(ctx, insert, matchID, goal.Player.ID, goal.ScoreTime, goal.IsOG); err != nil {
			return r.handleGoalError(err)
		}
	}

	return tx.Commit()
}

func (r *postgresMatchRepository) handleGoalError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
		switch pqErr.Constraint {
		case "goals_player_id_fkey":
			return ErrGoalPlayerInvalid
		case "goals_match_id_fkey":
			return ErrMatchNotFound
		}
	}
	return err
}
