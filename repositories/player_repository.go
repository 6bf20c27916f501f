package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/foot-api/models"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerTeamInvalid = errors.New("player references an unknown team")
)

type PlayerRepository interface {
	CreateAll(ctx context.Context, players []*models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context) ([]*models.Player, error)
	UpdateName(ctx context.Context, id int, name string) error
	UpdateGuardian(ctx context.Context, id int, guardian bool) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

// CreateAll inserts the whole batch in one transaction; the team is resolved
// by name. An unknown team name fails the batch.
func (r *postgresPlayerRepository) CreateAll(ctx context.Context, players []*models.Player) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO players (name, team_id, guardian)
		SELECT $1, t.id, $3 FROM teams t WHERE t.name = $2
		RETURNING id`

	for _, player := range players {
		err := tx.QueryRowContext(ctx, query, player.Name, player.TeamName, player.Guardian).Scan(&player.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: %q", ErrPlayerTeamInvalid, player.TeamName)
			}
			return err
		}
	}

	return tx.Commit()
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT p.id, p.name, t.name, p.guardian
		FROM players p
		JOIN teams t ON t.id = p.team_id
		WHERE p.id = $1`

	player := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&player.ID, &player.Name, &player.TeamName, &player.Guardian)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]*models.Player, error) {
	query := `
		SELECT p.id, p.name, t.name, p.guardian
		FROM players p
		JOIN teams t ON t.id = p.team_id
		ORDER BY p.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		var player models.Player
		if scanErr := rows.Scan(&player.ID, &player.Name, &player.TeamName, &player.Guardian); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, &player)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) UpdateName(ctx context.Context, id int, name string) error {
	query := `UPDATE players SET name = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, name, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateGuardian(ctx context.Context, id int, guardian bool) error {
	query := `UPDATE players SET guardian = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, guardian, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
