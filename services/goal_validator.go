package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/foot-api/models"
	"github.com/Dosada05/foot-api/repositories"
)

// GoalCandidate is one proposed goal event, as submitted by the caller.
type GoalCandidate struct {
	PlayerID  int  `json:"playerId"`
	ScoreTime int  `json:"scoreTime"`
	IsOG      bool `json:"isOG"`
}

// maxScoreTime tolerates extra time.
const maxScoreTime = 120

type GoalValidator struct {
	players repositories.PlayerRepository
}

func NewGoalValidator(players repositories.PlayerRepository) *GoalValidator {
	return &GoalValidator{players: players}
}

// Validate checks every candidate in submission order and returns the batch
// as goal events ready for aggregation. The first failing candidate rejects
// the entire batch; there is no partial acceptance.
//
// Checks per candidate, in order: the player exists, the player's team is one
// of the match's two sides, the own-goal flag is coherent for the submission
// path, and the score time is within 0–120.
func (v *GoalValidator) Validate(ctx context.Context, match *models.Match, candidates []GoalCandidate) ([]models.PlayerScorer, error) {
	goals := make([]models.PlayerScorer, 0, len(candidates))

	for _, candidate := range candidates {
		player, err := v.players.GetByID(ctx, candidate.PlayerID)
		if err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return nil, fmt.Errorf("%w: player %d", ErrUnknownPlayer, candidate.PlayerID)
			}
			return nil, err
		}

		if player.TeamName != match.TeamA.Team.Name && player.TeamName != match.TeamB.Team.Name {
			return nil, fmt.Errorf("%w: player %d plays for %q", ErrPlayerNotInMatch, player.ID, player.TeamName)
		}

		// The submission path cannot attribute an own goal to a defined
		// scoring side; own-goal events only enter the log through match
		// seeding. The aggregator itself handles them fully.
		if candidate.IsOG {
			return nil, ErrBadArguments
		}

		if candidate.ScoreTime < 0 || candidate.ScoreTime > maxScoreTime {
			return nil, ErrBadArguments
		}

		goals = append(goals, models.PlayerScorer{
			Player:    *player,
			ScoreTime: candidate.ScoreTime,
			IsOG:      candidate.IsOG,
		})
	}

	return goals, nil
}
