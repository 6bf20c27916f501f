package scoring

import (
	"errors"
	"fmt"

	"github.com/Dosada05/foot-api/models"
)

// ErrNoSide is returned when a goal event references a player whose team is
// on neither side of the match.
var ErrNoSide = errors.New("goal event attributable to neither side of the match")

// Aggregate recomputes both sides of a match from the full goal event log.
// Any scores or scorer lists already present on the match are discarded: the
// result is a pure function of the event log, so replaying the same log any
// number of times yields the same match.
//
// Each event is appended to the scorer list of the scoring player's own team
// (the attribution side), preserving log order. The incremented score belongs
// to the same side for a regular goal and to the opposing side for an own
// goal.
func Aggregate(match models.Match, events []models.PlayerScorer) (models.Match, error) {
	match.TeamA.Score = 0
	match.TeamB.Score = 0
	match.TeamA.Scorers = make([]models.PlayerScorer, 0, len(events))
	match.TeamB.Scorers = make([]models.PlayerScorer, 0, len(events))

	for _, event := range events {
		attribution, opponent, err := sides(&match, event)
		if err != nil {
			return models.Match{}, err
		}

		attribution.Scorers = append(attribution.Scorers, event)

		if event.IsOG {
			opponent.Score++
		} else {
			attribution.Score++
		}
	}

	return match, nil
}

func sides(match *models.Match, event models.PlayerScorer) (attribution, opponent *models.TeamMatch, err error) {
	switch event.Player.TeamName {
	case match.TeamA.Team.Name:
		return &match.TeamA, &match.TeamB, nil
	case match.TeamB.Team.Name:
		return &match.TeamB, &match.TeamA, nil
	default:
		return nil, nil, fmt.Errorf("%w: player %d (%s) plays for %q, match %d is %q vs %q",
			ErrNoSide, event.Player.ID, event.Player.Name, event.Player.TeamName,
			match.ID, match.TeamA.Team.Name, match.TeamB.Team.Name)
	}
}
