package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/foot-api/models"
	"github.com/Dosada05/foot-api/repositories"
	"github.com/Dosada05/foot-api/scoring"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentHydrations bounds the per-match event loading when listing.
const maxConcurrentHydrations = 8

type MatchService interface {
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListMatches(ctx context.Context) ([]*models.Match, error)
	SubmitGoals(ctx context.Context, matchID int, candidates []GoalCandidate) (*models.Match, error)
}

type matchService struct {
	matchRepo repositories.MatchRepository
	validator *GoalValidator
}

func NewMatchService(matchRepo repositories.MatchRepository, validator *GoalValidator) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		validator: validator,
	}
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if err := s.hydrate(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

// ListMatches hydrates the matches concurrently; submissions against
// different matches share nothing, so their reads are independent too. Any
// failure fails the whole listing, never a partial result.
func (s *matchService) ListMatches(ctx context.Context) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMatchesListFailed, err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentHydrations)
	for _, match := range matches {
		match := match
		g.Go(func() error {
			return s.hydrate(gCtx, match)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMatchesListFailed, err)
	}

	return matches, nil
}

// SubmitGoals validates the whole candidate batch against the match roster,
// recomputes the scoreboard over the full event log plus the batch, and
// appends the batch to the store in one transaction. Either every candidate
// is accepted and applied, or the match is left untouched.
func (s *matchService) SubmitGoals(ctx context.Context, matchID int, candidates []GoalCandidate) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	existing, err := s.matchRepo.GoalsByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	accepted, err := s.validator.Validate(ctx, match, candidates)
	if err != nil {
		return nil, err
	}

	updated, err := scoring.Aggregate(*match, append(existing, accepted...))
	if err != nil {
		return nil, err
	}

	if len(accepted) > 0 {
		if err := s.matchRepo.AppendGoals(ctx, matchID, accepted); err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return nil, ErrMatchNotFound
			}
			return nil, err
		}
	}

	return &updated, nil
}

func (s *matchService) hydrate(ctx context.Context, match *models.Match) error {
	events, err := s.matchRepo.GoalsByMatch(ctx, match.ID)
	if err != nil {
		return err
	}

	aggregated, err := scoring.Aggregate(*match, events)
	if err != nil {
		return err
	}
	*match = aggregated
	return nil
}
