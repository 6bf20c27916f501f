package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Dosada05/foot-api/models"
	"github.com/Dosada05/foot-api/repositories"
)

type PlayerService interface {
	ListPlayers(ctx context.Context) ([]*models.Player, error)
	CreatePlayers(ctx context.Context, toCreate []*models.Player) ([]*models.Player, error)
	UpdatePlayerName(ctx context.Context, id int, name string) (*models.Player, error)
	UpdatePlayerGuardian(ctx context.Context, id int, guardian bool) (*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository) PlayerService {
	return &playerService{playerRepo: playerRepo}
}

func (s *playerService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	return s.playerRepo.List(ctx)
}

func (s *playerService) CreatePlayers(ctx context.Context, toCreate []*models.Player) ([]*models.Player, error) {
	for _, player := range toCreate {
		if strings.TrimSpace(player.Name) == "" {
			return nil, ErrPlayerNameRequired
		}
		if strings.TrimSpace(player.TeamName) == "" {
			return nil, ErrTeamNameRequired
		}
	}

	if err := s.playerRepo.CreateAll(ctx, toCreate); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return toCreate, nil
}

func (s *playerService) UpdatePlayerName(ctx context.Context, id int, name string) (*models.Player, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrPlayerNameRequired
	}

	if err := s.playerRepo.UpdateName(ctx, id, name); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return s.playerRepo.GetByID(ctx, id)
}

func (s *playerService) UpdatePlayerGuardian(ctx context.Context, id int, guardian bool) (*models.Player, error) {
	if err := s.playerRepo.UpdateGuardian(ctx, id, guardian); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return s.playerRepo.GetByID(ctx, id)
}
