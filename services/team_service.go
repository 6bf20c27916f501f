package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dosada05/foot-api/models"
	"github.com/Dosada05/foot-api/repositories"
	"github.com/Dosada05/foot-api/storage"
	"github.com/google/uuid"
)

type CreateTeamInput struct {
	Name string `json:"name"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]*models.Team, error)
	UploadCrest(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader // nil when crest storage is not configured
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{Name: name}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, err
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	s.resolveCrestURL(team)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, team := range teams {
		s.resolveCrestURL(team)
	}
	return teams, nil
}

// UploadCrest stores the image under a fresh object key, records the key on
// the team, and deletes the previous crest best-effort.
func (s *teamService) UploadCrest(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrCrestStorageOff
	}

	team, err := s.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/crest-%s", teamID, uuid.NewString())
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload crest for team %d: %w", teamID, err)
	}

	if err := s.teamRepo.UpdateCrestKey(ctx, teamID, result.Key); err != nil {
		return nil, err
	}

	if team.CrestKey != nil && *team.CrestKey != result.Key {
		_ = s.uploader.Delete(ctx, *team.CrestKey)
	}

	team.CrestKey = &result.Key
	team.CrestURL = &result.Location
	return team, nil
}

func (s *teamService) resolveCrestURL(team *models.Team) {
	if s.uploader == nil || team.CrestKey == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*team.CrestKey); url != "" {
		team.CrestURL = &url
	}
}
