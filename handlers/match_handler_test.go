package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/foot-api/handlers"
	"github.com/Dosada05/foot-api/models"
	"github.com/Dosada05/foot-api/repositories"
	"github.com/Dosada05/foot-api/routes"
	"github.com/Dosada05/foot-api/services"
	"github.com/go-chi/chi/v5"
)

// Stub repositories seeded with the reference data set: teams E1–E3, players
// Joe/J3/J6, matches 2 (E2 2-0 E3 at S2) and 3 (E1 vs E3 at S3, no goals).

type stubPlayerRepo struct {
	players map[int]models.Player
	nextID  int
}

func newStubPlayerRepo(players ...models.Player) *stubPlayerRepo {
	repo := &stubPlayerRepo{players: make(map[int]models.Player), nextID: 1}
	for _, p := range players {
		repo.players[p.ID] = p
		if p.ID >= repo.nextID {
			repo.nextID = p.ID + 1
		}
	}
	return repo
}

func (s *stubPlayerRepo) CreateAll(ctx context.Context, players []*models.Player) error {
	for _, p := range players {
		p.ID = s.nextID
		s.nextID++
		s.players[p.ID] = *p
	}
	return nil
}

func (s *stubPlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	p, ok := s.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return &p, nil
}

func (s *stubPlayerRepo) List(ctx context.Context) ([]*models.Player, error) {
	players := make([]*models.Player, 0, len(s.players))
	for id := 1; id < s.nextID; id++ {
		if p, ok := s.players[id]; ok {
			cp := p
			players = append(players, &cp)
		}
	}
	return players, nil
}

func (s *stubPlayerRepo) UpdateName(ctx context.Context, id int, name string) error {
	p, ok := s.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.Name = name
	s.players[id] = p
	return nil
}

func (s *stubPlayerRepo) UpdateGuardian(ctx context.Context, id int, guardian bool) error {
	p, ok := s.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.Guardian = guardian
	s.players[id] = p
	return nil
}

type stubTeamRepo struct {
	teams  map[int]models.Team
	nextID int
}

func newStubTeamRepo(teams ...models.Team) *stubTeamRepo {
	repo := &stubTeamRepo{teams: make(map[int]models.Team), nextID: 1}
	for _, team := range teams {
		repo.teams[team.ID] = team
		if team.ID >= repo.nextID {
			repo.nextID = team.ID + 1
		}
	}
	return repo
}

func (s *stubTeamRepo) Create(ctx context.Context, team *models.Team) error {
	for _, existing := range s.teams {
		if existing.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	team.ID = s.nextID
	s.nextID++
	s.teams[team.ID] = *team
	return nil
}

func (s *stubTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, ok := s.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &team, nil
}

func (s *stubTeamRepo) List(ctx context.Context) ([]*models.Team, error) {
	teams := make([]*models.Team, 0, len(s.teams))
	for id := 1; id < s.nextID; id++ {
		if team, ok := s.teams[id]; ok {
			cp := team
			teams = append(teams, &cp)
		}
	}
	return teams, nil
}

func (s *stubTeamRepo) UpdateCrestKey(ctx context.Context, id int, key string) error {
	team, ok := s.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.CrestKey = &key
	s.teams[id] = team
	return nil
}

type stubMatchRepo struct {
	matches map[int]models.Match
	goals   map[int][]models.PlayerScorer
	listErr error
}

func (s *stubMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	m, ok := s.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return &m, nil
}

func (s *stubMatchRepo) List(ctx context.Context) ([]*models.Match, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	matches := make([]*models.Match, 0, len(s.matches))
	for id := 1; id <= 16; id++ {
		if m, ok := s.matches[id]; ok {
			cp := m
			matches = append(matches, &cp)
		}
	}
	return matches, nil
}

func (s *stubMatchRepo) GoalsByMatch(ctx context.Context, matchID int) ([]models.PlayerScorer, error) {
	return append([]models.PlayerScorer(nil), s.goals[matchID]...), nil
}

func (s *stubMatchRepo) AppendGoals(ctx context.Context, matchID int, goals []models.PlayerScorer) error {
	if _, ok := s.matches[matchID]; !ok {
		return repositories.ErrMatchNotFound
	}
	s.goals[matchID] = append(s.goals[matchID], goals...)
	return nil
}

func newTestRouter() (*chi.Mux, *stubMatchRepo) {
	teamE1 := models.Team{ID: 1, Name: "E1"}
	teamE2 := models.Team{ID: 2, Name: "E2"}
	teamE3 := models.Team{ID: 3, Name: "E3"}

	joe := models.Player{ID: 1, Name: "Joe", TeamName: "E1", Guardian: true}
	j3 := models.Player{ID: 3, Name: "J3", TeamName: "E2"}
	j6 := models.Player{ID: 6, Name: "J6", TeamName: "E3"}

	matchRepo := &stubMatchRepo{
		matches: map[int]models.Match{
			2: {
				ID:       2,
				TeamA:    models.TeamMatch{Team: teamE2},
				TeamB:    models.TeamMatch{Team: teamE3},
				Stadium:  "S2",
				Datetime: time.Date(2023, 1, 1, 14, 0, 0, 0, time.UTC),
			},
			3: {
				ID:       3,
				TeamA:    models.TeamMatch{Team: teamE1},
				TeamB:    models.TeamMatch{Team: teamE3},
				Stadium:  "S3",
				Datetime: time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC),
			},
		},
		goals: map[int][]models.PlayerScorer{
			2: {
				{Player: j3, ScoreTime: 70},
				{Player: j6, ScoreTime: 80, IsOG: true},
			},
			3: {},
		},
	}
	playerRepo := newStubPlayerRepo(joe, j3, j6)
	teamRepo := newStubTeamRepo(teamE1, teamE2, teamE3)

	matchService := services.NewMatchService(matchRepo, services.NewGoalValidator(playerRepo))
	playerService := services.NewPlayerService(playerRepo)
	teamService := services.NewTeamService(teamRepo, nil)

	router := chi.NewRouter()
	routes.SetupRoutes(router,
		handlers.NewMatchHandler(matchService),
		handlers.NewPlayerHandler(playerService),
		handlers.NewTeamHandler(teamService),
	)
	return router, matchRepo
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode error body %q: %v", rec.Body.String(), err)
	}
	return envelope.Error
}

func TestReadMatchByID(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/matches/2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var match models.Match
	if err := json.Unmarshal(rec.Body.Bytes(), &match); err != nil {
		t.Fatalf("failed to decode match: %v", err)
	}

	if match.ID != 2 || match.Stadium != "S2" {
		t.Errorf("unexpected match identity: id=%d stadium=%q", match.ID, match.Stadium)
	}
	if want := time.Date(2023, 1, 1, 14, 0, 0, 0, time.UTC); !match.Datetime.Equal(want) {
		t.Errorf("expected kickoff %v, got %v", want, match.Datetime)
	}
	if match.TeamA.Score != 2 || match.TeamB.Score != 0 {
		t.Errorf("expected 2-0, got %d-%d", match.TeamA.Score, match.TeamB.Score)
	}
	if len(match.TeamA.Scorers) != 1 || match.TeamA.Scorers[0].Player.Name != "J3" {
		t.Errorf("unexpected team A scorers: %+v", match.TeamA.Scorers)
	}
	if len(match.TeamB.Scorers) != 1 || !match.TeamB.Scorers[0].IsOG {
		t.Errorf("unexpected team B scorers: %+v", match.TeamB.Scorers)
	}
}

func TestReadMatchByID_UnknownSurfacesAsServerError(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/matches/99", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for an unknown match, got %d", rec.Code)
	}
}

func TestReadMatches(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/matches", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var matches []models.Match
	if err := json.Unmarshal(rec.Body.Bytes(), &matches); err != nil {
		t.Fatalf("failed to decode matches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
}

func TestReadMatches_ListingFaultIsServerError(t *testing.T) {
	router, matchRepo := newTestRouter()
	matchRepo.listErr = context.DeadlineExceeded

	rec := doRequest(t, router, http.MethodGet, "/matches", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateMatchGoals_OK(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/matches/3/goals",
		`[{"playerId": 1, "scoreTime": 70, "isOG": false}]`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var match models.Match
	if err := json.Unmarshal(rec.Body.Bytes(), &match); err != nil {
		t.Fatalf("failed to decode match: %v", err)
	}
	if match.TeamA.Score != 1 || match.TeamB.Score != 0 {
		t.Errorf("expected 1-0 after the goal, got %d-%d", match.TeamA.Score, match.TeamB.Score)
	}

	// The goal must be reflected when the match is re-read.
	rec = doRequest(t, router, http.MethodGet, "/matches/3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("re-read failed with %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &match); err != nil {
		t.Fatalf("failed to decode re-read match: %v", err)
	}
	if match.TeamA.Score != 1 || len(match.TeamA.Scorers) != 1 {
		t.Errorf("goal not visible on re-read: %+v", match.TeamA)
	}
}

func TestCreateMatchGoals_KO(t *testing.T) {
	router, matchRepo := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/matches/3/goals",
		`[{"playerId": 1, "scoreTime": 70, "isOG": true}]`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeError(t, rec); got != "bad arguments" {
		t.Errorf("expected error message %q, got %q", "bad arguments", got)
	}
	if len(matchRepo.goals[3]) != 0 {
		t.Errorf("rejected batch must leave the match untouched, stored goals: %+v", matchRepo.goals[3])
	}
}

func TestCreateMatchGoals_UnknownMatchSurfacesAsServerError(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/matches/42/goals",
		`[{"playerId": 1, "scoreTime": 70, "isOG": false}]`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for an unknown match, got %d", rec.Code)
	}
}

func TestUpdatePlayerName(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodPut, "/players/1/name", `{"name": "Joseph"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var player models.Player
	if err := json.Unmarshal(rec.Body.Bytes(), &player); err != nil {
		t.Fatalf("failed to decode player: %v", err)
	}
	if player.Name != "Joseph" || !player.Guardian {
		t.Errorf("unexpected player after rename: %+v", player)
	}
}

func TestUpdatePlayerGuardian(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodPut, "/players/1/guardian", `{"guardian": false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var player models.Player
	if err := json.Unmarshal(rec.Body.Bytes(), &player); err != nil {
		t.Fatalf("failed to decode player: %v", err)
	}
	if player.Guardian {
		t.Errorf("guardian flag not cleared: %+v", player)
	}
}

func TestCreateTeam(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/teams", `{"name": "E4"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var team models.Team
	if err := json.Unmarshal(rec.Body.Bytes(), &team); err != nil {
		t.Fatalf("failed to decode team: %v", err)
	}
	if team.ID == 0 || team.Name != "E4" {
		t.Errorf("unexpected created team: %+v", team)
	}

	rec = doRequest(t, router, http.MethodPost, "/teams", `{"name": "E4"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for a duplicate team name, got %d", rec.Code)
	}
}

func TestCreatePlayers(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/players",
		`[{"name": "J7", "teamName": "E3", "guardian": false}]`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var players []models.Player
	if err := json.Unmarshal(rec.Body.Bytes(), &players); err != nil {
		t.Fatalf("failed to decode players: %v", err)
	}
	if len(players) != 1 || players[0].ID == 0 || players[0].Name != "J7" {
		t.Errorf("unexpected created players: %+v", players)
	}
}
