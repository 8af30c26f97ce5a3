package service

import (
	"context"

	"github.com/avvvet/match-services/internal/matchsvc/models"
)

// MatchStore composes the record services into the session.Store
// collaborator handed to every MatchSession.
type MatchStore struct {
	Games   *GameService
	Periods *PeriodService
	Stops   *StoppageService
	Subs    *SubstitutionService
	Players *PlayerService
	Events  *EventService
}

func NewMatchStore(games *GameService, periods *PeriodService, stops *StoppageService,
	subs *SubstitutionService, players *PlayerService, events *EventService) *MatchStore {
	return &MatchStore{
		Games:   games,
		Periods: periods,
		Stops:   stops,
		Subs:    subs,
		Players: players,
		Events:  events,
	}
}

func (m *MatchStore) GetGame(ctx context.Context, gameID int64) (*models.Game, error) {
	return m.Games.GetGameByID(ctx, gameID)
}

func (m *MatchStore) UpdateGameStatus(ctx context.Context, gameID int64, status string) error {
	return m.Games.UpdateGameStatus(ctx, gameID, status)
}

func (m *MatchStore) ListPeriods(ctx context.Context, gameID int64) ([]*models.Period, error) {
	return m.Periods.GetPeriods(ctx, gameID)
}

func (m *MatchStore) CreatePeriod(ctx context.Context, p *models.Period) (*models.Period, error) {
	return m.Periods.CreatePeriod(ctx, p)
}

func (m *MatchStore) ClosePeriod(ctx context.Context, periodID int64, endTimeMS int64) error {
	return m.Periods.ClosePeriod(ctx, periodID, endTimeMS)
}

func (m *MatchStore) ListStoppages(ctx context.Context, gameID int64) ([]*models.Stoppage, error) {
	return m.Stops.GetStoppages(ctx, gameID)
}

func (m *MatchStore) CreateStoppage(ctx context.Context, s *models.Stoppage) (*models.Stoppage, error) {
	return m.Stops.CreateStoppage(ctx, s)
}

func (m *MatchStore) CloseStoppage(ctx context.Context, stoppageID int64, endGameTime int64) error {
	return m.Stops.CloseStoppage(ctx, stoppageID, endGameTime)
}

func (m *MatchStore) ListSubstitutions(ctx context.Context, gameID int64) ([]*models.Substitution, error) {
	return m.Subs.GetSubs(ctx, gameID)
}

func (m *MatchStore) CreateSubstitution(ctx context.Context, s *models.Substitution) (*models.Substitution, error) {
	return m.Subs.CreateSub(ctx, s)
}

func (m *MatchStore) UpdateSubstitution(ctx context.Context, s *models.Substitution) (*models.Substitution, error) {
	return m.Subs.UpdateSub(ctx, s)
}

func (m *MatchStore) DeleteSubstitution(ctx context.Context, subID int64) error {
	return m.Subs.DeleteSub(ctx, subID)
}

func (m *MatchStore) ListPlayers(ctx context.Context, gameID int64) ([]*models.PlayerGame, error) {
	return m.Players.GetPlayers(ctx, gameID)
}

func (m *MatchStore) ListGoals(ctx context.Context, gameID int64) ([]*models.GoalEvent, error) {
	return m.Events.GetGoals(ctx, gameID)
}

func (m *MatchStore) CreateGoal(ctx context.Context, g *models.GoalEvent) (*models.GoalEvent, error) {
	return m.Events.CreateGoal(ctx, g)
}

func (m *MatchStore) ListCards(ctx context.Context, gameID int64) ([]*models.DisciplineEvent, error) {
	return m.Events.GetCards(ctx, gameID)
}

func (m *MatchStore) CreateCard(ctx context.Context, c *models.DisciplineEvent) (*models.DisciplineEvent, error) {
	return m.Events.CreateCard(ctx, c)
}
