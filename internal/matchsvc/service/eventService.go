package service

import (
	"context"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/avvvet/match-services/internal/matchsvc/store"
)

type EventService struct {
	store *store.EventStore
}

func NewEventService(store *store.EventStore) *EventService {
	return &EventService{store: store}
}

func (s *EventService) GetGoals(ctx context.Context, gameID int64) ([]*models.GoalEvent, error) {
	return s.store.GetGoalsByGameID(ctx, gameID)
}

func (s *EventService) CreateGoal(ctx context.Context, g *models.GoalEvent) (*models.GoalEvent, error) {
	return s.store.CreateGoal(ctx, g)
}

func (s *EventService) GetCards(ctx context.Context, gameID int64) ([]*models.DisciplineEvent, error) {
	return s.store.GetCardsByGameID(ctx, gameID)
}

func (s *EventService) CreateCard(ctx context.Context, c *models.DisciplineEvent) (*models.DisciplineEvent, error) {
	return s.store.CreateCard(ctx, c)
}
