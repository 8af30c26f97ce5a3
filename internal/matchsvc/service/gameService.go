package service

import (
	"context"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/avvvet/match-services/internal/matchsvc/store"
)

type GameService struct {
	gameStore *store.GameStore
}

func NewGameService(gameStore *store.GameStore) *GameService {
	return &GameService{gameStore: gameStore}
}

func (s *GameService) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	return s.gameStore.GetGameByID(ctx, gameID)
}

func (s *GameService) UpdateGameStatus(ctx context.Context, gameID int64, status string) error {
	return s.gameStore.UpdateGameStatus(ctx, gameID, status)
}
