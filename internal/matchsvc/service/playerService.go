package service

import (
	"context"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/avvvet/match-services/internal/matchsvc/store"
)

type PlayerService struct {
	store *store.PlayerStore
}

func NewPlayerService(store *store.PlayerStore) *PlayerService {
	return &PlayerService{store: store}
}

func (s *PlayerService) GetPlayers(ctx context.Context, gameID int64) ([]*models.PlayerGame, error) {
	return s.store.GetPlayersByGameID(ctx, gameID)
}
