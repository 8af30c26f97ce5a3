package service

import (
	"context"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/avvvet/match-services/internal/matchsvc/store"
)

type StoppageService struct {
	store *store.StoppageStore
}

func NewStoppageService(store *store.StoppageStore) *StoppageService {
	return &StoppageService{store: store}
}

func (s *StoppageService) GetStoppages(ctx context.Context, gameID int64) ([]*models.Stoppage, error) {
	return s.store.GetStoppagesByGameID(ctx, gameID)
}

func (s *StoppageService) CreateStoppage(ctx context.Context, st *models.Stoppage) (*models.Stoppage, error) {
	return s.store.CreateStoppage(ctx, st)
}

func (s *StoppageService) CloseStoppage(ctx context.Context, stoppageID int64, endGameTime int64) error {
	return s.store.CloseStoppage(ctx, stoppageID, endGameTime)
}
