package service

import (
	"context"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/avvvet/match-services/internal/matchsvc/store"
)

type PeriodService struct {
	store *store.PeriodStore
}

func NewPeriodService(store *store.PeriodStore) *PeriodService {
	return &PeriodService{store: store}
}

func (s *PeriodService) GetPeriods(ctx context.Context, gameID int64) ([]*models.Period, error) {
	return s.store.GetPeriodsByGameID(ctx, gameID)
}

func (s *PeriodService) CreatePeriod(ctx context.Context, p *models.Period) (*models.Period, error) {
	return s.store.CreatePeriod(ctx, p)
}

func (s *PeriodService) ClosePeriod(ctx context.Context, periodID int64, endTimeMS int64) error {
	return s.store.ClosePeriod(ctx, periodID, endTimeMS)
}
