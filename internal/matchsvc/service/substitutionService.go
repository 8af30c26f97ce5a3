package service

import (
	"context"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/avvvet/match-services/internal/matchsvc/store"
)

type SubstitutionService struct {
	store *store.SubstitutionStore
}

func NewSubstitutionService(store *store.SubstitutionStore) *SubstitutionService {
	return &SubstitutionService{store: store}
}

func (s *SubstitutionService) GetSubs(ctx context.Context, gameID int64) ([]*models.Substitution, error) {
	return s.store.GetSubsByGameID(ctx, gameID)
}

func (s *SubstitutionService) CreateSub(ctx context.Context, sub *models.Substitution) (*models.Substitution, error) {
	return s.store.CreateSub(ctx, sub)
}

func (s *SubstitutionService) UpdateSub(ctx context.Context, sub *models.Substitution) (*models.Substitution, error) {
	return s.store.UpdateSub(ctx, sub)
}

func (s *SubstitutionService) DeleteSub(ctx context.Context, subID int64) error {
	return s.store.DeleteSub(ctx, subID)
}
