package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GameStore struct {
	db *pgxpool.Pool
}

func NewGameStore(db *pgxpool.Pool) *GameStore {
	return &GameStore{db: db}
}

func (s *GameStore) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	query := `
		SELECT id, home_team_season_id, away_team_season_id,
		       players_per_side, regulation_periods, period_minutes,
		       overtime_periods, overtime_if_tied, shootout_if_tied,
		       status, created_at, updated_at
		FROM games
		WHERE id = $1
	`

	game := &models.Game{}
	err := s.db.QueryRow(ctx, query, gameID).Scan(
		&game.ID,
		&game.HomeTeamSeasonID,
		&game.AwayTeamSeasonID,
		&game.Settings.PlayersPerSide,
		&game.Settings.RegulationPeriods,
		&game.Settings.PeriodMinutes,
		&game.Settings.OvertimePeriods,
		&game.Settings.OvertimeIfTied,
		&game.Settings.ShootoutIfTied,
		&game.Status,
		&game.CreatedAt,
		&game.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Game not found
		}
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	return game, nil
}

// UpdateGameStatus is the best-effort status sync target for the stage
// machine.
func (s *GameStore) UpdateGameStatus(ctx context.Context, gameID int64, status string) error {
	query := `
		UPDATE games
		SET status = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, gameID, status)
	if err != nil {
		return fmt.Errorf("failed to update game status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %d not found", gameID)
	}
	return nil
}
