package store

import (
	"context"
	"fmt"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PeriodStore struct {
	db *pgxpool.Pool
}

func NewPeriodStore(db *pgxpool.Pool) *PeriodStore {
	return &PeriodStore{db: db}
}

func (s *PeriodStore) GetPeriodsByGameID(ctx context.Context, gameID int64) ([]*models.Period, error) {
	query := `
		SELECT id, game_id, period_number, start_time, end_time
		FROM periods
		WHERE game_id = $1
		ORDER BY period_number
	`

	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []*models.Period
	for rows.Next() {
		var p models.Period
		err := rows.Scan(
			&p.ID,
			&p.GameID,
			&p.PeriodNumber,
			&p.StartTime,
			&p.EndTime,
		)
		if err != nil {
			return nil, err
		}
		periods = append(periods, &p)
	}

	return periods, nil
}

// CreatePeriod inserts the next period row. The unique_game_period
// constraint keeps two sessions from opening the same period number twice.
func (s *PeriodStore) CreatePeriod(ctx context.Context, p *models.Period) (*models.Period, error) {
	query := `
		INSERT INTO periods (game_id, period_number, start_time)
		VALUES ($1, $2, $3)
		RETURNING id, game_id, period_number, start_time, end_time
	`

	created := &models.Period{}
	err := s.db.QueryRow(ctx, query, p.GameID, p.PeriodNumber, p.StartTime).Scan(
		&created.ID,
		&created.GameID,
		&created.PeriodNumber,
		&created.StartTime,
		&created.EndTime,
	)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return nil, fmt.Errorf("period %d already exists for game %d", p.PeriodNumber, p.GameID)
		}
		return nil, fmt.Errorf("failed to create period: %w", err)
	}

	return created, nil
}

func (s *PeriodStore) ClosePeriod(ctx context.Context, periodID int64, endTimeMS int64) error {
	query := `
		UPDATE periods
		SET end_time = $2
		WHERE id = $1 AND end_time IS NULL
	`

	tag, err := s.db.Exec(ctx, query, periodID, endTimeMS)
	if err != nil {
		return fmt.Errorf("failed to close period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("period %d not open", periodID)
	}
	return nil
}
