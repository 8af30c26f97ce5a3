package store

import (
	"context"
	"fmt"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StoppageStore struct {
	db *pgxpool.Pool
}

func NewStoppageStore(db *pgxpool.Pool) *StoppageStore {
	return &StoppageStore{db: db}
}

func (s *StoppageStore) GetStoppagesByGameID(ctx context.Context, gameID int64) ([]*models.Stoppage, error) {
	query := `
		SELECT id, game_id, event_type, game_time, end_time, period, clock_should_run, details
		FROM stoppages
		WHERE game_id = $1
		ORDER BY game_time
	`

	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stoppages []*models.Stoppage
	for rows.Next() {
		var st models.Stoppage
		err := rows.Scan(
			&st.ID,
			&st.GameID,
			&st.EventType,
			&st.GameTime,
			&st.EndTime,
			&st.Period,
			&st.ClockShouldRun,
			&st.Details,
		)
		if err != nil {
			return nil, err
		}
		stoppages = append(stoppages, &st)
	}

	return stoppages, nil
}

func (s *StoppageStore) CreateStoppage(ctx context.Context, st *models.Stoppage) (*models.Stoppage, error) {
	query := `
		INSERT INTO stoppages (game_id, event_type, game_time, period, clock_should_run, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, game_id, event_type, game_time, end_time, period, clock_should_run, details
	`

	created := &models.Stoppage{}
	err := s.db.QueryRow(ctx, query,
		st.GameID, st.EventType, st.GameTime, st.Period, st.ClockShouldRun, st.Details,
	).Scan(
		&created.ID,
		&created.GameID,
		&created.EventType,
		&created.GameTime,
		&created.EndTime,
		&created.Period,
		&created.ClockShouldRun,
		&created.Details,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create stoppage: %w", err)
	}

	return created, nil
}

func (s *StoppageStore) CloseStoppage(ctx context.Context, stoppageID int64, endGameTime int64) error {
	query := `
		UPDATE stoppages
		SET end_time = $2
		WHERE id = $1 AND end_time IS NULL
	`

	tag, err := s.db.Exec(ctx, query, stoppageID, endGameTime)
	if err != nil {
		return fmt.Errorf("failed to close stoppage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("stoppage %d not open", stoppageID)
	}
	return nil
}
