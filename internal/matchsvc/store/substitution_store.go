package store

import (
	"context"
	"fmt"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubstitutionStore struct {
	db *pgxpool.Pool
}

func NewSubstitutionStore(db *pgxpool.Pool) *SubstitutionStore {
	return &SubstitutionStore{db: db}
}

func (s *SubstitutionStore) GetSubsByGameID(ctx context.Context, gameID int64) ([]*models.Substitution, error) {
	query := `
		SELECT id, game_id, in_player_id, out_player_id, sub_time, period, gk_sub
		FROM substitutions
		WHERE game_id = $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.Substitution
	for rows.Next() {
		var sub models.Substitution
		err := rows.Scan(
			&sub.ID,
			&sub.GameID,
			&sub.InPlayerID,
			&sub.OutPlayerID,
			&sub.SubTime,
			&sub.Period,
			&sub.GkSub,
		)
		if err != nil {
			return nil, err
		}
		subs = append(subs, &sub)
	}

	return subs, nil
}

func (s *SubstitutionStore) CreateSub(ctx context.Context, sub *models.Substitution) (*models.Substitution, error) {
	query := `
		INSERT INTO substitutions (game_id, in_player_id, out_player_id, period, gk_sub)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, game_id, in_player_id, out_player_id, sub_time, period, gk_sub
	`

	created := &models.Substitution{}
	err := s.db.QueryRow(ctx, query,
		sub.GameID, sub.InPlayerID, sub.OutPlayerID, sub.Period, sub.GkSub,
	).Scan(
		&created.ID,
		&created.GameID,
		&created.InPlayerID,
		&created.OutPlayerID,
		&created.SubTime,
		&created.Period,
		&created.GkSub,
	)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return nil, fmt.Errorf("invalid player reference: %s", pgErr.Message)
		}
		return nil, fmt.Errorf("failed to create substitution: %w", err)
	}

	return created, nil
}

// UpdateSub writes both sides and the confirmation time; the session decides
// what changed.
func (s *SubstitutionStore) UpdateSub(ctx context.Context, sub *models.Substitution) (*models.Substitution, error) {
	query := `
		UPDATE substitutions
		SET in_player_id = $2, out_player_id = $3, sub_time = $4, period = $5, gk_sub = $6
		WHERE id = $1
		RETURNING id, game_id, in_player_id, out_player_id, sub_time, period, gk_sub
	`

	updated := &models.Substitution{}
	err := s.db.QueryRow(ctx, query,
		sub.ID, sub.InPlayerID, sub.OutPlayerID, sub.SubTime, sub.Period, sub.GkSub,
	).Scan(
		&updated.ID,
		&updated.GameID,
		&updated.InPlayerID,
		&updated.OutPlayerID,
		&updated.SubTime,
		&updated.Period,
		&updated.GkSub,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update substitution %d: %w", sub.ID, err)
	}

	return updated, nil
}

func (s *SubstitutionStore) DeleteSub(ctx context.Context, subID int64) error {
	query := `DELETE FROM substitutions WHERE id = $1`

	tag, err := s.db.Exec(ctx, query, subID)
	if err != nil {
		return fmt.Errorf("failed to delete substitution %d: %w", subID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("substitution %d not found", subID)
	}
	return nil
}
