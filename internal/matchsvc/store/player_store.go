package store

import (
	"context"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlayerStore struct {
	db *pgxpool.Pool
}

func NewPlayerStore(db *pgxpool.Pool) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) GetPlayersByGameID(ctx context.Context, gameID int64) ([]*models.PlayerGame, error) {
	query := `
		SELECT id, game_id, team_season_id, player_id, name, game_status
		FROM player_games
		WHERE game_id = $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []*models.PlayerGame
	for rows.Next() {
		var p models.PlayerGame
		err := rows.Scan(
			&p.ID,
			&p.GameID,
			&p.TeamSeasonID,
			&p.PlayerID,
			&p.Name,
			&p.GameStatus,
		)
		if err != nil {
			return nil, err
		}
		players = append(players, &p)
	}

	return players, nil
}
