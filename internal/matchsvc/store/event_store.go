package store

import (
	"context"
	"fmt"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventStore struct {
	db *pgxpool.Pool
}

func NewEventStore(db *pgxpool.Pool) *EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) GetGoalsByGameID(ctx context.Context, gameID int64) ([]*models.GoalEvent, error) {
	query := `
		SELECT id, game_id, team_season_id, scorer_player_game_id, assist_player_game_id,
		       is_own_goal, goal_types, game_time, period
		FROM goal_events
		WHERE game_id = $1
		ORDER BY game_time
	`

	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*models.GoalEvent
	for rows.Next() {
		var g models.GoalEvent
		err := rows.Scan(
			&g.ID,
			&g.GameID,
			&g.TeamSeasonID,
			&g.ScorerID,
			&g.AssistID,
			&g.IsOwnGoal,
			&g.GoalTypes,
			&g.GameTime,
			&g.Period,
		)
		if err != nil {
			return nil, err
		}
		goals = append(goals, &g)
	}

	return goals, nil
}

func (s *EventStore) CreateGoal(ctx context.Context, g *models.GoalEvent) (*models.GoalEvent, error) {
	query := `
		INSERT INTO goal_events (game_id, team_season_id, scorer_player_game_id,
		                         assist_player_game_id, is_own_goal, goal_types, game_time, period)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, game_id, team_season_id, scorer_player_game_id, assist_player_game_id,
		          is_own_goal, goal_types, game_time, period
	`

	created := &models.GoalEvent{}
	err := s.db.QueryRow(ctx, query,
		g.GameID, g.TeamSeasonID, g.ScorerID, g.AssistID, g.IsOwnGoal, g.GoalTypes, g.GameTime, g.Period,
	).Scan(
		&created.ID,
		&created.GameID,
		&created.TeamSeasonID,
		&created.ScorerID,
		&created.AssistID,
		&created.IsOwnGoal,
		&created.GoalTypes,
		&created.GameTime,
		&created.Period,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal event: %w", err)
	}

	return created, nil
}

func (s *EventStore) GetCardsByGameID(ctx context.Context, gameID int64) ([]*models.DisciplineEvent, error) {
	query := `
		SELECT id, game_id, team_season_id, player_game_id, card_type, card_reason, game_time, period
		FROM discipline_events
		WHERE game_id = $1
		ORDER BY game_time
	`

	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*models.DisciplineEvent
	for rows.Next() {
		var c models.DisciplineEvent
		err := rows.Scan(
			&c.ID,
			&c.GameID,
			&c.TeamSeasonID,
			&c.PlayerGameID,
			&c.CardType,
			&c.CardReason,
			&c.GameTime,
			&c.Period,
		)
		if err != nil {
			return nil, err
		}
		cards = append(cards, &c)
	}

	return cards, nil
}

func (s *EventStore) CreateCard(ctx context.Context, c *models.DisciplineEvent) (*models.DisciplineEvent, error) {
	query := `
		INSERT INTO discipline_events (game_id, team_season_id, player_game_id,
		                               card_type, card_reason, game_time, period)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, game_id, team_season_id, player_game_id, card_type, card_reason, game_time, period
	`

	created := &models.DisciplineEvent{}
	err := s.db.QueryRow(ctx, query,
		c.GameID, c.TeamSeasonID, c.PlayerGameID, c.CardType, c.CardReason, c.GameTime, c.Period,
	).Scan(
		&created.ID,
		&created.GameID,
		&created.TeamSeasonID,
		&created.PlayerGameID,
		&created.CardType,
		&created.CardReason,
		&created.GameTime,
		&created.Period,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create discipline event: %w", err)
	}

	return created, nil
}
