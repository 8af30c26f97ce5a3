package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/avvvet/match-services/internal/matchsvc/models"
)

// fakeStore is an in-memory Store for exercising sessions without Postgres.
// failNext forces the next call of a given operation to fail, for testing
// rollback behavior.
type fakeStore struct {
	mu sync.Mutex

	game      *models.Game
	periods   []*models.Period
	stoppages []*models.Stoppage
	subs      []*models.Substitution
	players   []*models.PlayerGame
	goals     []*models.GoalEvent
	cards     []*models.DisciplineEvent

	nextID       int64
	failNext     map[string]error
	statusWrites []string
}

func newFakeStore(game *models.Game, players []*models.PlayerGame) *fakeStore {
	return &fakeStore{
		game:     game,
		players:  players,
		nextID:   100,
		failNext: make(map[string]error),
	}
}

func (f *fakeStore) failOnce(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext[op] = fmt.Errorf("%s: store unavailable", op)
}

func (f *fakeStore) takeFailure(op string) error {
	if err, ok := f.failNext[op]; ok {
		delete(f.failNext, op)
		return err
	}
	return nil
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) GetGame(ctx context.Context, gameID int64) (*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.game == nil || f.game.ID != gameID {
		return nil, nil
	}
	g := *f.game
	return &g, nil
}

func (f *fakeStore) UpdateGameStatus(ctx context.Context, gameID int64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("UpdateGameStatus"); err != nil {
		return err
	}
	f.game.Status = status
	f.statusWrites = append(f.statusWrites, status)
	return nil
}

func (f *fakeStore) ListPeriods(ctx context.Context, gameID int64) ([]*models.Period, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.Period(nil), f.periods...), nil
}

func (f *fakeStore) CreatePeriod(ctx context.Context, p *models.Period) (*models.Period, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("CreatePeriod"); err != nil {
		return nil, err
	}
	created := *p
	created.ID = f.id()
	f.periods = append(f.periods, &created)
	out := created
	return &out, nil
}

func (f *fakeStore) ClosePeriod(ctx context.Context, periodID int64, endTimeMS int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("ClosePeriod"); err != nil {
		return err
	}
	for _, p := range f.periods {
		if p.ID == periodID {
			p.EndTime.Int64 = endTimeMS
			p.EndTime.Valid = true
			return nil
		}
	}
	return fmt.Errorf("period %d not found", periodID)
}

func (f *fakeStore) ListStoppages(ctx context.Context, gameID int64) ([]*models.Stoppage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.Stoppage(nil), f.stoppages...), nil
}

func (f *fakeStore) CreateStoppage(ctx context.Context, s *models.Stoppage) (*models.Stoppage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("CreateStoppage"); err != nil {
		return nil, err
	}
	created := *s
	created.ID = f.id()
	f.stoppages = append(f.stoppages, &created)
	out := created
	return &out, nil
}

func (f *fakeStore) CloseStoppage(ctx context.Context, stoppageID int64, endGameTime int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("CloseStoppage"); err != nil {
		return err
	}
	for _, s := range f.stoppages {
		if s.ID == stoppageID {
			s.EndTime.Int64 = endGameTime
			s.EndTime.Valid = true
			return nil
		}
	}
	return fmt.Errorf("stoppage %d not found", stoppageID)
}

func (f *fakeStore) ListSubstitutions(ctx context.Context, gameID int64) ([]*models.Substitution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.Substitution(nil), f.subs...), nil
}

func (f *fakeStore) CreateSubstitution(ctx context.Context, s *models.Substitution) (*models.Substitution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("CreateSubstitution"); err != nil {
		return nil, err
	}
	created := *s
	created.ID = f.id()
	f.subs = append(f.subs, &created)
	out := created
	return &out, nil
}

func (f *fakeStore) UpdateSubstitution(ctx context.Context, s *models.Substitution) (*models.Substitution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("UpdateSubstitution"); err != nil {
		return nil, err
	}
	for i, existing := range f.subs {
		if existing.ID == s.ID {
			updated := *s
			f.subs[i] = &updated
			out := updated
			return &out, nil
		}
	}
	return nil, fmt.Errorf("substitution %d not found", s.ID)
}

func (f *fakeStore) DeleteSubstitution(ctx context.Context, subID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("DeleteSubstitution"); err != nil {
		return err
	}
	for i, s := range f.subs {
		if s.ID == subID {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("substitution %d not found", subID)
}

func (f *fakeStore) ListPlayers(ctx context.Context, gameID int64) ([]*models.PlayerGame, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.PlayerGame(nil), f.players...), nil
}

func (f *fakeStore) ListGoals(ctx context.Context, gameID int64) ([]*models.GoalEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.GoalEvent(nil), f.goals...), nil
}

func (f *fakeStore) CreateGoal(ctx context.Context, g *models.GoalEvent) (*models.GoalEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("CreateGoal"); err != nil {
		return nil, err
	}
	created := *g
	created.ID = f.id()
	f.goals = append(f.goals, &created)
	out := created
	return &out, nil
}

func (f *fakeStore) ListCards(ctx context.Context, gameID int64) ([]*models.DisciplineEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.DisciplineEvent(nil), f.cards...), nil
}

func (f *fakeStore) CreateCard(ctx context.Context, c *models.DisciplineEvent) (*models.DisciplineEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("CreateCard"); err != nil {
		return nil, err
	}
	created := *c
	created.ID = f.id()
	f.cards = append(f.cards, &created)
	out := created
	return &out, nil
}
