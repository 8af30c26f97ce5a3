package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/avvvet/match-services/internal/matchsvc/models"
)

// Store is the persistence collaborator behind a session: typed records with
// simple equality filters, nil on no match, error on transport failure.
type Store interface {
	GetGame(ctx context.Context, gameID int64) (*models.Game, error)
	UpdateGameStatus(ctx context.Context, gameID int64, status string) error

	ListPeriods(ctx context.Context, gameID int64) ([]*models.Period, error)
	CreatePeriod(ctx context.Context, p *models.Period) (*models.Period, error)
	ClosePeriod(ctx context.Context, periodID int64, endTimeMS int64) error

	ListStoppages(ctx context.Context, gameID int64) ([]*models.Stoppage, error)
	CreateStoppage(ctx context.Context, s *models.Stoppage) (*models.Stoppage, error)
	CloseStoppage(ctx context.Context, stoppageID int64, endGameTime int64) error

	ListSubstitutions(ctx context.Context, gameID int64) ([]*models.Substitution, error)
	CreateSubstitution(ctx context.Context, s *models.Substitution) (*models.Substitution, error)
	UpdateSubstitution(ctx context.Context, s *models.Substitution) (*models.Substitution, error)
	DeleteSubstitution(ctx context.Context, subID int64) error

	ListPlayers(ctx context.Context, gameID int64) ([]*models.PlayerGame, error)

	ListGoals(ctx context.Context, gameID int64) ([]*models.GoalEvent, error)
	CreateGoal(ctx context.Context, g *models.GoalEvent) (*models.GoalEvent, error)
	ListCards(ctx context.Context, gameID int64) ([]*models.DisciplineEvent, error)
	CreateCard(ctx context.Context, c *models.DisciplineEvent) (*models.DisciplineEvent, error)
}

// StatusHook is notified after a game status sync write succeeds. Called
// outside the session lock.
type StatusHook func(gameID int64, status string, stage Stage)

// MatchSession is the one state container for a live game: the period,
// stoppage, substitution and event ledgers plus the roster, with every
// mutation going validate -> optimistic apply -> persist -> replace or roll
// back. Derived views (stage, field status, playing times) are pure
// functions of the ledgers, cached by a version counter.
type MatchSession struct {
	mu    sync.Mutex
	store Store
	now   func() time.Time

	game      *models.Game
	periods   []*models.Period
	stoppages []*models.Stoppage
	subs      []*models.Substitution
	players   []*models.PlayerGame
	goals     []*models.GoalEvent
	cards     []*models.DisciplineEvent

	// substitution ids confirmed during a break, waiting for the next kickoff
	queued map[int64]bool

	lastSyncedStatus string
	onStatusChange   StatusHook

	version   uint64
	statuses  map[int64]FieldStatus // cached field statuses
	statusVer uint64
}

type Option func(*MatchSession)

// WithClock overrides the wall-clock source, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *MatchSession) { m.now = now }
}

func WithStatusHook(hook StatusHook) Option {
	return func(m *MatchSession) { m.onStatusChange = hook }
}

// Load reads every ledger for the game and returns a ready session.
func Load(ctx context.Context, store Store, gameID int64, opts ...Option) (*MatchSession, error) {
	game, err := store.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	m := &MatchSession{
		store:            store,
		now:              time.Now,
		game:             game,
		queued:           make(map[int64]bool),
		lastSyncedStatus: game.Status,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.periods, err = store.ListPeriods(ctx, gameID); err != nil {
		return nil, err
	}
	sort.Slice(m.periods, func(i, j int) bool {
		return m.periods[i].PeriodNumber < m.periods[j].PeriodNumber
	})
	if m.stoppages, err = store.ListStoppages(ctx, gameID); err != nil {
		return nil, err
	}
	if m.subs, err = store.ListSubstitutions(ctx, gameID); err != nil {
		return nil, err
	}
	if m.players, err = store.ListPlayers(ctx, gameID); err != nil {
		return nil, err
	}
	if m.goals, err = store.ListGoals(ctx, gameID); err != nil {
		return nil, err
	}
	if m.cards, err = store.ListCards(ctx, gameID); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MatchSession) Game() models.Game {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.game
}

// bump invalidates every cached derived view.
func (m *MatchSession) bump() {
	m.version++
}

func (m *MatchSession) playerLocked(playerGameID int64) *models.PlayerGame {
	for _, p := range m.players {
		if p.ID == playerGameID {
			return p
		}
	}
	return nil
}

func (m *MatchSession) subLocked(subID int64) *models.Substitution {
	for _, s := range m.subs {
		if s.ID == subID {
			return s
		}
	}
	return nil
}
