package session

import (
	"context"
	"sync"
)

// Manager hands out one session per game, loading ledgers from the store on
// first use. A game's session is the single owner of its in-memory state.
type Manager struct {
	mu       sync.Mutex
	store    Store
	opts     []Option
	sessions map[int64]*MatchSession
}

func NewManager(store Store, opts ...Option) *Manager {
	return &Manager{
		store:    store,
		opts:     opts,
		sessions: make(map[int64]*MatchSession),
	}
}

// Get returns the live session for a game, loading it if needed.
func (mgr *Manager) Get(ctx context.Context, gameID int64) (*MatchSession, error) {
	mgr.mu.Lock()
	if sess, ok := mgr.sessions[gameID]; ok {
		mgr.mu.Unlock()
		return sess, nil
	}
	mgr.mu.Unlock()

	sess, err := Load(ctx, mgr.store, gameID, mgr.opts...)
	if err != nil {
		return nil, err
	}

	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	if existing, ok := mgr.sessions[gameID]; ok {
		return existing, nil
	}
	mgr.sessions[gameID] = sess
	return sess, nil
}

// Release drops a finished game's session.
func (mgr *Manager) Release(gameID int64) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	delete(mgr.sessions, gameID)
}
