package session

import (
	"context"
	"database/sql"

	"github.com/avvvet/match-services/internal/matchsvc/models"
)

// SubState is the lifecycle position of a substitution record.
type SubState string

const (
	SubPending   SubState = "pending"
	SubQueued    SubState = "queued" // confirmed during a break, waiting for next kickoff
	SubConfirmed SubState = "confirmed"
)

// Warning messages surfaced alongside a successful confirmation.
const (
	WarnShortHanded = "no replacement selected: the team will play short-handed"
	WarnQueued      = "between periods: substitution will take effect at next kickoff"
)

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

// CreatePendingSub opens a two-phase substitution. Either side may be left
// unset (0) and filled in later; at least one is required.
func (m *MatchSession) CreatePendingSub(ctx context.Context, inPlayerID, outPlayerID int64, gkSub bool) (*models.Substitution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if inPlayerID == 0 && outPlayerID == 0 {
		return nil, ErrNoPlayers
	}

	period := m.currentPeriodNumberLocked()
	if period == 0 {
		period = 1
	}
	sub := &models.Substitution{
		GameID:      m.game.ID,
		InPlayerID:  nullID(inPlayerID),
		OutPlayerID: nullID(outPlayerID),
		Period:      period,
		GkSub:       gkSub,
	}
	created, err := m.store.CreateSubstitution(ctx, sub)
	if err != nil {
		return nil, persistErr("substitution", err)
	}
	m.subs = append(m.subs, created)
	m.bump()
	return created, nil
}

// UpdatePendingSub fills in the missing side of a partial pending
// substitution. Confirmed records are immutable.
func (m *MatchSession) UpdatePendingSub(ctx context.Context, subID, inPlayerID, outPlayerID int64) (*models.Substitution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub := m.subLocked(subID)
	if sub == nil {
		return nil, ErrSubNotFound
	}
	if !sub.Pending() {
		return nil, ErrSubConfirmed
	}

	prevIn, prevOut := sub.InPlayerID, sub.OutPlayerID
	if inPlayerID != 0 {
		sub.InPlayerID = nullID(inPlayerID)
	}
	if outPlayerID != 0 {
		sub.OutPlayerID = nullID(outPlayerID)
	}
	updated, err := m.store.UpdateSubstitution(ctx, sub)
	if err != nil {
		sub.InPlayerID, sub.OutPlayerID = prevIn, prevOut
		return nil, persistErr("substitution", err)
	}
	*sub = *updated
	m.bump()
	return sub, nil
}

// ConfirmSub stamps a pending substitution with the current game time.
// Confirming with one side missing needs the override flag; an in-only
// confirmation is refused outright once the field is at the player cap.
// During a break the record stays pending in the queued state and takes
// effect at the next period's first game-second. The returned warning, if
// any, is advisory.
func (m *MatchSession) ConfirmSub(ctx context.Context, subID int64, override bool) (*models.Substitution, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub := m.subLocked(subID)
	if sub == nil {
		return nil, "", ErrSubNotFound
	}
	if !sub.Pending() {
		return nil, "", ErrSubConfirmed
	}

	if !sub.Complete() {
		if !override {
			return nil, "", ErrIncompleteSub
		}
		if sub.InPlayerID.Valid && !sub.OutPlayerID.Valid && m.fieldAtCapLocked(sub.InPlayerID.Int64) {
			return nil, "", ErrFieldFull
		}
	}

	var warning string
	if sub.OutPlayerID.Valid && !sub.InPlayerID.Valid {
		warning = WarnShortHanded
	}

	if m.stageLocked() == BetweenPeriods {
		m.queued[sub.ID] = true
		m.bump()
		return sub, WarnQueued, nil
	}

	prev := sub.SubTime
	sub.SubTime = sql.NullInt64{Int64: int64(m.gameTimeLocked()), Valid: true}
	if _, err := m.store.UpdateSubstitution(ctx, sub); err != nil {
		sub.SubTime = prev
		return nil, "", persistErr("substitution", err)
	}
	delete(m.queued, sub.ID)
	m.bump()
	return sub, warning, nil
}

// CancelSub deletes a substitution record; affected players fall back to the
// status implied by their remaining history.
func (m *MatchSession) CancelSub(ctx context.Context, subID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub := m.subLocked(subID)
	if sub == nil {
		return ErrSubNotFound
	}
	if err := m.store.DeleteSubstitution(ctx, subID); err != nil {
		return persistErr("substitution", err)
	}
	for i, s := range m.subs {
		if s.ID == subID {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			break
		}
	}
	delete(m.queued, subID)
	m.bump()
	return nil
}

// SubStateOf reports where a substitution sits in its lifecycle.
func (m *MatchSession) SubStateOf(subID int64) (SubState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub := m.subLocked(subID)
	if sub == nil {
		return "", false
	}
	switch {
	case !sub.Pending():
		return SubConfirmed, true
	case m.queued[subID]:
		return SubQueued, true
	}
	return SubPending, true
}

// Substitutions returns a copy of the substitution ledger.
func (m *MatchSession) Substitutions() []*models.Substitution {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Substitution, len(m.subs))
	copy(out, m.subs)
	return out
}

// fieldAtCapLocked counts the incoming player's teammates already on field
// against the players-per-side setting.
func (m *MatchSession) fieldAtCapLocked(inPlayerID int64) bool {
	cap := m.game.Settings.PlayersPerSide
	if cap == 0 {
		return false
	}
	in := m.playerLocked(inPlayerID)
	if in == nil {
		return false
	}
	onField := 0
	for _, p := range m.players {
		if p.TeamSeasonID != in.TeamSeasonID {
			continue
		}
		switch m.fieldStatusLocked(p) {
		case OnField, OnFieldGk:
			onField++
		}
	}
	return onField >= cap
}
