package session

import (
	"sort"

	"github.com/avvvet/match-services/internal/matchsvc/models"
)

// FieldStatus is the derived on-field classification for a player. It is
// never persisted; the substitution ledger is the only ground truth.
type FieldStatus string

const (
	OnField      FieldStatus = "on_field"
	OnFieldGk    FieldStatus = "on_field_gk"
	OnBench      FieldStatus = "on_bench"
	SubbingIn    FieldStatus = "subbing_in"
	SubbingInGk  FieldStatus = "subbing_in_gk"
	SubbingOut   FieldStatus = "subbing_out"
	SubbingOutGk FieldStatus = "subbing_out_gk"
)

// FieldStatuses derives the status of every rostered player, cached by the
// ledger version.
func (m *MatchSession) FieldStatuses() map[int64]FieldStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fieldStatusesLocked()
}

// FieldStatusOf derives a single player's status.
func (m *MatchSession) FieldStatusOf(playerGameID int64) (FieldStatus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fs, ok := m.fieldStatusesLocked()[playerGameID]
	return fs, ok
}

func (m *MatchSession) fieldStatusesLocked() map[int64]FieldStatus {
	if m.statuses != nil && m.statusVer == m.version {
		return m.statuses
	}
	out := make(map[int64]FieldStatus, len(m.players))
	for _, p := range m.players {
		out[p.ID] = m.fieldStatusLocked(p)
	}
	m.statuses = out
	m.statusVer = m.version
	return out
}

// fieldStatusLocked applies the precedence order: a pending "in" wins, then
// a pending "out", then the confirmed in/out counts with the starter's
// implicit leading "in".
func (m *MatchSession) fieldStatusLocked(p *models.PlayerGame) FieldStatus {
	for _, s := range m.subs {
		if !s.Pending() {
			continue
		}
		if s.InPlayerID.Valid && s.InPlayerID.Int64 == p.ID {
			if s.GkSub {
				return SubbingInGk
			}
			return SubbingIn
		}
	}
	for _, s := range m.subs {
		if !s.Pending() {
			continue
		}
		if s.OutPlayerID.Valid && s.OutPlayerID.Int64 == p.ID {
			if s.GkSub {
				return SubbingOutGk
			}
			return SubbingOut
		}
	}

	ins, outs := m.confirmedEntriesLocked(p)
	if len(ins) > len(outs) {
		if m.keeperLocked(p) {
			return OnFieldGk
		}
		return OnField
	}
	return OnBench
}

// confirmedEntriesLocked collects the player's confirmed in/out game-times
// in chronological order. Starters get the implicit leading in at second 0.
func (m *MatchSession) confirmedEntriesLocked(p *models.PlayerGame) (ins, outs []int64) {
	if p.Starter() {
		ins = append(ins, 0)
	}
	for _, s := range m.subs {
		if s.Pending() {
			continue
		}
		if s.InPlayerID.Valid && s.InPlayerID.Int64 == p.ID {
			ins = append(ins, s.SubTime.Int64)
		}
		if s.OutPlayerID.Valid && s.OutPlayerID.Int64 == p.ID {
			outs = append(outs, s.SubTime.Int64)
		}
	}
	sort.Slice(ins, func(i, j int) bool { return ins[i] < ins[j] })
	sort.Slice(outs, func(i, j int) bool { return outs[i] < outs[j] })
	return ins, outs
}

// keeperLocked: a goalkeeper by roster status, or whoever last entered
// through a keeper swap.
func (m *MatchSession) keeperLocked(p *models.PlayerGame) bool {
	if p.GameStatus == models.StatusGoalkeeper {
		return true
	}
	var lastIn int64 = -1
	gk := false
	for _, s := range m.subs {
		if s.Pending() || !s.InPlayerID.Valid || s.InPlayerID.Int64 != p.ID {
			continue
		}
		if s.SubTime.Int64 >= lastIn {
			lastIn = s.SubTime.Int64
			gk = s.GkSub
		}
	}
	return gk
}
