package archive

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/avvvet/match-services/internal/matchsvc/session"
)

const Collection = "match_archives"

// Writer snapshots a finished match's full timeline into the archive
// collection. Writes are best-effort: the relational ledgers stay the source
// of truth.
type Writer struct {
	db        *mongo.Database
	retention time.Duration
}

func NewWriter(db *mongo.Database, retention time.Duration) *Writer {
	return &Writer{db: db, retention: retention}
}

type document struct {
	GameID     int64            `bson:"game_id"`
	Snapshot   session.Snapshot `bson:"snapshot"`
	ArchivedAt time.Time        `bson:"archived_at"`
	ExpiresAt  time.Time        `bson:"expires_at"`
}

func (w *Writer) ArchiveMatch(ctx context.Context, snap session.Snapshot) error {
	doc := document{
		GameID:     snap.Game.ID,
		Snapshot:   snap,
		ArchivedAt: time.Now(),
		ExpiresAt:  time.Now().Add(w.retention),
	}
	_, err := w.db.Collection(Collection).InsertOne(ctx, doc)
	return err
}
