package store

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/gochat247/botadmin/internal/model"
)

// Snapshot is a full JSON export of the database. The snapshot ID is a
// ULID so exports sort by creation time.
type Snapshot struct {
	SnapshotID string                   `json:"snapshot_id"`
	ExportedAt time.Time                `json:"exported_at"`
	Bots       []model.Bot              `json:"bots"`
	Knowledge  []model.KnowledgeEntry   `json:"knowledge_base"`
	Links      []model.BotKnowledgeLink `json:"links"`
}

// Export captures all three tables into a snapshot.
func (s *Store) Export(ctx context.Context) (*Snapshot, error) {
	bots, err := s.ListBots(ctx)
	if err != nil {
		return nil, err
	}
	knowledge, err := s.ListKnowledge(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.ListLinks(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Snapshot{
		SnapshotID: ulid.MustNew(ulid.Timestamp(now), s.entropy).String(),
		ExportedAt: now,
		Bots:       bots,
		Knowledge:  knowledge,
		Links:      links,
	}, nil
}

// Import replays a snapshot into the database, keeping the original keys
// so links stay valid. Rows whose key or unique name already exists are
// skipped. Runs as a single transaction.
func (s *Store) Import(ctx context.Context, snap *Snapshot) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, classify("import", err)
	}
	defer tx.Rollback()

	imported := 0

	for _, e := range snap.Knowledge {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO KnowledgeBase (ID, Content, Metadata) VALUES (?, ?, ?)`,
			e.ID, nullable(e.Content), nullable(e.Metadata))
		if err != nil {
			return 0, classify("import KnowledgeBase", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			imported++
		}
	}

	for _, b := range snap.Bots {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO Bots (Bot_ID, Botperson_Name, Botperson_Role, Role, Usage, Sector, Prompt,
				Total_Interactions, Positive_Feedback_Count, Negative_Feedback_Count,
				Level_of_Access, Active_Status, Version, Owner_Maintainer,
				Foundation_Business, Foundation_Name, Last_Updated)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.Name, nullable(b.PersonRole), nullable(b.Role), nullable(b.Usage),
			nullable(b.Sector), nullable(b.Prompt),
			b.TotalInteractions, b.PositiveFeedbackCount, b.NegativeFeedbackCount,
			nullable(b.LevelOfAccess), nullable(b.ActiveStatus), nullable(b.Version),
			nullable(b.OwnerMaintainer), nullable(b.FoundationBusiness),
			nullable(b.FoundationName), nullable(b.LastUpdated))
		if err != nil {
			return 0, classify("import Bots", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			imported++
		}
	}

	for _, l := range snap.Links {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO BotKnowledgeLink (Bot_ID, KnowledgeBase_ID) VALUES (?, ?)`,
			l.BotID, l.KnowledgeID)
		if err != nil {
			return 0, classify("import BotKnowledgeLink", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			imported++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, classify("import", err)
	}

	s.invalidate()
	return imported, nil
}
