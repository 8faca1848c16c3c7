package store

import (
	"context"

	"github.com/gochat247/botadmin/internal/model"
)

// LinkIfAbsent links the bot to each knowledge entry that it is not
// already linked to. Idempotent: repeated calls with the same arguments
// leave exactly one link per pair. Runs as a single transaction.
func (s *Store) LinkIfAbsent(ctx context.Context, botID int64, kbIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify("link", err)
	}
	defer tx.Rollback()

	for _, kbID := range kbIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO BotKnowledgeLink (Bot_ID, KnowledgeBase_ID) VALUES (?, ?)`,
			botID, kbID)
		if err != nil {
			return classify("link", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return classify("link", err)
	}

	s.invalidate()
	return nil
}

// ReplaceLinks replaces the bot's entire link set with kbIDs. The delete
// and the inserts run in one transaction: if any insert fails, the
// original link set is left untouched.
func (s *Store) ReplaceLinks(ctx context.Context, botID int64, kbIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify("replace links", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM BotKnowledgeLink WHERE Bot_ID = ?`, botID); err != nil {
		return classify("replace links", err)
	}

	for _, kbID := range kbIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO BotKnowledgeLink (Bot_ID, KnowledgeBase_ID) VALUES (?, ?)`,
			botID, kbID)
		if err != nil {
			return classify("replace links", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return classify("replace links", err)
	}

	s.invalidate()
	return nil
}

// LinkedKnowledgeIDs returns the knowledge entry keys linked to the bot.
func (s *Store) LinkedKnowledgeIDs(ctx context.Context, botID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT KnowledgeBase_ID FROM BotKnowledgeLink WHERE Bot_ID = ? ORDER BY KnowledgeBase_ID`,
		botID)
	if err != nil {
		return nil, classify("read BotKnowledgeLink", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, classify("read BotKnowledgeLink", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListLinks returns every link pair.
func (s *Store) ListLinks(ctx context.Context) ([]model.BotKnowledgeLink, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT Bot_ID, KnowledgeBase_ID FROM BotKnowledgeLink ORDER BY Bot_ID, KnowledgeBase_ID`)
	if err != nil {
		return nil, classify("read BotKnowledgeLink", err)
	}
	defer rows.Close()

	var links []model.BotKnowledgeLink
	for rows.Next() {
		var l model.BotKnowledgeLink
		if err := rows.Scan(&l.BotID, &l.KnowledgeID); err != nil {
			return nil, classify("read BotKnowledgeLink", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
