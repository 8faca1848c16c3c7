package store

import (
	"context"
	"database/sql"

	"github.com/gochat247/botadmin/internal/model"
)

// InsertKnowledge appends a knowledge entry and returns its generated ID.
func (s *Store) InsertKnowledge(ctx context.Context, e model.KnowledgeEntry) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO KnowledgeBase (Content, Metadata) VALUES (?, ?)`,
		nullable(e.Content), nullable(e.Metadata))
	if err != nil {
		return 0, classify("insert KnowledgeBase", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, classify("insert KnowledgeBase", err)
	}

	s.invalidate()
	return id, nil
}

// ListKnowledge returns all knowledge entries ordered by key.
func (s *Store) ListKnowledge(ctx context.Context) ([]model.KnowledgeEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ID, Content, Metadata FROM KnowledgeBase ORDER BY ID`)
	if err != nil {
		return nil, classify("read KnowledgeBase", err)
	}
	defer rows.Close()

	var entries []model.KnowledgeEntry
	for rows.Next() {
		e, err := scanKnowledge(rows)
		if err != nil {
			return nil, classify("read KnowledgeBase", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func scanKnowledge(row scanner) (*model.KnowledgeEntry, error) {
	var e model.KnowledgeEntry
	var content, metadata sql.NullString
	if err := row.Scan(&e.ID, &content, &metadata); err != nil {
		return nil, err
	}
	e.Content = content.String
	e.Metadata = metadata.String
	return &e, nil
}

// KnowledgeMatch is a knowledge entry with the matched text excerpt.
type KnowledgeMatch struct {
	model.KnowledgeEntry
	Snippet string `json:"snippet,omitempty"`
}

// SearchKnowledge finds knowledge entries whose content or metadata match
// the full-text query.
func (s *Store) SearchKnowledge(ctx context.Context, query string, limit int) ([]KnowledgeMatch, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT kb.ID, kb.Content, kb.Metadata, snippet(kb_fts, 0, '[', ']', '…', 12)
		 FROM kb_fts
		 JOIN KnowledgeBase kb ON kb.ID = kb_fts.rowid
		 WHERE kb_fts MATCH ?
		 ORDER BY rank
		 LIMIT ?`, query, limit)
	if err != nil {
		return nil, classify("search KnowledgeBase", err)
	}
	defer rows.Close()

	var matches []KnowledgeMatch
	for rows.Next() {
		var m KnowledgeMatch
		var content, metadata, snippet sql.NullString
		if err := rows.Scan(&m.ID, &content, &metadata, &snippet); err != nil {
			return nil, classify("search KnowledgeBase", err)
		}
		m.Content = content.String
		m.Metadata = metadata.String
		m.Snippet = snippet.String
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
