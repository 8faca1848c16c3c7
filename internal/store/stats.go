package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath           string         `json:"db_path"`
	DBSizeBytes      int64          `json:"db_size_bytes"`
	Bots             int            `json:"bots"`
	KnowledgeEntries int            `json:"knowledge_entries"`
	Links            int            `json:"links"`
	BotLinks         []BotLinkStats `json:"bot_links,omitempty"`
}

// BotLinkStats holds the link count for one bot.
type BotLinkStats struct {
	Name  string `json:"name"`
	Links int    `json:"links"`
}

// Stats returns row counts and per-bot link counts.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: s.path}

	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Bots`).Scan(&st.Bots)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM KnowledgeBase`).Scan(&st.KnowledgeEntries)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM BotKnowledgeLink`).Scan(&st.Links)

	rows, err := s.db.QueryContext(ctx, `
		SELECT b.Botperson_Name, COUNT(l.KnowledgeBase_ID) AS cnt
		FROM Bots b
		LEFT JOIN BotKnowledgeLink l ON l.Bot_ID = b.Bot_ID
		GROUP BY b.Bot_ID ORDER BY cnt DESC`)
	if err != nil {
		return st, classify("stats", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bl BotLinkStats
		rows.Scan(&bl.Name, &bl.Links)
		st.BotLinks = append(st.BotLinks, bl)
	}

	return st, nil
}
