// Package store provides the repository and link synchronizer over the
// bots SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	_ "modernc.org/sqlite"
)

// DefaultCacheTTL bounds how stale a cached table read may be. Every write
// purges the cache before returning, so the TTL only matters for reads that
// race external edits to the database file.
const DefaultCacheTTL = 60 * time.Second

// Row is one table row as column name -> display value. NULL reads as "".
type Row map[string]string

// Store owns the database handle and the advisory read cache.
type Store struct {
	db      *sql.DB
	path    string
	cache   *expirable.LRU[Table, []Row]
	entropy *rand.Rand
}

// New opens or creates the bots database at the given path.
func New(dbPath string, cacheTTL time.Duration) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}

	s := &Store{
		db:      db,
		path:    dbPath,
		cache:   expirable.NewLRU[Table, []Row](len(Tables()), nil, cacheTTL),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS Bots (
		Bot_ID                  INTEGER PRIMARY KEY AUTOINCREMENT,
		Botperson_Name          TEXT NOT NULL UNIQUE,
		Botperson_Role          TEXT,
		Role                    TEXT,
		Usage                   TEXT,
		Sector                  TEXT,
		Prompt                  TEXT,
		Total_Interactions      INTEGER DEFAULT 0,
		Positive_Feedback_Count INTEGER DEFAULT 0,
		Negative_Feedback_Count INTEGER DEFAULT 0,
		Level_of_Access         TEXT,
		Active_Status           TEXT,
		Version                 TEXT,
		Owner_Maintainer        TEXT,
		Foundation_Business     TEXT,
		Foundation_Name         TEXT,
		Last_Updated            TEXT
	);

	CREATE TABLE IF NOT EXISTS KnowledgeBase (
		ID       INTEGER PRIMARY KEY AUTOINCREMENT,
		Content  TEXT,
		Metadata TEXT
	);

	CREATE TABLE IF NOT EXISTS BotKnowledgeLink (
		Bot_ID           INTEGER NOT NULL REFERENCES Bots(Bot_ID),
		KnowledgeBase_ID INTEGER NOT NULL REFERENCES KnowledgeBase(ID),
		PRIMARY KEY (Bot_ID, KnowledgeBase_ID)
	);
	CREATE INDEX IF NOT EXISTS idx_links_kb ON BotKnowledgeLink(KnowledgeBase_ID);

	CREATE VIRTUAL TABLE IF NOT EXISTS kb_fts USING fts5(
		Content, Metadata,
		content=KnowledgeBase,
		content_rowid=ID
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// FTS5 triggers for automatic sync
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS kb_ai AFTER INSERT ON KnowledgeBase BEGIN
		INSERT INTO kb_fts(rowid, Content, Metadata) VALUES (new.ID, new.Content, new.Metadata);
	END`)
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS kb_ad AFTER DELETE ON KnowledgeBase BEGIN
		INSERT INTO kb_fts(kb_fts, rowid, Content, Metadata) VALUES('delete', old.ID, old.Content, old.Metadata);
	END`)
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS kb_au AFTER UPDATE ON KnowledgeBase BEGIN
		INSERT INTO kb_fts(kb_fts, rowid, Content, Metadata) VALUES('delete', old.ID, old.Content, old.Metadata);
		INSERT INTO kb_fts(rowid, Content, Metadata) VALUES (new.ID, new.Content, new.Metadata);
	END`)

	// Backfill FTS for entries created before the triggers existed
	s.db.Exec(`INSERT OR IGNORE INTO kb_fts(rowid, Content, Metadata)
		SELECT ID, Content, Metadata FROM KnowledgeBase`)

	return nil
}

// invalidate drops all cached reads. Called synchronously by every write
// before its result is returned, so a following read observes the write.
func (s *Store) invalidate() {
	s.cache.Purge()
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// nullable binds an empty string as NULL, everything else as-is.
func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
