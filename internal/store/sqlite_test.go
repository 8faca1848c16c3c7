package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gochat247/botadmin/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "test.db"), time.Minute)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustInsertBot(t *testing.T, s *Store, name string) int64 {
	t.Helper()
	b := model.DefaultBot(time.Now())
	b.Name = name
	b.PersonRole = "Assistant"
	b.Role = "Support"
	b.Usage = "Answers citizen questions"
	b.Sector = "Government"
	b.Prompt = "You are a helpful assistant."
	id, err := s.InsertBot(context.Background(), b)
	if err != nil {
		t.Fatalf("insert bot %s: %v", name, err)
	}
	return id
}

func mustInsertKB(t *testing.T, s *Store, content string) int64 {
	t.Helper()
	id, err := s.InsertKnowledge(context.Background(), model.KnowledgeEntry{
		Content:  content,
		Metadata: "test",
	})
	if err != nil {
		t.Fatalf("insert knowledge: %v", err)
	}
	return id
}

func TestInsertBotAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id := mustInsertBot(t, s, "Aida")
	if id == 0 {
		t.Fatal("expected non-zero Bot_ID")
	}

	b, err := s.GetBotByName(ctx, "Aida")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.ID != id {
		t.Errorf("expected Bot_ID %d, got %d", id, b.ID)
	}
	if b.Role != "Support" {
		t.Errorf("expected role Support, got %q", b.Role)
	}
	if b.LevelOfAccess != "Full" || b.ActiveStatus != "Active" {
		t.Errorf("defaults not persisted: access=%q status=%q", b.LevelOfAccess, b.ActiveStatus)
	}
}

func TestBotNameUnique(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mustInsertBot(t, s, "Aida")

	b := model.DefaultBot(time.Now())
	b.Name = "Aida"
	_, err := s.InsertBot(ctx, b)
	if err == nil {
		t.Fatal("expected error for duplicate name")
	}
	var ce *ConstraintError
	if !errors.As(err, &ce) {
		t.Errorf("expected ConstraintError, got %T: %v", err, err)
	}
}

func TestGetBotByNameNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetBotByName(context.Background(), "nobody"); err == nil {
		t.Fatal("expected error for unknown name")
	}
}

func TestUpdateEmptyStringStoresNull(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mustInsertBot(t, s, "Aida")

	err := s.UpdateByKey(ctx, TableBots, "Botperson_Name", "Aida", Row{"Sector": ""})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	var isNull int
	s.db.QueryRow(`SELECT Sector IS NULL FROM Bots WHERE Botperson_Name = 'Aida'`).Scan(&isNull)
	if isNull != 1 {
		t.Error("expected NULL sector, got a stored value")
	}
}

func TestUpdateNoMatchIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.UpdateByKey(ctx, TableBots, "Botperson_Name", "nobody", Row{"Role": "Support"})
	if err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestReadReflectsWriteImmediately(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mustInsertBot(t, s, "Aida")
	before, err := s.ReadAll(ctx, TableBots)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	mustInsertBot(t, s, "Badr")
	after, err := s.ReadAll(ctx, TableBots)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Errorf("expected %d rows after insert, got %d", len(before)+1, len(after))
	}

	if err := s.UpdateByKey(ctx, TableBots, "Botperson_Name", "Badr", Row{"Role": "Billing"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	rows, _ := s.ReadAll(ctx, TableBots)
	found := false
	for _, r := range rows {
		if r["Botperson_Name"] == "Badr" && r["Role"] == "Billing" {
			found = true
		}
	}
	if !found {
		t.Error("read after update did not reflect the change")
	}
}

func TestReadAllServesCache(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mustInsertBot(t, s, "Aida")
	first, err := s.ReadAll(ctx, TableBots)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	// Write behind the repository's back; the cache must still serve the
	// old result until a repository write purges it.
	if _, err := s.db.Exec(`INSERT INTO Bots (Botperson_Name) VALUES ('Ghost')`); err != nil {
		t.Fatalf("raw insert: %v", err)
	}

	second, err := s.ReadAll(ctx, TableBots)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(second) != len(first) {
		t.Errorf("expected cached read of %d rows, got %d", len(first), len(second))
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "bots.db")
	s, err := New(dbPath, 0)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}
