package store

import (
	"context"
	"errors"
	"strconv"
	"testing"
)

func TestUnknownTableRejected(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.ReadAll(ctx, Table("Bots; DROP TABLE Bots"))
	if !errors.Is(err, ErrUnknownIdentifier) {
		t.Errorf("expected ErrUnknownIdentifier, got %v", err)
	}

	err = s.Insert(ctx, Table("Users"), Row{"Name": "x"})
	if !errors.Is(err, ErrUnknownIdentifier) {
		t.Errorf("expected ErrUnknownIdentifier, got %v", err)
	}
}

func TestUnknownColumnRejected(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.Insert(ctx, TableBots, Row{"Password": "secret"})
	if !errors.Is(err, ErrUnknownIdentifier) {
		t.Errorf("expected ErrUnknownIdentifier, got %v", err)
	}

	err = s.UpdateByKey(ctx, TableBots, "Botperson_Name = '' OR 1=1 --", "x", Row{"Role": "y"})
	if !errors.Is(err, ErrUnknownIdentifier) {
		t.Errorf("expected ErrUnknownIdentifier, got %v", err)
	}

	err = s.DeleteByKey(ctx, TableKnowledge, "Content; --", "x")
	if !errors.Is(err, ErrUnknownIdentifier) {
		t.Errorf("expected ErrUnknownIdentifier, got %v", err)
	}
}

func TestGenericInsertAndReadAll(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.Insert(ctx, TableKnowledge, Row{"Content": "Visa renewal guide", "Metadata": "v2"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	rows, err := s.ReadAll(ctx, TableKnowledge)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["Content"] != "Visa renewal guide" {
		t.Errorf("unexpected content %q", rows[0]["Content"])
	}
	if rows[0]["ID"] == "" {
		t.Error("expected generated ID in read result")
	}
}

func TestGenericInsertEmptyStringIsNull(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Insert(ctx, TableKnowledge, Row{"Content": "doc", "Metadata": ""}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var isNull int
	s.db.QueryRow(`SELECT Metadata IS NULL FROM KnowledgeBase`).Scan(&isNull)
	if isNull != 1 {
		t.Error("expected NULL metadata, got a stored value")
	}
}

func TestDeleteBotCascadesLinks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	botID := mustInsertBot(t, s, "Aida")
	k1 := mustInsertKB(t, s, "doc one")
	k2 := mustInsertKB(t, s, "doc two")

	if err := s.LinkIfAbsent(ctx, botID, []int64{k1, k2}); err != nil {
		t.Fatalf("link: %v", err)
	}

	if err := s.DeleteByKey(ctx, TableBots, "Botperson_Name", "Aida"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var links, bots int
	s.db.QueryRow(`SELECT COUNT(*) FROM BotKnowledgeLink WHERE Bot_ID = ?`, botID).Scan(&links)
	s.db.QueryRow(`SELECT COUNT(*) FROM Bots WHERE Bot_ID = ?`, botID).Scan(&bots)
	if links != 0 {
		t.Errorf("expected 0 links after bot delete, got %d", links)
	}
	if bots != 0 {
		t.Errorf("expected 0 bot rows after delete, got %d", bots)
	}
}

func TestDeleteKnowledgeCascadesLinks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	botID := mustInsertBot(t, s, "Aida")
	k1 := mustInsertKB(t, s, "doc one")
	k2 := mustInsertKB(t, s, "doc two")
	if err := s.LinkIfAbsent(ctx, botID, []int64{k1, k2}); err != nil {
		t.Fatalf("link: %v", err)
	}

	err := s.DeleteByKey(ctx, TableKnowledge, "ID", strconv.FormatInt(k1, 10))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}

	ids, err := s.LinkedKnowledgeIDs(ctx, botID)
	if err != nil {
		t.Fatalf("linked ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != k2 {
		t.Errorf("expected only link to %d to survive, got %v", k2, ids)
	}
}

func TestDeleteByKeyNoMatchIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.DeleteByKey(ctx, TableBots, "Botperson_Name", "nobody"); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}
