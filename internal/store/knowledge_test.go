package store

import (
	"context"
	"strconv"
	"testing"
)

func TestSearchKnowledge(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mustInsertKB(t, s, "How to renew a passport online")
	mustInsertKB(t, s, "Business registration steps")
	mustInsertKB(t, s, "Passport fees and processing times")

	matches, err := s.SearchKnowledge(ctx, "passport", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	for _, m := range matches {
		if m.Snippet == "" {
			t.Errorf("expected snippet for match %d", m.ID)
		}
	}
}

func TestSearchReflectsUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id := mustInsertKB(t, s, "old topic")

	err := s.UpdateByKey(ctx, TableKnowledge, "ID", strconv.FormatInt(id, 10),
		Row{"Content": "driving licence renewal"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	matches, err := s.SearchKnowledge(ctx, "licence", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != id {
		t.Errorf("expected updated entry to match, got %v", matches)
	}

	matches, _ = s.SearchKnowledge(ctx, "topic", 10)
	if len(matches) != 0 {
		t.Errorf("expected old content to be unindexed, got %v", matches)
	}
}

func TestSearchReflectsDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id := mustInsertKB(t, s, "temporary document")
	if err := s.DeleteByKey(ctx, TableKnowledge, "ID", strconv.FormatInt(id, 10)); err != nil {
		t.Fatalf("delete: %v", err)
	}

	matches, err := s.SearchKnowledge(ctx, "temporary", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches after delete, got %v", matches)
	}
}
