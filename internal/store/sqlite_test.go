package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"analytics-service/internal/analytics/model"
)

func openTemp(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "docs.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLitePutCountDocuments(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	if err := s.Put(ctx, Users, "u1", Document{"name": "ann"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, Users, "u2", nil); err != nil {
		t.Fatalf("Put: %v", err)
	}
	// upsert keeps one row per id
	if err := s.Put(ctx, Users, "u1", Document{"name": "anna"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	n, err := s.Count(ctx, Users)
	if err != nil || n != 2 {
		t.Fatalf("Count=%d,%v want 2", n, err)
	}
	if n, _ := s.Count(ctx, Outlets); n != 0 {
		t.Fatalf("empty collection count=%d", n)
	}

	docs, err := s.Documents(ctx, Users)
	if err != nil {
		t.Fatalf("Documents: %v", err)
	}
	if len(docs) != 2 || docs[0]["name"] != "anna" {
		t.Fatalf("unexpected docs: %+v", docs)
	}
	if _, err := s.Count(ctx, " "); err == nil {
		t.Fatalf("expected error for empty collection")
	}
}

func TestMaterialsSkipsMalformed(t *testing.T) {
	docs := []Document{
		{"materials": []any{
			map[string]any{"name": "Can", "quantity": float64(3)},
			"not an object",
			map[string]any{"name": 42, "quantity": "2"},
			map[string]any{"name": "Glass"},
		}},
		{"materials": "nope"},
		{"title": "no materials"},
	}
	got := Materials(docs)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %+v", got)
	}
	if got[0].Name != "Can" || got[0].Qty(-1) != 3 {
		t.Fatalf("first: %+v", got[0])
	}
	if got[1].Name != "" || got[1].Qty(-1) != 2 {
		t.Fatalf("second: %+v", got[1])
	}
	if got[2].Name != "Glass" || got[2].Quantity != nil {
		t.Fatalf("third: %+v", got[2])
	}
}

func TestLoadInputs(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	put := func(c, id string, d Document) {
		t.Helper()
		if err := s.Put(ctx, c, id, d); err != nil {
			t.Fatalf("Put %s/%s: %v", c, id, err)
		}
	}
	put(Users, "u1", Document{})
	put(Users, "u2", Document{})
	put(Outlets, "o1", Document{})
	put(Rewards, "r1", Document{})
	put(Quests, "q1", Document{"materials": []any{
		map[string]any{"name": "Plastic Bottle (made of PET)", "quantity": 10},
	}})
	put(Submissions, "s1", Document{"materials": []any{
		map[string]any{"name": "plastic bottle", "quantity": 4},
		map[string]any{"name": "can"},
	}})

	in, err := LoadInputs(ctx, s)
	if err != nil {
		t.Fatalf("LoadInputs: %v", err)
	}
	want := model.Totals{Users: 2, Outlets: 1, Rewards: 1, Quests: 1}
	if in.Totals != want {
		t.Fatalf("totals=%+v want %+v", in.Totals, want)
	}
	if len(in.Targets) != 1 || in.Targets[0].Qty(0) != 10 {
		t.Fatalf("targets: %+v", in.Targets)
	}
	if len(in.Collected) != 2 || in.Collected[1].Quantity != nil {
		t.Fatalf("collected: %+v", in.Collected)
	}
}

type failingStore struct{ Store }

var errDown = errors.New("store down")

func (failingStore) Count(context.Context, string) (int64, error) { return 0, errDown }

func (failingStore) Documents(context.Context, string) ([]Document, error) { return nil, nil }

func TestLoadInputsPropagatesErrors(t *testing.T) {
	_, err := LoadInputs(context.Background(), failingStore{})
	if !errors.Is(err, errDown) {
		t.Fatalf("expected wrapped errDown, got %v", err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), "mongo", "x"); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
