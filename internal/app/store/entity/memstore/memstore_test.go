package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/carebridge/carebridge/internal/app/store/entity"
	"github.com/carebridge/carebridge/internal/domain/faults"
)

type doc struct {
	ID      string    `bson:"_id"`
	Status  string    `bson:"status"`
	Count   int64     `bson:"count"`
	Members []string  `bson:"members"`
	At      time.Time `bson:"at"`
	Rev     int64     `bson:"rev"`
}

func TestCreate_SetsRevAndRejectsDuplicates(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Create(ctx, "docs", doc{ID: "a", Status: "open"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var got doc
	if err := s.Get(ctx, "docs", "a", &got); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Rev != 1 {
		t.Errorf("expected rev 1 on fresh document, got %d", got.Rev)
	}

	err := s.Create(ctx, "docs", doc{ID: "a"})
	if !errors.Is(err, entity.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	var got doc
	err := s.Get(ctx, "docs", "missing", &got)
	if !errors.Is(err, faults.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAtomicUpdate_BumpsRev(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Create(ctx, "docs", doc{ID: "a", Status: "open"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ops := entity.Ops{Set: map[string]any{"status": "closed"}}
	if err := s.AtomicUpdate(ctx, "docs", "a", nil, ops); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	var got doc
	if err := s.Get(ctx, "docs", "a", &got); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != "closed" {
		t.Errorf("expected status closed, got %q", got.Status)
	}
	if got.Rev != 2 {
		t.Errorf("expected rev 2 after one update, got %d", got.Rev)
	}
}

func TestAtomicUpdate_RevPreconditionConflict(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Create(ctx, "docs", doc{ID: "a", Status: "open"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Interleaved write bumps the rev past what the caller read.
	if err := s.AtomicUpdate(ctx, "docs", "a", nil, entity.Ops{Set: map[string]any{"status": "busy"}}); err != nil {
		t.Fatalf("interleaved update failed: %v", err)
	}

	pre := &entity.Precondition{Rev: 1}
	err := s.AtomicUpdate(ctx, "docs", "a", pre, entity.Ops{Set: map[string]any{"status": "closed"}})
	if !errors.Is(err, faults.ErrConflict) {
		t.Errorf("expected ErrConflict on stale rev, got %v", err)
	}

	var got doc
	if err := s.Get(ctx, "docs", "a", &got); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != "busy" {
		t.Errorf("conflicting update must not apply, status = %q", got.Status)
	}
}

func TestAtomicUpdate_FieldPreconditionConflict(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Create(ctx, "docs", doc{ID: "a", Status: "claimed"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	pre := &entity.Precondition{Fields: map[string]any{"status": "available"}}
	err := s.AtomicUpdate(ctx, "docs", "a", pre, entity.Ops{Set: map[string]any{"status": "claimed"}})
	if !errors.Is(err, faults.ErrConflict) {
		t.Errorf("expected ErrConflict on failed field guard, got %v", err)
	}
}

func TestAtomicUpdate_MissingDocument(t *testing.T) {
	s := New()
	ctx := context.Background()

	err := s.AtomicUpdate(ctx, "docs", "missing", nil, entity.Ops{Set: map[string]any{"status": "x"}})
	if !errors.Is(err, faults.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAtomicUpdate_AddToSetIsIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Create(ctx, "docs", doc{ID: "a"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	add := entity.Ops{AddToSet: map[string]any{"members": "v1"}}
	for i := 0; i < 3; i++ {
		if err := s.AtomicUpdate(ctx, "docs", "a", nil, add); err != nil {
			t.Fatalf("update %d failed: %v", i, err)
		}
	}

	var got doc
	if err := s.Get(ctx, "docs", "a", &got); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Members) != 1 || got.Members[0] != "v1" {
		t.Errorf("expected members [v1], got %v", got.Members)
	}
}

func TestAtomicUpdate_PullAndInc(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Create(ctx, "docs", doc{ID: "a", Members: []string{"v1", "v2"}}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ops := entity.Ops{
		Pull: map[string]any{"members": "v1"},
		Inc:  map[string]int64{"count": 250},
	}
	if err := s.AtomicUpdate(ctx, "docs", "a", nil, ops); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	var got doc
	if err := s.Get(ctx, "docs", "a", &got); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Members) != 1 || got.Members[0] != "v2" {
		t.Errorf("expected members [v2], got %v", got.Members)
	}
	if got.Count != 250 {
		t.Errorf("expected count 250, got %d", got.Count)
	}
}

func TestQuery_FilterSortLimit(t *testing.T) {
	s := New()
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, st := range []string{"open", "open", "closed", "open"} {
		d := doc{ID: string(rune('a' + i)), Status: st, At: base.Add(time.Duration(i) * time.Hour)}
		if err := s.Create(ctx, "docs", d); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	var got []doc
	q := entity.Query{
		Filters:  []entity.Filter{{Field: "status", Op: entity.OpEq, Value: "open"}},
		SortBy:   "at",
		SortDesc: true,
		Limit:    2,
	}
	if err := s.Query(ctx, "docs", q, &got); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ID != "d" || got[1].ID != "b" {
		t.Errorf("expected [d b] (newest open first), got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestQuery_InAndGtFilters(t *testing.T) {
	s := New()
	ctx := context.Background()

	docs := []doc{
		{ID: "a", Status: "roads", Count: 0},
		{ID: "b", Status: "water", Count: 5},
		{ID: "c", Status: "parks", Count: 9},
	}
	for _, d := range docs {
		if err := s.Create(ctx, "docs", d); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	var got []doc
	q := entity.Query{
		Filters: []entity.Filter{
			{Field: "status", Op: entity.OpIn, Value: []string{"roads", "water"}},
			{Field: "count", Op: entity.OpGt, Value: int64(0)},
		},
	}
	if err := s.Query(ctx, "docs", q, &got); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("expected only doc b, got %v", got)
	}
}
