package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"taskdeck/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(context.Background(), filepath.Join(t.TempDir(), "todos.sqlite"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mk(t *testing.T, db *DB, due, title, assignee string) model.Task {
	t.Helper()
	created, err := db.CreateTodo(context.Background(), model.Task{
		DueDate: due, Title: title, Assignee: assignee,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return created
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	db := openTestDB(t)
	a := mk(t, db, "2025-01-10", "A", "Tanaka")
	b := mk(t, db, "2025-01-05", "B", "Sato")
	if a.ID == 0 || b.ID <= a.ID {
		t.Fatalf("ids must be server-assigned and increasing: %d, %d", a.ID, b.ID)
	}
}

func TestList_SortByDueDateBothDirections(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	mk(t, db, "2025-01-10", "A", "x")
	mk(t, db, "2025-01-05", "B", "x")

	asc, err := db.ListTodos(ctx, "due_date", "asc", "")
	if err != nil {
		t.Fatalf("list asc: %v", err)
	}
	if asc[0].Title != "B" || asc[1].Title != "A" {
		t.Fatalf("asc order wrong: %+v", asc)
	}

	desc, err := db.ListTodos(ctx, "due_date", "desc", "")
	if err != nil {
		t.Fatalf("list desc: %v", err)
	}
	if desc[0].Title != "A" || desc[1].Title != "B" {
		t.Fatalf("desc order wrong: %+v", desc)
	}
}

func TestList_UncompletedFirstAndIDTieBreak(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	first := mk(t, db, "2025-01-05", "tie1", "x")
	mk(t, db, "2025-01-05", "tie2", "x")
	done := mk(t, db, "2025-01-01", "done early", "x")

	done.Completed = true
	if _, err := db.UpdateTodo(ctx, done.ID, done); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := db.ListTodos(ctx, "due_date", "asc", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got[len(got)-1].ID != done.ID {
		t.Fatalf("completed rows sort after uncompleted: %+v", got)
	}
	if got[0].ID != first.ID {
		t.Fatalf("equal due dates must tie-break by id ascending: %+v", got)
	}
}

func TestList_AssigneeSubstringFilter(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	mk(t, db, "2025-01-05", "a", "Tanaka")
	mk(t, db, "2025-01-06", "b", "Sato")
	mk(t, db, "2025-01-07", "c", "Kato")

	got, err := db.ListTodos(ctx, "due_date", "asc", "ato")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("substring filter should match Sato and Kato: %+v", got)
	}
}

func TestList_RejectsUnknownSortColumn(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.ListTodos(context.Background(), "id; DROP TABLE todos", "asc", ""); err == nil {
		t.Fatalf("unknown sort column must be rejected")
	}
	if _, err := db.ListTodos(context.Background(), "due_date", "sideways", ""); err == nil {
		t.Fatalf("unknown order must be rejected")
	}
}

func TestUpdateDelete_MissingIDIsNotFound(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.UpdateTodo(ctx, 999, model.Task{DueDate: "2025-01-05", Title: "x", Assignee: "y"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing: %v", err)
	}
	if err := db.DeleteTodo(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestDelete_RemovesRow(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	created := mk(t, db, "2025-01-05", "gone", "x")

	if err := db.DeleteTodo(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.GetTodo(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("row should be gone, got %v", err)
	}
}

func TestSeed_DeterministicAndIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	today := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	if err := db.Seed(ctx, today); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := db.ListTodos(ctx, "id", "asc", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 100 {
		t.Fatalf("expected 100 seeded rows, got %d", len(got))
	}
	if got[0].Title != "仕様書レビュー #1" || got[0].Assignee != "Tanaka" {
		t.Fatalf("seed rotation off: %+v", got[0])
	}
	for _, task := range got {
		if task.Completed || task.Favorite {
			t.Fatalf("seeded rows start uncompleted/unfavorited: %+v", task)
		}
		if _, err := time.Parse(model.DateLayout, task.DueDate); err != nil {
			t.Fatalf("bad seeded due date %q", task.DueDate)
		}
	}

	// Second run must not duplicate.
	if err := db.Seed(ctx, today); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	again, _ := db.ListTodos(ctx, "id", "asc", "")
	if len(again) != 100 {
		t.Fatalf("seed must be idempotent, got %d rows", len(again))
	}
}

func TestMigration_BackfillsBoolColumns(t *testing.T) {
	// OpenDB on a database created by an older schema (without completed /
	// favorite) must add the columns instead of failing.
	dir := t.TempDir()
	path := filepath.Join(dir, "todos.sqlite")
	ctx := context.Background()

	db, err := OpenDB(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.db.ExecContext(ctx, `CREATE TABLE old (x INTEGER)`); err != nil {
		t.Fatalf("exec: %v", err)
	}
	_ = db.Close()

	// Re-open runs the migration path again on the existing file.
	db2, err := OpenDB(ctx, path)
	if err != nil {
		t.Fatalf("re-open: %v", err)
	}
	defer db2.Close()

	created, err := db2.CreateTodo(ctx, model.Task{DueDate: "2025-01-05", Title: "t", Assignee: "a"})
	if err != nil {
		t.Fatalf("create after migration: %v", err)
	}
	if created.Completed || created.Favorite {
		t.Fatalf("bool columns should default to false: %+v", created)
	}
}
