package state

import (
	"errors"
	"testing"

	"taskdeck/internal/api"
	"taskdeck/internal/model"
)

var editRow = model.Task{
	ID: 10, DueDate: "2025-06-10", Title: "Review", Assignee: "Tanaka",
	Completed: false, Favorite: true,
}

func TestBegin_CopiesAllEditableFields(t *testing.T) {
	c := NewEditCoordinator()
	c.Begin(editRow, FieldTitle)

	sess, ok := c.Session()
	if !ok || c.Phase() != PhaseEditing {
		t.Fatalf("expected editing session")
	}
	want := model.TaskDraft{DueDate: "2025-06-10", Title: "Review", Assignee: "Tanaka"}
	if sess.Draft != want {
		t.Fatalf("draft must copy all three fields, got %+v", sess.Draft)
	}
}

func TestBegin_SameRowFieldSwitchRetainsDrafts(t *testing.T) {
	c := NewEditCoordinator()
	c.Begin(editRow, FieldTitle)
	c.SetValue("Renamed")

	// Switching the focused field on the same row keeps the unsaved title.
	c.Begin(editRow, FieldAssignee)
	sess, _ := c.Session()
	if sess.Field != FieldAssignee {
		t.Fatalf("focus should move to assignee")
	}
	if sess.Draft.Title != "Renamed" {
		t.Fatalf("sibling draft lost on field switch: %+v", sess.Draft)
	}
}

func TestBegin_OtherRowAbandonsPriorSession(t *testing.T) {
	c := NewEditCoordinator()
	c.Begin(editRow, FieldTitle)
	c.SetValue("Unsaved edit")

	other := model.Task{ID: 11, DueDate: "2025-06-12", Title: "Other", Assignee: "Sato"}
	c.Begin(other, FieldTitle)

	sess, _ := c.Session()
	if sess.RowID != 11 {
		t.Fatalf("last activation wins, got row %d", sess.RowID)
	}
	if sess.Draft.Title != "Other" {
		t.Fatalf("prior draft must be abandoned without saving: %+v", sess.Draft)
	}
}

func TestCommit_NoChangesIsNoop(t *testing.T) {
	c := NewEditCoordinator()
	c.Begin(editRow, FieldTitle)
	// Trimmed-equal counts as no change.
	c.SetValue("  Review  ")

	decision, _, err := c.Commit(editRow)
	if err != nil {
		t.Fatalf("no-op commit must not error: %v", err)
	}
	if decision != CommitNoop {
		t.Fatalf("expected noop, got %v", decision)
	}
	if c.Phase() != PhaseIdle {
		t.Fatalf("session must close on noop commit")
	}
}

func TestCommit_EmptyTitleIsValidationErrorAndTearsDown(t *testing.T) {
	c := NewEditCoordinator()
	c.Begin(editRow, FieldTitle)
	c.SetValue("   ")

	decision, _, err := c.Commit(editRow)
	var ve *api.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if decision != CommitNoop {
		t.Fatalf("rejected commit must not produce a save")
	}
	if c.Phase() != PhaseIdle {
		t.Fatalf("session must tear down on validation failure")
	}
	if _, ok := c.Session(); ok {
		t.Fatalf("partial edit must be discarded")
	}
}

func TestCommit_ChangePayloadKeepsCompletedAndFavorite(t *testing.T) {
	c := NewEditCoordinator()
	c.Begin(editRow, FieldTitle)
	c.SetValue("  Renamed  ")

	decision, payload, err := c.Commit(editRow)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if decision != CommitSave {
		t.Fatalf("expected save decision")
	}
	if c.Phase() != PhaseSaving {
		t.Fatalf("phase must be Saving while the update is in flight")
	}
	if id, ok := c.SavingRowID(); !ok || id != 10 {
		t.Fatalf("saving marker must expose the row id")
	}

	if payload.Title != "Renamed" {
		t.Fatalf("payload title must be trimmed: %q", payload.Title)
	}
	if payload.DueDate != editRow.DueDate || payload.Assignee != editRow.Assignee {
		t.Fatalf("untouched fields must carry over: %+v", payload)
	}
	if payload.Completed != editRow.Completed || payload.Favorite != editRow.Favorite {
		t.Fatalf("completed/favorite must come from the original row: %+v", payload)
	}
}

func TestFinishSave_ClearsMarkerOnBothPaths(t *testing.T) {
	c := NewEditCoordinator()
	c.Begin(editRow, FieldTitle)
	c.SetValue("Renamed")
	if _, _, err := c.Commit(editRow); err != nil {
		t.Fatalf("commit: %v", err)
	}

	c.FinishSave()
	if c.Phase() != PhaseIdle {
		t.Fatalf("saving marker stuck after FinishSave")
	}
	if _, ok := c.SavingRowID(); ok {
		t.Fatalf("no saving row after FinishSave")
	}
}

func TestBegin_IgnoredWhileSaving(t *testing.T) {
	c := NewEditCoordinator()
	c.Begin(editRow, FieldTitle)
	c.SetValue("Renamed")
	if _, _, err := c.Commit(editRow); err != nil {
		t.Fatalf("commit: %v", err)
	}

	other := model.Task{ID: 11, DueDate: "2025-06-12", Title: "Other", Assignee: "Sato"}
	if c.Begin(other, FieldTitle) {
		t.Fatalf("activation must be ignored while a save is in flight")
	}
	if id, _ := c.SavingRowID(); id != 10 {
		t.Fatalf("in-flight save must be undisturbed")
	}
}

func TestCancel_ClosesWithoutSaving(t *testing.T) {
	c := NewEditCoordinator()
	c.Begin(editRow, FieldTitle)
	c.SetValue("Unsaved")
	c.Cancel()

	if c.Phase() != PhaseIdle {
		t.Fatalf("cancel must return to idle")
	}
	decision, _, err := c.Commit(editRow)
	if decision != CommitNoop || err != nil {
		t.Fatalf("commit after cancel must be inert, got %v/%v", decision, err)
	}
}
