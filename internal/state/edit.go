package state

import (
	"taskdeck/internal/api"
	"taskdeck/internal/model"
)

type EditField string

const (
	FieldDueDate  EditField = "due_date"
	FieldTitle    EditField = "title"
	FieldAssignee EditField = "assignee"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseEditing
	PhaseSaving
)

// EditSession is the single active inline-edit: one row, one focused field,
// and a draft of all three editable fields (so switching the focused field on
// the same row keeps drafted sibling edits alive).
type EditSession struct {
	RowID int64
	Field EditField
	Draft model.TaskDraft
}

type CommitDecision int

const (
	// CommitNoop: session closed, nothing to send (no changes, invalid draft,
	// or no session at all).
	CommitNoop CommitDecision = iota
	// CommitSave: session moved to Saving; the returned payload must be sent
	// as a full-field update, followed by FinishSave.
	CommitSave
)

// EditCoordinator serializes inline edits: at most one non-idle session
// process-wide, at most one in-flight save per row.
type EditCoordinator struct {
	phase   Phase
	session EditSession
}

func NewEditCoordinator() *EditCoordinator { return &EditCoordinator{} }

func (c *EditCoordinator) Phase() Phase { return c.phase }

// Session returns the active session while Editing or Saving.
func (c *EditCoordinator) Session() (EditSession, bool) {
	if c.phase == PhaseIdle {
		return EditSession{}, false
	}
	return c.session, true
}

// SavingRowID exposes the row with an in-flight save for UI feedback.
func (c *EditCoordinator) SavingRowID() (int64, bool) {
	if c.phase != PhaseSaving {
		return 0, false
	}
	return c.session.RowID, true
}

// Begin activates editing of one field on one row.
//
// Last activation wins: an Editing session on another row is abandoned
// unsaved. Re-focusing a different field on the row already being edited only
// moves the focus and keeps the drafted values. While a save is in flight,
// activations are ignored (one in-flight save per row, and the row's fields
// are about to be replaced by the refresh anyway).
func (c *EditCoordinator) Begin(t model.Task, field EditField) bool {
	if c.phase == PhaseSaving {
		return false
	}
	if c.phase == PhaseEditing && c.session.RowID == t.ID {
		c.session.Field = field
		return true
	}
	c.session = EditSession{RowID: t.ID, Field: field, Draft: model.DraftOf(t)}
	c.phase = PhaseEditing
	return true
}

// SetValue stages input for the currently focused field.
func (c *EditCoordinator) SetValue(v string) {
	if c.phase != PhaseEditing {
		return
	}
	switch c.session.Field {
	case FieldDueDate:
		c.session.Draft.DueDate = v
	case FieldTitle:
		c.session.Draft.Title = v
	case FieldAssignee:
		c.session.Draft.Assignee = v
	}
}

// Commit attempts to close the session against the original row.
//
//   - invalid draft: session torn down without saving, ValidationError
//     returned, zero network activity. The partial edit is discarded.
//   - draft equal to the original's fields: no-op, session closed, zero
//     network activity.
//   - otherwise: phase moves to Saving and the returned task is the full
//     update payload (trimmed draft plus the original's completed/favorite).
func (c *EditCoordinator) Commit(original model.Task) (CommitDecision, model.Task, error) {
	if c.phase != PhaseEditing || c.session.RowID != original.ID {
		return CommitNoop, model.Task{}, nil
	}

	draft := c.session.Draft.Trimmed()
	if !c.session.Draft.Valid() {
		c.phase = PhaseIdle
		c.session = EditSession{}
		return CommitNoop, model.Task{}, &api.ValidationError{
			Msg: "Due date, title and assignee are all required.",
		}
	}

	if draft.DueDate == original.DueDate && draft.Title == original.Title && draft.Assignee == original.Assignee {
		c.phase = PhaseIdle
		c.session = EditSession{}
		return CommitNoop, model.Task{}, nil
	}

	c.phase = PhaseSaving
	payload := model.Task{
		ID:        original.ID,
		DueDate:   draft.DueDate,
		Title:     draft.Title,
		Assignee:  draft.Assignee,
		Completed: original.Completed,
		Favorite:  original.Favorite,
	}
	return CommitSave, payload, nil
}

// FinishSave returns to Idle after the in-flight save resolves. Success and
// failure take the same path; the saving marker must never stick.
func (c *EditCoordinator) FinishSave() {
	if c.phase != PhaseSaving {
		return
	}
	c.phase = PhaseIdle
	c.session = EditSession{}
}

// Cancel abandons an Editing session without saving. Equivalent to a
// no-change commit.
func (c *EditCoordinator) Cancel() {
	if c.phase != PhaseEditing {
		return
	}
	c.phase = PhaseIdle
	c.session = EditSession{}
}
