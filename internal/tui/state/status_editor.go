package state

import (
	"errors"
	"slices"

	"github.com/thenoetrevino/faena/internal/models"
)

// EditorMode is the phase of the project status editor
type EditorMode int

const (
	Viewing EditorMode = iota
	Editing
	Saving
)

func (m EditorMode) String() string {
	switch m {
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	default:
		return "viewing"
	}
}

// ErrInvalidStatus is reported when a status outside the canonical set is submitted
var ErrInvalidStatus = errors.New("invalid status: choose active, on hold or completed")

// ErrNotEditing is returned when Save is called outside the editing phase
var ErrNotEditing = errors.New("status editor is not editing")

// StatusEditor is the viewing -> editing -> saving state machine for a
// project's status. Failed saves return to editing with the error kept.
type StatusEditor struct {
	mode    EditorMode
	current models.ProjectStatus
	choice  int
	err     error
}

// NewStatusEditor starts in viewing mode showing current
func NewStatusEditor(current models.ProjectStatus) *StatusEditor {
	return &StatusEditor{current: current}
}

// Mode returns the editor phase
func (e *StatusEditor) Mode() EditorMode { return e.mode }

// Current returns the last saved status
func (e *StatusEditor) Current() models.ProjectStatus { return e.current }

// Err returns the validation or save error shown while editing
func (e *StatusEditor) Err() error { return e.err }

// Choice returns the status highlighted while editing
func (e *StatusEditor) Choice() models.ProjectStatus {
	return models.ProjectStatuses[e.choice]
}

// Edit moves from viewing to editing, highlighting the current status
func (e *StatusEditor) Edit() {
	if e.mode != Viewing {
		return
	}
	e.mode = Editing
	e.err = nil
	e.choice = max(0, slices.Index(models.ProjectStatuses, models.NormalizeProjectStatus(string(e.current))))
}

// Cancel returns to viewing without saving
func (e *StatusEditor) Cancel() {
	if e.mode != Editing {
		return
	}
	e.mode = Viewing
	e.err = nil
}

// Next highlights the following status, wrapping around
func (e *StatusEditor) Next() {
	if e.mode == Editing {
		e.choice = (e.choice + 1) % len(models.ProjectStatuses)
	}
}

// Prev highlights the previous status, wrapping around
func (e *StatusEditor) Prev() {
	if e.mode == Editing {
		e.choice = (e.choice - 1 + len(models.ProjectStatuses)) % len(models.ProjectStatuses)
	}
}

// Save moves to saving and returns the highlighted status
func (e *StatusEditor) Save() (models.ProjectStatus, error) {
	return e.Submit(string(e.Choice()))
}

// Submit validates value and moves to saving. An invalid value keeps the
// editor in editing with a validation error.
func (e *StatusEditor) Submit(value string) (models.ProjectStatus, error) {
	if e.mode != Editing {
		return "", ErrNotEditing
	}
	status, ok := models.ParseProjectStatus(value)
	if !ok {
		e.err = ErrInvalidStatus
		return "", ErrInvalidStatus
	}
	e.mode = Saving
	e.err = nil
	return status, nil
}

// Saved completes a save with the status the platform stored
func (e *StatusEditor) Saved(status models.ProjectStatus) {
	if e.mode != Saving {
		return
	}
	e.mode = Viewing
	e.current = status
	e.err = nil
}

// Failed returns to editing with err
func (e *StatusEditor) Failed(err error) {
	if e.mode != Saving {
		return
	}
	e.mode = Editing
	e.err = err
}
