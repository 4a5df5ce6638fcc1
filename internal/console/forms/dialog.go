package forms

import (
	"context"
	"errors"
	"fmt"

	"sarb.backend/pkg/apiclient"
)

var ErrInvalidTransition = errors.New("invalid dialog transition")

type Phase string

const (
	Closed     Phase = "closed"
	Open       Phase = "open"
	Submitting Phase = "submitting"
)

type Mode string

const (
	Add  Mode = "add"
	Edit Mode = "edit"
)

// Dialog is the add/edit form lifecycle:
// closed -> open -> submitting -> closed, with a failed submit returning to
// open and keeping the draft.
type Dialog[D Draft] struct {
	phase  Phase
	mode   Mode
	editID int64
	draft  D
	err    string
}

func NewDialog[D Draft]() *Dialog[D] {
	return &Dialog[D]{phase: Closed}
}

func (d *Dialog[D]) Phase() Phase { return d.phase }

func (d *Dialog[D]) Mode() Mode { return d.mode }

func (d *Dialog[D]) EditID() int64 { return d.editID }

func (d *Dialog[D]) Draft() D { return d.draft }

// Error is the inline error from the last failed submit.
func (d *Dialog[D]) Error() string { return d.err }

// OpenAdd opens an empty or preset draft.
func (d *Dialog[D]) OpenAdd(draft D) error {
	return d.open(Add, 0, draft)
}

// OpenEdit opens a draft prefilled from the entity with id.
func (d *Dialog[D]) OpenEdit(id int64, draft D) error {
	return d.open(Edit, id, draft)
}

func (d *Dialog[D]) open(mode Mode, id int64, draft D) error {
	if d.phase != Closed {
		return d.invalid("open")
	}
	d.phase, d.mode, d.editID, d.draft, d.err = Open, mode, id, draft, ""
	return nil
}

// SetDraft replaces the draft while the dialog is open.
func (d *Dialog[D]) SetDraft(draft D) error {
	if d.phase != Open {
		return d.invalid("edit")
	}
	d.draft = draft
	return nil
}

// Cancel closes an open dialog and discards the draft.
func (d *Dialog[D]) Cancel() error {
	if d.phase != Open {
		return d.invalid("cancel")
	}
	d.reset()
	return nil
}

func (d *Dialog[D]) reset() {
	var zero D
	d.phase, d.mode, d.editID, d.draft, d.err = Closed, "", 0, zero, ""
}

func (d *Dialog[D]) invalid(action string) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, action, d.phase)
}

// Target receives a submitted draft. Resource slices satisfy it.
type Target[T any] interface {
	Create(ctx context.Context, payload apiclient.Payload) (T, error)
	Update(ctx context.Context, id int64, payload apiclient.Payload) (T, error)
}

// Submit validates the draft and sends it to target: a create in add mode,
// an update in edit mode. Success closes the dialog; failure reopens it with
// the error shown inline.
func Submit[T any, D Draft](ctx context.Context, d *Dialog[D], target Target[T]) (T, error) {
	var zero T
	if d.phase != Open {
		return zero, d.invalid("submit")
	}
	if err := d.draft.Validate(); err != nil {
		d.err = err.Error()
		return zero, err
	}

	d.phase, d.err = Submitting, ""
	var (
		out T
		err error
	)
	if d.mode == Edit {
		out, err = target.Update(ctx, d.editID, d.draft.Payload())
	} else {
		out, err = target.Create(ctx, d.draft.Payload())
	}
	if err != nil {
		d.phase = Open
		d.err = errorText(err)
		return zero, err
	}
	d.reset()
	return out, nil
}

func errorText(err error) string {
	if msg := apiclient.MessageOf(err); msg != "" {
		return msg
	}
	return err.Error()
}
