// Package controllers turns user events into store calls: board drags, editor
// saves and confirmed deletions.
package controllers

import (
	"context"
	"errors"
)

var (
	ErrDeleteNotConfirmed = errors.New("deletion was not confirmed")
	ErrNothingToDelete    = errors.New("editor has no saved task to delete")
)

// Confirmer is the yes/no gate in front of irreversible operations.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Answer is a confirmation given up front, such as a ?confirm=true flag.
type Answer bool

func (a Answer) Confirm(context.Context, string) (bool, error) {
	return bool(a), nil
}

func confirm(ctx context.Context, c Confirmer, prompt string) error {
	if c == nil {
		return ErrDeleteNotConfirmed
	}
	ok, err := c.Confirm(ctx, prompt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeleteNotConfirmed
	}
	return nil
}
