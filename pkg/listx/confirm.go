package listx

import (
	"context"
	"errors"
)

// ErrNotConfirmed is returned when the user declines a destructive action
var ErrNotConfirmed = errors.New("action not confirmed")

// Confirmer asks the user to approve a destructive action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// AlwaysConfirm approves everything
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })

// RequireConfirmation returns ErrNotConfirmed unless c approves prompt
func RequireConfirmation(ctx context.Context, c Confirmer, prompt string) error {
	if c == nil || !c.Confirm(ctx, prompt) {
		return ErrNotConfirmed
	}
	return nil
}
