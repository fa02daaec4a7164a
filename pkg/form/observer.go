package form

import "context"

// Outcome describes a finished submit attempt.
type Outcome struct {
	Form     string
	Mode     Mode
	Accepted bool
	// Aborted is set when the record builder refused a valid dialog.
	Aborted bool
	Errors   Errors
}

// Observer is notified around every submit attempt. Implementations record
// metrics and traces; they must not call back into the controller.
type Observer interface {
	SubmitStarted(ctx context.Context, form string, mode Mode) (context.Context, func(Outcome))
}

type nopObserver struct{}

func (nopObserver) SubmitStarted(ctx context.Context, _ string, _ Mode) (context.Context, func(Outcome)) {
	return ctx, func(Outcome) {}
}
