package services

import (
	"context"

	"redheart/internal/domain"
)

// Reconciled is the outcome of an optimistic mutation: the view shown while
// the request ran, the view the server returned afterwards, and the mutation's
// own error, if any.
type Reconciled[T any] struct {
	Optimistic T                   `json:"optimistic"`
	Final      domain.ViewState[T] `json:"final"`
	MutateErr  error               `json:"-"`
	Message    string              `json:"message,omitempty"`
}

// OK reports whether the mutation itself went through.
func (r Reconciled[T]) OK() bool { return r.MutateErr == nil }

// MutateThenReconcile applies patch to current, runs mutate, then refetches
// whether or not mutate failed. A failed refetch leaves Final in the failed
// state with refetchMsg.
func MutateThenReconcile[T any](
	ctx context.Context,
	current T,
	patch func(T) T,
	mutate func(context.Context) error,
	refetch func(context.Context) (T, error),
	refetchMsg string,
) Reconciled[T] {
	var r Reconciled[T]
	r.Optimistic = patch(current)
	r.MutateErr = mutate(ctx)

	data, err := refetch(ctx)
	if err != nil {
		r.Final = domain.FailedState[T](refetchMsg)
		return r
	}
	r.Final = domain.LoadedState(data)
	return r
}
