package kvstore

import (
	"context"
	"errors"

	"harborbank/pkg/platform/sentinel"
)

type errorCounter interface {
	IncrementStorageError(operation string)
}

// Instrumented counts failed operations of the wrapped store. A missing key
// is not a failure.
type Instrumented struct {
	next    Store
	counter errorCounter
}

func NewInstrumented(next Store, counter errorCounter) *Instrumented {
	return &Instrumented{next: next, counter: counter}
}

func (s *Instrumented) Get(ctx context.Context, key string) (string, error) {
	v, err := s.next.Get(ctx, key)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		s.counter.IncrementStorageError("get")
	}
	return v, err
}

func (s *Instrumented) Set(ctx context.Context, key, value string) error {
	err := s.next.Set(ctx, key, value)
	if err != nil {
		s.counter.IncrementStorageError("set")
	}
	return err
}

func (s *Instrumented) Delete(ctx context.Context, key string) error {
	err := s.next.Delete(ctx, key)
	if err != nil {
		s.counter.IncrementStorageError("delete")
	}
	return err
}
