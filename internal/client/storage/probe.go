package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vigilkeeper/internal/client/repositories/kv"
)

// Backend is the part of kv.Repository a tier needs.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Outcome is the tri-state result of one tier call.
type Outcome int

const (
	// NotApplicable means the tier failed or is unavailable; Reason says why.
	NotApplicable Outcome = iota
	OK
	Absent
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Absent:
		return "absent"
	default:
		return "not_applicable"
	}
}

// Result is what a probe observed.
type Result struct {
	Outcome Outcome
	Value   []byte
	Reason  error
}

// Unavailable reports whether the tier declared itself unavailable, as
// opposed to failing while available.
func (r Result) Unavailable() bool {
	return r.Outcome == NotApplicable && errors.Is(r.Reason, kv.ErrUnavailable)
}

type panicError struct {
	v any
}

func (p panicError) Error() string { return fmt.Sprintf("backend panic: %v", p.v) }

func probeRead(ctx context.Context, b Backend, key string) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{Outcome: NotApplicable, Reason: panicError{v: p}}
		}
	}()

	v, err := b.Get(ctx, key)
	switch {
	case err != nil:
		return Result{Outcome: NotApplicable, Reason: err}
	case v == nil:
		return Result{Outcome: Absent}
	default:
		return Result{Outcome: OK, Value: v}
	}
}

func probeWrite(fn func() error) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{Outcome: NotApplicable, Reason: panicError{v: p}}
		}
	}()

	if err := fn(); err != nil {
		return Result{Outcome: NotApplicable, Reason: err}
	}
	return Result{Outcome: OK}
}
