package storage

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/vigilkeeper/internal/logging"
	"github.com/dmitrijs2005/vigilkeeper/internal/metrics"
)

// Tier names used in logs and metrics.
const (
	TierSecure  = "secure"
	TierGeneral = "general"
	TierNone    = "none"
)

var (
	ErrWriteFailed  = errors.New("no storage tier accepted the write")
	ErrDeleteFailed = errors.New("storage delete failed")
)

// Report holds the per-tier results of one tiered operation.
//
// For Set, General is the fallback write when the secure write failed and
// the cleanup delete otherwise. Served names the tier that holds (Get, Set)
// the value afterwards, or TierNone.
type Report struct {
	Secure  Result
	General Result
	Served  string
	Err     error
}

type Store struct {
	secure  Backend
	general Backend
	log     logging.Logger
	rec     metrics.Recorder
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithRecorder(r metrics.Recorder) Option {
	return func(s *Store) { s.rec = r }
}

// New returns a Store that prefers secure and falls back to general.
func New(secure, general Backend, opts ...Option) *Store {
	s := &Store{
		secure:  secure,
		general: general,
		log:     logging.Nop(),
		rec:     metrics.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) record(tier, op string, r Result) {
	s.rec.RecordTierOp(tier, op, r.Outcome.String())
}

// Set stores value, preferring the secure tier. It fails only when neither
// tier accepted the write.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.SetReport(ctx, key, value).Err
}

func (s *Store) SetReport(ctx context.Context, key string, value []byte) Report {
	var rep Report

	rep.Secure = probeWrite(func() error { return s.secure.Set(ctx, key, value) })
	s.record(TierSecure, "set", rep.Secure)

	if rep.Secure.Outcome == OK {
		rep.Served = TierSecure
		rep.General = probeWrite(func() error { return s.general.Delete(ctx, key) })
		s.record(TierGeneral, "cleanup", rep.General)
		if rep.General.Outcome != OK {
			s.rec.RecordCleanupFailure()
			s.log.Warn(ctx, "plaintext copy not removed after secure write",
				"key", key, "tier", TierGeneral, "op", "cleanup", "reason", rep.General.Reason)
		}
		return rep
	}

	s.rec.RecordFallback("set")
	s.log.Warn(ctx, "secure tier rejected write, storing in general tier",
		"key", key, "tier", TierSecure, "op", "set", "reason", rep.Secure.Reason)

	rep.General = probeWrite(func() error { return s.general.Set(ctx, key, value) })
	s.record(TierGeneral, "set", rep.General)
	if rep.General.Outcome == OK {
		rep.Served = TierGeneral
		s.dropSecureCopy(ctx, key)
		return rep
	}

	rep.Served = TierNone
	rep.Err = errors.Join(ErrWriteFailed, rep.Secure.Reason, rep.General.Reason)
	s.log.Error(ctx, "write failed on every tier", "key", key, "error", rep.Err)
	return rep
}

// dropSecureCopy removes an older secure value after a fallback write so it
// cannot shadow the newer general value once the secure tier is readable.
func (s *Store) dropSecureCopy(ctx context.Context, key string) {
	r := probeWrite(func() error { return s.secure.Delete(ctx, key) })
	s.record(TierSecure, "cleanup", r)
	if r.Outcome == OK {
		return
	}
	if r.Unavailable() {
		s.log.Debug(ctx, "secure tier unavailable, older secure copy kept", "key", key)
		return
	}
	s.rec.RecordCleanupFailure()
	s.log.Warn(ctx, "older secure copy not removed after fallback write",
		"key", key, "tier", TierSecure, "op", "cleanup", "reason", r.Reason)
}

// Get returns the value stored under key and whether it was found. Tier
// failures are treated as misses.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	rep := s.GetReport(ctx, key)
	if rep.Served == TierNone {
		return nil, false
	}
	if rep.Served == TierSecure {
		return rep.Secure.Value, true
	}
	return rep.General.Value, true
}

func (s *Store) GetReport(ctx context.Context, key string) Report {
	var rep Report

	rep.Secure = probeRead(ctx, s.secure, key)
	s.record(TierSecure, "get", rep.Secure)
	if rep.Secure.Outcome == OK {
		rep.Served = TierSecure
		return rep
	}

	if rep.Secure.Outcome == NotApplicable {
		s.rec.RecordFallback("get")
		if rep.Secure.Unavailable() {
			s.log.Debug(ctx, "secure tier unavailable, reading general tier", "key", key)
		} else {
			s.log.Warn(ctx, "secure tier read failed, reading general tier",
				"key", key, "tier", TierSecure, "op", "get", "reason", rep.Secure.Reason)
		}
	}

	rep.General = probeRead(ctx, s.general, key)
	s.record(TierGeneral, "get", rep.General)
	switch rep.General.Outcome {
	case OK:
		rep.Served = TierGeneral
	case NotApplicable:
		rep.Served = TierNone
		s.log.Warn(ctx, "general tier read failed",
			"key", key, "tier", TierGeneral, "op", "get", "reason", rep.General.Reason)
	default:
		rep.Served = TierNone
	}
	return rep
}

// Delete removes key from both tiers. An unavailable secure tier is not an
// error; a tier that is available but fails to delete is.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.DeleteReport(ctx, key).Err
}

func (s *Store) DeleteReport(ctx context.Context, key string) Report {
	var rep Report

	rep.Secure = probeWrite(func() error { return s.secure.Delete(ctx, key) })
	s.record(TierSecure, "delete", rep.Secure)

	rep.General = probeWrite(func() error { return s.general.Delete(ctx, key) })
	s.record(TierGeneral, "delete", rep.General)

	var errs []error
	if rep.Secure.Outcome != OK && !rep.Secure.Unavailable() {
		errs = append(errs, rep.Secure.Reason)
	}
	if rep.General.Outcome != OK {
		errs = append(errs, rep.General.Reason)
	}
	if len(errs) > 0 {
		rep.Err = errors.Join(append([]error{ErrDeleteFailed}, errs...)...)
		s.log.Warn(ctx, "delete incomplete", "key", key, "op", "delete", "reason", rep.Err)
	}
	rep.Served = TierNone
	return rep
}
