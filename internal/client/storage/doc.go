// Package storage implements the tiered key-value store: a secure
// (encrypted) tier tried first and a general (plaintext) tier used as
// fallback.
//
// Rules
//
//   - Set writes the secure tier; on success the same key is removed from the
//     general tier so no stale plaintext copy survives. If the secure tier
//     cannot take the write, the value goes to the general tier instead.
//   - Get returns the first hit, secure tier first.
//   - Delete always hits both tiers, since earlier writes may have landed in
//     either.
//
// Each backend call is wrapped in a probe that turns errors and panics into
// a Result with an Outcome and the underlying Reason. Callers of Get, Set and
// Delete only see the aggregated outcome; the *Report variants expose the
// per-tier results. Nothing is retried.
package storage
