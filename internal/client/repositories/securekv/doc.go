// Package securekv is the secure (encrypted-at-rest) storage tier.
//
// Values live in the kv_secure table sealed with AES-256-GCM; the key name is
// bound as additional data so rows cannot be swapped. The repository starts
// locked: until Unlock hands it the keyring key, Get, Set and List fail with
// kv.ErrUnavailable, which is how the tiered store learns that secure storage
// is not available. Delete and Clear only remove rows and work while locked.
package securekv
