// Package kv defines the key-value repository contract shared by every
// storage backend of the client, and its default SQLite implementation
// used as the general (unencrypted) tier.
//
// Contract
//
//   - Get returns (nil, nil) when the key does not exist.
//   - Set is an upsert: the last write wins.
//   - Delete of a missing key is not an error.
//   - Backends that cannot serve calls at all (for example a locked secure
//     store) return an error matching ErrUnavailable.
package kv
