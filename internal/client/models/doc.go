// Package models defines the records the client persists: the authenticated
// session, the agent profile and the UI preference keys.
//
// JSON field names are part of the on-device format and must not change;
// fields added later must be optional so older records still decode.
package models
