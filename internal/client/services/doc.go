// Package services contains the client's application services: the session
// and profile record managers, UI preferences and the keyring that unlocks
// the secure storage tier.
package services
