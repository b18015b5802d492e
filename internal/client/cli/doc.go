// Package cli provides the interactive vigil command-line client.
//
// It wires configuration, the storage backends, the tiered store and the
// session, profile, preference and keyring services, then runs a REPL.
// Typical flow: unlock secure storage, log in with an access token, view or
// edit the profile, toggle UI preferences.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
