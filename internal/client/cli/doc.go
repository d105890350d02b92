// Package cli provides the interactive FingerGate terminal client.
//
// It wires configuration, the account database, the per-user data backend,
// the fingerprint sensor and an interactive REPL. Typical flow: enroll a
// fingerprint and register, or log in with a password or fingerprint, then
// view and replace the stored data for the logged-in user.
//
// Input goes through a single Console so the REPL and the prompt-based
// sensor never compete for the terminal.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartSensorWatcher, and runREPL for details.
package cli
