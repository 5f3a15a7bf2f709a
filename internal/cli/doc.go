// Package cli provides the interactive notekeeper terminal client.
//
// It is the presentation layer over notes.FileStore and
// accounts.AccountStore: it restores the persisted session, reads commands
// from a REPL and decides which commands the current session may run.
// Uploading, deleting and administrator management require the session's
// admin flag; this check lives here only, the stores trust their caller.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends.
package cli
