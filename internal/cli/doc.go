// Package cli provides the interactive GophSocial command-line client.
//
// App wires the configured store, the account and social services and a
// single session into a REPL. Commands that need an argument prompt for it
// when it is missing. Domain errors are printed and the loop continues; a
// lost graph connection ends the session.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
