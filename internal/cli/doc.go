// Package cli provides the interactive PasskeyLab terminal client.
//
// It wires configuration, the conversion metrics store, simulated ceremonies,
// the session controller and the transaction authorizer, then runs a REPL
// whose commands depend on the current view. Outcomes are printed as toast
// lines by notify.Console; logs go to stderr.
//
// Typical flow: start → passkey → bank → pay 200 → stats → signout.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
