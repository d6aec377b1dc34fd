// Package ceremony simulates the authenticator and server interactions that
// registration, login and step-up verification would perform.
//
// A ceremony is a bounded-latency operation identified by a Kind. The
// Performer interface is what the session and transaction layers depend on:
//
//   - Simulated waits for the configured latency, honours context
//     cancellation and an optional per-ceremony timeout, and can be told to
//     reject selected kinds.
//   - ceremonytest.Instant returns immediately and lets tests inject
//     failures.
//
// Platform is the capability probe the host supplies to tell whether a
// platform credential API exists at all.
package ceremony
