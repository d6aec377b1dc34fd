// Package session implements the view/session state machine of PasskeyLab.
//
// A Controller owns the current view, the registry of users created during
// the session and the signed-in user. Views move as follows:
//
//	Home ──BeginRegistration──▶ Register ──register ok──▶ Dashboard
//	Home ──BeginLogin──▶ Login
//	Register ◀──BeginRegistration / BeginLogin──▶ Login
//	Login ──login ok──▶ Dashboard ◀──Navigate──▶ Banking
//	any view ──SignOut──▶ Home
//
// Registration and login run a ceremony and are the only operations that
// block. Only one ceremony runs at a time per controller; a second request
// while one is in flight fails with common.ErrCeremonyInProgress. A failed
// operation changes nothing: registry, current user, view and the open
// conversion metric are updated together or not at all.
package session
