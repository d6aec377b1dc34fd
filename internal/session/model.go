package session

import (
	"fmt"
	"time"
)

// View is the screen the session is showing.
type View string

const (
	ViewHome      View = "home"
	ViewRegister  View = "register"
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
	ViewBanking   View = "banking"
)

// ParseView validates s as a View.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewHome, ViewRegister, ViewLogin, ViewDashboard, ViewBanking:
		return v, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// User is an account created during the session.
type User struct {
	ID       string
	Username string
	// CredentialHandle is set only for accounts registered with a passkey.
	CredentialHandle string
	CreatedAt        time.Time
}

// HasPasskey reports whether the user can sign in with a passkey.
func (u User) HasPasskey() bool {
	return u.CredentialHandle != ""
}

// State is a snapshot of the controller.
type State struct {
	View        View
	CurrentUser *User
	Loading     bool
}

// Registry holds users in registration order. Lookups return the first user
// with a matching name; duplicate names are allowed.
type Registry struct {
	users []User
}

func (r *Registry) Add(u User) {
	r.users = append(r.users, u)
}

func (r *Registry) FindByUsername(username string) (User, bool) {
	for _, u := range r.users {
		if u.Username == username {
			return u, true
		}
	}
	return User{}, false
}

func (r *Registry) All() []User {
	return append([]User(nil), r.users...)
}

func (r *Registry) Len() int {
	return len(r.users)
}
