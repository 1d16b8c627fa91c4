/*
Package page models the navigation state of one user session.

A session is always on exactly one of four pages. Page changes happen only through
Transition, a pure function of the current State and a user-triggered Event, so every
handler receives a State and hands back the next one instead of mutating shared flags.
*/
package page

import "fmt"

// Page is the closed set of views a session can be on.
type Page int

const (
	Login Page = iota
	Register
	ResetPassword
	Main
)

var pageNames = [...]string{
	Login:         "login",
	Register:      "register",
	ResetPassword: "reset_password",
	Main:          "main",
}

// All returns every page in declaration order.
func All() []Page {
	return []Page{Login, Register, ResetPassword, Main}
}

// String returns the wire name of the page (login, register, reset_password, main).
func (p Page) String() string {
	if p < 0 || int(p) >= len(pageNames) {
		return fmt.Sprintf("page(%d)", int(p))
	}
	return pageNames[p]
}

// Valid reports whether p is one of the four declared pages.
func (p Page) Valid() bool {
	return p >= Login && p <= Main
}

// Parse maps a wire name back to its Page.
func Parse(name string) (Page, error) {
	for _, p := range All() {
		if pageNames[p] == name {
			return p, nil
		}
	}
	return Login, fmt.Errorf("unknown page %q", name)
}

// Event is a user action that may move a session to another page.
type Event int

const (
	// LoginSucceeded follows a credential match on the login page.
	LoginSucceeded Event = iota
	// ShowRegister is the "New User? Register" button on the login page.
	ShowRegister
	// ShowResetPassword is the "Forgot Password" button on the login page.
	ShowResetPassword
	// ShowLogin is the "Back to Login" button on the register and reset pages.
	ShowLogin
	// Registered follows a persisted registration.
	Registered
	// PasswordReset follows a persisted password change.
	PasswordReset
	// Logout is the logout button on the main page.
	Logout
)

func (e Event) String() string {
	switch e {
	case LoginSucceeded:
		return "login_succeeded"
	case ShowRegister:
		return "show_register"
	case ShowResetPassword:
		return "show_reset_password"
	case ShowLogin:
		return "show_login"
	case Registered:
		return "registered"
	case PasswordReset:
		return "password_reset"
	case Logout:
		return "logout"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// One-shot messages set by successful account operations.
const (
	RegisteredMessage    = "User registered successfully!"
	PasswordResetMessage = "Password changed successfully!"
)

// State is the per-session navigation state. It is never persisted server-side.
type State struct {
	LoggedIn bool
	Current  Page

	// Username is the account that logged in; empty while logged out.
	Username string

	// Message is shown once on the next render and then cleared.
	Message string
}

// Initial returns the state of a brand new session.
func Initial() State {
	return State{Current: Login}
}

// Transition applies e to s. It returns the next state and true, or s unchanged and
// false when e is not allowed from the current page.
func Transition(s State, e Event) (State, bool) {
	switch s.Current {
	case Login:
		switch e {
		case LoginSucceeded:
			s.LoggedIn = true
			s.Current = Main
			return s, true
		case ShowRegister:
			s.Current = Register
			return s, true
		case ShowResetPassword:
			s.Current = ResetPassword
			return s, true
		}

	case Register:
		switch e {
		case Registered:
			s.Current = Login
			s.Message = RegisteredMessage
			return s, true
		case ShowLogin:
			s.Current = Login
			return s, true
		}

	case ResetPassword:
		switch e {
		case PasswordReset:
			s.Current = Login
			s.Message = PasswordResetMessage
			return s, true
		case ShowLogin:
			s.Current = Login
			return s, true
		}

	case Main:
		if e == Logout {
			return State{Current: Login}, true
		}
	}

	return s, false
}

// Resolve returns the page that must be rendered for s. Main is only reachable while
// logged in; a session claiming Main without a login renders Login.
func Resolve(s State) Page {
	if !s.Current.Valid() {
		return Login
	}
	if s.Current == Main && !s.LoggedIn {
		return Login
	}
	return s.Current
}

// CanUseFeatures reports whether s may call the nutrition and diet features.
func CanUseFeatures(s State) bool {
	return s.LoggedIn && s.Current == Main
}

// TakeMessage returns the one-shot message of s and the state with the message cleared.
func TakeMessage(s State) (State, string) {
	msg := s.Message
	s.Message = ""
	return s, msg
}
