package session

import "github.com/golang-jwt/jwt"

// Claims is the JWT body of the session cookie.
// It carries the whole session state so the server keeps nothing between requests.
type Claims struct {
	// StandardClaims holds exp, iat, iss, jti (the session id) and sub (the logged-in username).
	jwt.StandardClaims

	// LoggedIn is the login flag of the session.
	LoggedIn bool `json:"logged_in"`

	// Page is the wire name of the current page.
	Page string `json:"page"`

	// Message is the pending one-shot message, if any.
	Message string `json:"message,omitempty"`
}
