/*
Package session carries the per-user session state between requests.

The state (login flag, current page, pending one-shot message) travels in a signed
HS256 JWT cookie. Nothing is stored server-side; a session ends when the browser drops
the cookie or the token expires.
*/
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"nutrigen/internal/app/page"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "nutrigen_session"

	// TokenExpiration bounds how long an idle browser session stays valid.
	TokenExpiration = 12 * time.Hour

	// TokenIssuer identifies the issuer of the token.
	TokenIssuer = "Nutrigen"
)

// Session is one user's session: a stable id for log correlation plus its page state.
type Session struct {
	ID    string
	State page.State
}

// Codec signs and verifies session tokens.
type Codec struct {
	secret   []byte
	duration time.Duration

	// Secure marks the cookie as HTTPS-only.
	Secure bool
}

// NewCodec returns a Codec signing with secretKey. A zero duration means TokenExpiration.
func NewCodec(secretKey string, duration time.Duration, secure bool) *Codec {
	if duration <= 0 {
		duration = TokenExpiration
	}
	return &Codec{
		secret:   []byte(secretKey),
		duration: duration,
		Secure:   secure,
	}
}

// Encode creates and signs a token string for s.
func (c *Codec) Encode(s Session) (string, error) {
	now := time.Now()

	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        s.ID,
			Subject:   s.State.Username,
			ExpiresAt: now.Add(c.duration).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    TokenIssuer,
		},
		LoggedIn: s.State.LoggedIn,
		Page:     s.State.Current.String(),
		Message:  s.State.Message,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(c.secret)
}

// Decode parses and validates tokenString and rebuilds the session it carries.
func (c *Codec) Decode(tokenString string) (Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})

	if err != nil {
		return Session{}, err
	}

	if !token.Valid {
		return Session{}, errors.New("invalid or expired token")
	}

	if claims.Id == "" {
		return Session{}, errors.New("session token without id")
	}

	current, err := page.Parse(claims.Page)
	if err != nil {
		return Session{}, err
	}

	return Session{
		ID: claims.Id,
		State: page.State{
			LoggedIn: claims.LoggedIn,
			Current:  current,
			Username: claims.Subject,
			Message:  claims.Message,
		},
	}, nil
}
