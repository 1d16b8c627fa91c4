package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"nutrigen/internal/app/page"
	"nutrigen/internal/pkg/logx"
)

type contextKey string

// contextSessionKey stores the decoded *Session in the request context.
const contextSessionKey contextKey = "session"

// New returns a fresh session on the login page.
func New() Session {
	return Session{
		ID:    uuid.New().String(),
		State: page.Initial(),
	}
}

// Middleware decodes the session cookie and injects the session into the request context.
// A missing, tampered or expired cookie starts a fresh session instead of failing the request.
func Middleware(codec *Codec) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := fromCookie(r, codec)
			if !ok {
				sess = New()
			}

			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("session_id", sess.ID)
			})

			ctx := context.WithValue(r.Context(), contextSessionKey, &sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func fromCookie(r *http.Request, codec *Codec) (Session, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}

	sess, err := codec.Decode(cookie.Value)
	if err != nil {
		logx.Ctx(r.Context()).Warn().Err(err).Msg("Invalid or expired session cookie, starting a new session")
		return Session{}, false
	}

	return sess, true
}

// FromContext returns the session injected by Middleware, or a fresh one when the
// request did not pass through it.
func FromContext(r *http.Request) Session {
	sess, ok := r.Context().Value(contextSessionKey).(*Session)
	if !ok {
		return New()
	}
	return *sess
}

// Save signs s into the session cookie and updates the request-scoped copy, so later
// reads within the same request see the new state.
func Save(w http.ResponseWriter, r *http.Request, codec *Codec, s Session) error {
	token, err := codec.Encode(s)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   codec.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	if current, ok := r.Context().Value(contextSessionKey).(*Session); ok {
		*current = s
	}

	return nil
}
