package handler

import (
	"net/http"

	"nutrigen/internal/app/page"
	"nutrigen/internal/app/session"
	"nutrigen/internal/pkg/errs"
	"nutrigen/internal/pkg/logx"
)

// currentSession returns the request's session with its page resolved, so a session
// claiming the main page without a login is treated as being on the login page.
func currentSession(r *http.Request) session.Session {
	sess := session.FromContext(r)
	if resolved := page.Resolve(sess.State); resolved != sess.State.Current {
		sess.State = page.State{Current: resolved}
	}
	return sess
}

// can reports whether e is allowed from the session's current page.
func can(sess session.Session, e page.Event) bool {
	_, ok := page.Transition(sess.State, e)
	return ok
}

// transition moves sess through e without saving it. A login records username.
func transition(r *http.Request, sess session.Session, e page.Event, username string) (session.Session, *errs.CustomError) {
	next, ok := page.Transition(sess.State, e)
	if !ok {
		return sess, errs.NewError(errs.ErrInvalidNavigation)
	}
	if e == page.LoginSucceeded {
		next.Username = username
	}

	logx.Ctx(r.Context()).Info().
		Str("event", e.String()).
		Str("from", sess.State.Current.String()).
		Str("to", next.Current.String()).
		Msg("Session page changed")

	sess.State = next
	return sess, nil
}

// apply is transition followed by storing the result in the cookie.
func (d *AppDeps) apply(w http.ResponseWriter, r *http.Request, sess session.Session, e page.Event, username string) (session.Session, *errs.CustomError) {
	next, customErr := transition(r, sess, e, username)
	if customErr != nil {
		return sess, customErr
	}
	if customErr := d.save(w, r, next); customErr != nil {
		return sess, customErr
	}
	return next, nil
}

func (d *AppDeps) save(w http.ResponseWriter, r *http.Request, sess session.Session) *errs.CustomError {
	if err := session.Save(w, r, d.Sessions, sess); err != nil {
		return errs.NewError(errs.ErrUnknown, err)
	}
	return nil
}

// navigationEvents maps the targets of the navigation buttons to their events.
var navigationEvents = map[string]page.Event{
	page.Register.String():      page.ShowRegister,
	page.ResetPassword.String(): page.ShowResetPassword,
	page.Login.String():         page.ShowLogin,
}
