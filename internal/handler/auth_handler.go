package handler

import (
	"net/http"

	"nutrigen/internal/app/page"
	"nutrigen/internal/app/session"
	"nutrigen/internal/pkg/errs"
	"nutrigen/internal/pkg/logx"
	"nutrigen/internal/pkg/resp"
)

// HandleLoginForm verifies the submitted credentials and moves the session to the main page.
func HandleLoginForm(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		if !can(sess, page.LoginSucceeded) {
			redirectHome(w, r)
			return
		}

		username := r.PostFormValue("username")
		if customErr := deps.Accounts.Login(r.Context(), username, r.PostFormValue("password")); customErr != nil {
			deps.renderFormError(w, r, sess, username, customErr)
			return
		}

		if _, customErr := deps.apply(w, r, sess, page.LoginSucceeded, username); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		redirectHome(w, r)
	}
}

// HandleRegisterForm creates an account and returns to the login page with a notice.
func HandleRegisterForm(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		if !can(sess, page.Registered) {
			redirectHome(w, r)
			return
		}

		username := r.PostFormValue("username")
		customErr := deps.Accounts.Register(r.Context(), username, r.PostFormValue("password"), r.PostFormValue("confirm_password"))
		if customErr != nil {
			deps.renderFormError(w, r, sess, username, customErr)
			return
		}

		if _, customErr := deps.apply(w, r, sess, page.Registered, ""); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		redirectHome(w, r)
	}
}

// HandleResetPasswordForm replaces a password and returns to the login page with a notice.
func HandleResetPasswordForm(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		if !can(sess, page.PasswordReset) {
			redirectHome(w, r)
			return
		}

		username := r.PostFormValue("username")
		customErr := deps.Accounts.ResetPassword(r.Context(), username, r.PostFormValue("new_password"), r.PostFormValue("confirm_password"))
		if customErr != nil {
			deps.renderFormError(w, r, sess, username, customErr)
			return
		}

		if _, customErr := deps.apply(w, r, sess, page.PasswordReset, ""); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		redirectHome(w, r)
	}
}

// HandleLogoutForm ends the login and returns to the login page.
func HandleLogoutForm(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		if can(sess, page.Logout) {
			if _, customErr := deps.apply(w, r, sess, page.Logout, ""); customErr != nil {
				resp.RespondError(w, r, customErr)
				return
			}
		}
		redirectHome(w, r)
	}
}

// HandleNavigateForm handles the buttons that switch between the login, register and reset pages.
func HandleNavigateForm(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)

		e, ok := navigationEvents[r.PostFormValue("page")]
		if !ok || !can(sess, e) {
			logx.Ctx(r.Context()).Debug().
				Str("target", r.PostFormValue("page")).
				Str("page", sess.State.Current.String()).
				Msg("Ignoring navigation not allowed from current page")
			redirectHome(w, r)
			return
		}

		if _, customErr := deps.apply(w, r, sess, e, ""); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		redirectHome(w, r)
	}
}

// renderFormError re-renders the current page with the failure shown inline,
// using the HTTP status the error carries.
func (d *AppDeps) renderFormError(w http.ResponseWriter, r *http.Request, sess session.Session, username string, customErr *errs.CustomError) {
	p := sess.State.Current
	data := newViewData(p, sess.State.Username)
	data.Error = customErr.Message
	data.FormUsername = username

	d.Views.renderStatus(w, r, customErr.Status, p, data)
}
