package handler

import (
	"net/http"

	"nutrigen/internal/app/nutrition"
	"nutrigen/internal/app/page"
	"nutrigen/internal/app/session"
	"nutrigen/internal/pkg/errs"
	"nutrigen/internal/pkg/req"
	"nutrigen/internal/pkg/resp"
)

// SessionView is the JSON form of a session's state.
type SessionView struct {
	LoggedIn bool   `json:"loggedIn"`
	Page     string `json:"page"`
	Username string `json:"username,omitempty"`
	Message  string `json:"message,omitempty"`
}

// FeatureResult is the JSON payload of a feature call.
type FeatureResult struct {
	Result string `json:"result"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type ResetPasswordInput struct {
	Username        string `json:"username"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type NavigateInput struct {
	Page string `json:"page"`
}

// deliver consumes the one-shot message of sess, saves it and returns its view.
func (d *AppDeps) deliver(w http.ResponseWriter, r *http.Request, sess session.Session) (SessionView, *errs.CustomError) {
	var msg string
	sess.State, msg = page.TakeMessage(sess.State)

	if customErr := d.save(w, r, sess); customErr != nil {
		return SessionView{}, customErr
	}

	return SessionView{
		LoggedIn: sess.State.LoggedIn,
		Page:     sess.State.Current.String(),
		Username: sess.State.Username,
		Message:  msg,
	}, nil
}

func (d *AppDeps) respondSession(w http.ResponseWriter, r *http.Request, sess session.Session) {
	view, customErr := d.deliver(w, r, sess)
	if customErr != nil {
		resp.RespondError(w, r, customErr)
		return
	}
	resp.RespondSuccess(w, r, view)
}

func viewOf(sess session.Session) SessionView {
	return SessionView{
		LoggedIn: sess.State.LoggedIn,
		Page:     sess.State.Current.String(),
		Username: sess.State.Username,
	}
}

// HandleGetSession returns the session state and consumes its one-shot message.
func HandleGetSession(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.respondSession(w, r, currentSession(r))
	}
}

func HandleAPILogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		if !can(sess, page.LoginSucceeded) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidNavigation), viewOf(sess))
			return
		}

		var input LoginInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := deps.Accounts.Login(r.Context(), input.Username, input.Password); customErr != nil {
			resp.RespondError(w, r, customErr, viewOf(sess))
			return
		}

		next, customErr := transition(r, sess, page.LoginSucceeded, input.Username)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		deps.respondSession(w, r, next)
	}
}

func HandleAPIRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		if !can(sess, page.Registered) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidNavigation), viewOf(sess))
			return
		}

		var input RegisterInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := deps.Accounts.Register(r.Context(), input.Username, input.Password, input.ConfirmPassword); customErr != nil {
			resp.RespondError(w, r, customErr, viewOf(sess))
			return
		}

		next, customErr := transition(r, sess, page.Registered, "")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		deps.respondSession(w, r, next)
	}
}

func HandleAPIResetPassword(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		if !can(sess, page.PasswordReset) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidNavigation), viewOf(sess))
			return
		}

		var input ResetPasswordInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := deps.Accounts.ResetPassword(r.Context(), input.Username, input.NewPassword, input.ConfirmPassword); customErr != nil {
			resp.RespondError(w, r, customErr, viewOf(sess))
			return
		}

		next, customErr := transition(r, sess, page.PasswordReset, "")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		deps.respondSession(w, r, next)
	}
}

func HandleAPILogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		if !can(sess, page.Logout) {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized), viewOf(sess))
			return
		}

		next, customErr := transition(r, sess, page.Logout, "")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		deps.respondSession(w, r, next)
	}
}

func HandleAPINavigate(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)

		var input NavigateInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		e, ok := navigationEvents[input.Page]
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams), viewOf(sess))
			return
		}

		next, customErr := transition(r, sess, e, "")
		if customErr != nil {
			resp.RespondError(w, r, customErr, viewOf(sess))
			return
		}
		deps.respondSession(w, r, next)
	}
}

func HandleAPINutrition(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !page.CanUseFeatures(currentSession(r).State) {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		upload, customErr := readUpload(w, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		result, customErr := deps.Planner.AnalyzeImage(r.Context(), upload)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		resp.RespondSuccess(w, r, FeatureResult{Result: result})
	}
}

func HandleAPIDiet(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !page.CanUseFeatures(currentSession(r).State) {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input nutrition.DietRequest
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		result, customErr := deps.Planner.PlanDiet(r.Context(), input)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		resp.RespondSuccess(w, r, FeatureResult{Result: result})
	}
}
