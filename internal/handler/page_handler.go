package handler

import (
	"net/http"

	"nutrigen/internal/app/nutrition"
	"nutrigen/internal/app/page"
	"nutrigen/internal/pkg/resp"
)

// HandleIndex renders the view of the session's current page and consumes its one-shot message.
func HandleIndex(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)

		var msg string
		sess.State, msg = page.TakeMessage(sess.State)
		if customErr := deps.save(w, r, sess); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		p := sess.State.Current
		data := newViewData(p, sess.State.Username)
		data.Message = msg
		if p == page.Main {
			data.Main = newMainView(r.URL.Query().Get("mode"), nutrition.DietRequest{})
		}

		deps.Views.render(w, r, p, data)
	}
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
