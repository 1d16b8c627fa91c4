package handler

import (
	"encoding/base64"
	"html/template"
	"net/http"

	"nutrigen/internal/app/nutrition"
	"nutrigen/internal/app/page"
	"nutrigen/internal/pkg/errs"
	"nutrigen/internal/pkg/req"
)

const (
	nutritionResultTitle = "Nutrition AI:"
	dietResultTitle      = "Diet Planner AI:"
)

// HandleNutritionForm analyzes the uploaded food image and renders the breakdown.
func HandleNutritionForm(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		if !page.CanUseFeatures(sess.State) {
			redirectHome(w, r)
			return
		}

		data := newViewData(page.Main, sess.State.Username)
		data.Main = newMainView(ModeNutrition, nutrition.DietRequest{})

		upload, customErr := readUpload(w, r)
		if customErr == nil {
			var result string
			result, customErr = deps.Planner.AnalyzeImage(r.Context(), upload)
			if customErr == nil {
				data.Main.ResultTitle = nutritionResultTitle
				data.Main.Result = deps.Views.markdown(r, result)
				data.Main.ImagePreview = imagePreview(upload)
			}
		}
		if customErr != nil {
			data.Error = customErr.Message
		}

		deps.Views.render(w, r, page.Main, data)
	}
}

// HandleDietForm builds a diet plan from the submitted selections and text.
func HandleDietForm(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		if !page.CanUseFeatures(sess.State) {
			redirectHome(w, r)
			return
		}

		if err := r.ParseForm(); err != nil {
			redirectHome(w, r)
			return
		}

		dr := nutrition.DietRequest{
			AgeGroup: r.PostForm.Get("age_group"),
			Diseases: r.PostForm["diseases"],
			Input:    r.PostForm.Get("input"),
		}

		data := newViewData(page.Main, sess.State.Username)
		data.Main = newMainView(ModeDiet, dr)

		result, customErr := deps.Planner.PlanDiet(r.Context(), dr)
		if customErr != nil {
			data.Error = customErr.Message
		} else {
			data.Main.ResultTitle = dietResultTitle
			data.Main.Result = deps.Views.markdown(r, result)
		}

		deps.Views.render(w, r, page.Main, data)
	}
}

// readUpload parses the multipart body and returns the "image" field, or nil when none was sent.
func readUpload(w http.ResponseWriter, r *http.Request) (*nutrition.Upload, *errs.CustomError) {
	if customErr := req.SetupMultipart(w, r); customErr != nil {
		return nil, customErr
	}

	file, customErr := req.FormFile(r, "image")
	if customErr != nil || file == nil {
		return nil, customErr
	}

	return &nutrition.Upload{
		FileName: file.FileName,
		MIMEType: file.MIMEType,
		Data:     file.Data,
	}, nil
}

func imagePreview(u *nutrition.Upload) template.URL {
	if u == nil || len(u.Data) == 0 {
		return ""
	}
	mimeType := http.DetectContentType(u.Data)
	return template.URL("data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(u.Data))
}
