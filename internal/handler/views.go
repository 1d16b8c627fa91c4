package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"nutrigen/internal/app/nutrition"
	"nutrigen/internal/app/page"
	"nutrigen/internal/pkg/logx"
	"nutrigen/internal/pkg/resp"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "layout"

var pageTitles = map[page.Page]string{
	page.Login:         "Login",
	page.Register:      "Register",
	page.ResetPassword: "Reset Password",
	page.Main:          "Health: Nutrition Calculator & Diet Planner",
}

// Feature modes of the main page, selected with ?mode=.
const (
	ModeNutrition = "nutrition"
	ModeDiet      = "diet"
)

// Views holds one parsed template set per page.
type Views struct {
	pages map[page.Page]*template.Template
	md    goldmark.Markdown
}

// NewViews parses the embedded templates and fails unless every page has a view.
func NewViews() (*Views, error) {
	v := &Views{
		pages: make(map[page.Page]*template.Template, len(page.All())),
		md:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}

	for _, p := range page.All() {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+p.String()+".html")
		if err != nil {
			return nil, fmt.Errorf("parse view for page %s: %w", p, err)
		}
		v.pages[p] = tmpl
	}

	return v, nil
}

// MustViews is NewViews that panics on error.
func MustViews() *Views {
	v, err := NewViews()
	if err != nil {
		panic(err)
	}
	return v
}

// option is one entry of a select or checkbox group.
type option struct {
	Name     string
	Selected bool
}

// viewData is the model of every page.
type viewData struct {
	Title    string
	Page     string
	Username string

	// Message is a success notice, Error an inline failure.
	Message string
	Error   string

	// FormUsername refills the username field after a failed submit.
	FormUsername string

	Main *mainView
}

type mainView struct {
	Mode       string
	Accept     string
	MaxImageMB int

	AgeGroups []option
	Diseases  []option
	Input     string

	ResultTitle  string
	Result       template.HTML
	ImagePreview template.URL
}

func newViewData(p page.Page, username string) *viewData {
	return &viewData{
		Title:    pageTitles[p],
		Page:     p.String(),
		Username: username,
	}
}

func newMainView(mode string, dr nutrition.DietRequest) *mainView {
	if mode != ModeDiet {
		mode = ModeNutrition
	}
	if dr.AgeGroup == "" {
		dr.AgeGroup = nutrition.DefaultAgeGroup
	}

	mv := &mainView{
		Mode:       mode,
		Accept:     nutrition.AcceptAttr,
		MaxImageMB: nutrition.MaxImageSizeMB,
		Input:      dr.Input,
	}

	for _, a := range nutrition.AgeGroups {
		mv.AgeGroups = append(mv.AgeGroups, option{Name: a, Selected: a == dr.AgeGroup})
	}

	selected := make(map[string]bool, len(dr.Diseases))
	for _, d := range dr.Diseases {
		selected[d] = true
	}
	for _, d := range nutrition.Diseases {
		mv.Diseases = append(mv.Diseases, option{Name: d, Selected: selected[d]})
	}

	return mv
}

// render writes the view of p with status 200.
func (v *Views) render(w http.ResponseWriter, r *http.Request, p page.Page, data *viewData) {
	v.renderStatus(w, r, http.StatusOK, p, data)
}

func (v *Views) renderStatus(w http.ResponseWriter, r *http.Request, status int, p page.Page, data *viewData) {
	resp.RespondHTML(w, r, status, v.pages[p], layoutTemplate, data)
}

// markdown converts model output to HTML. Raw HTML in the source is not passed through.
func (v *Views) markdown(r *http.Request, source string) template.HTML {
	var buf bytes.Buffer
	if err := v.md.Convert([]byte(source), &buf); err != nil {
		logx.Ctx(r.Context()).Warn().Err(err).Msg("Markdown conversion failed, showing plain text")
		return template.HTML("<pre>" + template.HTMLEscapeString(source) + "</pre>")
	}
	return template.HTML(buf.String())
}
