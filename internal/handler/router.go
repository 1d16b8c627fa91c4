/*
Package handler provides the HTTP handlers and routing setup for Nutrigen.

This file defines the main Router, applying the middleware stack (CORS, request IDs,
logging, panic recovery, session cookie) and IP-based rate limits before delegating
to the HTML page handlers and the JSON API handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"nutrigen/internal/app/session"
	"nutrigen/internal/pkg/errs"
	"nutrigen/internal/pkg/limiter"
	"nutrigen/internal/pkg/logx"
	"nutrigen/internal/pkg/resp"
)

const (
	AuthRate     = 0.5
	AuthBurst    = 10
	FeatureRate  = 0.1
	FeatureBurst = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
func Router(deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter("auth", rate.Limit(AuthRate), AuthBurst)
	featureLimiter := limiter.NewIPRateLimiter("feature", rate.Limit(FeatureRate), FeatureBurst)

	formAuthLimiter := limiter.NewIPRateLimiter("auth_form", rate.Limit(AuthRate), AuthBurst).
		WithRejectHandler(rejectPlain)
	formFeatureLimiter := limiter.NewIPRateLimiter("feature_form", rate.Limit(FeatureRate), FeatureBurst).
		WithRejectHandler(rejectPlain)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger("/health"))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "Nutrigen",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Group(func(web chi.Router) {
		web.Use(session.Middleware(deps.Sessions))

		web.Get("/", HandleIndex(deps))
		web.Post("/navigate", HandleNavigateForm(deps))
		web.Post("/logout", HandleLogoutForm(deps))

		web.Group(func(auth chi.Router) {
			auth.Use(formAuthLimiter.Middleware)
			auth.Post("/login", HandleLoginForm(deps))
			auth.Post("/register", HandleRegisterForm(deps))
			auth.Post("/reset-password", HandleResetPasswordForm(deps))
		})

		web.Group(func(feature chi.Router) {
			feature.Use(formFeatureLimiter.Middleware)
			feature.Post("/nutrition", HandleNutritionForm(deps))
			feature.Post("/diet", HandleDietForm(deps))
		})
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(session.Middleware(deps.Sessions))

		api.Get("/session", HandleGetSession(deps))
		api.Post("/navigate", HandleAPINavigate(deps))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/logout", HandleAPILogout(deps))

			auth.Group(func(limited chi.Router) {
				limited.Use(authLimiter.Middleware)
				limited.Post("/login", HandleAPILogin(deps))
				limited.Post("/register", HandleAPIRegister(deps))
				limited.Post("/reset-password", HandleAPIResetPassword(deps))
			})
		})

		api.Group(func(feature chi.Router) {
			feature.Use(featureLimiter.Middleware)
			feature.Post("/nutrition", HandleAPINutrition(deps))
			feature.Post("/diet", HandleAPIDiet(deps))
		})
	})

	return r
}

func rejectPlain(w http.ResponseWriter, r *http.Request) {
	http.Error(w, errs.NewError(errs.ErrRateLimitExceeded).Message, http.StatusTooManyRequests)
}
