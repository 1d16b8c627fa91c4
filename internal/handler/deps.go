package handler

import (
	"nutrigen/internal/app/account"
	"nutrigen/internal/app/nutrition"
	"nutrigen/internal/app/session"
	"nutrigen/internal/configs"
)

// AppDeps holds everything the handlers need.
type AppDeps struct {
	Config   *configs.AppConfig
	Accounts *account.Service
	Planner  *nutrition.Planner
	Sessions *session.Codec
	Views    *Views
}
