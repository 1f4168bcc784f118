// Copyright (c) 2026 Aperture. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"aperture/internal/platform/constants"
	requestutil "aperture/internal/platform/request"
	"aperture/internal/platform/respond"
)

type Handler struct {
	service       *Service
	secureCookies bool
}

// NewHandler creates the auth HTTP handler. secureCookies should be true
// in production so the session cookie is HTTPS-only.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{service: service, secureCookies: secureCookies}
}

// RegisterRoutes mounts the credential endpoints. All three are
// unauthenticated by design: setup is single-use, login is the way in,
// logout just clears the cookie.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/setup", handler.setup)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
}

type credentialRequest struct {
	Password string `json:"password"`
}

func (handler *Handler) setup(writer http.ResponseWriter, request *http.Request) {
	var input credentialRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Setup(request.Context(), input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Success(writer)
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input credentialRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.service.Login(request.Context(), input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.sessionCookie(token, int(constants.SessionTTL.Seconds())))
	respond.Success(writer)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	http.SetCookie(writer, handler.sessionCookie("", -1))
	respond.Success(writer)
}

// sessionCookie builds the admin session cookie. HttpOnly and SameSite=Lax:
// the token must be invisible to page scripts and never ride cross-site
// POSTs.
func (handler *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
