/*
Package resp provides helper functions for constructing and sending HTTP responses.

It defines the unified JSON envelope used by the API surface (business code, message,
optional data) and the HTML rendering helper used by the page views.
*/
package resp

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"nutrigen/internal/pkg/errs"
	"nutrigen/internal/pkg/logx"
)

// JSONResponse defines the standardized JSON response structure returned by the application to clients.
type JSONResponse struct {
	// Code is the business status code (0 for success, others for specific errors, see errs package).
	Code int `json:"code"`

	// Message is the client-friendly status description or error message.
	Message string `json:"message"`

	// Data is the optional response payload.
	Data any `json:"data,omitempty"`
}

// RespondJSON sets the Content-Type and sends the JSON payload.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Ctx(r.Context()).Error().
			Err(err).
			Int("http_status", httpStatus).
			Msg("Error encoding JSON response")

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondSuccess sends a successful HTTP response (HTTP 200 OK).
func RespondSuccess(w http.ResponseWriter, r *http.Request, data any) {
	res := JSONResponse{
		Code:    0,
		Message: "success",
		Data:    data,
	}
	RespondJSON(w, r, http.StatusOK, res)
}

// RespondError sends an HTTP response containing custom error information.
// data is optional and lets callers attach context, such as the current session, to the error.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError, data ...any) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	res := JSONResponse{
		Code:    customErr.Code,
		Message: customErr.Message,
	}
	if len(data) > 0 {
		res.Data = data[0]
	}
	RespondJSON(w, r, customErr.Status, res)
}

// RespondHTML executes the named template into a buffer and writes it with the given status.
// Nothing is written to w until the template has rendered completely.
func RespondHTML(w http.ResponseWriter, r *http.Request, httpStatus int, tmpl *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		logx.Ctx(r.Context()).Error().
			Err(err).
			Str("template", name).
			Msg("Error rendering HTML template")

		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(httpStatus)
	w.Write(buf.Bytes())
}
