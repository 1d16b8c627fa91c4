/*
Package req provides helper functions for HTTP request parsing and data binding.

It encapsulates the logic for parsing JSON and Multipart Form data, and integrates
error handling to ensure data format correctness and size constraints.
*/
package req

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"nutrigen/internal/pkg/errs"
)

const (
	// MaxFormMemory defines the maximum amount of memory ParseMultipartForm
	// will use before spilling file parts to temporary files.
	MaxFormMemory int64 = 16 << 20 // 16 MB

	// MaxRequestFileSize defines the maximum allowed size for the entire request body, including files.
	// This limit is enforced via http.MaxBytesReader.
	MaxRequestFileSize int64 = 12 << 20 // 12 MB

	// MaxJSONBodySize bounds JSON request bodies.
	MaxJSONBodySize int64 = 1 << 20 // 1 MB
)

// UploadedFile is an in-memory copy of one multipart file field.
type UploadedFile struct {
	FileName string
	MIMEType string
	Data     []byte
}

// BindJSON attempts to bind the JSON data from the HTTP request body to the destination struct dst.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}

// SetupMultipart sets up and parses Multipart Form or URL-encoded form data from the HTTP request.
func SetupMultipart(w http.ResponseWriter, r *http.Request) *errs.CustomError {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestFileSize)

	err := r.ParseMultipartForm(MaxFormMemory)

	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}

		return errs.NewError(errs.ErrFormParseFailed)
	}

	return nil
}

// FormFile reads the named file field of an already parsed multipart form.
// It returns (nil, nil) when the field is absent or empty, leaving the caller to decide
// whether a missing upload is an error.
func FormFile(r *http.Request, field string) (*UploadedFile, *errs.CustomError) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errs.NewError(errs.ErrFormParseFailed)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errs.NewError(errs.ErrFormParseFailed)
	}

	if header.Filename == "" && len(data) == 0 {
		return nil, nil
	}

	return &UploadedFile{
		FileName: header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}
