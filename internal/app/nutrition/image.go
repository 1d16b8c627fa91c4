package nutrition

import (
	"net/http"
	"path/filepath"
	"strings"

	"nutrigen/internal/app/gateway"
	"nutrigen/internal/pkg/errs"
)

const (
	// MaxImageSizeMB is the maximum accepted image size in megabytes.
	MaxImageSizeMB = 10

	// MaxImageSize is the maximum accepted image size in bytes.
	MaxImageSize = MaxImageSizeMB * 1024 * 1024
)

// ExtToMIME maps the accepted file extensions to their MIME types.
var ExtToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// AcceptAttr is the value of the upload control's accept attribute.
const AcceptAttr = ".jpg,.jpeg,.png"

// Upload is an uploaded image held in memory.
type Upload struct {
	FileName string
	MIMEType string
	Data     []byte
}

// PrepImage validates an upload and packages it as a model blob part.
// A nil upload is the "no file" condition.
func PrepImage(u *Upload) (gateway.Part, *errs.CustomError) {
	if u == nil {
		return gateway.Part{}, errs.NewError(errs.ErrNoFileUploaded)
	}

	if len(u.Data) > MaxImageSize {
		return gateway.Part{}, errs.NewError(errs.ErrImageTooLarge, MaxImageSizeMB)
	}

	mimeType, customErr := validateImageType(u)
	if customErr != nil {
		return gateway.Part{}, customErr
	}

	return gateway.BlobPart(mimeType, u.Data), nil
}

// validateImageType requires the extension and the MIME type to agree on jpeg or png.
// Browsers that send no usable type get one sniffed from the content.
func validateImageType(u *Upload) (string, *errs.CustomError) {
	ext := strings.ToLower(filepath.Ext(u.FileName))
	expected, ok := ExtToMIME[ext]
	if !ok {
		return "", errs.NewError(errs.ErrUnsupportedImage)
	}

	mimeType := strings.ToLower(strings.TrimSpace(u.MIMEType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	switch mimeType {
	case "", "application/octet-stream":
		mimeType = http.DetectContentType(u.Data)
	case "image/jpg", "image/pjpeg":
		mimeType = "image/jpeg"
	}

	if mimeType != expected {
		return "", errs.NewError(errs.ErrUnsupportedImage)
	}

	return mimeType, nil
}
