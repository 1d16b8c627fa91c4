package req

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrigen/internal/pkg/errs"
)

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestBindJSON(t *testing.T) {
	var dst loginBody
	err := BindJSON(httptest.NewRecorder(), jsonRequest(`{"username":"alice","password":"pw1"}`), &dst)

	require.Nil(t, err)
	assert.Equal(t, loginBody{Username: "alice", Password: "pw1"}, dst)
}

func TestBindJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  *http.Request
		code int
	}{
		{"wrong content type", httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)), errs.ErrUnsupportedMediaType},
		{"syntax error", jsonRequest(`{"username":`), errs.ErrInvalidJSONFormat},
		{"unknown field", jsonRequest(`{"email":"a@b.c"}`), errs.ErrInvalidJSONFormat},
		{"trailing data", jsonRequest(`{"username":"a"} {"username":"b"}`), errs.ErrExtraContentInBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst loginBody
			err := BindJSON(httptest.NewRecorder(), tt.req, &dst)
			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
		})
	}
}

func multipartRequest(t *testing.T, withFile bool) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("note", "lunch"))
	if withFile {
		fw, err := mw.CreateFormFile("image", "meal.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestFormFile_Present(t *testing.T) {
	r := multipartRequest(t, true)
	require.Nil(t, SetupMultipart(httptest.NewRecorder(), r))

	file, err := FormFile(r, "image")
	require.Nil(t, err)
	require.NotNil(t, file)
	assert.Equal(t, "meal.png", file.FileName)
	assert.Equal(t, "application/octet-stream", file.MIMEType)
	assert.Equal(t, []byte("png-bytes"), file.Data)
}

func TestFormFile_Missing(t *testing.T) {
	r := multipartRequest(t, false)
	require.Nil(t, SetupMultipart(httptest.NewRecorder(), r))

	file, err := FormFile(r, "image")
	assert.Nil(t, err)
	assert.Nil(t, file)
}

func TestSetupMultipart_NotMultipart(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x"))
	r.Header.Set("Content-Type", "text/plain")

	err := SetupMultipart(httptest.NewRecorder(), r)
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrFormParseFailed, err.Code)
}
