// AngelaMos | 2026
// handler_test.go

package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dojo-console/internal/middleware"
)

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(uploadField, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import/members", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req.WithContext(middleware.WithGymID(req.Context(), "g-1"))
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestImportMembersHandler(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(NewReconciler(store, nil), 1<<20)

	rec := httptest.NewRecorder()
	h.ImportMembers(rec, uploadRequest(t, "members.csv",
		"이름,전화번호,성별,만료일\n홍길동,010-1234-5678,남,2024-12-31\n"))

	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)

	var summary Summary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, Summary{Total: 1, Created: 1, Errors: []RowError{}}, summary)
}

func TestImportMembersHandlerRejectsHeaderOnly(t *testing.T) {
	h := NewHandler(NewReconciler(&fakeStore{}, nil), 1<<20)

	rec := httptest.NewRecorder()
	h.ImportMembers(rec, uploadRequest(t, "members.csv", "name,phone,gender,expire_date\n"))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "CSV must include header + data rows", env.Error.Message)
}

func TestImportMembersHandlerRequiresFile(t *testing.T) {
	h := NewHandler(NewReconciler(&fakeStore{}, nil), 1<<20)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("note", "no file"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import/members", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	h.ImportMembers(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportMembersHandlerTooLarge(t *testing.T) {
	h := NewHandler(NewReconciler(&fakeStore{}, nil), 64)

	rec := httptest.NewRecorder()
	h.ImportMembers(rec, uploadRequest(t, "members.csv",
		"name,phone,gender,expire_date\n"+string(bytes.Repeat([]byte("x"), 256))))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
