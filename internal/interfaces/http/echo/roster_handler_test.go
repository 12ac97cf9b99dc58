package echo_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/hostelhub/roster-import/internal/application/roster"
	domain "github.com/hostelhub/roster-import/internal/domain/roster"
	httpecho "github.com/hostelhub/roster-import/internal/interfaces/http/echo"
)

type fakeIngestUseCase struct {
	out app.IngestRosterOutput
	err error
	got app.IngestRosterInput
}

func (f *fakeIngestUseCase) Execute(ctx context.Context, in app.IngestRosterInput) (app.IngestRosterOutput, error) {
	f.got = in
	if f.err != nil {
		return app.IngestRosterOutput{}, f.err
	}
	return f.out, nil
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func serveUpload(t *testing.T, uc *fakeIngestUseCase, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	httpecho.RegisterRoutes(e, httpecho.NewRosterHandler(uc), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRosterUploadMultipartSuccess(t *testing.T) {
	t.Parallel()

	uc := &fakeIngestUseCase{out: app.IngestRosterOutput{
		RunID:        "run-1",
		SuccessCount: 1,
		FailedCount:  1,
		Errors:       []string{"Row 3 (R002): invalid number for batch"},
		Message:      "Processed 1 of 2 students with 1 issue(s)",
	}}
	body, contentType := multipartBody(t, "file", "roster.csv", "roll_no,full_name\nR001,Jane")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/roster/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)

	rec := serveUpload(t, uc, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "roll_no,full_name\nR001,Jane", uc.got.Payload)
	assert.Equal(t, "roster.csv", uc.got.Source)

	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, "run-1", data["run_id"])
	assert.EqualValues(t, 1, data["success_count"])
	assert.EqualValues(t, 1, data["failed_count"])
	assert.Equal(t, []any{"Row 3 (R002): invalid number for batch"}, data["errors"])
}

func TestRosterUploadAcceptsAnyFileField(t *testing.T) {
	t.Parallel()

	uc := &fakeIngestUseCase{}
	body, contentType := multipartBody(t, "upload", "hostel.csv", "a,b\n1,2")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/roster/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)

	rec := serveUpload(t, uc, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a,b\n1,2", uc.got.Payload)
}

func TestRosterUploadRawBody(t *testing.T) {
	t.Parallel()

	uc := &fakeIngestUseCase{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/roster/upload", strings.NewReader("a,b\n1,2"))
	req.Header.Set(echo.HeaderContentType, "text/csv")

	rec := serveUpload(t, uc, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a,b\n1,2", uc.got.Payload)
	assert.Equal(t, "body", uc.got.Source)
}

func TestRosterUploadMultipartWithoutFile(t *testing.T) {
	t.Parallel()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("note", "no file here"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/roster/upload", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())

	rec := serveUpload(t, &fakeIngestUseCase{}, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decode(t, rec)["error"].(map[string]any)["code"])
}

func TestRosterUploadSchemaMismatch(t *testing.T) {
	t.Parallel()

	uc := &fakeIngestUseCase{err: &domain.SchemaMismatchError{Missing: []string{"email", "gender"}}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/roster/upload", strings.NewReader("roll_no\nR001"))
	req.Header.Set(echo.HeaderContentType, "text/plain")

	rec := serveUpload(t, uc, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decode(t, rec)["error"].(map[string]any)
	assert.Equal(t, "schema_mismatch", errBody["code"])
	assert.Contains(t, errBody["message"], "email, gender")
	assert.Equal(t, []any{"email", "gender"}, errBody["details"].(map[string]any)["missing_columns"])
}

func TestRosterUploadMalformed(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/roster/upload", strings.NewReader(""))
	req.Header.Set(echo.HeaderContentType, "text/csv")

	rec := serveUpload(t, &fakeIngestUseCase{err: app.ErrMalformedRoster}, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "malformed_input", decode(t, rec)["error"].(map[string]any)["code"])
}

func TestRosterUploadInternalError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/roster/upload", strings.NewReader("a\nb"))
	req.Header.Set(echo.HeaderContentType, "text/csv")

	rec := serveUpload(t, &fakeIngestUseCase{err: errors.New("boom")}, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decode(t, rec)["error"].(map[string]any)["code"])
}
