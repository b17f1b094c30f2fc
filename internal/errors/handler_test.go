package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataniaga/internal/ingest"
)

func newTestHandler() *ErrorHandler {
	return NewErrorHandler(slog.Default(), false)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleErrorFileKind(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		wantStatus int
		wantType   string
	}{
		{name: "unsupported format", code: ingest.CodeUnsupportedFormat, wantStatus: 400, wantType: TypeFileUnsupported},
		{name: "empty file", code: ingest.CodeEmptyFile, wantStatus: 400, wantType: TypeFileEmpty},
		{name: "too large", code: ingest.CodeFileTooLarge, wantStatus: 413, wantType: TypeFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/upload-data", nil)

			err := fmt.Errorf("rejected: %w", &ingest.FileError{Code: tt.code, Message: "nope"})
			newTestHandler().HandleError(rec, req, err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeProblem(t, rec)
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, "nope", body["detail"])
		})
	}
}

func TestHandleErrorAPIError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)

	newTestHandler().HandleError(rec, req, NotFoundError("report"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeNotFound, body["type"])
	assert.Equal(t, "NOT_FOUND", body["error_code"])
}

func TestHandleErrorContextCancelled(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)

	newTestHandler().HandleError(rec, req, context.DeadlineExceeded)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, TypeTimeout, decodeProblem(t, rec)["type"])
}

func TestHandleErrorUnknown(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)

	newTestHandler().HandleError(rec, req, fmt.Errorf("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, TypeInternal, decodeProblem(t, rec)["type"])
}

func TestProblemDetailsMarshalIncludesExtensions(t *testing.T) {
	pd := NewProblemDetails(400, TypeDataInvalid, "Validation Failed", "3 errors", "/api/upload-data").
		WithExtension("error_count", 3)

	data, err := json.Marshal(pd)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, float64(3), body["error_count"])
	assert.Equal(t, TypeDataInvalid, body["type"])
}

func TestFileValidationError(t *testing.T) {
	assert.Equal(t, http.StatusRequestEntityTooLarge, FileValidationError("FILE_TOO_LARGE", "big").StatusCode)
	assert.Equal(t, http.StatusBadRequest, FileValidationError("EMPTY_FILE", "empty").StatusCode)
}
