package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/akssingh0102/task-management/internal/api/shared"
)

// serve routes one request through a chi router so path parameters resolve.
// A non-nil userID is placed in the context as if authenticated.
func serve(
	t *testing.T,
	method, pattern, target string,
	h http.HandlerFunc,
	body any,
	userID *uuid.UUID,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	r := httptest.NewRequest(method, target, &buf)
	if userID != nil {
		r = r.WithContext(shared.WithUserID(r.Context(), *userID))
	}

	router := chi.NewRouter()
	router.MethodFunc(method, pattern, h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[shared.ErrorResponse](t, w).Error
}

func ptr[T any](v T) *T {
	return &v
}
