package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	var gotUserID int64
	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
		userID int64
	}{
		{name: "valid", header: "42", status: http.StatusNoContent, userID: 42},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "not a number", header: "abc", status: http.StatusUnauthorized},
		{name: "zero", header: "0", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(HeaderUserID, tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.userID, gotUserID)
		})
	}
}

func TestRequestID(t *testing.T) {
	var fromCtx string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(HeaderRequestID)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, fromCtx)
	})

	t.Run("propagated", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, id)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, id, rec.Header().Get(HeaderRequestID))
	})
}

type observed struct {
	method string
	route  string
	status int
}

type fakeMetrics struct {
	calls []observed
}

func (f *fakeMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.calls = append(f.calls, observed{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/stores/{storeId}/settings", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stores/17/settings", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, observed{method: http.MethodGet, route: "/stores/{storeId}/settings", status: http.StatusTeapot}, m.calls[0])
}
