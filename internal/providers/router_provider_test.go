package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok:" + r.PathValue("id")))
	})
}

func TestRouterProvider_GetAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/api/figures", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/api/figures", routes[0].Url)
}

func TestRouterProvider_MountKeepsPathValues(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/{$}", dummyHandler())
	rp.Get("/charts/{id}", dummyHandler())

	mux := http.NewServeMux()
	rp.Mount(mux)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/charts/co2-top", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok:co2-top", rr.Body.String())

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/elsewhere", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestReadOnly_AllowsGetAndHead(t *testing.T) {
	handler := readOnly(dummyHandler())

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(method, "/test", nil))
		assert.Equal(t, http.StatusOK, rr.Code, method)
	}
}

func TestReadOnly_RejectsWrites(t *testing.T) {
	handler := readOnly(dummyHandler())

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(method, "/test", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, method)
		assert.Equal(t, allowedMethods, rr.Header().Get("Allow"))
	}
}
