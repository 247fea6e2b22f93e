package providers

import (
	"net/http"

	"github.com/evanchen13/wb-sustainability/internal/structures"
)

// RouterProviderInterface collects the read-only dashboard routes. Every
// route answers GET and HEAD; other methods get 405 with an Allow header.
type RouterProviderInterface interface {
	Get(pattern string, handler http.Handler)
	GetRoutes() []structures.Route
	Mount(mux *http.ServeMux)
}

type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) Get(pattern string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Url:     pattern,
		Handler: readOnly(handler),
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

// Mount registers every collected route on mux.
func (rp *RouterProvider) Mount(mux *http.ServeMux) {
	for _, route := range rp.routes {
		mux.Handle(route.Url, route.Handler)
	}
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

const allowedMethods = "GET, HEAD"

func readOnly(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", allowedMethods)
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
