package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/allthebeans/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRouteLookup(t *testing.T) {
	r := router.New()
	r.Get("/beans/{id}", "beans.show", ok)

	path, found := r.Path("beans.show")
	require.True(t, found)
	assert.Equal(t, "/beans/{id}", path)

	url, err := r.URL("beans.show", map[string]string{"id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "/beans/abc", url)

	_, found = r.Path("nope")
	assert.False(t, found)
}

func TestGroupPrefixing(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	api.Get("/beans", "beans.index", ok)

	nested := api.Group("/admin")
	nested.Post("/beans", "admin.beans.store", ok)

	infos := r.Routes()
	paths := map[string]string{}
	for _, ri := range infos {
		paths[ri.Name] = ri.Method + " " + ri.Path
	}
	assert.Equal(t, "GET /api/beans", paths["beans.index"])
	assert.Equal(t, "POST /api/admin/beans", paths["admin.beans.store"])
}

func TestGroupMiddlewareApplies(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, req)
			})
		}
	}

	r := router.New()
	g := r.Group("/api", mw("group"))
	g.Get("/beans", "beans.index", ok, mw("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/beans", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"group", "route"}, order)
}

func TestUnknownRoute(t *testing.T) {
	r := router.New()
	r.Get("/beans", "beans.index", ok)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
