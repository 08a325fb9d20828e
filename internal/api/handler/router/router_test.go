package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/open-finance-api/pkg/apiErrors"
)

func tag(name string, trail *[]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*trail = append(*trail, name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRouter(t *testing.T) {
	var trail []string
	rt := New(WithRoutes(Route{
		Path:   "/v1/items/:id",
		Method: http.MethodGet,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			trail = append(trail, "handler")
			w.WriteHeader(http.StatusNoContent)
		}),
		Middlewares: []func(http.Handler) http.Handler{tag("primeiro", &trail), tag("segundo", &trail)},
	}))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantCode   string
	}{
		{name: "Rota registrada", method: http.MethodGet, path: "/v1/items/1", wantStatus: http.StatusNoContent},
		{name: "Rota inexistente", method: http.MethodGet, path: "/v1/nada", wantStatus: http.StatusNotFound, wantCode: apiErrors.ErrNotFound},
		{name: "Método não permitido", method: http.MethodPost, path: "/v1/items/1", wantStatus: http.StatusMethodNotAllowed, wantCode: apiErrors.ErrMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trail = nil
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader("")))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tt.wantCode)
				assert.Empty(t, trail)
				return
			}
			assert.Equal(t, []string{"primeiro", "segundo", "handler"}, trail)
		})
	}
}
