package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestSwaggerEndpoints(t *testing.T) {
	g := gin.New()
	RegisterSwagger(g)

	req := httptest.NewRequest("GET", "/swagger/index.html", nil)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)
	require.Contains(t, w.Body.String(), "swagger-ui")

	req2 := httptest.NewRequest("GET", "/swagger/doc.json", nil)
	w2 := httptest.NewRecorder()
	g.ServeHTTP(w2, req2)
	require.Equal(t, 200, w2.Code)
	require.True(t, gjson.Valid(w2.Body.String()))
	require.Equal(t, "3.0.0", gjson.Get(w2.Body.String(), "openapi").String())

	paths := gjson.Get(w2.Body.String(), "paths")
	for _, p := range []string{"/api/generate-prd", "/api/prds", "/api/prds/{id}/sections/{section}/regenerate", "/auth/logout"} {
		require.True(t, paths.Get(gjson.Escape(p)).Exists(), p)
	}
}
