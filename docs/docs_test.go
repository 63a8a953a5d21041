package docs_test

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/ahwlsqja/typed-data-verifier/docs"
	"github.com/ahwlsqja/typed-data-verifier/internal/common/handler"
	"github.com/ahwlsqja/typed-data-verifier/internal/typeddata"
)

var pathParam = regexp.MustCompile(`:(\w+)`)

func TestSwaggerDoc_DescribesEveryRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	router := gin.New()
	health := handler.NewHealthHandler(nil, nil)
	router.GET("/health", health.Health)
	router.GET("/ready", health.Ready)
	typeddata.NewHandler(nil).RegisterRoutes(router.Group("/api/v1"))

	routes := router.Routes()
	require.NotEmpty(t, routes)
	for _, r := range routes {
		path := pathParam.ReplaceAllString(r.Path, "{$1}")
		ops, ok := doc.Paths[path]
		if !assert.True(t, ok, "no swagger path for %s", path) {
			continue
		}
		_, ok = ops[strings.ToLower(r.Method)]
		assert.True(t, ok, "no swagger operation for %s %s", r.Method, path)
	}
	assert.Len(t, doc.Paths, len(routes))
}
