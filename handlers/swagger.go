package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>prdforge API docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "prdforge", "version": "v0.1.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "IdeaRequest": { "type": "object", "required": ["idea"], "properties": { "idea": { "type": "string" } } },
      "Error": { "type": "object", "properties": { "error": { "type": "string" }, "requestSucceeded": { "type": "boolean" }, "retryable": { "type": "boolean" } } }
    }
  },
  "paths": {
    "/api/generate-prd": {
      "post": {
        "summary": "Generate a PRD from an idea without storing it",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/IdeaRequest" } } } },
        "responses": { "200": { "description": "content fields, markdown, source, requestSucceeded" }, "400": { "description": "idea missing" }, "503": { "description": "generation endpoint not configured" } }
      }
    },
    "/api/ideas/random": { "get": { "summary": "Random startup idea", "responses": { "200": { "description": "idea" } } } },
    "/api/pending": {
      "post": { "summary": "Park an idea before sign-in", "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/IdeaRequest" } } } }, "responses": { "201": { "description": "token and expiresIn" } } }
    },
    "/api/pending/{token}/claim": {
      "post": { "summary": "Redeem a pending idea once and create the PRD", "security": [{ "bearer": [] }], "responses": { "201": { "description": "created document" }, "404": { "description": "expired or already used" } } }
    },
    "/api/prds": {
      "get": { "summary": "List the caller's PRDs, newest first", "security": [{ "bearer": [] }], "responses": { "200": { "description": "documents" } } },
      "post": { "summary": "Generate and store a PRD", "security": [{ "bearer": [] }], "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/IdeaRequest" } } } }, "responses": { "201": { "description": "created document" } } }
    },
    "/api/prds/{id}": {
      "get": { "summary": "Fetch a PRD", "security": [{ "bearer": [] }], "responses": { "200": { "description": "document" }, "404": { "description": "not found" } } },
      "put": { "summary": "Overwrite content and optionally the title", "security": [{ "bearer": [] }], "responses": { "200": { "description": "document" }, "400": { "description": "content incomplete" } } },
      "delete": { "summary": "Delete a PRD", "security": [{ "bearer": [] }], "responses": { "204": { "description": "deleted" } } }
    },
    "/api/prds/{id}/sections/{section}/regenerate": {
      "post": {
        "summary": "Regenerate one section from feedback",
        "security": [{ "bearer": [] }],
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "feedback": { "type": "string" } } } } } },
        "responses": { "200": { "description": "updated document" }, "422": { "description": "fragment unusable, retry" }, "502": { "description": "generation endpoint failed" } }
      }
    },
    "/api/prds/{id}/export/{format}": {
      "get": { "summary": "Download as markdown or json", "security": [{ "bearer": [] }], "responses": { "200": { "description": "attachment" } } }
    },
    "/api/prds/{id}/archive": {
      "post": { "summary": "Upload both exports to object storage", "security": [{ "bearer": [] }], "responses": { "200": { "description": "presigned links" }, "503": { "description": "object storage not configured" } } }
    },
    "/auth/dev-login": {
      "post": { "summary": "Issue a local access token (development only)", "responses": { "200": { "description": "accessToken, user, expiresIn" } } }
    },
    "/auth/logout": {
      "post": { "summary": "Blacklist the presented access token", "security": [{ "bearer": [] }], "responses": { "200": { "description": "logged out" } } }
    },
    "/api/v1/me": {
      "get": { "summary": "Get user info", "security": [{ "bearer": [] }], "responses": { "200": { "description": "user or claims" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
