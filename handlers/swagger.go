package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>bitirme-backend — Swagger</title>
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

// Minimal OpenAPI document for the session and catalog endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "bitirme-backend", "version": "v0.1.0" },
  "paths": {
    "/api/users/login": {
      "post": {
        "summary": "Log in with email or user ID",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"usernameoremail":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "tokens returned, cookies set" }, "401": { "description": "invalid credentials" }, "403": { "description": "account inactive" } }
      }
    },
    "/api/users/logout": {
      "post": { "summary": "Revoke the refresh token and clear cookies", "responses": { "200": { "description": "logged out" }, "401": { "description": "not authenticated" } } }
    },
    "/api/users/adduser": {
      "post": { "summary": "Create a user (Admin)", "responses": { "201": { "description": "created" }, "403": { "description": "missing privilege" } } }
    },
    "/api/users/{id}": {
      "get": { "summary": "Get a user", "responses": { "200": { "description": "user" }, "404": { "description": "not found" } } }
    },
    "/api/departments": {
      "get": { "summary": "List departments", "responses": { "200": { "description": "list" } } },
      "post": { "summary": "Create a department (Admin)", "responses": { "201": { "description": "created" } } }
    },
    "/api/lessons": {
      "get": { "summary": "List lessons scoped to the caller's department", "responses": { "200": { "description": "list" } } },
      "post": { "summary": "Create a lesson (Admin)", "responses": { "201": { "description": "created" } } }
    },
    "/api/lessonGroups/register": {
      "post": { "summary": "Register the caller for a lesson group", "responses": { "201": { "description": "pending registration created" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
