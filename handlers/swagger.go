package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>tiernote - Swagger</title>
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

// Minimal OpenAPI document describing the upload and document endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "tiernote", "version": "v0.1.0" },
  "paths": {
    "/api/v1/uploads": {
      "post": {
        "summary": "Upload a markdown note and generate a tiered document",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"filename":{"type":"string"},"content":{"type":"string"},"metadata":{"type":"object","properties":{"source":{"type":"string","enum":["file_upload","text_input","url"]}}}}}}}},
        "responses": { "201": { "description": "document created" }, "400": { "description": "invalid request or markdown defects" }, "503": { "description": "generation temporarily unavailable" } }
      }
    },
    "/api/v1/documents": {
      "get": { "summary": "List documents", "parameters": [ {"name":"docType","in":"query","schema":{"type":"string","enum":["official","community"]}}, {"name":"tags","in":"query","schema":{"type":"string"}} ], "responses": { "200": { "description": "document listing" }, "400": { "description": "invalid docType" } } }
    },
    "/api/v1/documents/{id}": {
      "get": { "summary": "Fetch a document with all tiers", "parameters": [ {"name":"id","in":"path","required":true,"schema":{"type":"string"}} ], "responses": { "200": { "description": "full document" }, "404": { "description": "not found" } } }
    },
    "/api/v1/documents/{id}/render": {
      "get": { "summary": "Render a document at a selector position", "parameters": [ {"name":"id","in":"path","required":true,"schema":{"type":"string"}}, {"name":"level","in":"query","schema":{"type":"integer","minimum":0,"maximum":100}} ], "responses": { "200": { "description": "display tree" }, "400": { "description": "level out of range" }, "404": { "description": "not found" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
