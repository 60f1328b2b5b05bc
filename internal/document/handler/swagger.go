package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the document service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRouter) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>docsign - Swagger</title>
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
  "info": { "title": "docsign", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "Document": {
        "type": "object",
        "properties": {
          "id": {"type":"string"},
          "content": {"type":"string"},
          "signature": {"type":"string","nullable":true},
          "signed": {"type":"boolean"},
          "createdAt": {"type":"string","format":"date-time"},
          "signedAt": {"type":"string","format":"date-time"}
        }
      },
      "Error": { "type": "object", "properties": {"error":{"type":"string"}} }
    }
  },
  "paths": {
    "/api/documents": {
      "get": {
        "summary": "List documents",
        "responses": { "200": { "description": "all documents", "content": { "application/json": { "schema": {"type":"array","items":{"$ref":"#/components/schemas/Document"}}}}}}
      },
      "post": {
        "summary": "Create a document",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"content":{"type":"string"}}}}}},
        "responses": { "200": { "description": "created document", "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Document"}}}}, "400": { "description": "content missing or blank" } }
      }
    },
    "/api/documents/{id}": {
      "get": {
        "summary": "Get a document",
        "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"string"}}],
        "responses": { "200": { "description": "document" }, "404": { "description": "not found" } }
      }
    },
    "/api/documents/{id}/sign": {
      "put": {
        "summary": "Attach a signature to an unsigned document",
        "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"string"}}],
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"signature":{"type":"string"}}}}}},
        "responses": { "200": { "description": "signed" }, "400": { "description": "signature missing, or document not found or already signed", "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Error"}}}} }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition format" } } } }
  }
}`
