package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger serves the API docs.
// - GET /swagger/index.html  -> Swagger UI page loading the document below
// - GET /swagger/doc.json    -> OpenAPI JSON for the course API
func RegisterSwagger(rg *gin.Engine) {
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
    <title>course-service - Swagger</title>
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
  "info": { "title": "course-service", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "Lesson": {"type":"object","properties":{"id":{"type":"string"},"title":{"type":"string"},"contentType":{"type":"string","enum":["text","video","quiz","pdf"]},"content":{"type":"string"},"order":{"type":"integer"},"lessonType":{"type":"string"},"duration":{"type":"string"},"videoUrl":{"type":"string"},"previewEnabled":{"type":"boolean"},"resourceUrl":{"type":"string"},"quizLink":{"type":"string"},"completed":{"type":"boolean"}}},
      "Course": {"type":"object","properties":{"id":{"type":"string"},"title":{"type":"string"},"description":{"type":"string"},"category":{"type":"string"},"level":{"type":"string"},"imagePath":{"type":"string","nullable":true},"duration":{"type":"string"},"language":{"type":"string"},"tags":{"type":"array","items":{"type":"string"}},"progressList":{"type":"array","items":{"type":"object"}},"contentList":{"type":"array","items":{"$ref":"#/components/schemas/Lesson"}},"version":{"type":"integer"}}}
    }
  },
  "paths": {
    "/api/courses": {
      "get": { "summary": "List courses", "responses": { "200": { "description": "all courses" } } },
      "post": { "summary": "Create course (JSON, or multipart with optional image and JSON tags)", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Course"} }, "multipart/form-data": { "schema": {"type":"object","properties":{"title":{"type":"string"},"description":{"type":"string"},"category":{"type":"string"},"level":{"type":"string"},"duration":{"type":"string"},"language":{"type":"string"},"tags":{"type":"string"},"image":{"type":"string","format":"binary"}}} } } }, "responses": { "201": { "description": "created" }, "400": { "description": "invalid input" } } }
    },
    "/api/courses/{id}": {
      "get": { "summary": "Get course", "responses": { "200": { "description": "course" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update course metadata", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Course"} } } }, "responses": { "200": { "description": "updated" }, "404": { "description": "not found" }, "409": { "description": "version conflict" } } },
      "delete": { "summary": "Delete course", "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/courses/{id}/content": {
      "get": { "summary": "List lessons", "responses": { "200": { "description": "ordered lessons" }, "404": { "description": "course not found" } } },
      "post": { "summary": "Append lesson", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Lesson"} } } }, "responses": { "201": { "description": "lesson appended" }, "404": { "description": "course not found" } } }
    },
    "/api/courses/{id}/content/{contentId}": {
      "put": { "summary": "Replace lesson", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Lesson"} } } }, "responses": { "200": { "description": "lesson replaced" }, "404": { "description": "course or lesson not found" } } },
      "delete": { "summary": "Remove lesson", "responses": { "204": { "description": "removed" }, "404": { "description": "course or lesson not found" } } }
    },
    "/api/courses/{id}/generate-content": {
      "post": { "summary": "Append four generated starter lessons", "responses": { "200": { "description": "generated lessons" }, "400": { "description": "course has no level" }, "404": { "description": "not found" } } }
    },
    "/api/courses/{id}/image": {
      "post": { "summary": "Upload course image (field image)", "responses": { "200": { "description": "course with imagePath" } } }
    },
    "/api/courses/{id}/content/{contentId}/video": {
      "post": { "summary": "Upload lesson video (field video)", "responses": { "200": { "description": "lesson with videoUrl" } } }
    },
    "/api/courses/{id}/content/{contentId}/resource": {
      "post": { "summary": "Upload lesson resource (field resource)", "responses": { "200": { "description": "lesson with resourceUrl" } } }
    },
    "/uploads/{path}": { "get": { "summary": "Download a stored upload", "responses": { "200": { "description": "file" }, "404": { "description": "not found" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
