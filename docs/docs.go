// Package docs registers the OpenAPI description of the pattern quiz API with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Admin login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/questions": {"get": {"tags": ["quiz"], "summary": "List questions", "responses": {"200": {"description": "OK"}}}},
        "/sessions": {"post": {"tags": ["quiz"], "summary": "Start a quiz session", "responses": {"201": {"description": "Created"}}}},
        "/sessions/{id}": {"get": {"tags": ["quiz"], "summary": "Resume a session", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/sessions/{id}/answers/{index}": {"put": {"tags": ["quiz"], "summary": "Record an answer", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "index", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/sessions/{id}/preview": {"get": {"tags": ["quiz"], "summary": "Live result preview", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}},
        "/sessions/{id}/complete": {"post": {"tags": ["quiz"], "summary": "Complete a session", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/sessions/{id}/result": {"get": {"tags": ["quiz"], "summary": "Result of a completed session", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/sessions/{id}/report": {"get": {"tags": ["report"], "summary": "Personalized report", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}},
        "/patterns": {"get": {"tags": ["report"], "summary": "List pattern profiles", "responses": {"200": {"description": "OK"}}}},
        "/patterns/{key}": {"get": {"tags": ["report"], "summary": "One pattern profile", "parameters": [{"name": "key", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/stats/recent": {"get": {"tags": ["admin"], "summary": "Latest completed sessions", "security": [{"BearerAuth": []}], "parameters": [{"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/stats": {"get": {"tags": ["admin"], "summary": "Pattern distribution over completed sessions", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Pattern Quiz API",
	Description:      "Scores quiz answers into an emotional driver and pattern.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
