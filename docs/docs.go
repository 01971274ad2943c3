// Package docs holds the OpenAPI document served under /swagger when the
// server is built with -tags=swagger. Regenerate with `swag init -g cmd/recipebot/docs.go`.
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
    "paths": {
        "/modes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "List chat modes",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ModesResponse"}}}
            }
        },
        "/chat": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Answer one chat turn",
                "parameters": [{"description": "Chat turn", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ChatRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ChatResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/recipes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["recipes"],
                "summary": "List local recipes",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.RecipesResponse"}}}
            }
        },
        "/recipes/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["recipes"],
                "summary": "Get a local recipe",
                "parameters": [{"type": "string", "description": "Dish id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.RecipeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/match": {
            "get": {
                "produces": ["application/json"],
                "tags": ["recipes"],
                "summary": "Match text to a local dish",
                "parameters": [{"type": "string", "description": "Free text", "name": "q", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.MatchResponse"}}}
            }
        },
        "/sessions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Get a chat transcript",
                "parameters": [{"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.TranscriptResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "code": {"type": "integer"}}},
        "types.ModeInfo": {"type": "object", "properties": {"mode": {"type": "string"}, "label": {"type": "string"}, "needs_params": {"type": "boolean"}}},
        "types.ModesResponse": {"type": "object", "properties": {"modes": {"type": "array", "items": {"$ref": "#/definitions/types.ModeInfo"}}}},
        "types.GenerationParams": {"type": "object", "properties": {
            "model": {"type": "string"}, "max_turns": {"type": "integer"}, "temp": {"type": "number"},
            "top_k": {"type": "integer"}, "top_p": {"type": "number"}, "max_tokens": {"type": "integer"},
            "repeat_penalty": {"type": "number"}, "global_prompt": {"type": "string"}, "negative_prompt": {"type": "string"}}},
        "types.ChatRequest": {"type": "object", "properties": {
            "mode": {"type": "string"}, "text": {"type": "string"}, "session_id": {"type": "string"},
            "params": {"$ref": "#/definitions/types.GenerationParams"}, "image_path": {"type": "string"}}},
        "types.ChatResponse": {"type": "object", "properties": {"mode": {"type": "string"}, "reply": {"type": "string"}, "session_id": {"type": "string"}}},
        "types.Recipe": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "keywords": {"type": "array", "items": {"type": "string"}}}},
        "types.RecipesResponse": {"type": "object", "properties": {"recipes": {"type": "array", "items": {"$ref": "#/definitions/types.Recipe"}}}},
        "types.RecipeResponse": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "text": {"type": "string"}}},
        "types.MatchResponse": {"type": "object", "properties": {"query": {"type": "string"}, "dish_id": {"type": "string"}, "found": {"type": "boolean"}}},
        "types.Turn": {"type": "object", "properties": {"role": {"type": "string"}, "text": {"type": "string"}, "created_unix": {"type": "integer"}}},
        "types.TranscriptResponse": {"type": "object", "properties": {"session_id": {"type": "string"}, "mode": {"type": "string"}, "turns": {"type": "array", "items": {"$ref": "#/definitions/types.Turn"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "recipebot API",
	Description:      "HTTP API for the recipe chatbot.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
