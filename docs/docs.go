// Package docs registers the OpenAPI description served on /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/users/register": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/users/login": {"post": {"tags": ["auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/users/logout": {"post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Logout", "responses": {"204": {"description": "No Content"}}}},
        "/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List all users", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Update a user profile", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Delete a user", "responses": {"204": {"description": "No Content"}}}
        },
        "/users/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get a user", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/users/favorites/{listingId}": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Add a listing to the caller's favorites", "parameters": [{"type": "string", "name": "listingId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Remove a listing from the caller's favorites", "parameters": [{"type": "string", "name": "listingId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/listings": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["listings"], "summary": "List listings", "parameters": [{"type": "string", "name": "city", "in": "query"}, {"type": "string", "name": "ownerId", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["listings"], "summary": "Create a listing", "responses": {"201": {"description": "Created"}}}
        },
        "/listings/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["listings"], "summary": "Get a listing", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["listings"], "summary": "Update a listing", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["listings"], "summary": "Delete a listing", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}}
        },
        "/listings/{id}/messages": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["messages"], "summary": "List the messages of a listing", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["messages"], "summary": "Send a message about a listing", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/listings/{id}/messages/{senderId}": {"get": {"security": [{"BearerAuth": []}], "tags": ["messages"], "summary": "List one sender's messages about a listing", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "senderId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "FlatFinder API",
	Description:      "Rental listings, accounts and messages with owner/privileged access control.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
