// Package docs registers the OpenAPI description of the web service with swag
// so echo-swagger can serve it under /swagger/.
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
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/api/session": {
            "get": {"tags": ["session"], "summary": "Current session", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.SessionView"}}}}
        },
        "/api/session/login": {
            "post": {
                "tags": ["session"], "summary": "Log in", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.SessionView"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}}
            }
        },
        "/api/session/signup": {
            "post": {
                "tags": ["session"], "summary": "Sign up and log in", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.signUpRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/service.SessionView"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}}
            }
        },
        "/api/session/logout": {
            "post": {"tags": ["session"], "summary": "Log out", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.redirectResponse"}}}}
        },
        "/api/notifications": {
            "get": {"tags": ["session"], "summary": "Pending notifications", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/api/restaurants": {
            "get": {
                "tags": ["restaurants"], "summary": "Restaurants page", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Minimum rating filter, 0 to 5", "name": "rating", "in": "query"},
                    {"type": "integer", "description": "Offset", "name": "skip", "in": "query"},
                    {"type": "string", "description": "Name search", "name": "search", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}}
            },
            "post": {
                "tags": ["restaurants"], "summary": "Add a restaurant", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.restaurantRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/restaurants/{id}": {
            "get": {
                "tags": ["restaurants"], "summary": "Restaurant detail page", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "tags": ["restaurants"], "summary": "Edit a restaurant", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.restaurantRequest"}}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}
            }
        },
        "/api/restaurants/{id}/deactivate": {
            "post": {"tags": ["restaurants"], "summary": "Soft delete a restaurant", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/restaurants/{id}/activate": {
            "post": {"tags": ["restaurants"], "summary": "Restore a restaurant", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/restaurants/{id}/reviews": {
            "post": {
                "tags": ["restaurants"], "summary": "Add a review", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.reviewRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/reviews": {
            "get": {
                "tags": ["reviews"], "summary": "Review moderation page", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Offset", "name": "skip", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/reviews/{id}": {
            "put": {
                "tags": ["reviews"], "summary": "Edit a review", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.reviewEditRequest"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/reviews/{id}/deactivate": {
            "post": {"tags": ["reviews"], "summary": "Soft delete a review", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/reviews/{id}/activate": {
            "post": {"tags": ["reviews"], "summary": "Restore a review", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/reviews/{id}/comments": {
            "post": {
                "tags": ["reviews"], "summary": "Reply to a review", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.commentRequest"}}],
                "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/users": {
            "get": {"tags": ["users"], "summary": "Users page", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/api/users/{id}": {
            "put": {
                "tags": ["users"], "summary": "Edit a user", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.userEditRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/users/{id}/deactivate": {
            "post": {"tags": ["users"], "summary": "Soft delete a user", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/users/{id}/activate": {
            "post": {"tags": ["users"], "summary": "Restore a user", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "handler.errorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "redirect": {"type": "string"}}},
        "handler.redirectResponse": {"type": "object", "properties": {"redirect": {"type": "string"}}},
        "handler.loginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "handler.signUpRequest": {"type": "object", "required": ["name", "email", "password", "role"], "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "role": {"type": "string", "enum": ["USER", "OWNER"]}}},
        "handler.restaurantRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "image": {"type": "string"}}},
        "handler.reviewRequest": {"type": "object", "properties": {"rating": {"type": "number"}, "comment": {"type": "string"}, "date_visit": {"type": "string"}}},
        "handler.reviewEditRequest": {"type": "object", "properties": {"rating": {"type": "number"}, "comment": {"type": "string"}, "date_visit": {"type": "string"}, "reply": {"type": "string"}}},
        "handler.commentRequest": {"type": "object", "required": ["comment"], "properties": {"comment": {"type": "string"}}},
        "handler.userEditRequest": {"type": "object", "properties": {"name": {"type": "string"}, "role": {"type": "string", "enum": ["USER", "OWNER", "ADMIN"]}, "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE"]}}},
        "service.SessionView": {"type": "object", "properties": {"state": {"type": "string"}, "initials": {"type": "string"}, "tabs": {"type": "array", "items": {"type": "string"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "The Food Critique web API",
	Description:      "Backend-for-frontend of the restaurant review client.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
