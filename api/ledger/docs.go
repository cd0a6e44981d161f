// Package ledger holds the OpenAPI document served at /swagger/.
// Regenerate with: swag init -g internal/ledger/http/router.go -o api/ledger
package ledger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/ledger"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Create an account",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ledgersdk.SignupRequest"}}
                ],
                "responses": {
                    "201": {"description": "created user", "schema": {"$ref": "#/definitions/ledgersdk.UserResponse"}},
                    "400": {"description": "malformed body", "schema": {"$ref": "#/definitions/ledgersdk.ErrorResponse"}},
                    "409": {"description": "email already registered", "schema": {"$ref": "#/definitions/ledgersdk.ErrorResponse"}},
                    "422": {"description": "validation failed", "schema": {"$ref": "#/definitions/ledgersdk.ValidationErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ledgersdk.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "token pair", "schema": {"$ref": "#/definitions/ledgersdk.TokenResponse"}},
                    "404": {"description": "unknown user", "schema": {"$ref": "#/definitions/ledgersdk.ErrorResponse"}},
                    "422": {"description": "wrong credentials", "schema": {"$ref": "#/definitions/ledgersdk.ErrorResponse"}},
                    "429": {"description": "rate limited", "schema": {"$ref": "#/definitions/ledgersdk.ErrorResponse"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Rotate the refresh token",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ledgersdk.RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "token pair", "schema": {"$ref": "#/definitions/ledgersdk.TokenResponse"}},
                    "401": {"description": "invalid, expired or revoked token", "schema": {"$ref": "#/definitions/ledgersdk.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Log out",
                "responses": {
                    "204": {"description": "logged out"},
                    "401": {"description": "invalid or missing access token", "schema": {"$ref": "#/definitions/ledgersdk.ErrorResponse"}}
                }
            }
        },
        "/expenses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Expenses"],
                "summary": "List expenses",
                "parameters": [
                    {"type": "integer", "default": 30, "description": "page size, 1-50", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "rows to skip, 0-50", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ledgersdk.ExpenseResponse"}}},
                    "422": {"description": "pagination out of range", "schema": {"$ref": "#/definitions/ledgersdk.ValidationErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Expenses"],
                "summary": "Record an expense",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ledgersdk.ExpenseCreateRequest"}}
                ],
                "responses": {
                    "201": {"description": "created expense", "schema": {"$ref": "#/definitions/ledgersdk.ExpenseResponse"}},
                    "422": {"description": "unknown category or currency, or validation failed", "schema": {"$ref": "#/definitions/ledgersdk.ErrorResponse"}}
                }
            }
        },
        "/expenses/{ref}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Expenses"],
                "summary": "Get an expense or list a category",
                "parameters": [
                    {"type": "string", "description": "expense id or category name", "name": "ref", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "expense, or an array of expenses for a category", "schema": {"$ref": "#/definitions/ledgersdk.ExpenseResponse"}},
                    "404": {"description": "expense not found", "schema": {"$ref": "#/definitions/ledgersdk.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Expenses"],
                "summary": "Update an expense",
                "parameters": [
                    {"type": "integer", "description": "expense id", "name": "ref", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ledgersdk.ExpensePatchRequest"}}
                ],
                "responses": {
                    "206": {"description": "updated expense", "schema": {"$ref": "#/definitions/ledgersdk.ExpenseResponse"}},
                    "400": {"description": "unknown category or currency", "schema": {"$ref": "#/definitions/ledgersdk.ErrorResponse"}},
                    "404": {"description": "expense not found", "schema": {"$ref": "#/definitions/ledgersdk.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Expenses"],
                "summary": "Delete an expense",
                "parameters": [
                    {"type": "integer", "description": "expense id", "name": "ref", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "deleted"},
                    "404": {"description": "expense not found", "schema": {"$ref": "#/definitions/ledgersdk.ErrorResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/ledgersdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/ledgersdk.HealthResponse"}},
                    "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/ledgersdk.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "ledgersdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"}
            }
        },
        "ledgersdk.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "ledgersdk.SignupRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ledgersdk.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ledgersdk.RefreshRequest": {
            "type": "object",
            "properties": {
                "refresh_token": {"type": "string"}
            }
        },
        "ledgersdk.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "ledgersdk.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_in": {"type": "integer"}
            }
        },
        "ledgersdk.ExpenseCreateRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "currency": {"type": "string"},
                "amount": {"type": "string"},
                "note": {"type": "string"},
                "expense_date": {"type": "string"}
            }
        },
        "ledgersdk.ExpensePatchRequest": {
            "type": "object",
            "properties": {
                "category_name": {"type": "string"},
                "currency_code": {"type": "string"},
                "amount": {"type": "string"},
                "note": {"type": "string"},
                "expense_date": {"type": "string"}
            }
        },
        "ledgersdk.ExpenseResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "category_name": {"type": "string"},
                "currency_code": {"type": "string"},
                "currency_symbol": {"type": "string"},
                "amount": {"type": "string"},
                "note": {"type": "string"},
                "year": {"type": "integer"},
                "month": {"type": "integer"},
                "day": {"type": "integer"}
            }
        },
        "ledgersdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"},
                "checks": {"$ref": "#/definitions/ledgersdk.HealthChecks"}
            }
        },
        "ledgersdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "reference_data": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT access token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Ledger API",
	Description:      "Personal expense tracking. Users sign up, log in for a bearer access token and a refresh token,\nand record expenses by category and currency.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
