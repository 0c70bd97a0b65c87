// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/expenses": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "All expenses in denormalized form, ordered by id",
                "produces": ["application/json", "application/xml"],
                "tags": ["expenses"],
                "summary": "List expenses",
                "parameters": [
                    {"type": "string", "description": "Response format (json or xml)", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ExpenseListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "description": "Dimension names must already exist; an unknown name is rejected with code not_found",
                "consumes": ["application/json"],
                "produces": ["application/json", "application/xml"],
                "tags": ["expenses"],
                "summary": "Create an expense",
                "parameters": [
                    {"description": "expense_date, amount, category_name, vendor_name, payment_method_name, optional description, qty, unit_price", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}},
                    {"type": "string", "description": "Response format (json or xml)", "name": "format", "in": "query"}
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/dto.ExpenseEnvelope"},
                        "headers": {"Location": {"type": "string", "description": "/api/expenses/{id}"}}
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}}
                }
            }
        },
        "/api/expenses/search": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "All supplied criteria must match; text criteria are case-insensitive partial matches",
                "produces": ["application/json", "application/xml"],
                "tags": ["expenses"],
                "summary": "Search expenses",
                "parameters": [
                    {"type": "string", "description": "Matches description, vendor or category", "name": "q", "in": "query"},
                    {"type": "string", "description": "Category name contains", "name": "category", "in": "query"},
                    {"type": "string", "description": "Vendor name contains", "name": "vendor", "in": "query"},
                    {"type": "string", "description": "Payment method name contains", "name": "payment_method", "in": "query"},
                    {"type": "number", "description": "Lower amount bound", "name": "min_amount", "in": "query"},
                    {"type": "number", "description": "Upper amount bound", "name": "max_amount", "in": "query"},
                    {"type": "string", "description": "Earliest date (YYYY-MM-DD)", "name": "start_date", "in": "query"},
                    {"type": "string", "description": "Latest date (YYYY-MM-DD)", "name": "end_date", "in": "query"},
                    {"type": "string", "description": "Response format (json or xml)", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ExpenseListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}}
                }
            }
        },
        "/api/expenses/{id}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json", "application/xml"],
                "tags": ["expenses"],
                "summary": "Get an expense",
                "parameters": [
                    {"type": "integer", "description": "Expense ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Response format (json or xml)", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ExpenseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}}
                }
            },
            "put": {
                "security": [{"Bearer": []}],
                "description": "Only the supplied fields change; null clears description, qty or unit_price",
                "consumes": ["application/json"],
                "produces": ["application/json", "application/xml"],
                "tags": ["expenses"],
                "summary": "Update an expense",
                "parameters": [
                    {"type": "integer", "description": "Expense ID", "name": "id", "in": "path", "required": true},
                    {"description": "Any subset of the create fields", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}},
                    {"type": "string", "description": "Response format (json or xml)", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ExpenseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["expenses"],
                "summary": "Delete an expense",
                "parameters": [
                    {"type": "integer", "description": "Expense ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Exchange the configured admin credentials for a bearer token",
                "consumes": ["application/json"],
                "produces": ["application/json", "application/xml"],
                "tags": ["auth"],
                "summary": "Login as the administrator",
                "parameters": [
                    {"description": "Login request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}},
                    {"type": "string", "description": "Response format (json or xml)", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/response.ErrorEnvelope"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json", "application/xml"],
                "tags": ["system"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ExpenseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/dto.ExpenseResponse"}
            }
        },
        "dto.ExpenseListResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/dto.ExpenseResponse"}}
            }
        },
        "dto.ExpenseResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "category_name": {"type": "string"},
                "description": {"type": "string"},
                "expense_date": {"type": "string"},
                "expense_id": {"type": "integer"},
                "payment_method_name": {"type": "string"},
                "qty": {"type": "integer"},
                "unit_price": {"type": "number"},
                "vendor_name": {"type": "string"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "expires_in": {"type": "integer"},
                "token_type": {"type": "string"}
            }
        },
        "response.ErrorBody": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {},
                "message": {"type": "string"}
            }
        },
        "response.ErrorEnvelope": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/response.ErrorBody"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cost Tracker API",
	Description:      "Personal expense tracking over a star schema of categories, vendors and payment methods",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
