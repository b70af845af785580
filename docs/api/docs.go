// Package api registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs/api
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "info@localnerve.com"
        },
        "license": {
            "name": "AGPL-3.0",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/feedback": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Public"],
                "summary": "Submit customer feedback",
                "parameters": [{"name": "feedback", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.FeedbackInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.OKResponseStruct"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        },
        "/analytics/qr-scan": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Public"],
                "summary": "Record a QR code scan",
                "parameters": [{"name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AnalyticsEventRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.OKResponseStruct"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        },
        "/analytics/google-redirect": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Public"],
                "summary": "Record a redirect to the Google review page",
                "parameters": [{"name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AnalyticsEventRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.OKResponseStruct"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        },
        "/rating/{uniqueId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Public"],
                "summary": "Get the public rating page profile",
                "parameters": [{"type": "string", "name": "uniqueId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.RatingPage"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in to the business dashboard",
                "parameters": [{"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log out of the business dashboard",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.OKResponseStruct"}}}
            }
        },
        "/business/dashboard": {
            "get": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["Business"],
                "summary": "Get the business dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Dashboard"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        },
        "/business/password": {
            "put": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Business"],
                "summary": "Change the dashboard password",
                "parameters": [{"name": "passwords", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ChangePasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.OKResponseStruct"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"AdminKey": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "List owners",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/services.OwnerSummary"}}}}
            },
            "post": {
                "security": [{"AdminKey": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Register an owner",
                "parameters": [{"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateUserRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.CreateUserResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            },
            "put": {
                "security": [{"AdminKey": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Update an owner",
                "parameters": [{"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateUserRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.OKResponseStruct"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            },
            "delete": {
                "security": [{"AdminKey": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Delete an owner and all of its data",
                "parameters": [{"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.DeleteUserRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.OKResponseStruct"}}}
            }
        },
        "/admin/reviews": {
            "get": {
                "security": [{"AdminKey": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "List every review",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/services.Review"}}}}
            }
        }
    },
    "definitions": {
        "services.FeedbackInput": {
            "type": "object",
            "properties": {
                "uniqueId": {"type": "string"},
                "customerName": {"type": "string"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 5},
                "feedback": {"type": "string"}
            }
        },
        "services.DailyCount": {
            "type": "object",
            "properties": {"date": {"type": "string"}, "count": {"type": "integer"}}
        },
        "services.Dashboard": {
            "type": "object",
            "properties": {
                "businessName": {"type": "string"},
                "reviews": {"type": "array", "items": {"type": "object"}},
                "dailyReviews": {"type": "array", "items": {"$ref": "#/definitions/services.DailyCount"}},
                "dailyQRScans": {"type": "array", "items": {"$ref": "#/definitions/services.DailyCount"}},
                "dailyGoogleRedirects": {"type": "array", "items": {"$ref": "#/definitions/services.DailyCount"}}
            }
        },
        "services.OwnerSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "uniqueId": {"type": "string"},
                "ownerName": {"type": "string"},
                "propertyName": {"type": "string"},
                "propertyAddress": {"type": "string"},
                "googleMapLink": {"type": "string"},
                "contactNumber": {"type": "string"},
                "customFeedbackMessage": {"type": "string"},
                "createdAt": {"type": "string"},
                "username": {"type": "string"},
                "reviewCount": {"type": "integer"}
            }
        },
        "services.Review": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "uniqueId": {"type": "string"},
                "propertyName": {"type": "string"},
                "customerName": {"type": "string"},
                "rating": {"type": "integer"},
                "feedback": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "handlers.AnalyticsEventRequest": {
            "type": "object",
            "properties": {"uniqueId": {"type": "string"}}
        },
        "handlers.RatingPage": {
            "type": "object",
            "properties": {
                "uniqueId": {"type": "string"},
                "ownerName": {"type": "string"},
                "propertyName": {"type": "string"},
                "propertyAddress": {"type": "string"},
                "googleMapLink": {"type": "string"},
                "contactNumber": {"type": "string"},
                "customFeedbackMessage": {"type": "string"}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.LoginResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "businessId": {"type": "integer"},
                "propertyName": {"type": "string"},
                "firstLogin": {"type": "boolean"}
            }
        },
        "handlers.ChangePasswordRequest": {
            "type": "object",
            "properties": {"currentPassword": {"type": "string"}, "newPassword": {"type": "string"}}
        },
        "handlers.CreateUserRequest": {
            "type": "object",
            "properties": {
                "ownerName": {"type": "string"},
                "propertyName": {"type": "string"},
                "propertyAddress": {"type": "string"},
                "googleMapLink": {"type": "string"},
                "contactNumber": {"type": "string"},
                "customFeedbackMessage": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.CreateUserResponse": {
            "type": "object",
            "properties": {"ok": {"type": "boolean"}, "id": {"type": "integer"}, "uniqueId": {"type": "string"}}
        },
        "handlers.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "ownerName": {"type": "string"},
                "propertyName": {"type": "string"},
                "propertyAddress": {"type": "string"},
                "googleMapLink": {"type": "string"},
                "contactNumber": {"type": "string"},
                "customFeedbackMessage": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.DeleteUserRequest": {
            "type": "object",
            "properties": {"id": {"type": "integer"}}
        },
        "utils.ErrorResponseStruct": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "message": {"type": "string"},
                "ok": {"type": "boolean"},
                "timestamp": {"type": "string"},
                "url": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "utils.OKResponseStruct": {
            "type": "object",
            "properties": {"ok": {"type": "boolean"}}
        }
    },
    "securityDefinitions": {
        "AdminKey": {"type": "apiKey", "name": "Authorization", "in": "header"},
        "CookieAuth": {"type": "apiKey", "name": "businessToken", "in": "cookie"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3000",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Smart Reviewer API",
	Description:      "Customer feedback, rating links and daily analytics for business dashboards",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
