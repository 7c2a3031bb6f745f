// Package docs holds the OpenAPI document served under /swagger.
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness banner",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Dependency readiness",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object"}}
                }
            }
        },
        "/tenant-check": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tenant"],
                "summary": "Echo the verified tenant",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/contacts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["contacts"],
                "summary": "List contacts",
                "parameters": [
                    {"type": "string", "description": "exact email match", "name": "email", "in": "query"},
                    {"type": "integer", "description": "page size (0 = all)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "rows to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Contact"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contacts"],
                "summary": "Create a contact",
                "parameters": [
                    {"description": "contact", "name": "contact", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateContactRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Contact"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/deals": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["deals"],
                "summary": "List deals",
                "parameters": [
                    {"type": "string", "description": "exact stage match", "name": "stage", "in": "query"},
                    {"type": "string", "description": "linked contact", "name": "contact_id", "in": "query"},
                    {"type": "integer", "description": "page size (0 = all)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "rows to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Deal"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["deals"],
                "summary": "Create a deal",
                "parameters": [
                    {"description": "deal", "name": "deal", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateDealRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Deal"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/activities": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "List activities",
                "parameters": [
                    {"type": "string", "description": "exact type match", "name": "activity_type", "in": "query"},
                    {"type": "integer", "description": "page size (0 = all)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "rows to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Activity"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "Log an activity",
                "parameters": [
                    {"description": "activity", "name": "activity", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateActivityRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Activity"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/appointments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "List appointments",
                "parameters": [
                    {"type": "string", "description": "patient contact id", "name": "patient_id", "in": "query"},
                    {"type": "string", "description": "exact status match", "name": "status", "in": "query"},
                    {"type": "integer", "description": "page size (0 = all)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "rows to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Appointment"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Book an appointment",
                "parameters": [
                    {"description": "appointment", "name": "appointment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateAppointmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Appointment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/exports": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Writes an xlsx workbook to object storage and returns a presigned download link",
                "produces": ["application/json"],
                "tags": ["exports"],
                "summary": "Export the tenant's records to a workbook",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.ExportResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "common.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "details": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "handlers.CreateContactRequest": {
            "type": "object",
            "required": ["first_name", "last_name"],
            "properties": {
                "first_name": {"type": "string", "maxLength": 100},
                "last_name": {"type": "string", "maxLength": 100},
                "email": {"type": "string"},
                "phone": {"type": "string", "maxLength": 32}
            }
        },
        "handlers.CreateDealRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "amount": {"type": "number", "minimum": 0},
                "stage": {"type": "string", "maxLength": 50},
                "contact_id": {"type": "string"}
            }
        },
        "handlers.CreateActivityRequest": {
            "type": "object",
            "required": ["activity_type"],
            "properties": {
                "activity_type": {"type": "string", "maxLength": 50},
                "description": {"type": "string"}
            }
        },
        "handlers.CreateAppointmentRequest": {
            "type": "object",
            "required": ["patient_id", "practitioner_name", "appointment_time"],
            "properties": {
                "patient_id": {"type": "string"},
                "practitioner_name": {"type": "string", "maxLength": 200},
                "treatment_type": {"type": "string", "maxLength": 100},
                "appointment_time": {"type": "string", "example": "2025-12-25T10:00:00"},
                "status": {"type": "string", "maxLength": 50}
            }
        },
        "models.Contact": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "tenant_id": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "models.Deal": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "tenant_id": {"type": "string"},
                "title": {"type": "string"},
                "amount": {"type": "number"},
                "stage": {"type": "string"},
                "contact_id": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "models.Activity": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "tenant_id": {"type": "string"},
                "activity_type": {"type": "string"},
                "description": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "models.Appointment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "tenant_id": {"type": "string"},
                "patient_id": {"type": "string"},
                "practitioner_name": {"type": "string"},
                "treatment_type": {"type": "string"},
                "appointment_time": {"type": "string"},
                "status": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "models.ExportResult": {
            "type": "object",
            "properties": {
                "tenant_id": {"type": "string"},
                "bucket": {"type": "string"},
                "object_key": {"type": "string"},
                "url": {"type": "string"},
                "contacts": {"type": "integer"},
                "deals": {"type": "integer"},
                "activities": {"type": "integer"},
                "appointments": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "v1",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "NexCell CRM API",
	Description:      "Multi-tenant CRM backbone: contacts, deals, activities and clinic appointments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
