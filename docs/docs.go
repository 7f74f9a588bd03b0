// Package docs holds the OpenAPI document served by the Swagger UI. It is
// kept in step with the swag annotations of the handler package.
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
        "/v1/files": {
            "get": {
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "List invoice files",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive name search", "name": "search", "in": "query"},
                    {"type": "string", "description": "File type, or all", "name": "type", "in": "query"},
                    {"type": "string", "description": "name, type or size", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.FileListResponse"}},
                    "400": {"description": "Invalid query parameters", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "502": {"description": "Remote file API unavailable", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/v1/files/upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Upload an invoice file",
                "parameters": [
                    {"type": "file", "description": "JSON invoice document", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.UploadResponse"}},
                    "400": {"description": "Missing file or not a JSON file", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "429": {"description": "Too many uploads", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "502": {"description": "Upload failed", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/v1/files/{fileName}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Get invoice details",
                "parameters": [
                    {"type": "string", "description": "File name", "name": "fileName", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.InvoiceResponse"}},
                    "404": {"description": "File not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "502": {"description": "Failed to load invoice data", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/v1/files/{fileName}/download": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["invoices"],
                "summary": "Download the original file",
                "parameters": [
                    {"type": "string", "description": "File name", "name": "fileName", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "File not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "502": {"description": "Could not download original file", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/v1/files/{fileName}/export": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Export the current content",
                "parameters": [
                    {"type": "string", "description": "File name", "name": "fileName", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "File not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "502": {"description": "Could not export current file", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/v1/files/{fileName}/revisions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "List saved revisions",
                "parameters": [
                    {"type": "string", "description": "File name", "name": "fileName", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.RevisionListResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/v1/files/{fileName}/sessions": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Start an edit session",
                "parameters": [
                    {"type": "string", "description": "File name", "name": "fileName", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.SessionResponse"}},
                    "404": {"description": "File not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "502": {"description": "Failed to load invoice data", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/v1/sessions/{sessionId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Get an edit session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SessionResponse"}},
                    "404": {"description": "Edit session not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["sessions"],
                "summary": "Cancel an edit session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Session discarded"},
                    "404": {"description": "Edit session not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/v1/sessions/{sessionId}/items": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Add an item",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.SessionResponse"}},
                    "404": {"description": "Edit session not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/v1/sessions/{sessionId}/items/{index}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Delete an item",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionId", "in": "path", "required": true},
                    {"type": "integer", "description": "Item index", "name": "index", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SessionResponse"}},
                    "404": {"description": "Edit session not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "422": {"description": "Item does not exist", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Edit an item field",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionId", "in": "path", "required": true},
                    {"type": "integer", "description": "Item index", "name": "index", "in": "path", "required": true},
                    {"description": "Field edit", "name": "edit", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.EditItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SessionResponse"}},
                    "400": {"description": "Invalid input or unknown field", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Edit session not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "422": {"description": "Field locked or item missing", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/v1/sessions/{sessionId}/other-charges": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Set other charges manually",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionId", "in": "path", "required": true},
                    {"description": "Other charges", "name": "charges", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.OtherChargesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SessionResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Edit session not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/v1/sessions/{sessionId}/save": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Save an edit session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SaveResponse"}},
                    "404": {"description": "Edit session not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "502": {"description": "Save failed, session kept open", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "model.ErrorDetail": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/model.ErrorDetail"}}
            }
        },
        "model.FileEntryDTO": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "size": {"type": "integer"},
                "size_label": {"type": "string"},
                "modified": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "model.FileListResponse": {
            "type": "object",
            "properties": {
                "files": {"type": "array", "items": {"$ref": "#/definitions/model.FileEntryDTO"}},
                "categories": {"type": "array", "items": {"type": "string"}},
                "total": {"type": "integer"},
                "shown": {"type": "integer"}
            }
        },
        "model.UploadResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "file_name": {"type": "string"},
                "path": {"type": "string"}
            }
        },
        "model.InvoiceResponse": {
            "type": "object",
            "properties": {
                "file_name": {"type": "string"},
                "tax_mode": {"type": "string", "enum": ["intra-state", "inter-state"]},
                "tax_columns": {"type": "array", "items": {"type": "string"}},
                "invoice": {"type": "object"},
                "totals": {"$ref": "#/definitions/engine.ItemTotals"}
            }
        },
        "model.SessionResponse": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "file_name": {"type": "string"},
                "tax_mode": {"type": "string", "enum": ["intra-state", "inter-state"]},
                "tax_columns": {"type": "array", "items": {"type": "string"}},
                "invoice": {"type": "object"},
                "totals": {"$ref": "#/definitions/engine.ItemTotals"},
                "has_changes": {"type": "boolean"},
                "other_charges_manual": {"type": "boolean"},
                "started_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "engine.ItemTotals": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "taxable": {"type": "number"},
                "cgst": {"type": "number"},
                "sgst": {"type": "number"},
                "igst": {"type": "number"},
                "item_value": {"type": "number"}
            }
        },
        "model.EditItemRequest": {
            "type": "object",
            "required": ["field"],
            "properties": {
                "field": {"type": "string", "enum": ["PrdDesc", "HsnCd", "Unit", "Qty", "UnitPrice", "Discount", "GstRt"]},
                "value": {"type": "string"}
            }
        },
        "model.OtherChargesRequest": {
            "type": "object",
            "properties": {
                "value": {"type": "string"}
            }
        },
        "model.RevisionDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "session_id": {"type": "string"},
                "item_count": {"type": "integer"},
                "previous_total": {"type": "number"},
                "new_total": {"type": "number"},
                "saved_at": {"type": "string"}
            }
        },
        "model.RevisionListResponse": {
            "type": "object",
            "properties": {
                "file_name": {"type": "string"},
                "revisions": {"type": "array", "items": {"$ref": "#/definitions/model.RevisionDTO"}}
            }
        },
        "model.SaveResponse": {
            "type": "object",
            "properties": {
                "result": {"type": "string", "enum": ["success", "nochange"]},
                "message": {"type": "string"},
                "revision": {"$ref": "#/definitions/model.RevisionDTO"},
                "archive_key": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Invoice Explorer API",
	Description:      "Browse, inspect and edit GST invoice documents held by the file API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
