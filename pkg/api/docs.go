package api

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
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Get the health status of the API",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/snapshots": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "List archived snapshots in capture order",
                "produces": ["application/json"],
                "tags": ["snapshots"],
                "summary": "List snapshots",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.SnapshotEntry"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Read the SMBIOS table from the configured source and archive it",
                "produces": ["application/json"],
                "tags": ["snapshots"],
                "summary": "Capture a snapshot",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.SnapshotSummary"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "501": {"description": "Not Implemented", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/snapshots/upload": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Archive a table written by dmidecode --dump-bin",
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["snapshots"],
                "summary": "Upload a dump",
                "parameters": [
                    {"description": "Dump image", "name": "body", "in": "body", "required": true, "schema": {"type": "string", "format": "binary"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.SnapshotSummary"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/snapshots/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Version, structure counts per type and walk diagnostic of an archived table",
                "produces": ["application/json"],
                "tags": ["snapshots"],
                "summary": "Describe a snapshot",
                "parameters": [
                    {"type": "string", "description": "Snapshot ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SnapshotSummary"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["snapshots"],
                "summary": "Delete a snapshot",
                "parameters": [
                    {"type": "string", "description": "Snapshot ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/snapshots/{id}/raw": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "The archived table in dmidecode --dump-bin layout",
                "produces": ["application/octet-stream"],
                "tags": ["snapshots"],
                "summary": "Download a snapshot",
                "parameters": [
                    {"type": "string", "description": "Snapshot ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string", "format": "binary"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/snapshots/{id}/structures": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Decoded structures of a snapshot, optionally limited to one type",
                "produces": ["application/json", "application/yaml", "application/cbor"],
                "tags": ["structures"],
                "summary": "List structures",
                "parameters": [
                    {"type": "string", "description": "Snapshot ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Structure type (0-255)", "name": "type", "in": "query"},
                    {"type": "string", "description": "json, yaml or cbor", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/export.Report"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/snapshots/{id}/structures/{handle}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json", "application/yaml", "application/cbor"],
                "tags": ["structures"],
                "summary": "Get one structure",
                "parameters": [
                    {"type": "string", "description": "Snapshot ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Structure handle, decimal or 0x-prefixed hex", "name": "handle", "in": "path", "required": true},
                    {"type": "string", "description": "json, yaml or cbor", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/export.StructureReport"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/snapshots/{id}/inventory": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Firmware, system, boards, processors and memory summarized from a snapshot",
                "produces": ["application/json", "application/yaml", "application/cbor"],
                "tags": ["structures"],
                "summary": "Hardware inventory",
                "parameters": [
                    {"type": "string", "description": "Snapshot ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "json, yaml or cbor", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"type": "string"}
            }
        },
        "api.SnapshotEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "captured_at": {"type": "string", "format": "date-time"},
                "source": {"type": "string"},
                "size": {"type": "integer"}
            }
        },
        "api.SnapshotSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "captured_at": {"type": "string", "format": "date-time"},
                "source": {"type": "string"},
                "size": {"type": "integer"},
                "version": {"type": "string"},
                "structures": {"type": "integer"},
                "types": {"type": "object", "additionalProperties": {"type": "integer"}},
                "duplicate_handles": {"type": "array", "items": {"type": "string"}},
                "diagnostic": {"type": "string"}
            }
        },
        "export.Field": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "offset": {"type": "integer"},
                "value": {}
            }
        },
        "export.Report": {
            "type": "object",
            "properties": {
                "version": {"type": "string"},
                "structures": {"type": "array", "items": {"$ref": "#/definitions/export.StructureReport"}},
                "diagnostic": {"type": "string"}
            }
        },
        "export.StructureReport": {
            "type": "object",
            "properties": {
                "type": {"type": "integer"},
                "name": {"type": "string"},
                "handle": {"type": "string"},
                "length": {"type": "integer"},
                "offset": {"type": "integer"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/export.Field"}},
                "strings": {"type": "array", "items": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "dmidb REST API",
	Description:      "Capture, archive and inspect SMBIOS/DMI tables.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
