// Package swagger registers the OpenAPI document served at /swagger.
package swagger

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
        "/tables": {
            "get": {
                "description": "Scans the configured data root and returns the table-import descriptors. Pass refresh=true to bypass the cache.",
                "produces": ["application/json"],
                "tags": ["tables"],
                "summary": "List Discovered Tables",
                "parameters": [
                    {"type": "boolean", "description": "Rescan even if a cached result exists", "name": "refresh", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Table descriptors", "schema": {"type": "array", "items": {"$ref": "#/definitions/importer.TableImport"}}},
                    "400": {"description": "Invalid importer configuration", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "Malformed spreadsheet", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/manifest": {
            "get": {
                "description": "Discovers the tables of the data root and returns them as an encoded manifest.",
                "produces": ["application/json", "application/yaml", "application/toml"],
                "tags": ["manifest"],
                "summary": "Get Manifest",
                "parameters": [
                    {"type": "string", "description": "json, yaml or toml (default json)", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Manifest", "schema": {"$ref": "#/definitions/manifest.Manifest"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "Malformed spreadsheet", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/manifest/history": {
            "get": {
                "description": "Lists the most recent discovery runs stored in the history database.",
                "produces": ["application/json"],
                "tags": ["manifest"],
                "summary": "List Runs",
                "parameters": [
                    {"type": "integer", "description": "Maximum number of runs", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Runs", "schema": {"type": "array", "items": {"$ref": "#/definitions/manifest.RunSummary"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "History disabled", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "importer.TableImport": {
            "type": "object",
            "properties": {
                "namespace": {"type": "string"},
                "name": {"type": "string"},
                "index": {"type": "string"},
                "value_type": {"type": "string"},
                "read_schema_from_file": {"type": "boolean"},
                "mode": {"type": "string"},
                "comment": {"type": "string"},
                "groups": {"type": "array", "items": {"type": "string"}},
                "input_files": {"type": "array", "items": {"type": "string"}},
                "output_file": {"type": "string"}
            }
        },
        "manifest.Manifest": {
            "type": "object",
            "properties": {
                "run_id": {"type": "string"},
                "data_root": {"type": "string"},
                "generated_at": {"type": "string"},
                "tables": {"type": "array", "items": {"$ref": "#/definitions/importer.TableImport"}}
            }
        },
        "manifest.RunSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "data_root": {"type": "string"},
                "generated_at": {"type": "string"},
                "table_count": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Table Importer API",
	Description:      "API for discovering importable spreadsheet tables.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
