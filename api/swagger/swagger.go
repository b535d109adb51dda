package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Advocate Directory API",
        "description": "Search, filter and export the advocate directory.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Advocates", "description": "Advocate directory search and export"},
        {"name": "Health", "description": "Liveness and readiness probes"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness probe",
                "description": "Checks that the advocate record source answers.",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Record source unavailable"}
                }
            }
        },
        "/api/advocates": {
            "get": {
                "tags": ["Advocates"],
                "summary": "Search advocates",
                "description": "Filters, sorts and paginates the advocate directory. Malformed parameters fall back to defaults.",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string", "description": "Free text matched against name, city, degree, specialties and years"},
                    {"name": "query", "in": "query", "type": "string", "description": "Alias of search, used when search is empty"},
                    {"name": "city", "in": "query", "type": "string"},
                    {"name": "degree", "in": "query", "type": "string", "enum": ["MD", "PhD", "MSW"]},
                    {"name": "specialty", "in": "query", "type": "string"},
                    {"name": "minExperience", "in": "query", "type": "integer"},
                    {"name": "maxExperience", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string", "enum": ["id", "firstName", "lastName", "city", "degree", "yearsOfExperience", "phoneNumber", "createdAt"]},
                    {"name": "direction", "in": "query", "type": "string", "enum": ["asc", "desc"]},
                    {"name": "page", "in": "query", "type": "integer", "default": 1},
                    {"name": "limit", "in": "query", "type": "integer", "default": 20}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "headers": {"X-Cache": {"type": "string", "description": "HIT or MISS"}},
                        "schema": {"$ref": "#/definitions/AdvocateSearchResult"}
                    },
                    "500": {"description": "Record source unavailable", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/advocates/export": {
            "get": {
                "tags": ["Advocates"],
                "summary": "Export advocates",
                "description": "Downloads every advocate matching the filters, ignoring pagination.",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "city", "in": "query", "type": "string"},
                    {"name": "degree", "in": "query", "type": "string"},
                    {"name": "specialty", "in": "query", "type": "string"},
                    {"name": "minExperience", "in": "query", "type": "integer"},
                    {"name": "maxExperience", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "direction", "in": "query", "type": "string", "enum": ["asc", "desc"]}
                ],
                "responses": {
                    "200": {"description": "File download", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Record source unavailable", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Health"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "Advocate": {
            "type": "object",
            "required": ["firstName", "lastName", "city", "degree", "specialties", "yearsOfExperience", "phoneNumber"],
            "properties": {
                "id": {"type": "integer"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "city": {"type": "string"},
                "degree": {"type": "string", "enum": ["MD", "PhD", "MSW"]},
                "specialties": {"type": "array", "items": {"type": "string"}},
                "yearsOfExperience": {"type": "integer"},
                "phoneNumber": {"type": "integer", "format": "int64"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "AdvocateFilters": {
            "type": "object",
            "properties": {
                "query": {"type": "string", "x-nullable": true},
                "city": {"type": "string", "x-nullable": true},
                "degree": {"type": "string", "x-nullable": true},
                "specialty": {"type": "string", "x-nullable": true},
                "minExperience": {"type": "string", "x-nullable": true},
                "maxExperience": {"type": "string", "x-nullable": true},
                "sort": {"type": "string", "x-nullable": true},
                "direction": {"type": "string", "enum": ["asc", "desc"]},
                "page": {"type": "integer"},
                "limit": {"type": "integer"}
            }
        },
        "AdvocateSearchResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Advocate"}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "filters": {"$ref": "#/definitions/AdvocateFilters"}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
