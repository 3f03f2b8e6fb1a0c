package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Siswa API",
        "description": "Student profile record-keeper for the administration office",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "System", "description": "Health and observability"},
        {"name": "Students", "description": "Student profile CRUD"},
        {"name": "Exports", "description": "Roster exports and signed downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/rpc/healthcheck": {
            "get": {
                "tags": ["System"],
                "summary": "Service healthcheck",
                "responses": {
                    "200": {"description": "Status and timestamp"}
                }
            }
        },
        "/rpc/createStudent": {
            "post": {
                "tags": ["Students"],
                "summary": "Create a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created student", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"},
                    "409": {"description": "Duplicate NIS"}
                }
            }
        },
        "/rpc/getStudents": {
            "get": {
                "tags": ["Students"],
                "summary": "List all students ordered by name",
                "responses": {
                    "200": {"description": "Student list", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rpc/getStudentById": {
            "post": {
                "tags": ["Students"],
                "summary": "Get a student by id",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentIDRequest"}}
                ],
                "responses": {
                    "200": {"description": "Student or empty data when missing", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rpc/updateStudent": {
            "post": {
                "tags": ["Students"],
                "summary": "Partially update a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated student or empty data when missing", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "NIS used by another student"}
                }
            }
        },
        "/rpc/deleteStudent": {
            "post": {
                "tags": ["Students"],
                "summary": "Delete a student and clean up its local photo",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentIDRequest"}}
                ],
                "responses": {
                    "200": {"description": "Outcome with success flag", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rpc/exportStudents": {
            "post": {
                "tags": ["Exports"],
                "summary": "Export the student roster as CSV or PDF",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportStudentsRequest"}}
                ],
                "responses": {
                    "200": {"description": "Signed download reference", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rpc/downloadExport": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a previously exported roster file",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "400": {"description": "Invalid or expired token"}
                }
            }
        }
    },
    "definitions": {
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nis": {"type": "string"},
                "nama": {"type": "string"},
                "kelas": {"type": "string", "enum": ["X", "XI", "XII"]},
                "jenis_kelamin": {"type": "string", "enum": ["L", "P"]},
                "tanggal_lahir": {"type": "string", "format": "date"},
                "alamat": {"type": "string"},
                "hp": {"type": "string"},
                "foto": {"type": "string", "x-nullable": true},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "CreateStudentRequest": {
            "type": "object",
            "required": ["nis", "nama", "kelas", "jenis_kelamin", "tanggal_lahir", "alamat", "hp"],
            "properties": {
                "nis": {"type": "string"},
                "nama": {"type": "string"},
                "kelas": {"type": "string", "enum": ["X", "XI", "XII"]},
                "jenis_kelamin": {"type": "string", "enum": ["L", "P"]},
                "tanggal_lahir": {"type": "string", "format": "date"},
                "alamat": {"type": "string"},
                "hp": {"type": "string"},
                "foto": {"type": "string", "x-nullable": true}
            }
        },
        "UpdateStudentRequest": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "id": {"type": "integer"},
                "nis": {"type": "string"},
                "nama": {"type": "string"},
                "kelas": {"type": "string", "enum": ["X", "XI", "XII"]},
                "jenis_kelamin": {"type": "string", "enum": ["L", "P"]},
                "tanggal_lahir": {"type": "string", "format": "date"},
                "alamat": {"type": "string"},
                "hp": {"type": "string"},
                "foto": {"type": "string", "x-nullable": true}
            }
        },
        "StudentIDRequest": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "id": {"type": "integer"}
            }
        },
        "ExportStudentsRequest": {
            "type": "object",
            "required": ["format"],
            "properties": {
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "fields": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
