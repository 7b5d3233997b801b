package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "University Timetable API",
        "description": "Timetable generation and versioning service for university departments",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Operator authentication"},
        {"name": "Catalog", "description": "Subjects, faculty, rooms and batches"},
        {"name": "Timetables", "description": "Generation, versioning and export"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate the scheduling operator",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List subjects",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "kind", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Register a subject",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSubjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subjects/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get one subject",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Catalog"],
                "summary": "Delete a subject",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/faculty": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List faculty",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Register an instructor",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateFacultyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/faculty/{id}": {
            "delete": {
                "tags": ["Catalog"],
                "summary": "Deactivate an instructor",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deactivated"}
                }
            }
        },
        "/rooms": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List rooms",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "kind", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Register a room",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRoomRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms/{id}": {
            "delete": {
                "tags": ["Catalog"],
                "summary": "Take a room out of scheduling rotation",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deactivated"}
                }
            }
        },
        "/batches": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List batches",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Register a batch with its subject list",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBatchRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/batches/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get one batch with its subject links",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/timetables/generate": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Generate a timetable proposal for one department scope",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "Proposal", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Infeasible input"}
                }
            }
        },
        "/timetables/save": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Persist a generated proposal as the next timetable version",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveTimetableRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "410": {"description": "Proposal expired"}
                }
            }
        },
        "/timetables/bulk-generate": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Queue timetable generation for several departments",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkGenerateRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetables": {
            "get": {
                "tags": ["Timetables"],
                "summary": "List stored timetable versions for a scope",
                "parameters": [
                    {"name": "academicYear", "in": "query", "required": true, "type": "string"},
                    {"name": "semester", "in": "query", "required": true, "type": "integer"},
                    {"name": "department", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetables/{id}": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Get one stored timetable with its assignments",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Timetables"],
                "summary": "Delete a draft timetable",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "412": {"description": "Not a draft"}
                }
            }
        },
        "/timetables/{id}/status": {
            "patch": {
                "tags": ["Timetables"],
                "summary": "Move a timetable through its lifecycle",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTimetableStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetables/{id}/export": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Export a stored timetable as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "TimeWindow": {
            "type": "object",
            "required": ["day", "start", "end"],
            "properties": {
                "day": {"type": "string"},
                "start": {"type": "string", "example": "09:00"},
                "end": {"type": "string", "example": "17:00"}
            }
        },
        "CreateSubjectRequest": {
            "type": "object",
            "required": ["code", "name", "department", "credits", "kind", "sessionsPerWeek", "durationMinutes"],
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "department": {"type": "string"},
                "credits": {"type": "integer"},
                "kind": {"type": "string", "enum": ["theory", "lab", "tutorial", "seminar"]},
                "sessionsPerWeek": {"type": "integer"},
                "durationMinutes": {"type": "integer"},
                "roomKind": {"type": "string"},
                "minCapacity": {"type": "integer"},
                "facilities": {"type": "array", "items": {"type": "string"}},
                "specializations": {"type": "array", "items": {"type": "string"}},
                "minimumRank": {"type": "string"}
            }
        },
        "CreateFacultyRequest": {
            "type": "object",
            "required": ["fullName", "email", "rank", "departments", "weeklyLoadLimit"],
            "properties": {
                "fullName": {"type": "string"},
                "email": {"type": "string"},
                "rank": {"type": "string"},
                "departments": {"type": "array", "items": {"type": "string"}},
                "specializations": {"type": "array", "items": {"type": "string"}},
                "weeklyLoadLimit": {"type": "integer"},
                "maxSessionsPerDay": {"type": "integer"},
                "availability": {"type": "array", "items": {"$ref": "#/definitions/TimeWindow"}},
                "blocked": {"type": "array", "items": {"$ref": "#/definitions/TimeWindow"}}
            }
        },
        "CreateRoomRequest": {
            "type": "object",
            "required": ["building", "roomNumber", "capacity", "kind"],
            "properties": {
                "building": {"type": "string"},
                "roomNumber": {"type": "string"},
                "capacity": {"type": "integer"},
                "kind": {"type": "string"},
                "facilities": {"type": "array", "items": {"type": "string"}},
                "departments": {"type": "array", "items": {"type": "string"}},
                "blocked": {"type": "array", "items": {"$ref": "#/definitions/TimeWindow"}}
            }
        },
        "CreateBatchRequest": {
            "type": "object",
            "required": ["name", "department", "semester", "academicYear", "enrolled", "subjects"],
            "properties": {
                "name": {"type": "string"},
                "department": {"type": "string"},
                "programLevel": {"type": "string"},
                "semester": {"type": "integer"},
                "academicYear": {"type": "string"},
                "enrolled": {"type": "integer"},
                "blocked": {"type": "array", "items": {"$ref": "#/definitions/TimeWindow"}},
                "subjects": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "required": ["subjectId"],
                        "properties": {
                            "subjectId": {"type": "string"},
                            "facultyId": {"type": "string"}
                        }
                    }
                }
            }
        },
        "Constraints": {
            "type": "object",
            "properties": {
                "workingDays": {"type": "array", "items": {"type": "string"}},
                "workStart": {"type": "string", "example": "09:00"},
                "workEnd": {"type": "string", "example": "17:00"},
                "lunchStart": {"type": "string", "example": "13:00"},
                "lunchEnd": {"type": "string", "example": "14:00"},
                "allowedDurations": {"type": "array", "items": {"type": "integer"}},
                "slotStepMinutes": {"type": "integer"},
                "maxClassesPerDay": {"type": "integer"},
                "breakDurationMinutes": {"type": "integer"},
                "groupSizeLimit": {"type": "integer"},
                "checkBudget": {"type": "integer"}
            }
        },
        "GenerateTimetableRequest": {
            "type": "object",
            "required": ["academicYear", "semester", "department"],
            "properties": {
                "academicYear": {"type": "string", "example": "2026-27"},
                "semester": {"type": "integer"},
                "department": {"type": "string"},
                "constraints": {"$ref": "#/definitions/Constraints"},
                "preassignments": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "required": ["batchId", "subjectId", "facultyId"],
                        "properties": {
                            "batchId": {"type": "string"},
                            "subjectId": {"type": "string"},
                            "facultyId": {"type": "string"}
                        }
                    }
                }
            }
        },
        "SaveTimetableRequest": {
            "type": "object",
            "required": ["proposalId"],
            "properties": {
                "proposalId": {"type": "string"}
            }
        },
        "UpdateTimetableStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["DRAFT", "PUBLISHED", "ARCHIVED"]}
            }
        },
        "BulkGenerateRequest": {
            "type": "object",
            "required": ["academicYear", "semester", "departments"],
            "properties": {
                "academicYear": {"type": "string"},
                "semester": {"type": "integer"},
                "departments": {"type": "array", "items": {"type": "string"}},
                "constraints": {"$ref": "#/definitions/Constraints"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
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
