package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Academico API",
        "description": "Academic records API: careers, subjects, students, teachers and users",
        "version": "1.0.0"
    },
    "basePath": "/",
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
        {"name": "Authentication", "description": "Token issuance"},
        {"name": "Careers", "description": "Career catalogue (/car)"},
        {"name": "Subjects", "description": "Subject catalogue (/mat), writes admin-only"},
        {"name": "Students", "description": "Student roster (/al)"},
        {"name": "Teachers", "description": "Teaching staff (/doc)"},
        {"name": "Users", "description": "API accounts"},
        {"name": "Logs", "description": "Audit trail"},
        {"name": "Exports", "description": "Roster downloads, admin-only"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/car": {
            "get": {
                "tags": ["Careers"],
                "summary": "List careers",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Careers"],
                "summary": "Create career",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CareerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CreatedResponse"}},
                    "400": {"description": "Validation or duplicate", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/car/{id}": {
            "get": {
                "tags": ["Careers"],
                "summary": "Get career",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Career"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "put": {
                "tags": ["Careers"],
                "summary": "Update career",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CareerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Career"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "delete": {
                "tags": ["Careers"],
                "summary": "Delete career",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/mat": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Create subject (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CreatedResponse"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/APIError"}},
                    "403": {"description": "Not an administrator", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/mat/{id}": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Get subject",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Subject"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "put": {
                "tags": ["Subjects"],
                "summary": "Update subject (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubjectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Subject"}},
                    "403": {"description": "Not an administrator", "schema": {"$ref": "#/definitions/APIError"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "delete": {
                "tags": ["Subjects"],
                "summary": "Delete subject (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Not an administrator", "schema": {"$ref": "#/definitions/APIError"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/al": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CreatedResponse"}}
                }
            }
        },
        "/al/export": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export student roster (admin)",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "403": {"description": "Not an administrator", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/al/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/doc": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List teachers",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Teachers"],
                "summary": "Create teacher",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TeacherRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CreatedResponse"}}
                }
            }
        },
        "/doc/{id}": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Get teacher",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Teacher"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "put": {
                "tags": ["Teachers"],
                "summary": "Update teacher",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TeacherRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Teacher"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "delete": {
                "tags": ["Teachers"],
                "summary": "Delete teacher",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CreatedResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get user",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "put": {
                "tags": ["Users"],
                "summary": "Update user",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Delete user",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/logs": {
            "get": {
                "tags": ["Logs"],
                "summary": "List audit log entries",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/health": {
            "get": {
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Store unavailable"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["name", "password"]
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "token": {"type": "string"},
                "decodedToken": {"type": "object"}
            }
        },
        "Career": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombre": {"type": "string"},
                "años": {"type": "integer"}
            }
        },
        "CareerRequest": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "años": {"type": "integer"}
            },
            "required": ["nombre"]
        },
        "Subject": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombre": {"type": "string"},
                "idCarrera": {"type": "integer"},
                "idDocente": {"type": "integer"},
                "Carrera": {
                    "type": "object",
                    "properties": {
                        "id": {"type": "integer"},
                        "nombre": {"type": "string"}
                    }
                },
                "Docente": {
                    "type": "object",
                    "properties": {
                        "id": {"type": "integer"},
                        "nombre": {"type": "string"},
                        "apellido": {"type": "string"}
                    }
                }
            }
        },
        "SubjectRequest": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "idCarrera": {"type": "integer"},
                "idDocente": {"type": "integer"}
            },
            "required": ["nombre", "idCarrera", "idDocente"]
        },
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombre": {"type": "string"},
                "apellido": {"type": "string"},
                "edad": {"type": "integer"},
                "idCarrera": {"type": "integer"}
            }
        },
        "StudentRequest": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "apellido": {"type": "string"},
                "edad": {"type": "integer"},
                "idCarrera": {"type": "integer"}
            },
            "required": ["nombre", "apellido"]
        },
        "Teacher": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombre": {"type": "string"},
                "apellido": {"type": "string"},
                "idMateria": {"type": "integer"},
                "idCarrera": {"type": "integer"}
            }
        },
        "TeacherRequest": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "apellido": {"type": "string"},
                "idMateria": {"type": "integer"},
                "idCarrera": {"type": "integer"}
            },
            "required": ["nombre", "apellido"]
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "UserRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["name", "password"]
        },
        "CreatedResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}
            }
        },
        "APIError": {
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
