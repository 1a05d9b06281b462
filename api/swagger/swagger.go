package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "Electoral Roll Portal Gateway",
    "description": "Backend-for-frontend for the electoral roll portal: migration approval workflow, dashboards, elector search and BLO data entry.",
    "version": "1.0.0"
  },
  "basePath": "/api/v1",
  "schemes": [
    "http",
    "https"
  ],
  "securityDefinitions": {
    "BearerAuth": {
      "type": "apiKey",
      "name": "Authorization",
      "in": "header"
    }
  },
  "tags": [
    {
      "name": "Migrations",
      "description": "Form-6 migration approval workflow"
    },
    {
      "name": "Dashboard",
      "description": "Role dashboards"
    },
    {
      "name": "Applications",
      "description": "Registration application review"
    },
    {
      "name": "Electors",
      "description": "Electoral roll search"
    },
    {
      "name": "BLO",
      "description": "Booth level data entry"
    },
    {
      "name": "System",
      "description": "Action journal and runtime metrics"
    }
  ],
  "paths": {
    "/auth/login": {
      "post": {
        "tags": [
          "Authentication"
        ],
        "summary": "Authenticate a portal user",
        "parameters": [
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/LoginRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "401": {
            "description": "Unauthorized",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/auth/logout": {
      "post": {
        "tags": [
          "Authentication"
        ],
        "summary": "Logout current session",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "responses": {
          "204": {
            "description": "No Content"
          },
          "401": {
            "description": "Unauthorized"
          }
        }
      }
    },
    "/auth/me": {
      "get": {
        "tags": [
          "Authentication"
        ],
        "summary": "Current session profile",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/user/menu": {
      "get": {
        "tags": [
          "Authentication"
        ],
        "summary": "Sidebar menu for the caller's role",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/migrations/workflow": {
      "get": {
        "tags": [
          "Migrations"
        ],
        "summary": "List migration applications with the caller's permitted actions",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "status",
            "in": "query",
            "type": "string",
            "description": "all, pending, partial, completed or rejected"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "403": {
            "description": "Forbidden",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/migrations/workflow/{id}/approve": {
      "post": {
        "tags": [
          "Migrations"
        ],
        "summary": "Approve a migration application",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "type": "string",
            "required": true
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "403": {
            "description": "Forbidden",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "409": {
            "description": "Action in flight",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "429": {
            "description": "Too many requests",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "502": {
            "description": "Upstream error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/migrations/workflow/{id}/reject": {
      "post": {
        "tags": [
          "Migrations"
        ],
        "summary": "Reject a migration application",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "type": "string",
            "required": true
          },
          {
            "name": "payload",
            "in": "body",
            "schema": {
              "$ref": "#/definitions/RejectRequest"
            }
          },
          {
            "name": "reason",
            "in": "query",
            "type": "string",
            "description": "Rejection reason"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "403": {
            "description": "Forbidden",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "404": {
            "description": "Not found",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "409": {
            "description": "Action in flight",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "429": {
            "description": "Too many requests",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "502": {
            "description": "Upstream error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/dashboard/national": {
      "get": {
        "tags": [
          "Dashboard"
        ],
        "summary": "National dashboard",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "403": {
            "description": "Forbidden",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/dashboard/state": {
      "get": {
        "tags": [
          "Dashboard"
        ],
        "summary": "State or district dashboard",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "state",
            "in": "query",
            "type": "string"
          },
          {
            "name": "district",
            "in": "query",
            "type": "string"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "403": {
            "description": "Forbidden",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/dashboard/ero": {
      "get": {
        "tags": [
          "Dashboard"
        ],
        "summary": "Electoral registration officer dashboard",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "status",
            "in": "query",
            "type": "string",
            "description": "Application status filter"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "403": {
            "description": "Forbidden",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/applications/{id}/verify": {
      "post": {
        "tags": [
          "Applications"
        ],
        "summary": "Verify a registration application",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "type": "string",
            "required": true
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "403": {
            "description": "Forbidden",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "409": {
            "description": "Action in flight",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "502": {
            "description": "Upstream error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/applications/{id}/reject": {
      "post": {
        "tags": [
          "Applications"
        ],
        "summary": "Reject a registration application",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "type": "string",
            "required": true
          },
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/RejectRequest"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "403": {
            "description": "Forbidden",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "409": {
            "description": "Action in flight",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "502": {
            "description": "Upstream error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/electors/search": {
      "get": {
        "tags": [
          "Electors"
        ],
        "summary": "Search the electoral roll",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "type",
            "in": "query",
            "type": "string",
            "description": "epic (default), name or mobile"
          },
          {
            "name": "q",
            "in": "query",
            "type": "string",
            "description": "Search term",
            "required": true
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "403": {
            "description": "Forbidden",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/citizen/profile": {
      "get": {
        "tags": [
          "Citizen"
        ],
        "summary": "Logged-in elector profile",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "403": {
            "description": "Forbidden",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/blo/electors": {
      "post": {
        "tags": [
          "BLO"
        ],
        "summary": "Save or submit a BLO elector entry",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "payload",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/BLOEntryRequest"
            }
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error"
          },
          "403": {
            "description": "Forbidden"
          }
        }
      }
    },
    "/blo/documents/upload": {
      "post": {
        "tags": [
          "BLO"
        ],
        "summary": "Upload a supporting document",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "consumes": [
          "multipart/form-data"
        ],
        "parameters": [
          {
            "name": "file",
            "in": "formData",
            "type": "file",
            "required": true
          },
          {
            "name": "electorId",
            "in": "formData",
            "type": "string",
            "required": true
          },
          {
            "name": "documentType",
            "in": "formData",
            "type": "string",
            "required": true
          }
        ],
        "responses": {
          "201": {
            "description": "Created",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          },
          "400": {
            "description": "Validation error"
          }
        }
      }
    },
    "/polling-stations": {
      "get": {
        "tags": [
          "Polling Stations"
        ],
        "summary": "List polling stations in the caller's jurisdiction",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "state",
            "in": "query",
            "type": "string"
          },
          {
            "name": "district",
            "in": "query",
            "type": "string"
          },
          {
            "name": "constituency",
            "in": "query",
            "type": "string"
          },
          {
            "name": "q",
            "in": "query",
            "type": "string"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/polling-stations/export": {
      "get": {
        "tags": [
          "Polling Stations"
        ],
        "summary": "Export polling stations",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "produces": [
          "text/csv",
          "application/pdf"
        ],
        "parameters": [
          {
            "name": "format",
            "in": "query",
            "type": "string",
            "description": "csv (default) or pdf"
          }
        ],
        "responses": {
          "200": {
            "description": "File download"
          }
        }
      }
    },
    "/audit/logs": {
      "get": {
        "tags": [
          "Audit"
        ],
        "summary": "Audit and activity log",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "user",
            "in": "query",
            "type": "string"
          },
          {
            "name": "action",
            "in": "query",
            "type": "string",
            "description": "Action type, all by default"
          },
          {
            "name": "page",
            "in": "query",
            "type": "integer"
          },
          {
            "name": "pageSize",
            "in": "query",
            "type": "integer"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/audit/logs/export": {
      "get": {
        "tags": [
          "Audit"
        ],
        "summary": "Export the audit log",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "produces": [
          "text/csv",
          "application/pdf"
        ],
        "parameters": [
          {
            "name": "format",
            "in": "query",
            "type": "string",
            "description": "csv (default) or pdf"
          }
        ],
        "responses": {
          "200": {
            "description": "File download"
          }
        }
      }
    },
    "/analysis/scores": {
      "get": {
        "tags": [
          "Analysis"
        ],
        "summary": "Ranked health or migration scores",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "metric",
            "in": "query",
            "type": "string",
            "description": "health (default) or migration"
          },
          {
            "name": "level",
            "in": "query",
            "type": "string",
            "description": "national, state or constituency"
          },
          {
            "name": "state",
            "in": "query",
            "type": "string"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/journal": {
      "get": {
        "tags": [
          "System"
        ],
        "summary": "Recent approve, reject and verify attempts",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "parameters": [
          {
            "name": "actorId",
            "in": "query",
            "type": "string"
          },
          {
            "name": "targetType",
            "in": "query",
            "type": "string"
          },
          {
            "name": "targetId",
            "in": "query",
            "type": "string"
          },
          {
            "name": "limit",
            "in": "query",
            "type": "integer"
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    },
    "/system/metrics": {
      "get": {
        "tags": [
          "System"
        ],
        "summary": "Gateway runtime snapshot",
        "security": [
          {
            "BearerAuth": []
          }
        ],
        "responses": {
          "200": {
            "description": "OK",
            "schema": {
              "$ref": "#/definitions/ResponseEnvelope"
            }
          }
        }
      }
    }
  },
  "definitions": {
    "LoginRequest": {
      "type": "object",
      "required": [
        "username",
        "password",
        "role"
      ],
      "properties": {
        "username": {
          "type": "string"
        },
        "password": {
          "type": "string"
        },
        "role": {
          "type": "string",
          "enum": [
            "CEC",
            "EC",
            "CEO",
            "DEO",
            "RO",
            "BLO",
            "Citizen"
          ]
        },
        "state": {
          "type": "string"
        },
        "district": {
          "type": "string"
        },
        "constituency": {
          "type": "string"
        }
      }
    },
    "RejectRequest": {
      "type": "object",
      "properties": {
        "reason": {
          "type": "string",
          "minLength": 10
        }
      }
    },
    "BLOEntryRequest": {
      "type": "object",
      "required": [
        "firstName",
        "lastName",
        "fatherName",
        "gender",
        "dob",
        "addressLine1",
        "city",
        "pincode",
        "state",
        "district",
        "constituency",
        "action"
      ],
      "properties": {
        "firstName": {
          "type": "string"
        },
        "middleName": {
          "type": "string"
        },
        "lastName": {
          "type": "string"
        },
        "firstNameLocal": {
          "type": "string"
        },
        "fatherName": {
          "type": "string"
        },
        "gender": {
          "type": "string"
        },
        "dob": {
          "type": "string"
        },
        "mobile": {
          "type": "string"
        },
        "email": {
          "type": "string"
        },
        "addressLine1": {
          "type": "string"
        },
        "addressLine2": {
          "type": "string"
        },
        "city": {
          "type": "string"
        },
        "pincode": {
          "type": "string"
        },
        "state": {
          "type": "string"
        },
        "district": {
          "type": "string"
        },
        "constituency": {
          "type": "string"
        },
        "action": {
          "type": "string"
        }
      }
    },
    "Pagination": {
      "type": "object",
      "properties": {
        "page": {
          "type": "integer"
        },
        "page_size": {
          "type": "integer"
        },
        "total_count": {
          "type": "integer"
        }
      }
    },
    "APIError": {
      "type": "object",
      "properties": {
        "code": {
          "type": "string"
        },
        "message": {
          "type": "string"
        },
        "status": {
          "type": "integer"
        }
      }
    },
    "ResponseEnvelope": {
      "type": "object",
      "properties": {
        "data": {
          "type": "object"
        },
        "error": {
          "$ref": "#/definitions/APIError"
        },
        "pagination": {
          "$ref": "#/definitions/Pagination"
        },
        "meta": {
          "type": "object"
        }
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
