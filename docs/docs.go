// Package docs holds the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/tasks": {
            "get": {
                "tags": [
                    "tasks"
                ],
                "summary": "List tasks, newest first",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/Task"
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "query",
                        "name": "q",
                        "type": "string",
                        "description": "search term, matched against title and description"
                    }
                ]
            },
            "post": {
                "tags": [
                    "tasks"
                ],
                "summary": "Create a task from the editor form",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Task"
                        }
                    },
                    "400": {
                        "description": "Invalid form",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "description": "editor form",
                        "schema": {
                            "$ref": "#/definitions/Draft"
                        }
                    }
                ]
            }
        },
        "/tasks/new": {
            "get": {
                "tags": [
                    "tasks"
                ],
                "summary": "Blank editor form with defaults",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Draft"
                        }
                    }
                }
            }
        },
        "/tasks/{id}": {
            "get": {
                "tags": [
                    "tasks"
                ],
                "summary": "Get a task",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Task"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "task id"
                    }
                ]
            },
            "put": {
                "tags": [
                    "tasks"
                ],
                "summary": "Save the editor form; only changed fields are sent to the store",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Task"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "task id"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "description": "editor form",
                        "schema": {
                            "$ref": "#/definitions/Draft"
                        }
                    }
                ]
            },
            "patch": {
                "tags": [
                    "tasks"
                ],
                "summary": "Apply a sparse update",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Task"
                        }
                    },
                    "400": {
                        "description": "Invalid patch",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "task id"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "description": "fields to change",
                        "schema": {
                            "$ref": "#/definitions/TaskPatch"
                        }
                    }
                ]
            },
            "delete": {
                "tags": [
                    "tasks"
                ],
                "summary": "Delete a task",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    },
                    "428": {
                        "description": "Not confirmed",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "task id"
                    },
                    {
                        "in": "query",
                        "name": "confirm",
                        "type": "boolean",
                        "required": true,
                        "description": "must be true"
                    }
                ]
            }
        },
        "/refresh": {
            "post": {
                "tags": [
                    "tasks"
                ],
                "summary": "Reload tasks and documents from the store",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Reloaded"
                    }
                }
            }
        },
        "/board": {
            "get": {
                "tags": [
                    "board"
                ],
                "summary": "Tasks grouped into status lanes",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Board"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "query",
                        "name": "q",
                        "type": "string",
                        "description": "search term, matched against title and description"
                    }
                ]
            }
        },
        "/board/moves": {
            "post": {
                "tags": [
                    "board"
                ],
                "summary": "Apply the end of a drag gesture",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/MoveResponse"
                        }
                    },
                    "400": {
                        "description": "Unknown lane",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "description": "drag end",
                        "schema": {
                            "$ref": "#/definitions/DragEndEvent"
                        }
                    }
                ]
            }
        },
        "/analytics": {
            "get": {
                "tags": [
                    "board"
                ],
                "summary": "Counts and shares over the whole collection",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Analytics"
                        }
                    }
                }
            }
        },
        "/documents": {
            "get": {
                "tags": [
                    "documents"
                ],
                "summary": "List document links",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/DocumentLink"
                            }
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "documents"
                ],
                "summary": "Link a document; title and type are derived from the URL",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/DocumentLink"
                        }
                    },
                    "400": {
                        "description": "Invalid URL",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "description": "link",
                        "schema": {
                            "$ref": "#/definitions/AddDocumentRequest"
                        }
                    }
                ]
            }
        },
        "/documents/{id}": {
            "delete": {
                "tags": [
                    "documents"
                ],
                "summary": "Remove a document link",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "Removed"
                    },
                    "428": {
                        "description": "Not confirmed",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "document id"
                    },
                    {
                        "in": "query",
                        "name": "confirm",
                        "type": "boolean",
                        "required": true,
                        "description": "must be true"
                    }
                ]
            }
        },
        "/export/tasks.csv": {
            "get": {
                "tags": [
                    "export"
                ],
                "summary": "Download tasks as CSV",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "text/csv"
                ],
                "responses": {
                    "200": {
                        "description": "CSV attachment"
                    },
                    "500": {
                        "description": "Render failed",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                }
            }
        },
        "/export/tasks.pdf": {
            "get": {
                "tags": [
                    "export"
                ],
                "summary": "Download a PDF task report",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/pdf"
                ],
                "responses": {
                    "200": {
                        "description": "PDF attachment"
                    },
                    "500": {
                        "description": "Render failed",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                }
            }
        },
        "/calendar/events": {
            "get": {
                "tags": [
                    "calendar"
                ],
                "summary": "Upcoming calendar events",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/CalendarEvent"
                            }
                        }
                    },
                    "401": {
                        "description": "Missing or rejected token",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Calendar not configured",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "header",
                        "name": "X-Calendar-Token",
                        "type": "string",
                        "required": true,
                        "description": "Google OAuth access token"
                    }
                ]
            }
        }
    },
    "definitions": {
        "Task": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "priority": {
                    "type": "string",
                    "enum": [
                        "low",
                        "medium",
                        "high"
                    ]
                },
                "category": {
                    "type": "string",
                    "enum": [
                        "design",
                        "research",
                        "documents"
                    ]
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "todo",
                        "in-progress",
                        "completed"
                    ]
                },
                "deadline": {
                    "type": "string",
                    "format": "date-time"
                },
                "progress": {
                    "type": "integer"
                },
                "timeSpent": {
                    "type": "integer"
                },
                "attachments": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "updatedAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "Draft": {
            "type": "object",
            "required": [
                "title",
                "priority",
                "category",
                "status",
                "deadline"
            ],
            "properties": {
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "priority": {
                    "type": "string",
                    "enum": [
                        "low",
                        "medium",
                        "high"
                    ]
                },
                "category": {
                    "type": "string",
                    "enum": [
                        "design",
                        "research",
                        "documents"
                    ]
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "todo",
                        "in-progress",
                        "completed"
                    ]
                },
                "deadline": {
                    "type": "string",
                    "format": "date"
                },
                "progress": {
                    "type": "integer"
                },
                "timeSpent": {
                    "type": "integer"
                },
                "attachments": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "TaskPatch": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "priority": {
                    "type": "string",
                    "enum": [
                        "low",
                        "medium",
                        "high"
                    ]
                },
                "category": {
                    "type": "string",
                    "enum": [
                        "design",
                        "research",
                        "documents"
                    ]
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "todo",
                        "in-progress",
                        "completed"
                    ]
                },
                "deadline": {
                    "type": "string",
                    "format": "date"
                },
                "progress": {
                    "type": "integer"
                },
                "timeSpent": {
                    "type": "integer"
                },
                "attachments": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "Location": {
            "type": "object",
            "properties": {
                "bucket": {
                    "type": "string",
                    "enum": [
                        "todo",
                        "in-progress",
                        "completed"
                    ]
                },
                "index": {
                    "type": "integer"
                }
            }
        },
        "DragEndEvent": {
            "type": "object",
            "required": [
                "taskId",
                "source"
            ],
            "properties": {
                "taskId": {
                    "type": "string"
                },
                "source": {
                    "$ref": "#/definitions/Location"
                },
                "destination": {
                    "$ref": "#/definitions/Location"
                }
            }
        },
        "Board": {
            "type": "object",
            "properties": {
                "todo": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Task"
                    }
                },
                "inProgress": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Task"
                    }
                },
                "completed": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Task"
                    }
                }
            }
        },
        "MoveResponse": {
            "type": "object",
            "properties": {
                "moved": {
                    "type": "boolean"
                },
                "board": {
                    "$ref": "#/definitions/Board"
                }
            }
        },
        "Analytics": {
            "type": "object",
            "properties": {
                "total": {
                    "type": "integer"
                },
                "completed": {
                    "type": "integer"
                },
                "inProgress": {
                    "type": "integer"
                },
                "todo": {
                    "type": "integer"
                },
                "overdue": {
                    "type": "integer"
                },
                "byStatus": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                },
                "byPriority": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                },
                "byCategory": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                },
                "completionRate": {
                    "type": "number"
                },
                "statusShare": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "number"
                    }
                }
            }
        },
        "DocumentLink": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "url": {
                    "type": "string"
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "sheets",
                        "docs",
                        "drive"
                    ]
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "AddDocumentRequest": {
            "type": "object",
            "required": [
                "url"
            ],
            "properties": {
                "url": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "CalendarEvent": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "summary": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "start": {
                    "type": "string",
                    "format": "date-time"
                },
                "end": {
                    "type": "string",
                    "format": "date-time"
                },
                "allDay": {
                    "type": "boolean"
                }
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "details": {}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Task Dashboard API",
	Description:      "Personal task board: tasks, document links, analytics and exports",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
