package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "TaskBoard API Documentation",
        "title": "TaskBoard API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/api/v1/session/login": {
            "post": {
                "tags": ["Session"],
                "summary": "Login",
                "description": "Open a session for a user from the fixed directory, matched case-insensitively by display name",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "description": "Directory user",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "display_name": {
                                    "type": "string",
                                    "example": "Ariana"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Session opened; response carries the session id"
                    },
                    "401": {
                        "description": "Unknown user"
                    }
                }
            }
        },
        "/api/v1/boards": {
            "get": {
                "tags": ["Boards"],
                "summary": "Board tree",
                "description": "Full board/folder/task tree of the session",
                "security": [{"SessionAuth": []}],
                "responses": {
                    "200": {
                        "description": "The tree"
                    }
                }
            },
            "post": {
                "tags": ["Boards"],
                "summary": "Create board",
                "description": "Append a board; name must be unique case-insensitively",
                "security": [{"SessionAuth": []}],
                "responses": {
                    "201": {
                        "description": "Board created"
                    },
                    "400": {
                        "description": "Empty or duplicate name"
                    }
                }
            }
        },
        "/api/v1/tasks/{id}": {
            "put": {
                "tags": ["Tasks"],
                "summary": "Edit task",
                "description": "Overwrite a task's fields, consuming one of its three edits",
                "security": [{"SessionAuth": []}],
                "responses": {
                    "200": {
                        "description": "Task updated"
                    },
                    "409": {
                        "description": "Edit limit reached"
                    }
                }
            }
        },
        "/api/v1/search": {
            "get": {
                "tags": ["Search"],
                "summary": "Search the tree",
                "description": "Case-insensitive substring filter with scope all/boards/folders/tasks; returns the filtered tree and forced-expansion sets",
                "security": [{"SessionAuth": []}],
                "responses": {
                    "200": {
                        "description": "Filtered tree"
                    }
                }
            }
        },
        "/api/v1/stream": {
            "get": {
                "tags": ["Stream"],
                "summary": "Live session stream",
                "description": "WebSocket: coalesced store-changed events, persistence warnings, countdown ticks and debounced live search",
                "security": [{"SessionAuth": []}],
                "responses": {
                    "101": {
                        "description": "Switching protocols"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "SessionAuth": {
            "type": "apiKey",
            "name": "X-Session-Id",
            "in": "header",
            "description": "Opaque session id issued by the login endpoint"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "TaskBoard API",
	Description:      "TaskBoard API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
