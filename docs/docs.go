// Package docs registers the Swagger document served under /swagger/.
// Keep it in sync with the handler annotations in internal/handler/http/news.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/news": {
            "post": {
                "description": "Asks the configured LLM provider for up to five recent stories about the topic.\nUnusable provider output is replaced by a fixed two-item fallback list.\nEach item is projected onto title, summary, source and date; any other fields the provider adds are dropped.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["news"],
                "summary": "Fetch news for a topic",
                "parameters": [
                    {
                        "description": "Topic and optional page (1-based, defaults to 1)",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/news.NewsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/entity.NewsItem"
                            }
                        }
                    },
                    "400": {
                        "description": "Missing or invalid topic",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "405": {
                        "description": "Method not allowed",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "413": {
                        "description": "Request body too large",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "500": {
                        "description": "Provider failure",
                        "schema": {
                            "$ref": "#/definitions/news.ProviderFailureResponse"
                        }
                    }
                }
            }
        },
        "/api/search": {
            "post": {
                "description": "Sends the query verbatim to the web-search model and returns its text answer.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Free-form web search",
                "parameters": [
                    {
                        "description": "Search query",
                        "name": "request",
                        "in": "body",
                        "schema": {
                            "$ref": "#/definitions/news.SearchRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/news.SearchResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid search query",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "405": {
                        "description": "Method not allowed",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorBody"
                        }
                    },
                    "500": {
                        "description": "Search failed",
                        "schema": {
                            "$ref": "#/definitions/news.SearchErrorResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Provider configuration and circuit state",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.HealthResponse"
                        }
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "ready"},
                    "503": {"description": "provider circuit open"}
                }
            }
        },
        "/live": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "alive"}
                }
            }
        }
    },
    "definitions": {
        "entity.NewsItem": {
            "type": "object",
            "required": ["date", "source", "summary", "title"],
            "properties": {
                "date": {"type": "string", "example": "2025-05-01"},
                "source": {"type": "string", "example": "Reuters"},
                "summary": {"type": "string", "example": "A sodium-ion cell maker opened its first pilot line..."},
                "title": {"type": "string", "example": "New battery chemistry reaches pilot production"}
            }
        },
        "http.CheckStatus": {
            "type": "object",
            "properties": {
                "details": {"type": "object", "additionalProperties": true},
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "http.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/http.CheckStatus"
                    }
                },
                "status": {"type": "string", "example": "healthy"},
                "timestamp": {"type": "string", "example": "2025-05-01T09:30:00Z"},
                "version": {"type": "string", "example": "1.0.0"}
            }
        },
        "news.NewsRequest": {
            "type": "object",
            "required": ["topic"],
            "properties": {
                "page": {"type": "integer", "minimum": 1, "example": 1},
                "topic": {"type": "string", "maxLength": 500, "example": "renewable energy"}
            }
        },
        "news.ProviderFailureResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Failed to fetch news from provider."},
                "fallback": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/entity.NewsItem"
                    }
                }
            }
        },
        "news.SearchErrorResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string", "example": "llm provider openai-search: unexpected status 429"},
                "error": {"type": "string", "example": "Search failed"}
            }
        },
        "news.SearchRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string", "example": "positive news today"},
                "topic": {"type": "string"}
            }
        },
        "news.SearchResponse": {
            "type": "object",
            "properties": {
                "result": {"type": "string", "example": "Here are three uplifting stories from this week..."}
            }
        },
        "respond.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Missing or invalid \"topic\" in request body."}
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
	Title:            "NovaNews API",
	Description:      "Topic news summaries from an LLM provider, with a fixed fallback list whenever the provider output cannot be trusted.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
