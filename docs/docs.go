// Package docs is generated by swag from the controller annotations.
package docs

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
        "/cities": {
            "get": {
                "description": "Paginated cities ordered by name, filtered by a case-insensitive name prefix and favorite flag",
                "produces": ["application/json"],
                "tags": ["cities"],
                "summary": "List cities",
                "parameters": [
                    {"type": "string", "description": "Name prefix", "name": "query", "in": "query"},
                    {"type": "boolean", "default": false, "description": "Only favorite cities", "name": "onlyFavorites", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size (1-100)", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Page-entity_City"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Clears the local store, optionally reloading it from the remote list",
                "produces": ["application/json"],
                "tags": ["cities"],
                "summary": "Delete every city",
                "parameters": [
                    {"type": "boolean", "default": false, "description": "Reload from the remote list", "name": "reload", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.DeletedResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/cities/count": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cities"],
                "summary": "Count stored cities",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.CountResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/cities/preload": {
            "post": {
                "description": "Enqueues a preload. Without force it only runs when the store is empty; with force the store is replaced.",
                "produces": ["application/json"],
                "tags": ["cities"],
                "summary": "Preload the remote city list",
                "parameters": [
                    {"type": "boolean", "default": false, "description": "Replace existing cities", "name": "force", "in": "query"}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/model.MessageResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/cities/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cities"],
                "summary": "Get city by id",
                "parameters": [
                    {"type": "integer", "description": "City id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.City"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/cities/{id}/favorite": {
            "patch": {
                "description": "Flips the favorite flag of a city and returns the updated city",
                "produces": ["application/json"],
                "tags": ["cities"],
                "summary": "Toggle favorite flag",
                "parameters": [
                    {"type": "integer", "description": "City id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.City"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/cities/{id}/weather": {
            "get": {
                "produces": ["application/json"],
                "tags": ["weather"],
                "summary": "City detail with current weather",
                "parameters": [
                    {"type": "integer", "description": "City id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.CityDetail"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports database, queue and cache status",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/model.HealthResponse"}}
                }
            }
        },
        "/weather": {
            "get": {
                "produces": ["application/json"],
                "tags": ["weather"],
                "summary": "Current weather at a coordinate",
                "parameters": [
                    {"type": "number", "description": "Latitude (-90 to 90)", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Longitude (-180 to 180)", "name": "lon", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.Weather"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "entity.City": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "country": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "isFavorite": {"type": "boolean"}
            }
        },
        "entity.Weather": {
            "type": "object",
            "properties": {
                "coord": {"type": "object", "properties": {"lat": {"type": "number"}, "lon": {"type": "number"}}},
                "weather": {"type": "array", "items": {"type": "object", "properties": {
                    "id": {"type": "integer"}, "main": {"type": "string"}, "description": {"type": "string"}, "icon": {"type": "string"}}}},
                "base": {"type": "string"},
                "main": {"type": "object", "properties": {
                    "temp": {"type": "number"}, "feelsLike": {"type": "number"}, "tempMin": {"type": "number"}, "tempMax": {"type": "number"},
                    "pressure": {"type": "integer"}, "humidity": {"type": "integer"}, "seaLevel": {"type": "integer"}, "groundLevel": {"type": "integer"}}},
                "visibility": {"type": "integer"},
                "wind": {"type": "object", "properties": {"speed": {"type": "number"}, "deg": {"type": "integer"}, "gust": {"type": "number"}}},
                "clouds": {"type": "object", "properties": {"all": {"type": "integer"}}},
                "dt": {"type": "integer"},
                "sys": {"type": "object", "properties": {"country": {"type": "string"}, "sunrise": {"type": "integer"}, "sunset": {"type": "integer"}}},
                "timezone": {"type": "integer"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "cod": {"type": "integer"}
            }
        },
        "model.CityDetail": {
            "type": "object",
            "properties": {
                "city": {"$ref": "#/definitions/entity.City"},
                "weather": {"$ref": "#/definitions/entity.Weather"}
            }
        },
        "model.ComponentHealthStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "model.CountResponse": {
            "type": "object",
            "properties": {"count": {"type": "integer"}}
        },
        "model.DeletedResponse": {
            "type": "object",
            "properties": {"deleted": {"type": "integer"}}
        },
        "model.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "model.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "database": {"$ref": "#/definitions/model.ComponentHealthStatus"},
                "queue": {"$ref": "#/definitions/model.ComponentHealthStatus"},
                "cache": {"$ref": "#/definitions/model.ComponentHealthStatus"}
            }
        },
        "model.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "requestId": {"type": "string"}}
        },
        "model.Page-entity_City": {
            "type": "object",
            "properties": {
                "content": {"type": "array", "items": {"$ref": "#/definitions/entity.City"}},
                "number": {"type": "integer"},
                "size": {"type": "integer"},
                "totalElements": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "numberOfElements": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/city-api",
	Schemes:          []string{},
	Title:            "city-api",
	Description:      "Cities with favorites, remote preload and current weather lookup.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
