// Package docs регистрирует Swagger-описание HTTP API для /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Список активных пользователей",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.UserResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Создать пользователя",
                "parameters": [
                    {"description": "Данные нового пользователя", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.UserResponse"}},
                    "400": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Email уже занят", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Получить пользователя",
                "parameters": [{"type": "string", "description": "ID пользователя", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UserResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Удалить пользователя",
                "description": "Мягкое удаление: пользователь становится неактивным.",
                "parameters": [{"type": "string", "description": "ID пользователя", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/users/{id}/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Пользователь с постами",
                "parameters": [{"type": "string", "description": "ID пользователя", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UserWithPosts"}},
                    "400": {"description": "Пустой ID", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/cart": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Cart"],
                "summary": "Содержимое корзины",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CartSummary"}}}
            },
            "delete": {
                "tags": ["Cart"],
                "summary": "Очистить корзину",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/cart/items": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Cart"],
                "summary": "Добавить позицию в корзину",
                "parameters": [
                    {"description": "Позиция", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.AddCartItemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.CartItem"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/cart/items/{id}": {
            "delete": {
                "tags": ["Cart"],
                "summary": "Удалить позицию из корзины",
                "parameters": [{"type": "string", "description": "ID позиции", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Проверка доступности",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        }
    },
    "definitions": {
        "models.CreateUserRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "models.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "createdAt": {"type": "string"},
                "isActive": {"type": "boolean"}
            }
        },
        "models.Post": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "models.UserWithPosts": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "createdAt": {"type": "string"},
                "isActive": {"type": "boolean"},
                "posts": {"type": "array", "items": {"$ref": "#/definitions/models.Post"}}
            }
        },
        "models.AddCartItemRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "price": {"type": "number", "minimum": 0}
            }
        },
        "models.CartItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "quantity": {"type": "integer"}
            }
        },
        "models.CartSummary": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.CartItem"}},
                "subtotal": {"type": "number"},
                "total": {"type": "number"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "Error"},
                "error": {"type": "string", "example": "invalid request body"}
            }
        }
    }
}`

// SwaggerInfo содержит метаданные API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Usercart API",
	Description:      "Управление пользователями и корзина покупок.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
