// Package docs registra no swag o documento OpenAPI servido em /docs.
// Mantido à mão a partir das anotações dos handlers.
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Informações do serviço",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/system.RootResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/system.HealthResponse"}}
                }
            }
        },
        "/api/items": {
            "get": {
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Lista todos os itens",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Item"}}},
                    "500": {"description": "Erro interno do servidor", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "503": {"description": "Banco indisponível", "schema": {"$ref": "#/definitions/domain.UnavailableResponse"}}
                }
            },
            "post": {
                "description": "quantity assume 0 e lowStockThreshold assume 5 quando omitidos.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Cria um item",
                "parameters": [
                    {"description": "Dados do item", "name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ItemInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Item"}},
                    "400": {"description": "Payload inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "503": {"description": "Banco indisponível", "schema": {"$ref": "#/definitions/domain.UnavailableResponse"}}
                }
            }
        },
        "/api/items/low-stock": {
            "get": {
                "description": "Itens cuja quantity é menor ou igual ao lowStockThreshold.",
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Lista itens com estoque baixo",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Item"}}},
                    "500": {"description": "Erro interno do servidor", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "503": {"description": "Banco indisponível", "schema": {"$ref": "#/definitions/domain.UnavailableResponse"}}
                }
            }
        },
        "/api/items/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Obtém um item por ID",
                "parameters": [
                    {"type": "string", "description": "ID do item (ObjectID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Item"}},
                    "400": {"description": "ID inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "404": {"description": "Item não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "503": {"description": "Banco indisponível", "schema": {"$ref": "#/definitions/domain.UnavailableResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Atualiza um item",
                "parameters": [
                    {"type": "string", "description": "ID do item (ObjectID)", "name": "id", "in": "path", "required": true},
                    {"description": "Campos a alterar", "name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ItemInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Item"}},
                    "400": {"description": "Payload ou ID inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "404": {"description": "Item não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "503": {"description": "Banco indisponível", "schema": {"$ref": "#/definitions/domain.UnavailableResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Remove um item",
                "parameters": [
                    {"type": "string", "description": "ID do item (ObjectID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MessageResponse"}},
                    "400": {"description": "ID inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "404": {"description": "Item não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "503": {"description": "Banco indisponível", "schema": {"$ref": "#/definitions/domain.UnavailableResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ErrorResponse": {
            "description": "Estrutura padronizada para respostas de erro na API.",
            "type": "object",
            "properties": {
                "details": {"type": "array", "items": {"type": "string"}},
                "error": {"type": "string", "example": "Invalid item ID format"}
            }
        },
        "domain.Item": {
            "description": "Item de inventário persistido na coleção \"items\".",
            "type": "object",
            "properties": {
                "_id": {"type": "string", "example": "665f1c2e8b3e4a1d2c3b4a59"},
                "category": {"type": "string", "example": "Filters"},
                "createdAt": {"type": "string"},
                "lowStockThreshold": {"type": "integer", "example": 5},
                "name": {"type": "string", "example": "Oil Filter"},
                "quantity": {"type": "integer", "example": 15},
                "updatedAt": {"type": "string"},
                "vehicles": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.ItemInput": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "lowStockThreshold": {"type": "integer"},
                "name": {"type": "string"},
                "quantity": {"type": "integer"},
                "vehicles": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Item deleted successfully"}
            }
        },
        "domain.UnavailableResponse": {
            "type": "object",
            "properties": {
                "database": {"type": "string", "example": "disconnected"},
                "error": {"type": "string", "example": "Database unavailable"}
            }
        },
        "system.HealthResponse": {
            "type": "object",
            "properties": {
                "database": {"type": "string", "example": "connected"},
                "message": {"type": "string", "example": "OK"},
                "timestamp": {"type": "integer", "example": 1714564800000},
                "uptime": {"type": "number", "example": 12.5}
            }
        },
        "system.RootResponse": {
            "type": "object",
            "properties": {
                "endpoints": {"type": "array", "items": {"type": "string"}},
                "environment": {"type": "string", "example": "development"},
                "message": {"type": "string", "example": "Farm Inventory API"},
                "status": {"type": "string", "example": "ok"},
                "timestamp": {"type": "string", "example": "2024-05-01T12:00:00Z"}
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
	Title:            "Farm Inventory API",
	Description:      "API de inventário da fazenda com modo fallback quando o banco está fora.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
