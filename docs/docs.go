// Package docs registra a especificação OpenAPI da API posstock no swag.
// Mantido a partir das anotações dos handlers (swag init -g cmd/main.go).
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
        "/v1/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Registra um novo operador",
                "parameters": [
                    {"description": "Credenciais de registro (email e senha)", "name": "registration", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.UserRegistration"}}
                ],
                "responses": {
                    "201": {"description": "Usuário criado com sucesso", "schema": {"$ref": "#/definitions/domain.User"}},
                    "400": {"description": "Payload inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "409": {"description": "Email já cadastrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/v1/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Autentica um operador e retorna um JWT",
                "parameters": [
                    {"description": "Credenciais do usuário", "name": "login", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token JWT emitido", "schema": {"$ref": "#/definitions/domain.LoginResponse"}},
                    "401": {"description": "Credenciais inválidas", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/v1/products": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Lista produtos",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "name": "name", "in": "query"},
                    {"type": "string", "name": "sku", "in": "query"},
                    {"type": "boolean", "name": "is_active", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Product"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Cadastra um produto",
                "parameters": [
                    {"description": "Dados do produto", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ProductInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "409": {"description": "SKU já cadastrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "422": {"description": "Embalagem inválida", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/v1/products/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Busca um produto",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Product"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Atualiza um produto",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "Dados do produto com expected_version", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ProductInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Product"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "Desativa um produto",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/v1/products/{id}/pricing": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Margens e desconto da caixa",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.PricingView"}},
                    "422": {"description": "Embalagem inválida", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/v1/products/{id}/supply": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Dias de cobertura e sugestão de reposição",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SupplyView"}}
                }
            }
        },
        "/v1/products/{id}/stock/preview": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["stock"],
                "summary": "Pré-visualiza um ajuste de estoque",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "Ajuste digitado pelo operador", "name": "adjustment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.StockAdjustmentPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/reconcile.AdjustmentResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/v1/products/{id}/stock/adjustments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["stock"],
                "summary": "Histórico de ajustes",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.StockAdjustment"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["stock"],
                "summary": "Envia um ajuste de estoque",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "Ajuste com a versão esperada do produto", "name": "adjustment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.StockAdjustmentPayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.AdjustmentOutcome"}},
                    "409": {"description": "Versão desatualizada", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "422": {"description": "Ajuste rejeitado; category traz o código", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 422},
                "category": {"type": "string", "example": "NEGATIVE_RESULTING_STOCK"},
                "message": {"type": "string"}
            }
        },
        "domain.UserRegistration": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 8, "maxLength": 72}}
        },
        "domain.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "domain.LoginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "manager", "cashier"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "sku": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "case_size": {"type": "integer"},
                "pack_size": {"type": "integer"},
                "selling_price": {"type": "string", "example": "2.50"},
                "purchase_price": {"type": "string", "example": "1.50"},
                "case_selling_price": {"type": "string"},
                "case_purchase_price": {"type": "string"},
                "quantity": {"type": "integer"},
                "version": {"type": "integer"},
                "is_active": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.ProductInput": {
            "type": "object",
            "required": ["sku", "name"],
            "properties": {
                "sku": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "case_size": {"type": "integer"},
                "pack_size": {"type": "integer"},
                "selling_price": {"type": "string"},
                "purchase_price": {"type": "string"},
                "case_selling_price": {"type": "string"},
                "case_purchase_price": {"type": "string"},
                "initial_quantity": {"type": "integer"},
                "expected_version": {"type": "integer"}
            }
        },
        "reconcile.Margin": {
            "type": "object",
            "properties": {"profit": {"type": "string"}, "margin_percent": {"type": "string"}}
        },
        "domain.PricingView": {
            "type": "object",
            "properties": {
                "product_id": {"type": "string"},
                "units_per_case": {"type": "integer"},
                "unit_margin": {"$ref": "#/definitions/reconcile.Margin"},
                "case_selling_price": {"type": "string"},
                "case_purchase_price": {"type": "string"},
                "case_margin": {"$ref": "#/definitions/reconcile.Margin"},
                "case_discount_percent": {"type": "string"},
                "pricing_anomaly": {"type": "boolean"}
            }
        },
        "domain.SupplyView": {
            "type": "object",
            "properties": {
                "product_id": {"type": "string"},
                "quantity": {"type": "integer"},
                "avg_daily_sales": {"type": "string"},
                "window_days": {"type": "integer"},
                "days_of_supply": {"type": "integer"},
                "reorder_threshold_days": {"type": "integer"},
                "reorder_suggested": {"type": "boolean"}
            }
        },
        "domain.StockAdjustmentPayload": {
            "type": "object",
            "required": ["mode", "input_unit", "raw_value"],
            "properties": {
                "mode": {"type": "string", "enum": ["delta", "absolute"]},
                "input_unit": {"type": "string", "enum": ["unit", "case"]},
                "raw_value": {"type": "integer", "minimum": -2147483647, "maximum": 2147483647},
                "reason_code": {"type": "string", "enum": ["purchase_order", "return", "damage", "loss", "count", "correction"]},
                "notes": {"type": "string"},
                "expected_version": {"type": "integer", "minimum": 1, "description": "Obrigatório no envio do ajuste"}
            }
        },
        "reconcile.AdjustmentResult": {
            "type": "object",
            "properties": {
                "normalized_delta": {"type": "integer"},
                "new_quantity": {"type": "integer"},
                "valid": {"type": "boolean"},
                "rejection_reason": {"type": "string", "enum": ["INVALID_PACKAGING_CONFIG", "NEGATIVE_RESULTING_STOCK", "NEGATIVE_TARGET", "NO_OP_ADJUSTMENT", "MISSING_REASON", "INVALID_INPUT"]}
            }
        },
        "domain.StockAdjustment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "product_id": {"type": "string"},
                "reason_code": {"type": "string"},
                "quantity_delta": {"type": "integer"},
                "quantity_before": {"type": "integer"},
                "quantity_after": {"type": "integer"},
                "mode": {"type": "string"},
                "input_unit": {"type": "string"},
                "raw_value": {"type": "integer"},
                "notes": {"type": "string"},
                "actor_id": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "domain.AdjustmentOutcome": {
            "type": "object",
            "properties": {
                "adjustment": {"$ref": "#/definitions/domain.StockAdjustment"},
                "product": {"$ref": "#/definitions/domain.Product"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo contém as informações exportadas da especificação.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "posstock API",
	Description:      "Back-office de estoque do PDV: ajustes por unidade ou caixa, margens e cobertura de estoque.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
