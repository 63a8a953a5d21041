// Package docs registers the OpenAPI description served at /swagger. It
// follows the swag annotations on the handlers; docs_test.go checks that
// every registered route is described.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "email": "support@example.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/chains/{chainId}/contracts/{name}": {
            "get": {
                "description": "Returns the address of a well-known contract on a registered chain",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "chains"
                ],
                "summary": "Resolve chain contract",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Chain ID",
                        "name": "chainId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Contract name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Fail if the contract was deployed after this block",
                        "name": "blockNumber",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Contract",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/middleware.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/typeddata.ContractResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Chain or contract not found",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/typed-data/hash": {
            "post": {
                "description": "Computes the EIP-712 digest, domain separator and struct hash",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "typed-data"
                ],
                "summary": "Hash typed data",
                "parameters": [
                    {
                        "description": "Typed data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/typeddata.TypedDataRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Digest",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/middleware.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/typeddata.HashResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid typed data",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Chain mismatch",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/typed-data/recover": {
            "post": {
                "description": "Recovers the address that produced the signature over the typed data",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "typed-data"
                ],
                "summary": "Recover typed data signer",
                "parameters": [
                    {
                        "description": "Typed data and signature",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/typeddata.RecoverRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Signer",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/middleware.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/typeddata.RecoverResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid typed data or signature",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Recovery failed",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/typed-data/validate": {
            "post": {
                "description": "Checks integer ranges, addresses and fixed byte lengths against the declared types",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "typed-data"
                ],
                "summary": "Validate typed data",
                "parameters": [
                    {
                        "description": "Typed data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/typeddata.TypedDataRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Valid",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/middleware.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/typeddata.ValidateResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid typed data",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Chain mismatch",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/typed-data/verifications": {
            "get": {
                "description": "Audit trail of verifications for a claimed signer, newest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "typed-data"
                ],
                "summary": "List verifications",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Claimed signer address",
                        "name": "address",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Maximum number of records",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Verifications",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/middleware.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/typeddata.ListVerificationsResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid address",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Audit trail disabled",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/typed-data/verify": {
            "post": {
                "description": "Checks that the claimed address signed the typed data. A mismatch returns valid=false.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "typed-data"
                ],
                "summary": "Verify typed data signature",
                "parameters": [
                    {
                        "description": "Typed data, signature and claimed signer",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/typeddata.VerifyRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Verification result",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/middleware.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/typeddata.VerifyResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid typed data or signature",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Signature already used",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Recovery failed or chain mismatch",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Replay store unavailable",
                        "schema": {
                            "$ref": "#/definitions/middleware.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Returns server health status",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.HealthResponse"
                        }
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "description": "Returns server readiness status including DB and Redis connectivity",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.ReadyResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/handler.ReadyResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "eip712.Domain": {
            "type": "object",
            "properties": {
                "chainId": {
                    "type": "integer",
                    "example": 1
                },
                "name": {
                    "type": "string",
                    "example": "Ether Mail"
                },
                "salt": {
                    "type": "string"
                },
                "verifyingContract": {
                    "type": "string",
                    "example": "0xCcCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC"
                },
                "version": {
                    "type": "string",
                    "example": "1"
                }
            }
        },
        "eip712.Field": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                }
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "example": "ok"
                }
            }
        },
        "handler.ReadyResponse": {
            "type": "object",
            "properties": {
                "db": {
                    "type": "string",
                    "example": "ok"
                },
                "redis": {
                    "type": "string",
                    "example": "disabled"
                },
                "status": {
                    "type": "string",
                    "example": "ok"
                }
            }
        },
        "middleware.ErrorBody": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "details": {
                    "type": "object",
                    "additionalProperties": {}
                },
                "message": {
                    "type": "string"
                },
                "request_id": {
                    "type": "string"
                }
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "$ref": "#/definitions/middleware.ErrorBody"
                }
            }
        },
        "middleware.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {}
            }
        },
        "typeddata.ContractResponse": {
            "type": "object",
            "properties": {
                "address": {
                    "type": "string",
                    "example": "0xcA11bde05977b3631167028862bE2a173976CA11"
                },
                "blockCreated": {
                    "type": "integer",
                    "example": 14353601
                },
                "chainId": {
                    "type": "integer",
                    "example": 1
                },
                "chainName": {
                    "type": "string",
                    "example": "Ethereum"
                },
                "contract": {
                    "type": "string",
                    "example": "multicall3"
                }
            }
        },
        "typeddata.HashResponse": {
            "type": "object",
            "properties": {
                "digest": {
                    "type": "string",
                    "example": "0xbe609aee343fb3c4b28e1df9e632fca64fcfaede20f02e86244efddf30957bd2"
                },
                "domainSeparator": {
                    "type": "string",
                    "example": "0xf2cee375fa42b42143804025fc449deafd50cc031ca257e0b194a650a912090f"
                },
                "structHash": {
                    "type": "string",
                    "example": "0xc52c0ee5d84264471806290a3f2c4cecfc5490626bf912d01f240d7a274b371e"
                },
                "typeString": {
                    "type": "string",
                    "example": "Mail(Person from,Person to,string contents)Person(string name,address wallet)"
                }
            }
        },
        "typeddata.ListVerificationsResponse": {
            "type": "object",
            "properties": {
                "total": {
                    "type": "integer"
                },
                "verifications": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/typeddata.VerificationResponse"
                    }
                }
            }
        },
        "typeddata.RecoverRequest": {
            "type": "object",
            "required": [
                "primaryType",
                "signature",
                "types"
            ],
            "properties": {
                "blockNumber": {
                    "type": "integer",
                    "example": 19000000
                },
                "contract": {
                    "type": "string",
                    "example": "multicall3"
                },
                "domain": {
                    "$ref": "#/definitions/eip712.Domain"
                },
                "message": {
                    "type": "object",
                    "additionalProperties": {}
                },
                "primaryType": {
                    "type": "string",
                    "example": "Mail"
                },
                "signature": {
                    "type": "string",
                    "example": "0x4355c47d...1c"
                },
                "types": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "array",
                        "items": {
                            "$ref": "#/definitions/eip712.Field"
                        }
                    }
                }
            }
        },
        "typeddata.RecoverResponse": {
            "type": "object",
            "properties": {
                "address": {
                    "type": "string",
                    "example": "0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826"
                },
                "digest": {
                    "type": "string"
                }
            }
        },
        "typeddata.TypedDataRequest": {
            "type": "object",
            "required": [
                "primaryType",
                "types"
            ],
            "properties": {
                "blockNumber": {
                    "type": "integer",
                    "example": 19000000
                },
                "contract": {
                    "type": "string",
                    "example": "multicall3"
                },
                "domain": {
                    "$ref": "#/definitions/eip712.Domain"
                },
                "message": {
                    "type": "object",
                    "additionalProperties": {}
                },
                "primaryType": {
                    "type": "string",
                    "example": "Mail"
                },
                "types": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "array",
                        "items": {
                            "$ref": "#/definitions/eip712.Field"
                        }
                    }
                }
            }
        },
        "typeddata.ValidateResponse": {
            "type": "object",
            "properties": {
                "valid": {
                    "type": "boolean",
                    "example": true
                }
            }
        },
        "typeddata.VerificationResponse": {
            "type": "object",
            "properties": {
                "address": {
                    "type": "string"
                },
                "chainId": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "string"
                },
                "digest": {
                    "type": "string"
                },
                "id": {
                    "type": "string",
                    "example": "550e8400-e29b-41d4-a716-446655440000"
                },
                "primaryType": {
                    "type": "string"
                },
                "recovered": {
                    "type": "string"
                },
                "valid": {
                    "type": "boolean"
                },
                "verifyingContract": {
                    "type": "string"
                }
            }
        },
        "typeddata.VerifyRequest": {
            "type": "object",
            "required": [
                "address",
                "primaryType",
                "signature",
                "types"
            ],
            "properties": {
                "address": {
                    "type": "string",
                    "example": "0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826"
                },
                "blockNumber": {
                    "type": "integer",
                    "example": 19000000
                },
                "consume": {
                    "type": "boolean",
                    "example": false
                },
                "contract": {
                    "type": "string",
                    "example": "multicall3"
                },
                "domain": {
                    "$ref": "#/definitions/eip712.Domain"
                },
                "message": {
                    "type": "object",
                    "additionalProperties": {}
                },
                "primaryType": {
                    "type": "string",
                    "example": "Mail"
                },
                "signature": {
                    "type": "string",
                    "example": "0x4355c47d...1c"
                },
                "types": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "array",
                        "items": {
                            "$ref": "#/definitions/eip712.Field"
                        }
                    }
                }
            }
        },
        "typeddata.VerifyResponse": {
            "type": "object",
            "properties": {
                "address": {
                    "type": "string",
                    "example": "0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826"
                },
                "consumed": {
                    "type": "boolean",
                    "example": false
                },
                "digest": {
                    "type": "string"
                },
                "recovered": {
                    "type": "string",
                    "example": "0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826"
                },
                "valid": {
                    "type": "boolean",
                    "example": true
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Typed Data Verifier API",
	Description:      "EIP-712 typed data validation, hashing, signer recovery and verification",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
