// Package docs registra en swag la especificación OpenAPI servida en /swagger.
// Se mantiene a mano junto con los bloques godoc de los handlers; para
// regenerarla: swag init -g cmd/api/main.go -o docs
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
        "/health": {
            "get": {
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Liveness",
                "responses": {
                    "200": {
                        "description": "ok",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/pets": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pets"
                ],
                "summary": "Registrar mascota",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "description": "payload",
                        "name": "payload",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/pets.createPetRequest"
                        }
                    },
                    {
                        "type": "file",
                        "description": "Foto de la mascota",
                        "name": "image",
                        "in": "formData"
                    },
                    {
                        "type": "file",
                        "description": "Informe médico",
                        "name": "medical_report",
                        "in": "formData"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pets.petResponse"
                        }
                    },
                    "400": {
                        "description": "invalid input",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "consumes": [
                    "application/json",
                    "multipart/form-data"
                ]
            },
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pets"
                ],
                "summary": "Listar mis mascotas",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "dog o cat",
                        "name": "species",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/pets.petResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "species must be dog or cat",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/pets/{petID}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pets"
                ],
                "summary": "Ver mascota",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la mascota",
                        "name": "petID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pets.petResponse"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "pet not found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/pets/{petID}/scans": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "history"
                ],
                "summary": "Historial de escaneos de una mascota",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la mascota",
                        "name": "petID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "CSV de tipos (emotion,health)",
                        "name": "kind",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Fecha/hora mínima (RFC3339)",
                        "name": "from",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Fecha/hora máxima (RFC3339)",
                        "name": "to",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Máximo a devolver (1-200)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/history.scanResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "invalid filter",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "pet not found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/sessions": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sessions"
                ],
                "summary": "Abrir sesión de escaneo",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/scans.sessionResponse"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sessions"
                ],
                "summary": "Estado de la sesión",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/scans.sessionResponse"
                        }
                    },
                    "404": {
                        "description": "session not found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sessions"
                ],
                "summary": "Cerrar sesión de escaneo",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "session not found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/captures": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sessions"
                ],
                "summary": "Iniciar captura",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "payload",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/scans.captureRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/scans.captureResponse"
                        }
                    },
                    "400": {
                        "description": "kind must be image or audio",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "403": {
                        "description": "capture denied",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "409": {
                        "description": "capture intent already pending",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/sessions/{sessionID}/identity/answer": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "identity"
                ],
                "summary": "Responder si la mascota ya está registrada",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "payload",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/scans.answerRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/scans.flowResponse"
                        }
                    },
                    "409": {
                        "description": "identity step not active",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/identity/species": {
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "identity"
                ],
                "summary": "Cambiar pestaña de especie",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "payload",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/scans.speciesRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/scans.flowResponse"
                        }
                    },
                    "409": {
                        "description": "identity step not active",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/identity/pets": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "identity"
                ],
                "summary": "Mascotas de la pestaña actual",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/scans.petRef"
                            }
                        }
                    },
                    "409": {
                        "description": "identity step not active",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/identity/choice": {
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "identity"
                ],
                "summary": "Elegir mascota",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "payload",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/scans.choiceRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/scans.choiceResponse"
                        }
                    },
                    "409": {
                        "description": "identity step not active",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/identity/confirm": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "identity"
                ],
                "summary": "Confirmar mascota",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/scans.confirmResponse"
                        }
                    },
                    "403": {
                        "description": "capture denied",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "409": {
                        "description": "identity step not active",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/identity/cancel": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "identity"
                ],
                "summary": "Cancelar flujo de identidad",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/scans.flowResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/active-pet": {
            "put": {
                "description": "Cambia la mascota a la que se atribuyen los próximos escaneos. No se permite con una captura pendiente de identidad.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "identity"
                ],
                "summary": "Cambiar mascota activa",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Mascota",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/scans.choiceRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/scans.sessionResponse"
                        }
                    },
                    "400": {
                        "description": "invalid json",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "pet not found",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "409": {
                        "description": "capture intent pending",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/emotion": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "scans"
                ],
                "summary": "Escaneo de emoción",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "file",
                        "description": "Foto de la mascota",
                        "name": "image",
                        "in": "formData"
                    },
                    {
                        "type": "file",
                        "description": "Audio de la mascota",
                        "name": "audio",
                        "in": "formData"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/scans.resultResponse"
                        }
                    },
                    "400": {
                        "description": "invalid media",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "409": {
                        "description": "pet identity not resolved",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "415": {
                        "description": "unsupported type",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "502": {
                        "description": "endpoint unavailable",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "consumes": [
                    "multipart/form-data"
                ]
            }
        },
        "/sessions/{sessionID}/health": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "scans"
                ],
                "summary": "Escaneo de salud (piel)",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "file",
                        "description": "Foto de la lesión",
                        "name": "image",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/scans.resultResponse"
                        }
                    },
                    "400": {
                        "description": "invalid media",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "409": {
                        "description": "pet identity not resolved",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "415": {
                        "description": "unsupported type",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "502": {
                        "description": "endpoint unavailable",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "consumes": [
                    "multipart/form-data"
                ]
            }
        },
        "/sessions/{sessionID}/recording": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "recording"
                ],
                "summary": "Empezar a grabar",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "payload",
                        "name": "payload",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/scans.recordingRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "capture denied",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "409": {
                        "description": "recording already active",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "recording"
                ],
                "summary": "Agregar audio a la grabación",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "integer"
                            }
                        }
                    },
                    "400": {
                        "description": "invalid media",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "consumes": [
                    "application/octet-stream"
                ]
            }
        },
        "/sessions/{sessionID}/recording/stop": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "recording"
                ],
                "summary": "Terminar grabación y escanear",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/scans.resultResponse"
                        }
                    },
                    "400": {
                        "description": "invalid media",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "502": {
                        "description": "endpoint unavailable",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/result": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "scans"
                ],
                "summary": "Último resultado",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/scans.resultsResponse"
                        }
                    }
                }
            }
        },
        "/sessions/{sessionID}/preview": {
            "get": {
                "produces": [
                    "application/octet-stream"
                ],
                "tags": [
                    "scans"
                ],
                "summary": "Vista previa de la última captura",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "ID de la sesión",
                        "name": "sessionID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "no preview",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/reports": {
            "post": {
                "produces": [
                    "application/pdf"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Descargar reporte",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Please analyze image or audio first",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "502": {
                        "description": "report generation failed",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/reports/latest": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Último payload de reporte",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/reports.Payload"
                        }
                    },
                    "404": {
                        "description": "Please analyze image or audio first",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/vets/nearby": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "vets"
                ],
                "summary": "Veterinarias cercanas",
                "parameters": [
                    {
                        "type": "number",
                        "description": "Latitud",
                        "name": "lat",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "number",
                        "description": "Longitud",
                        "name": "lng",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "400": {
                        "description": "lat and lng are required",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "pets.createPetRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "species": {
                    "type": "string",
                    "enum": [
                        "dog",
                        "cat"
                    ]
                },
                "breed": {
                    "type": "string"
                },
                "sex": {
                    "type": "string",
                    "enum": [
                        "male",
                        "female",
                        "unknown"
                    ]
                },
                "age": {
                    "type": "string"
                },
                "weight": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                }
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "owner_user_id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "species": {
                    "type": "string"
                },
                "breed": {
                    "type": "string"
                },
                "sex": {
                    "type": "string"
                },
                "age": {
                    "type": "string"
                },
                "weight": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "image_url": {
                    "type": "string"
                },
                "medical_report_url": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "history.scanResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "pet_id": {
                    "type": "string"
                },
                "kind": {
                    "type": "string"
                },
                "media_kind": {
                    "type": "string"
                },
                "endpoint": {
                    "type": "string"
                },
                "label": {
                    "type": "string"
                },
                "confidence": {
                    "type": "number"
                },
                "advice": {
                    "type": "string"
                },
                "escalated": {
                    "type": "boolean"
                },
                "scanned_at": {
                    "type": "string"
                }
            }
        },
        "scans.flowResponse": {
            "type": "object",
            "properties": {
                "state": {
                    "type": "string",
                    "enum": [
                        "idle",
                        "ask_registered",
                        "select_existing",
                        "create_pet_prompt"
                    ]
                },
                "pending_kind": {
                    "type": "string"
                },
                "species_tab": {
                    "type": "string"
                },
                "chosen_pet_id": {
                    "type": "string"
                }
            }
        },
        "scans.petRef": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "species": {
                    "type": "string"
                },
                "breed": {
                    "type": "string"
                },
                "image_url": {
                    "type": "string"
                }
            }
        },
        "scans.resultResponse": {
            "type": "object",
            "properties": {
                "slot": {
                    "type": "string"
                },
                "label": {
                    "type": "string"
                },
                "confidence": {
                    "type": "integer"
                },
                "band": {
                    "type": "string"
                },
                "advice": {
                    "type": "string"
                },
                "important_actions": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "error": {
                    "type": "string"
                },
                "sos_sent": {
                    "type": "boolean"
                },
                "endpoint": {
                    "type": "string"
                },
                "pet_id": {
                    "type": "string"
                },
                "analyzing": {
                    "type": "boolean"
                }
            }
        },
        "scans.resultsResponse": {
            "type": "object",
            "properties": {
                "emotion": {
                    "$ref": "#/definitions/scans.resultResponse"
                },
                "health": {
                    "$ref": "#/definitions/scans.resultResponse"
                }
            }
        },
        "scans.sessionResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "flow": {
                    "$ref": "#/definitions/scans.flowResponse"
                },
                "active_pet": {
                    "$ref": "#/definitions/scans.petRef"
                },
                "species": {
                    "type": "string"
                },
                "awaiting": {
                    "type": "string"
                },
                "recording": {
                    "type": "boolean"
                },
                "recording_bytes": {
                    "type": "integer"
                },
                "has_preview": {
                    "type": "boolean"
                },
                "emotion": {
                    "$ref": "#/definitions/scans.resultResponse"
                },
                "health": {
                    "$ref": "#/definitions/scans.resultResponse"
                }
            }
        },
        "scans.captureRequest": {
            "type": "object",
            "properties": {
                "kind": {
                    "type": "string",
                    "enum": [
                        "image",
                        "audio"
                    ]
                }
            }
        },
        "scans.captureResponse": {
            "type": "object",
            "properties": {
                "gated": {
                    "type": "boolean"
                },
                "awaiting": {
                    "type": "string"
                },
                "recording": {
                    "type": "boolean"
                },
                "session": {
                    "$ref": "#/definitions/scans.sessionResponse"
                }
            }
        },
        "scans.answerRequest": {
            "type": "object",
            "properties": {
                "registered": {
                    "type": "boolean"
                }
            }
        },
        "scans.speciesRequest": {
            "type": "object",
            "properties": {
                "species": {
                    "type": "string",
                    "enum": [
                        "dog",
                        "cat"
                    ]
                }
            }
        },
        "scans.choiceRequest": {
            "type": "object",
            "properties": {
                "pet_id": {
                    "type": "string"
                }
            }
        },
        "scans.choiceResponse": {
            "type": "object",
            "properties": {
                "selected": {
                    "type": "boolean"
                },
                "flow": {
                    "$ref": "#/definitions/scans.flowResponse"
                }
            }
        },
        "scans.confirmResponse": {
            "type": "object",
            "properties": {
                "confirmed": {
                    "type": "boolean"
                },
                "resumed": {
                    "type": "string"
                },
                "session": {
                    "$ref": "#/definitions/scans.sessionResponse"
                }
            }
        },
        "scans.recordingRequest": {
            "type": "object",
            "properties": {
                "mime": {
                    "type": "string"
                }
            }
        },
        "reports.Payload": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string"
                },
                "media_kind": {
                    "type": "string"
                },
                "endpoint": {
                    "type": "string"
                },
                "pet": {
                    "type": "object",
                    "properties": {
                        "id": {
                            "type": "string"
                        },
                        "name": {
                            "type": "string"
                        },
                        "species": {
                            "type": "string"
                        }
                    }
                },
                "emotion": {
                    "type": "string"
                },
                "disease": {
                    "type": "string"
                },
                "confidence": {
                    "type": "integer"
                },
                "advice": {
                    "type": "string"
                },
                "important_actions": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "sos_sent": {
                    "type": "boolean"
                },
                "created_at": {
                    "type": "string"
                }
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
	Title:            "PawSense API",
	Description:      "Escaneo de emoción y salud de mascotas con atribución a la mascota activa.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
