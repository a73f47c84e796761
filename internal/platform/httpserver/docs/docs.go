// Package docs registers the API description served at /swagger/doc.json.
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
        "/api/ledger/v1/records": {
            "post": {
                "tags": ["ledger"],
                "summary": "Append one forensic audit record",
                "responses": {"201": {"description": "Created"}}
            },
            "get": {
                "tags": ["ledger"],
                "summary": "List audit records in sequence order",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/ledger/v1/seals": {
            "post": {
                "tags": ["ledger"],
                "summary": "Seal the unsealed ledger segment into a certificate",
                "responses": {"200": {"description": "OK"}}
            },
            "get": {
                "tags": ["ledger"],
                "summary": "List attestation certificates",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/authority/v1/check": {
            "post": {
                "tags": ["authority"],
                "summary": "Evaluate one actor/role authority decision",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/authority/v1/lockdown/trigger": {
            "post": {
                "tags": ["authority"],
                "summary": "Engage the global deny-all lockdown",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/breaker/v1/observe": {
            "post": {
                "tags": ["breaker"],
                "summary": "Report one unit of value flow to the circuit breaker",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/threats/v1/log": {
            "post": {
                "tags": ["threats"],
                "summary": "Log one hostile sighting",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/sentinel/v1/evaluate": {
            "post": {
                "tags": ["sentinel"],
                "summary": "Present one record to the auto-pause gate",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/upgrades/v1/validate": {
            "post": {
                "tags": ["upgrades"],
                "summary": "Validate a candidate upgrade against quorum and rate limit",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/compensation/v1/proposals": {
            "post": {
                "tags": ["compensation"],
                "summary": "Open one restitution proposal",
                "responses": {"201": {"description": "Created"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Warden API",
	Description:      "Safety and authorization coordination core.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
