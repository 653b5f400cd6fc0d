// Package docs registers the OpenAPI description served by the swagger UI.
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
        "/get-event-details/{eventName}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Event detail with coordinators",
                "parameters": [
                    {"type": "string", "name": "eventName", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "event details"},
                    "404": {"description": "event not found"}
                }
            }
        },
        "/register-participant": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["registrations"],
                "summary": "Register a team for an event",
                "parameters": [
                    {"type": "string", "name": "event", "in": "formData", "required": true},
                    {"type": "string", "name": "team_name", "in": "formData", "required": true},
                    {"type": "string", "name": "team_lead_name", "in": "formData", "required": true},
                    {"type": "string", "name": "college_name", "in": "formData", "required": true},
                    {"type": "string", "name": "phone_number", "in": "formData", "required": true},
                    {"type": "string", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "name": "idea_description", "in": "formData"},
                    {"type": "file", "name": "idea_file", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "success with team_code"},
                    "400": {"description": "validation failure"},
                    "405": {"description": "method not allowed"},
                    "500": {"description": "storage or server failure"}
                }
            }
        },
        "/api/participants": {
            "get": {
                "produces": ["application/json"],
                "tags": ["registrations"],
                "summary": "All registrations, newest first",
                "parameters": [
                    {"type": "string", "name": "event", "in": "query"}
                ],
                "responses": {"200": {"description": "success, count, participants"}}
            }
        },
        "/api/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "All events with live registration counts",
                "responses": {"200": {"description": "success, count, events"}}
            }
        },
        "/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Obtain an admin token",
                "responses": {
                    "200": {"description": "success, token"},
                    "401": {"description": "bad credentials"}
                }
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "NexusOfThings Registration API",
	Description:      "Event listing and team registration API for the NexusOfThings fest.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
