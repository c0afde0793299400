// Package docs is generated by swag; regenerate with `swag init -g cmd/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/accounts/register": {
            "post": {
                "tags": ["Account"],
                "summary": "Register a new user account"
            }
        },
        "/accounts/login": {
            "post": {
                "tags": ["Account"],
                "summary": "Log in with email and password"
            }
        },
        "/accounts/verify-email": {
            "get": {
                "tags": ["Account"],
                "summary": "Verify an email address"
            }
        },
        "/accounts/password-reset/request": {
            "post": {
                "tags": ["Account"],
                "summary": "Request a password reset email"
            }
        },
        "/accounts/password-reset": {
            "post": {
                "tags": ["Account"],
                "summary": "Reset the password with a reset token"
            }
        },
        "/accounts/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Account"],
                "summary": "Get the authenticated user's profile"
            }
        },
        "/invites": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Invites"],
                "summary": "Invite a new user to the platform"
            }
        },
        "/invites/accept": {
            "post": {
                "tags": ["Invites"],
                "summary": "Accept an individual invite"
            }
        },
        "/questionnaires": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Questionnaires"],
                "summary": "List published questionnaires"
            }
        },
        "/questionnaires/pending": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Questionnaires"],
                "summary": "List active company questionnaires the user has not answered yet"
            }
        },
        "/questionnaires/mandatory": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Questionnaires"],
                "summary": "List published mandatory questionnaires the user has not answered"
            }
        },
        "/questionnaires/{questionnaire_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Questionnaires"],
                "summary": "Get a questionnaire with its questions and choices"
            }
        },
        "/questionnaires/{questionnaire_id}/tips": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Questionnaires"],
                "summary": "List tips for a questionnaire at a given risk level"
            }
        },
        "/questionnaires/{questionnaire_id}/responses": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Questionnaires"],
                "summary": "Submit answers for a questionnaire"
            }
        },
        "/responses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Questionnaires"],
                "summary": "List the authenticated user's past submissions"
            }
        },
        "/responses/{response_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Questionnaires"],
                "summary": "Get a submission with its per-question answers"
            }
        },
        "/companies": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Companies"],
                "summary": "Register a company"
            }
        },
        "/companies/{company_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Companies"],
                "summary": "Get a company"
            }
        },
        "/companies/{company_id}/employees": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Companies"],
                "summary": "List a company's employees"
            }
        },
        "/companies/{company_id}/invites": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Company Invites"],
                "summary": "List a company's invites"
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Company Invites"],
                "summary": "Invite a user to join a company"
            }
        },
        "/company-invites/accept": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Company Invites"],
                "summary": "Accept a company invite"
            }
        },
        "/company-invites/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Company Invites"],
                "summary": "Cancel a company invite"
            }
        },
        "/companies/{company_id}/questionnaires": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Company Questionnaires"],
                "summary": "List a company's attached questionnaires"
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Company Questionnaires"],
                "summary": "Attach a questionnaire to a company"
            }
        },
        "/companies/{company_id}/questionnaires/{questionnaire_id}/fill-rate": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Companies"],
                "summary": "Questionnaire fill rate for a company"
            }
        },
        "/company-questionnaires/{company_questionnaire_id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["Company Questionnaires"],
                "summary": "Toggle a company questionnaire's active flag"
            }
        },
        "/company-questionnaires/{company_questionnaire_id}/rules": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Company Questionnaires"],
                "summary": "List a company questionnaire's notification rules"
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Company Questionnaires"],
                "summary": "Create a recurring notification rule"
            }
        },
        "/rules/{rule_id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Company Questionnaires"],
                "summary": "Delete a notification rule"
            }
        },
        "/admin/questionnaires": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "(Admin) Create a questionnaire with questions and choices"
            }
        },
        "/admin/questionnaires/{questionnaire_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "(Admin) Get a questionnaire, including unpublished and inactive"
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "(Admin) Soft delete a questionnaire"
            }
        },
        "/admin/questionnaires/{questionnaire_id}/publish": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "(Admin) Publish a questionnaire"
            }
        },
        "/admin/questionnaires/{questionnaire_id}/tips": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "(Admin) Add a tip to a questionnaire"
            }
        },
        "/admin/companies": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "(Admin) List all companies"
            }
        },
        "/admin/companies/count": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "(Admin) Count registered companies"
            }
        },
        "/admin/companies/{company_id}/verify": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "(Admin) Mark a company verified"
            }
        },
        "/admin/companies/{company_id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "(Admin) Soft delete a company"
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "WellCheck API",
	Description:      "Multi-tenant workplace wellbeing platform: companies invite employees, attach questionnaires and schedule recurring reminders; submissions are scored into risk levels.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
