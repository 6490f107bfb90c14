// Package docs registers the OpenAPI description served under /swagger.
// It is maintained by hand alongside the handlers.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create an account",
                "parameters": [{"description": "Account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.registerRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/http.userResponse"}}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "parameters": [{"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.loginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/http.loginResponse"}}, "401": {"description": "Unauthorized"}}
            }
        },
        "/habits": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "List habits with today's completion flag",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Habit"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["habits"],
                "summary": "Create a habit",
                "parameters": [{"description": "Habit", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.createHabitRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Habit"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/habits/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Edit a habit. Empty fields keep their value.",
                "parameters": [{"type": "string", "description": "Habit ID", "name": "id", "in": "path", "required": true}, {"description": "Changes", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.createHabitRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Habit"}}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Delete a habit and its history",
                "parameters": [{"type": "string", "description": "Habit ID", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/completions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["completions"],
                "summary": "Completion records in a date window",
                "parameters": [{"type": "string", "description": "First day, YYYY-MM-DD", "name": "from", "in": "query"}, {"type": "string", "description": "Last day, YYYY-MM-DD", "name": "to", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.CompletionRecord"}}}, "400": {"description": "Bad Request"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["completions"],
                "summary": "Mark a habit done today",
                "parameters": [{"description": "Habit", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.completeRequest"}}],
                "responses": {"200": {"description": "already completed"}, "201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/completions/{habit_id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["completions"],
                "summary": "Undo today's completion of a habit",
                "parameters": [{"type": "string", "description": "Habit ID", "name": "habit_id", "in": "path", "required": true}, {"type": "string", "description": "Must be today when set", "name": "date", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stats/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Streaks, active days this month and today's completion rate",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.StreakSummary"}}}
            }
        },
        "/stats/weekly": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Completion progress of the last seven days",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.DayProgress"}}}}
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Profile of the caller",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/http.userResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["auth"],
                "summary": "Change username and/or password",
                "parameters": [{"description": "Changes", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.updateProfileRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/http.userResponse"}}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}
            }
        },
        "/users/search": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["friends"],
                "summary": "Find users by username",
                "parameters": [{"type": "string", "description": "At least two characters", "name": "q", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/friends": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["friends"],
                "summary": "Friends with their cached streaks",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/friends/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["friends"],
                "summary": "End a friendship",
                "parameters": [{"type": "string", "description": "Friend user ID", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/friends/requests": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["friends"],
                "summary": "Pending requests addressed to the caller",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["friends"],
                "summary": "Ask another user to become friends",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/friends/requests/{id}/accept": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["friends"],
                "summary": "Accept a pending request",
                "parameters": [{"type": "string", "description": "Request ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/friends/requests/{id}/reject": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["friends"],
                "summary": "Reject a pending request",
                "parameters": [{"type": "string", "description": "Request ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/community/posts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["community"],
                "summary": "Newest community posts",
                "parameters": [{"type": "integer", "description": "At most 100, default 50", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["community"],
                "summary": "Share a habit and its current streak",
                "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}
            }
        },
        "/community/posts/{id}/like": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["community"],
                "summary": "Like or unlike a post",
                "parameters": [{"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/community/posts/{id}/comments": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["community"],
                "summary": "Comment on a post",
                "parameters": [{"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/challenges": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["challenges"],
                "summary": "Challenges the caller takes part in",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Challenge"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["challenges"],
                "summary": "Start a challenge with friends",
                "parameters": [{"description": "Challenge", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.createChallengeRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Challenge"}}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/challenges/public": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["challenges"],
                "summary": "Running public challenges",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Challenge"}}}}
            }
        },
        "/challenges/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["challenges"],
                "summary": "One challenge with its participants",
                "parameters": [{"type": "string", "description": "Challenge ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Challenge"}}, "404": {"description": "Not Found"}}
            }
        },
        "/challenges/{id}/join": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["challenges"],
                "summary": "Join a public challenge",
                "parameters": [{"type": "string", "description": "Challenge ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/challenges/{id}/invite": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["challenges"],
                "summary": "Add a friend to a challenge",
                "parameters": [{"type": "string", "description": "Challenge ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}
            }
        }
    },
    "definitions": {
        "domain.Habit": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "is_completed": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.CompletionRecord": {
            "type": "object",
            "properties": {
                "habit_id": {"type": "string"},
                "date": {"type": "string", "example": "2024-03-14"}
            }
        },
        "domain.DayProgress": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "weekday": {"type": "string"},
                "completed": {"type": "integer"},
                "total": {"type": "integer"},
                "percentage": {"type": "integer"}
            }
        },
        "domain.StreakSummary": {
            "type": "object",
            "properties": {
                "today": {"type": "string"},
                "current_streak": {"type": "integer"},
                "best_streak": {"type": "integer"},
                "active_days_this_month": {"type": "array", "items": {"type": "string"}},
                "active_days_count": {"type": "integer"},
                "daily_completion_rate": {"type": "integer"},
                "total_completions": {"type": "integer"},
                "total_habits": {"type": "integer"},
                "weekly": {"type": "array", "items": {"$ref": "#/definitions/domain.DayProgress"}}
            }
        },
        "http.registerRequest": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "email": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string", "minLength": 8}
            }
        },
        "http.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "http.userResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "username": {"type": "string"},
                "avatar": {"type": "string"},
                "current_streak": {"type": "integer"},
                "best_streak": {"type": "integer"}
            }
        },
        "http.loginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/http.userResponse"}
            }
        },
        "http.createHabitRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"}
            }
        },
        "domain.Challenge": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "duration_days": {"type": "integer"},
                "is_private": {"type": "boolean"},
                "created_by": {"type": "string"},
                "start_date": {"type": "string", "example": "2024-03-14"},
                "end_date": {"type": "string", "example": "2024-03-20"},
                "created_at": {"type": "string"},
                "participants": {"type": "array", "items": {"$ref": "#/definitions/domain.ChallengeParticipant"}}
            }
        },
        "domain.ChallengeParticipant": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "username": {"type": "string"},
                "avatar": {"type": "string"},
                "joined_at": {"type": "string"}
            }
        },
        "http.createChallengeRequest": {
            "type": "object",
            "required": ["title", "description", "duration_days", "friend_ids"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "duration_days": {"type": "integer", "minimum": 1, "maximum": 365},
                "is_private": {"type": "boolean"},
                "friend_ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "http.updateProfileRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "current_password": {"type": "string"},
                "new_password": {"type": "string", "minLength": 8},
                "confirm_password": {"type": "string"}
            }
        },
        "http.completeRequest": {
            "type": "object",
            "required": ["habit_id"],
            "properties": {
                "habit_id": {"type": "string"},
                "date": {"type": "string"}
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
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "HabitZen Engine API",
	Description:      "Habits, completions, streak analytics, friends and community feed.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
