package mmodel

import "encoding/json"

// User is a user record as returned by the API.
type User struct {
	ID    int    `json:"id" example:"1"`
	Name  string `json:"name" example:"Alice"`
	Email string `json:"email" example:"alice@example.com"`
}

// Users is the body of the user listing.
type Users struct {
	Users []User `json:"users"`
}

// CreateUserInput is the request body of user creation.
//
// Fields are kept as raw JSON so any value the caller sends is echoed back
// unchanged. A field the caller omits stays nil.
type CreateUserInput struct {
	Name  json.RawMessage `json:"name,omitempty" example:"Dana"`
	Email json.RawMessage `json:"email,omitempty" example:"dana@example.com"`
}

// CreatedUser is the response of user creation. It is never persisted.
type CreatedUser struct {
	ID      int             `json:"id" example:"4"`
	Name    json.RawMessage `json:"name,omitempty" example:"Dana"`
	Email   json.RawMessage `json:"email,omitempty" example:"dana@example.com"`
	Created string          `json:"created" example:"2024-01-01T00:00:00.000Z"`
}
