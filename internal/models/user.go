package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account that can own notes
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password" json:"-"` // Never serialize password hash
	Roles        []string           `bson:"roles" json:"roles"`
	Active       bool               `bson:"active" json:"active"`
}

// CreateUserRequest is the body of POST /users
type CreateUserRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// UpdateUserRequest is the body of PATCH /users.
// Active is a pointer so a missing or mistyped field is distinguishable from false.
// Password is optional; when empty the stored hash is kept.
type UpdateUserRequest struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Active   *bool    `json:"active"`
	Password string   `json:"password,omitempty"`
}

// DeleteUserRequest is the body of DELETE /users
type DeleteUserRequest struct {
	ID string `json:"id"`
}

// LoginRequest is the body of POST /auth
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
