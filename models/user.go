// Package models defines data structures used across the application.
// File: models/user.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ----------------------- user document -----------------------

// User is one registered account. Exercises are embedded in the user
// document; an entry never exists outside its owner.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // bcrypt hash, never serialized
	Exercises []Exercise         `bson:"exercises" json:"exercises"`
}

// ----------------------- credentials -----------------------

// Credentials is the request body for /login and /registration.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
