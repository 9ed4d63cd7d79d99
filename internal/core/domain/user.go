package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")

// User models a registered account. The password is held only as a bcrypt
// hash and is never serialized.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Company      string    `json:"company,omitempty" bson:"company,omitempty"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Position     string    `json:"position,omitempty" bson:"position,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty" bson:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
