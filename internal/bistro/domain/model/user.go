package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a record in the users collection. Email is unique.
type User struct {
	ID           DocumentID `json:"_id" bson:"_id,omitempty"`
	Name         string     `json:"name" bson:"name"`
	Email        string     `json:"email" bson:"email"`
	Role         string     `json:"role,omitempty" bson:"role,omitempty"`
	PhotoURL     string     `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	PasswordHash string     `json:"-" bson:"password_hash,omitempty"`
	CreatedAt    time.Time  `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// IsAdmin is true only for the exact admin role. A missing role means user.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
