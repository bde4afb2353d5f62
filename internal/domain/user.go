package domain

import "time"

// User is the domain model for registered shoppers and back-office staff.
// A user holds exactly one role; the credential carries it as a role list so
// the authorization gate can stay a pure set-intersection check.
type User struct {
	ID           string    `json:"id" dynamodbav:"id"`
	Email        string    `json:"email" dynamodbav:"email"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	Role         Role      `json:"role" dynamodbav:"role"`
	CreatedAt    time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

// Roles returns the role list embedded into issued credentials.
func (u *User) Roles() []Role {
	return []Role{u.Role}
}
