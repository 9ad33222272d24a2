package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of account roles. Authorization decisions compare
// Role values, never raw strings from the request.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a client-supplied string onto the Role enum. An empty
// string defaults to customer.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleCustomer, nil
	case RoleCustomer, RoleStaff, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"` // Hide from JSON responses
	Role     Role               `bson:"role" json:"role"`
}
