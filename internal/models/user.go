package models

import (
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership tiers
const (
	MembershipFree = "Free"
	MembershipGold = "Gold"
)

// DefaultBadge is given to every new user
const DefaultBadge = "Bronze"

// Role is a privilege level stored on a user; the canonical form is lowercase
type Role string

const RoleAdmin Role = "admin"

// CanonicalRole lowercases and trims a role before it is stored
func CanonicalRole(role string) Role {
	return Role(strings.ToLower(strings.TrimSpace(role)))
}

// User is a forum member stored in MongoDB
type User struct {
	ObjectID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ID               int64              `json:"id" bson:"id"`
	Username         string             `json:"username" bson:"username"`
	Email            string             `json:"email" bson:"email"`
	ProfileImage     string             `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	Badge            []string           `json:"badge" bson:"badge"`
	Posts            []int64            `json:"posts" bson:"posts"`
	MembershipStatus string             `json:"membershipStatus" bson:"membershipStatus"`
	Role             Role               `json:"role,omitempty" bson:"role,omitempty"`
}

// IsAdmin accepts both the canonical "admin" and legacy "Admin" spellings
func (u *User) IsAdmin() bool {
	return strings.EqualFold(string(u.Role), string(RoleAdmin))
}

// CreateUserRequest is the body of POST /addUser
type CreateUserRequest struct {
	Username     string `json:"username" validate:"required,max=80"`
	Email        string `json:"email" validate:"required,email"`
	ProfileImage string `json:"profileImage,omitempty" validate:"omitempty,url"`
}

// AdminPrivilegeRequest is the body of PATCH /adminPriv. Both fields are raw JSON so that
// strings, nulls and arrays can be told apart and empty values dropped.
type AdminPrivilegeRequest struct {
	ID               int64       `json:"id" validate:"required,gt=0"`
	MembershipStatus interface{} `json:"membershipStatus"`
	Role             interface{} `json:"role"`
}

// TokenRequest is the body of POST /jwt
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
