package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// NewID returns a fresh document id.
func NewID() primitive.ObjectID {
	return primitive.NewObjectID()
}
