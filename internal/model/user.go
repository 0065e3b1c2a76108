package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// swagger:model User
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      UserRole           `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
	Skills    []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	Goals     []string           `bson:"goals,omitempty" json:"goals,omitempty"`
	Badges    []string           `bson:"badges,omitempty" json:"badges,omitempty"`
}

// UserUpdate carries a partial profile edit. Only present fields are written.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Role     *UserRole
}

func (u UserUpdate) SetDoc() bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Email != nil {
		set["email"] = *u.Email
	}
	if u.Password != nil {
		set["password"] = *u.Password
	}
	if u.Role != nil {
		set["role"] = *u.Role
	}
	return set
}
