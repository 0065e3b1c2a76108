package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Skill is a top-level learning topic. Catalog entries carry an empty or
// "admin" owner id; user-created skills are scoped to their owner.
type Skill struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	OwnerID     string             `bson:"ownerId" json:"ownerId"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (s *Skill) IsGlobal() bool {
	return s.OwnerID == "" || s.OwnerID == "admin"
}

type SkillUpdate struct {
	Name        *string
	Description *string
}

func (u SkillUpdate) SetDoc() bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	return set
}
