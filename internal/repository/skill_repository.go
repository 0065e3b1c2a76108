package repository

import (
	"context"
	"time"

	"skillforge_backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SkillRepository struct {
	Col *mongo.Collection
}

func NewSkillRepository(db *mongo.Database) *SkillRepository {
	return &SkillRepository{Col: db.Collection("skills")}
}

func (r *SkillRepository) Create(ctx context.Context, skill *model.Skill) error {
	if skill.ID.IsZero() {
		skill.ID = model.NewID()
	}
	now := time.Now().UTC()
	skill.CreatedAt = now
	skill.UpdatedAt = now
	_, err := r.Col.InsertOne(ctx, skill)
	return err
}

func (r *SkillRepository) FindByID(ctx context.Context, id string) (*model.Skill, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var skill model.Skill
	if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&skill); err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepository) FindAll(ctx context.Context) ([]model.Skill, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var skills []model.Skill
	if err := cur.All(ctx, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// FindGlobal returns catalog skills: owner empty or "admin".
func (r *SkillRepository) FindGlobal(ctx context.Context) ([]model.Skill, error) {
	filter := bson.M{"ownerId": bson.M{"$in": bson.A{"", "admin"}}}
	cur, err := r.Col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var skills []model.Skill
	if err := cur.All(ctx, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *SkillRepository) Update(ctx context.Context, id string, update model.SkillUpdate) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	return matchedOrNotFound(r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update.SetDoc()}))
}

func (r *SkillRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	return deletedOrNotFound(r.Col.DeleteOne(ctx, bson.M{"_id": objID}))
}
