package repository

import (
	"context"
	"time"

	"skillforge_backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserSkillProgressRepository struct {
	Col *mongo.Collection
}

func NewUserSkillProgressRepository(db *mongo.Database) *UserSkillProgressRepository {
	return &UserSkillProgressRepository{Col: db.Collection("userSkillProgress")}
}

func (r *UserSkillProgressRepository) Create(ctx context.Context, progress *model.UserSkillProgress) error {
	if progress.ID.IsZero() {
		progress.ID = model.NewID()
	}
	now := time.Now().UTC()
	progress.EnrolledAt = now
	progress.LastAccessedAt = now
	_, err := r.Col.InsertOne(ctx, progress)
	return err
}

func (r *UserSkillProgressRepository) FindByUserAndSkill(ctx context.Context, userID, skillID string) (*model.UserSkillProgress, error) {
	var progress model.UserSkillProgress
	err := r.Col.FindOne(ctx, bson.M{"userId": userID, "skillId": skillID}).Decode(&progress)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *UserSkillProgressRepository) FindByUser(ctx context.Context, userID string) ([]model.UserSkillProgress, error) {
	cur, err := r.Col.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []model.UserSkillProgress
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *UserSkillProgressRepository) FindAll(ctx context.Context) ([]model.UserSkillProgress, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []model.UserSkillProgress
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateAggregates overwrites the denormalized level and course counts after
// a recomputation.
func (r *UserSkillProgressRepository) UpdateAggregates(ctx context.Context, userID, skillID string, level, coursesCompleted, totalCourses int) error {
	_, err := r.Col.UpdateOne(ctx,
		bson.M{"userId": userID, "skillId": skillID},
		bson.M{"$set": bson.M{
			"level":            level,
			"coursesCompleted": coursesCompleted,
			"totalCourses":     totalCourses,
			"lastAccessedAt":   time.Now().UTC(),
		}},
	)
	return err
}

// ForceLevel pins the level directly, bypassing the course-ratio derivation.
// Used by quiz-path skill validation.
func (r *UserSkillProgressRepository) ForceLevel(ctx context.Context, userID, skillID string, level int) error {
	_, err := r.Col.UpdateOne(ctx,
		bson.M{"userId": userID, "skillId": skillID},
		bson.M{"$set": bson.M{
			"level":          level,
			"lastAccessedAt": time.Now().UTC(),
		}},
	)
	return err
}

// CountCompletedSkills counts the user's skills at level 100, the aggregate
// behind complete_skills badge conditions.
func (r *UserSkillProgressRepository) CountCompletedSkills(ctx context.Context, userID string) (int, error) {
	n, err := r.Col.CountDocuments(ctx, bson.M{"userId": userID, "level": 100})
	return int(n), err
}

func (r *UserSkillProgressRepository) Delete(ctx context.Context, userID, skillID string) error {
	return deletedOrNotFound(r.Col.DeleteOne(ctx, bson.M{"userId": userID, "skillId": skillID}))
}
