package repository

import (
	"context"
	"sort"
	"time"

	"skillforge_backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ValidatedSkillRepository struct {
	Col *mongo.Collection
}

func NewValidatedSkillRepository(db *mongo.Database) *ValidatedSkillRepository {
	return &ValidatedSkillRepository{Col: db.Collection("validatedSkills")}
}

// UpsertMerge records a validation for (user, skill). Re-validation keeps
// the latest timestamp and score and appends new badge ids to the
// accumulated set.
func (r *ValidatedSkillRepository) UpsertMerge(ctx context.Context, userID, skillID, skillName string, quizScore int, badgeIDs []string) error {
	update := bson.M{
		"$set": bson.M{
			"skillName":   skillName,
			"validatedAt": time.Now().UTC(),
			"quizScore":   quizScore,
		},
	}
	if len(badgeIDs) > 0 {
		update["$push"] = bson.M{"badgesUnlocked": bson.M{"$each": badgeIDs}}
	}
	_, err := r.Col.UpdateOne(ctx,
		bson.M{"userId": userID, "skillId": skillID},
		update,
		mongoUpsert(),
	)
	return err
}

func (r *ValidatedSkillRepository) FindByUserAndSkill(ctx context.Context, userID, skillID string) (*model.ValidatedSkill, error) {
	var record model.ValidatedSkill
	err := r.Col.FindOne(ctx, bson.M{"userId": userID, "skillId": skillID}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByUser returns the user's validated skills, most recent first.
func (r *ValidatedSkillRepository) FindByUser(ctx context.Context, userID string) ([]model.ValidatedSkill, error) {
	return r.findSorted(ctx, bson.M{"userId": userID})
}

// FindAll returns every validation record, most recent first. Admin surface.
func (r *ValidatedSkillRepository) FindAll(ctx context.Context) ([]model.ValidatedSkill, error) {
	return r.findSorted(ctx, bson.M{})
}

func (r *ValidatedSkillRepository) FindBySkill(ctx context.Context, skillID string) ([]model.ValidatedSkill, error) {
	cur, err := r.Col.Find(ctx, bson.M{"skillId": skillID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []model.ValidatedSkill
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ValidatedSkillRepository) findSorted(ctx context.Context, filter bson.M) ([]model.ValidatedSkill, error) {
	opts := options.Find().SetSort(bson.D{{Key: "validatedAt", Value: -1}})
	records, err := r.find(ctx, filter, opts)
	if err == nil {
		return records, nil
	}
	if !isSortUnavailable(err) {
		return nil, err
	}

	records, err = r.find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ValidatedAt.After(records[j].ValidatedAt)
	})
	return records, nil
}

func (r *ValidatedSkillRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.ValidatedSkill, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.Col.Find(ctx, filter, opts)
	} else {
		cur, err = r.Col.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []model.ValidatedSkill
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
