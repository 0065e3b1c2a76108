package repository

import (
	"context"
	"sort"
	"time"

	"skillforge_backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GoalRepository struct {
	Col *mongo.Collection
}

func NewGoalRepository(db *mongo.Database) *GoalRepository {
	return &GoalRepository{Col: db.Collection("goals")}
}

func (r *GoalRepository) Create(ctx context.Context, goal *model.Goal) error {
	if goal.ID.IsZero() {
		goal.ID = model.NewID()
	}
	goal.CreatedAt = time.Now().UTC()
	_, err := r.Col.InsertOne(ctx, goal)
	return err
}

func (r *GoalRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Goal, error) {
	var goal model.Goal
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// FindByUser returns the user's goals, newest first.
func (r *GoalRepository) FindByUser(ctx context.Context, userID string) ([]model.Goal, error) {
	filter := bson.M{"userId": userID}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	goals, err := r.find(ctx, filter, opts)
	if err == nil {
		return goals, nil
	}
	if !isSortUnavailable(err) {
		return nil, err
	}

	goals, err = r.find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].CreatedAt.After(goals[j].CreatedAt)
	})
	return goals, nil
}

func (r *GoalRepository) Update(ctx context.Context, id primitive.ObjectID, update model.GoalUpdate) error {
	set := update.SetDoc()
	if len(set) == 0 {
		return nil
	}
	return matchedOrNotFound(r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}))
}

func (r *GoalRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deletedOrNotFound(r.Col.DeleteOne(ctx, bson.M{"_id": id}))
}

func (r *GoalRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Goal, error) {
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
	var goals []model.Goal
	if err := cur.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}
