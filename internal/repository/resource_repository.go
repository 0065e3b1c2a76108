package repository

import (
	"context"
	"time"

	"skillforge_backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ResourceRepository struct {
	Col *mongo.Collection
}

func NewResourceRepository(db *mongo.Database) *ResourceRepository {
	return &ResourceRepository{Col: db.Collection("resources")}
}

func (r *ResourceRepository) Create(ctx context.Context, res *model.Resource) error {
	if res.ID.IsZero() {
		res.ID = model.NewID()
	}
	res.CreatedAt = time.Now().UTC()
	_, err := r.Col.InsertOne(ctx, res)
	return err
}

func (r *ResourceRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Resource, error) {
	var res model.Resource
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResourceRepository) FindByCourse(ctx context.Context, courseID string) ([]model.Resource, error) {
	cur, err := r.Col.Find(ctx, bson.M{"courseId": courseID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var list []model.Resource
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deletedOrNotFound(r.Col.DeleteOne(ctx, bson.M{"_id": id}))
}

func (r *ResourceRepository) DeleteByCourse(ctx context.Context, courseID string) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"courseId": courseID})
	return err
}
