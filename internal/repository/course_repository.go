package repository

import (
	"context"
	"time"

	"skillforge_backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CourseRepository struct {
	Col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{Col: db.Collection("courses")}
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	if course.ID.IsZero() {
		course.ID = model.NewID()
	}
	course.CreatedAt = time.Now().UTC()
	_, err := r.Col.InsertOne(ctx, course)
	return err
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*model.Course, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var course model.Course
	if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindBySkill(ctx context.Context, skillID string) ([]model.Course, error) {
	cur, err := r.Col.Find(ctx, bson.M{"skillId": skillID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var courses []model.Course
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) FindAll(ctx context.Context) ([]model.Course, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var courses []model.Course
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) Update(ctx context.Context, id string, update model.CourseUpdate) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	set := update.SetDoc()
	if len(set) == 0 {
		return nil
	}
	return matchedOrNotFound(r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set}))
}

// AddRef appends a child id to one of the course's reference arrays
// (lessons, quizzes, resources) without duplicating it.
func (r *CourseRepository) AddRef(ctx context.Context, id, field, refID string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$addToSet": bson.M{field: refID}})
	return err
}

func (r *CourseRepository) RemoveRef(ctx context.Context, id, field, refID string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$pull": bson.M{field: refID}})
	return err
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	return deletedOrNotFound(r.Col.DeleteOne(ctx, bson.M{"_id": objID}))
}
