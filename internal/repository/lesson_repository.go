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

type LessonRepository struct {
	Col *mongo.Collection
}

func NewLessonRepository(db *mongo.Database) *LessonRepository {
	return &LessonRepository{Col: db.Collection("lessons")}
}

func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	if lesson.ID.IsZero() {
		lesson.ID = model.NewID()
	}
	lesson.CreatedAt = time.Now().UTC()
	_, err := r.Col.InsertOne(ctx, lesson)
	return err
}

func (r *LessonRepository) FindByID(ctx context.Context, id string) (*model.Lesson, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var lesson model.Lesson
	if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// FindByCourse returns a course's lessons ordered ascending, missing order
// last. It asks the server to sort first and refetches unordered when the
// sort cannot be satisfied; either way the in-memory sort runs afterwards,
// because an ascending server sort places documents without the field
// before all numbers.
func (r *LessonRepository) FindByCourse(ctx context.Context, courseID string) ([]model.Lesson, error) {
	filter := bson.M{"courseId": courseID}

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	lessons, err := r.findLessons(ctx, filter, opts)
	if err != nil {
		if !isSortUnavailable(err) {
			return nil, err
		}
		lessons, err = r.findLessons(ctx, filter, nil)
		if err != nil {
			return nil, err
		}
	}
	SortLessons(lessons)
	return lessons, nil
}

func (r *LessonRepository) findLessons(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Lesson, error) {
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
	var lessons []model.Lesson
	if err := cur.All(ctx, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// SortLessons orders lessons ascending by order, missing order last. The
// sort is stable so equal orders keep their fetch sequence.
func SortLessons(lessons []model.Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		return orderKey(lessons[i].Order) < orderKey(lessons[j].Order)
	})
}

func (r *LessonRepository) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"courseId": courseID})
}

func (r *LessonRepository) Update(ctx context.Context, id string, update model.LessonUpdate) error {
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

func (r *LessonRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	return deletedOrNotFound(r.Col.DeleteOne(ctx, bson.M{"_id": objID}))
}
