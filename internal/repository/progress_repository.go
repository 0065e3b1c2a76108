package repository

import (
	"context"
	"sort"
	"time"

	"skillforge_backend/internal/model"
	"skillforge_backend/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProgressRepository struct {
	Col *mongo.Collection
}

func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{Col: db.Collection("progress")}
}

func keyFilter(userID string, key model.ProgressKey) (bson.M, error) {
	switch {
	case key.LessonID != "":
		return bson.M{"userId": userID, "lessonId": key.LessonID}, nil
	case key.CourseID != "":
		// Course records only; lesson records also carry a courseId.
		return bson.M{"userId": userID, "courseId": key.CourseID, "lessonId": bson.M{"$exists": false}}, nil
	case key.QuizID != "":
		return bson.M{"userId": userID, "quizId": key.QuizID}, nil
	default:
		return nil, util.ErrProgressTargetless
	}
}

// Upsert writes the progress record for (user, target), updating in place
// when one already exists. startedAt is only set on first write.
func (r *ProgressRepository) Upsert(ctx context.Context, userID string, key model.ProgressKey, percentage int, completed bool) error {
	filter, err := keyFilter(userID, key)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	set := bson.M{
		"percentage":     percentage,
		"completed":      completed,
		"lastAccessedAt": now,
	}
	if completed {
		set["completedAt"] = now
	}
	insert := bson.M{"startedAt": now}
	if key.LessonID != "" {
		insert["lessonId"] = key.LessonID
		if key.CourseID != "" {
			insert["courseId"] = key.CourseID
		}
	}

	update := bson.M{"$set": set, "$setOnInsert": insert}
	if !completed {
		update["$unset"] = bson.M{"completedAt": ""}
	}

	_, err = r.Col.UpdateOne(ctx, filter, update, mongoUpsert())
	return err
}

func (r *ProgressRepository) FindByKey(ctx context.Context, userID string, key model.ProgressKey) (*model.Progress, error) {
	filter, err := keyFilter(userID, key)
	if err != nil {
		return nil, err
	}
	var progress model.Progress
	if err := r.Col.FindOne(ctx, filter).Decode(&progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// FindByUser returns all of a user's progress, most recently accessed first.
func (r *ProgressRepository) FindByUser(ctx context.Context, userID string) ([]model.Progress, error) {
	filter := bson.M{"userId": userID}

	opts := options.Find().SetSort(bson.D{{Key: "lastAccessedAt", Value: -1}})
	records, err := r.findProgress(ctx, filter, opts)
	if err == nil {
		return records, nil
	}
	if !isSortUnavailable(err) {
		return nil, err
	}

	records, err = r.findProgress(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].LastAccessedAt.After(records[j].LastAccessedAt)
	})
	return records, nil
}

// FindCompletedByUser returns the user's completed records, most recently
// completed first.
func (r *ProgressRepository) FindCompletedByUser(ctx context.Context, userID string) ([]model.Progress, error) {
	filter := bson.M{"userId": userID, "completed": true}

	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})
	records, err := r.findProgress(ctx, filter, opts)
	if err == nil {
		return records, nil
	}
	if !isSortUnavailable(err) {
		return nil, err
	}

	records, err = r.findProgress(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		var ti, tj time.Time
		if records[i].CompletedAt != nil {
			ti = *records[i].CompletedAt
		}
		if records[j].CompletedAt != nil {
			tj = *records[j].CompletedAt
		}
		return ti.After(tj)
	})
	return records, nil
}

func (r *ProgressRepository) findProgress(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Progress, error) {
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
	var records []model.Progress
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CompletedCourseIDs returns the set of course ids the user has completed
// course-level records for.
func (r *ProgressRepository) CompletedCourseIDs(ctx context.Context, userID string) (map[string]bool, error) {
	filter := bson.M{
		"userId":    userID,
		"completed": true,
		"courseId":  bson.M{"$exists": true},
		"lessonId":  bson.M{"$exists": false},
	}
	records, err := r.findProgress(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(records))
	for _, p := range records {
		if p.CourseID != nil {
			ids[*p.CourseID] = true
		}
	}
	return ids, nil
}

// CountCompletedCourses counts the user's completed course-level records,
// the aggregate behind complete_courses badge conditions.
func (r *ProgressRepository) CountCompletedCourses(ctx context.Context, userID string) (int, error) {
	filter := bson.M{
		"userId":    userID,
		"completed": true,
		"courseId":  bson.M{"$exists": true},
		"lessonId":  bson.M{"$exists": false},
	}
	n, err := r.Col.CountDocuments(ctx, filter)
	return int(n), err
}

// CompletedLessonIDs returns the set of lesson ids the user has completed
// within one course.
func (r *ProgressRepository) CompletedLessonIDs(ctx context.Context, userID, courseID string) (map[string]bool, error) {
	filter := bson.M{
		"userId":    userID,
		"courseId":  courseID,
		"completed": true,
		"lessonId":  bson.M{"$exists": true},
	}
	records, err := r.findProgress(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(records))
	for _, p := range records {
		if p.LessonID != nil {
			ids[*p.LessonID] = true
		}
	}
	return ids, nil
}

// DeleteByUserAndCourses removes the user's lesson and course records for
// the given courses. Used by unenrollment cascade.
func (r *ProgressRepository) DeleteByUserAndCourses(ctx context.Context, userID string, courseIDs []string) error {
	if len(courseIDs) == 0 {
		return nil
	}
	_, err := r.Col.DeleteMany(ctx, bson.M{
		"userId":   userID,
		"courseId": bson.M{"$in": courseIDs},
	})
	return err
}
