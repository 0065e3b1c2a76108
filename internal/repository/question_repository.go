package repository

import (
	"context"
	"sort"

	"skillforge_backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

func (r *QuestionRepository) Create(ctx context.Context, question *model.Question) error {
	if question.ID.IsZero() {
		question.ID = model.NewID()
	}
	_, err := r.Col.InsertOne(ctx, question)
	return err
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var question model.Question
	if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&question); err != nil {
		return nil, err
	}
	return &question, nil
}

// FindByQuiz returns a quiz's questions ordered ascending with the same
// unordered-fetch fallback as lessons. The in-memory sort always runs so
// questions without an order land last on both paths.
func (r *QuestionRepository) FindByQuiz(ctx context.Context, quizID string) ([]model.Question, error) {
	filter := bson.M{"quizId": quizID}

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	questions, err := r.findQuestions(ctx, filter, opts)
	if err != nil {
		if !isSortUnavailable(err) {
			return nil, err
		}
		questions, err = r.findQuestions(ctx, filter, nil)
		if err != nil {
			return nil, err
		}
	}
	SortQuestions(questions)
	return questions, nil
}

func (r *QuestionRepository) findQuestions(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Question, error) {
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
	var questions []model.Question
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func SortQuestions(questions []model.Question) {
	sort.SliceStable(questions, func(i, j int) bool {
		return orderKey(questions[i].Order) < orderKey(questions[j].Order)
	})
}

func (r *QuestionRepository) Update(ctx context.Context, id string, update model.QuestionUpdate) error {
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

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	return deletedOrNotFound(r.Col.DeleteOne(ctx, bson.M{"_id": objID}))
}

func (r *QuestionRepository) DeleteByQuiz(ctx context.Context, quizID string) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"quizId": quizID})
	return err
}
