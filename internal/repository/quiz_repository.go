package repository

import (
	"context"
	"time"

	"skillforge_backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuizRepository struct {
	Col *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{Col: db.Collection("quizzes")}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	if quiz.ID.IsZero() {
		quiz.ID = model.NewID()
	}
	quiz.CreatedAt = time.Now().UTC()
	_, err := r.Col.InsertOne(ctx, quiz)
	return err
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*model.Quiz, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var quiz model.Quiz
	if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindBySkill(ctx context.Context, skillID string) ([]model.Quiz, error) {
	cur, err := r.Col.Find(ctx, bson.M{"skillId": skillID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var quizzes []model.Quiz
	if err := cur.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *QuizRepository) FindAll(ctx context.Context) ([]model.Quiz, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var quizzes []model.Quiz
	if err := cur.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *QuizRepository) Update(ctx context.Context, id string, update model.QuizUpdate) error {
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

// AddQuestionRef registers a question id on the quiz without duplicating it.
func (r *QuizRepository) AddQuestionRef(ctx context.Context, id, questionID string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$addToSet": bson.M{"questions": questionID}})
	return err
}

func (r *QuizRepository) RemoveQuestionRef(ctx context.Context, id, questionID string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$pull": bson.M{"questions": questionID}})
	return err
}

func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	return deletedOrNotFound(r.Col.DeleteOne(ctx, bson.M{"_id": objID}))
}
