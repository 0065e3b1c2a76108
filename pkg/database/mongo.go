package database

import (
	"context"
	"log"
	"time"

	"skillforge_backend/internal/config"
	"skillforge_backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func InitMongo(cfg *config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.PoolSize > 0 {
		opts.SetMaxPoolSize(cfg.PoolSize)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, nil, err
	}

	db := client.Database(cfg.Database)
	log.Println("MongoDB connection established")

	if err := ensureIndexes(db); err != nil {
		return nil, nil, err
	}

	seedDefaultBadges(db)

	return client, db, nil
}

func CloseMongo(client *mongo.Client) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting from MongoDB: %v", err)
	}
}

func ensureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	// One claim per (user, badge); one enrollment per (user, skill).
	_, err = db.Collection("userBadges").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "badgeId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("userSkillProgress").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "skillId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("progress").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	return err
}

// seedDefaultBadges inserts a starter badge catalog on first boot, the same
// way default motivational content was seeded historically. The seeds carry
// no skillId, which makes them catalog-wide: every skill validation
// evaluates them alongside the skill's own badges.
func seedDefaultBadges(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	col := db.Collection("badges")
	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil || count > 0 {
		return
	}

	now := time.Now().UTC()
	icon := "star"
	defaults := []interface{}{
		model.Badge{
			Title:       "First Steps",
			Description: "Complete your first course",
			Icon:        &icon,
			Condition:   &model.RawBadgeCondition{Type: model.ConditionCompleteCourses, Value: 1},
			CreatedAt:   now,
		},
		model.Badge{
			Title:       "Quiz Ace",
			Description: "Score 90% or more on a skill quiz",
			Icon:        &icon,
			Condition:   &model.RawBadgeCondition{Type: model.ConditionQuizScore, Value: 90},
			CreatedAt:   now,
		},
		model.Badge{
			Title:       "Polymath",
			Description: "Master three different skills",
			Icon:        &icon,
			Condition:   &model.RawBadgeCondition{Type: model.ConditionCompleteSkills, Value: 3},
			CreatedAt:   now,
		},
	}

	if _, err := col.InsertMany(ctx, defaults); err != nil {
		log.Printf("Failed to seed default badges: %v", err)
	}
}
