package repository

import (
	"context"
	"time"

	"skillforge_backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type BadgeRepository struct {
	Col    *mongo.Collection
	Claims *mongo.Collection
}

func NewBadgeRepository(db *mongo.Database) *BadgeRepository {
	return &BadgeRepository{
		Col:    db.Collection("badges"),
		Claims: db.Collection("userBadges"),
	}
}

func (r *BadgeRepository) Create(ctx context.Context, badge *model.Badge) error {
	if badge.ID.IsZero() {
		badge.ID = model.NewID()
	}
	badge.CreatedAt = time.Now().UTC()
	_, err := r.Col.InsertOne(ctx, badge)
	return err
}

func (r *BadgeRepository) FindByID(ctx context.Context, id string) (*model.Badge, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var badge model.Badge
	if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&badge); err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *BadgeRepository) FindAll(ctx context.Context) ([]model.Badge, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var badges []model.Badge
	if err := cur.All(ctx, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

// badgeScopeFilter selects badges evaluable when a skill validates: badges
// tied to that skill plus catalog-wide badges with no skill binding (the
// seeded defaults have none).
func badgeScopeFilter(skillID string) bson.M {
	return bson.M{"$or": []bson.M{
		{"skillId": skillID},
		{"skillId": bson.M{"$exists": false}},
	}}
}

// FindForSkill returns the badges to evaluate on a validation of skillID.
func (r *BadgeRepository) FindForSkill(ctx context.Context, skillID string) ([]model.Badge, error) {
	cur, err := r.Col.Find(ctx, badgeScopeFilter(skillID))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var badges []model.Badge
	if err := cur.All(ctx, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *BadgeRepository) Update(ctx context.Context, id string, update model.BadgeUpdate) error {
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

func (r *BadgeRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	if err := deletedOrNotFound(r.Col.DeleteOne(ctx, bson.M{"_id": objID})); err != nil {
		return err
	}
	_, err = r.Claims.DeleteMany(ctx, bson.M{"badgeId": id})
	return err
}

// --- claim records ---

func (r *BadgeRepository) HasClaim(ctx context.Context, userID, badgeID string) (bool, error) {
	n, err := r.Claims.CountDocuments(ctx, bson.M{"userId": userID, "badgeId": badgeID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateClaim unlocks the badge for the user. The unique (userId, badgeId)
// index keeps the unlock exactly-once under races.
func (r *BadgeRepository) CreateClaim(ctx context.Context, userID, badgeID string) (*model.UserBadge, error) {
	claim := &model.UserBadge{
		ID:         model.NewID(),
		UserID:     userID,
		BadgeID:    badgeID,
		UnlockedAt: time.Now().UTC(),
	}
	if _, err := r.Claims.InsertOne(ctx, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

func (r *BadgeRepository) ClaimsByUser(ctx context.Context, userID string) ([]model.UserBadge, error) {
	cur, err := r.Claims.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var claims []model.UserBadge
	if err := cur.All(ctx, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}
