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

type NotificationRepository struct {
	Col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{Col: db.Collection("notifications")}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if n.ID.IsZero() {
		n.ID = model.NewID()
	}
	n.CreatedAt = time.Now().UTC()
	_, err := r.Col.InsertOne(ctx, n)
	return err
}

// FindByUser returns the user's notifications, newest first.
func (r *NotificationRepository) FindByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	filter := bson.M{"userId": userID}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	list, err := r.find(ctx, filter, opts)
	if err == nil {
		return list, nil
	}
	if !isSortUnavailable(err) {
		return nil, err
	}

	list, err = r.find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"userId": userID, "read": false})
}

// MarkRead flips one notification, scoped to the owner so a user cannot
// touch another user's inbox.
func (r *NotificationRepository) MarkRead(ctx context.Context, id primitive.ObjectID, userID string) error {
	return matchedOrNotFound(r.Col.UpdateOne(ctx,
		bson.M{"_id": id, "userId": userID},
		bson.M{"$set": bson.M{"read": true}},
	))
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res, err := r.Col.UpdateMany(ctx,
		bson.M{"userId": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id primitive.ObjectID, userID string) error {
	return deletedOrNotFound(r.Col.DeleteOne(ctx, bson.M{"_id": id, "userId": userID}))
}

func (r *NotificationRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Notification, error) {
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
	var list []model.Notification
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}
