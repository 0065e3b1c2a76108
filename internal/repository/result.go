package repository

import "go.mongodb.org/mongo-driver/mongo"

// matchedOrNotFound maps a zero-match update to mongo.ErrNoDocuments so
// callers can answer not-found instead of silently succeeding.
func matchedOrNotFound(res *mongo.UpdateResult, err error) error {
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func deletedOrNotFound(res *mongo.DeleteResult, err error) error {
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
