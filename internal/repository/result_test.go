package repository

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMatchedOrNotFound(t *testing.T) {
	testCases := []struct {
		name    string
		res     *mongo.UpdateResult
		err     error
		wantErr error
	}{
		{"error passes through", nil, errors.New("connection reset"), errors.New("connection reset")},
		{"zero matched is not found", &mongo.UpdateResult{MatchedCount: 0}, nil, mongo.ErrNoDocuments},
		{"matched succeeds", &mongo.UpdateResult{MatchedCount: 1}, nil, nil},
		{"matched but unmodified still succeeds", &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 0}, nil, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := matchedOrNotFound(tc.res, tc.err)
			switch {
			case tc.wantErr == nil:
				if err != nil {
					t.Errorf("expected nil error, got %v", err)
				}
			case errors.Is(tc.wantErr, mongo.ErrNoDocuments):
				if !errors.Is(err, mongo.ErrNoDocuments) {
					t.Errorf("expected ErrNoDocuments, got %v", err)
				}
			default:
				if err == nil || err.Error() != tc.wantErr.Error() {
					t.Errorf("expected %v, got %v", tc.wantErr, err)
				}
			}
		})
	}
}

func TestDeletedOrNotFound(t *testing.T) {
	testCases := []struct {
		name    string
		res     *mongo.DeleteResult
		err     error
		wantErr error
	}{
		{"error passes through", nil, errors.New("connection reset"), errors.New("connection reset")},
		{"zero deleted is not found", &mongo.DeleteResult{DeletedCount: 0}, nil, mongo.ErrNoDocuments},
		{"deleted succeeds", &mongo.DeleteResult{DeletedCount: 1}, nil, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := deletedOrNotFound(tc.res, tc.err)
			switch {
			case tc.wantErr == nil:
				if err != nil {
					t.Errorf("expected nil error, got %v", err)
				}
			case errors.Is(tc.wantErr, mongo.ErrNoDocuments):
				if !errors.Is(err, mongo.ErrNoDocuments) {
					t.Errorf("expected ErrNoDocuments, got %v", err)
				}
			default:
				if err == nil || err.Error() != tc.wantErr.Error() {
					t.Errorf("expected %v, got %v", tc.wantErr, err)
				}
			}
		})
	}
}

func TestBadgeScopeFilter(t *testing.T) {
	filter := badgeScopeFilter("skill-1")

	clauses, ok := filter["$or"].([]bson.M)
	if !ok {
		t.Fatalf("expected an $or filter, got %v", filter)
	}
	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(clauses))
	}
	if clauses[0]["skillId"] != "skill-1" {
		t.Errorf("first clause should match the skill, got %v", clauses[0])
	}
	unbound, ok := clauses[1]["skillId"].(bson.M)
	if !ok || unbound["$exists"] != false {
		t.Errorf("second clause should match badges without a skill binding, got %v", clauses[1])
	}
}
