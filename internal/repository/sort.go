package repository

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Server error codes that mean the requested sort could not be satisfied
// (no supporting index / blocking sort over the memory limit). Ordered reads
// fall back to an unordered fetch plus an in-memory stable sort when one of
// these comes back.
const (
	codeOperationFailed     = 96
	codeSortMemoryExceeded  = 292
	codeBadValueLegacySorts = 2
)

func isSortUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case codeOperationFailed, codeSortMemoryExceeded, codeBadValueLegacySorts:
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "index") || strings.Contains(msg, "sort exceeded")
}

// orderKey sorts optional integer orders ascending, missing order last.
func orderKey(order *int) int {
	if order == nil {
		return int(^uint(0) >> 1) // max int
	}
	return *order
}

func mongoUpsert() *options.UpdateOptions {
	return options.Update().SetUpsert(true)
}
