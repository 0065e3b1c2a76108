package repository

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"skillforge_backend/internal/model"
)

func intPtr(n int) *int { return &n }

func TestSortLessons(t *testing.T) {
	lessons := []model.Lesson{
		{Title: "third", Order: intPtr(3)},
		{Title: "first", Order: intPtr(1)},
		{Title: "unordered", Order: nil},
		{Title: "second", Order: intPtr(2)},
	}

	SortLessons(lessons)

	want := []string{"first", "second", "third", "unordered"}
	for i, title := range want {
		if lessons[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, lessons[i].Title)
		}
	}
}

// A server-side ascending sort hands back documents without the order
// field first. The in-memory sort must move them to the end so both read
// paths agree.
func TestSortLessonsMovesMissingOrderLast(t *testing.T) {
	lessons := []model.Lesson{
		{Title: "no order", Order: nil},
		{Title: "first", Order: intPtr(1)},
		{Title: "second", Order: intPtr(2)},
	}

	SortLessons(lessons)

	want := []string{"first", "second", "no order"}
	for i, title := range want {
		if lessons[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, lessons[i].Title)
		}
	}
}

func TestSortLessonsStableForTies(t *testing.T) {
	lessons := []model.Lesson{
		{Title: "a", Order: intPtr(1)},
		{Title: "b", Order: intPtr(1)},
		{Title: "c", Order: nil},
		{Title: "d", Order: nil},
	}

	SortLessons(lessons)

	want := []string{"a", "b", "c", "d"}
	for i, title := range want {
		if lessons[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, lessons[i].Title)
		}
	}
}

func TestSortQuestions(t *testing.T) {
	questions := []model.Question{
		{Content: "later", Order: intPtr(10)},
		{Content: "tail", Order: nil},
		{Content: "head", Order: intPtr(0)},
	}

	SortQuestions(questions)

	want := []string{"head", "later", "tail"}
	for i, content := range want {
		if questions[i].Content != content {
			t.Errorf("position %d: expected %q, got %q", i, content, questions[i].Content)
		}
	}
}

func TestIsSortUnavailable(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"operation failed code", mongo.CommandError{Code: 96}, true},
		{"sort memory exceeded code", mongo.CommandError{Code: 292}, true},
		{"bad value code", mongo.CommandError{Code: 2}, true},
		{"unrelated command error", mongo.CommandError{Code: 11000, Message: "duplicate key"}, false},
		{"missing index message", errors.New("planner returned error: unable to find index for $geoNear query"), true},
		{"sort exceeded message", errors.New("Sort exceeded memory limit"), true},
		{"plain error", errors.New("connection reset"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isSortUnavailable(tc.err); got != tc.want {
				t.Errorf("isSortUnavailable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
