package service

import (
	"encoding/json"
	"strings"
	"testing"

	"skillforge_backend/internal/model"
)

func TestCheckAnswer(t *testing.T) {
	testCases := []struct {
		name      string
		correct   string
		submitted string
		want      bool
	}{
		{"exact match", "Paris", "Paris", true},
		{"case insensitive with whitespace", "Paris", " paris ", true},
		{"wrong answer", "Paris", "London", false},
		{"true/false lowercase", "True", "true", true},
		{"empty submission", "Paris", "", false},
		{"whitespace only", "Paris", "   ", false},
		{"trailing newline", "42", "42\n", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := checkAnswer(tc.correct, tc.submitted); got != tc.want {
				t.Errorf("checkAnswer(%q, %q) = %v, want %v", tc.correct, tc.submitted, got, tc.want)
			}
		})
	}
}

func TestScore(t *testing.T) {
	q1 := model.Question{ID: model.NewID(), CorrectAnswer: "a", Points: 1}
	q2 := model.Question{ID: model.NewID(), CorrectAnswer: "b", Points: 1}
	q3 := model.Question{ID: model.NewID(), CorrectAnswer: "c", Points: 2}
	questions := []model.Question{q1, q2, q3}

	answers := map[string]string{
		q1.ID.Hex(): "a",
		q2.ID.Hex(): "b",
		q3.ID.Hex(): "wrong",
	}

	score, total, results := Score(questions, answers)
	if score != 2 {
		t.Errorf("expected score 2, got %d", score)
	}
	if total != 4 {
		t.Errorf("expected total 4, got %d", total)
	}
	if pct := Percentage(score, total); pct != 50 {
		t.Errorf("expected percentage 50, got %d", pct)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 question results, got %d", len(results))
	}
	if !results[0].Correct || !results[1].Correct || results[2].Correct {
		t.Errorf("expected correct, correct, incorrect; got %v, %v, %v",
			results[0].Correct, results[1].Correct, results[2].Correct)
	}
	if results[2].Earned != 0 || results[2].Points != 2 {
		t.Errorf("incorrect answer should earn 0 of its 2 points, got earned=%d points=%d",
			results[2].Earned, results[2].Points)
	}
}

func TestScoreUnansweredCountsAsIncorrect(t *testing.T) {
	q1 := model.Question{ID: model.NewID(), CorrectAnswer: "a", Points: 3}
	q2 := model.Question{ID: model.NewID(), CorrectAnswer: "b", Points: 2}

	score, total, results := Score([]model.Question{q1, q2}, map[string]string{
		q1.ID.Hex(): "a",
	})
	if score != 3 || total != 5 {
		t.Errorf("expected score 3 of 5, got %d of %d", score, total)
	}
	if results[1].Correct {
		t.Error("unanswered question should be incorrect")
	}
}

func TestScoreEmptyQuiz(t *testing.T) {
	score, total, results := Score(nil, nil)
	if score != 0 || total != 0 || len(results) != 0 {
		t.Errorf("empty quiz should score 0/0 with no results, got %d/%d (%d results)",
			score, total, len(results))
	}
	if pct := Percentage(score, total); pct != 0 {
		t.Errorf("0/0 should be 0%%, got %d", pct)
	}
}

func TestEffectivePassingScore(t *testing.T) {
	quiz := model.Quiz{}
	if got := quiz.EffectivePassingScore(); got != 80 {
		t.Errorf("default passing score should be 80, got %d", got)
	}

	threshold := 60
	quiz.PassingScore = &threshold
	if got := quiz.EffectivePassingScore(); got != 60 {
		t.Errorf("explicit passing score should win, got %d", got)
	}
}

func TestQuestionReviewExposesCorrectAnswer(t *testing.T) {
	question := model.Question{
		ID:            model.NewID(),
		Content:       "What does TCP stand for?",
		CorrectAnswer: "Transmission Control Protocol",
	}

	playerView, err := json.Marshal(question)
	if err != nil {
		t.Fatalf("marshal question: %v", err)
	}
	if strings.Contains(string(playerView), "correctAnswer") {
		t.Errorf("player payload must not carry the answer: %s", playerView)
	}

	reviewView, err := json.Marshal(QuestionReview{Question: question, CorrectAnswer: question.CorrectAnswer})
	if err != nil {
		t.Fatalf("marshal review: %v", err)
	}
	if !strings.Contains(string(reviewView), `"correctAnswer":"Transmission Control Protocol"`) {
		t.Errorf("review payload must carry the answer: %s", reviewView)
	}
}
