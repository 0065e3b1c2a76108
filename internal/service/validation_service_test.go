package service

import (
	"testing"

	"skillforge_backend/internal/model"
)

func TestEvaluateCondition(t *testing.T) {
	testCases := []struct {
		name  string
		cond  model.BadgeCondition
		stats AchievementStats
		want  bool
	}{
		{
			name:  "quiz score at threshold",
			cond:  model.QuizScoreCondition{Value: 80},
			stats: AchievementStats{QuizPercentage: 80},
			want:  true,
		},
		{
			name:  "quiz score below threshold",
			cond:  model.QuizScoreCondition{Value: 80},
			stats: AchievementStats{QuizPercentage: 79},
			want:  false,
		},
		{
			name:  "quiz score above threshold",
			cond:  model.QuizScoreCondition{Value: 80},
			stats: AchievementStats{QuizPercentage: 100},
			want:  true,
		},
		{
			name:  "skills count short",
			cond:  model.CompleteSkillsCondition{Value: 3},
			stats: AchievementStats{SkillsCompleted: 2},
			want:  false,
		},
		{
			name:  "skills count met",
			cond:  model.CompleteSkillsCondition{Value: 3},
			stats: AchievementStats{SkillsCompleted: 3},
			want:  true,
		},
		{
			name:  "skill list does not narrow the count",
			cond:  model.CompleteSkillsCondition{Value: 2, SkillIDs: []string{"golang"}},
			stats: AchievementStats{SkillsCompleted: 2},
			want:  true,
		},
		{
			name:  "courses count met",
			cond:  model.CompleteCoursesCondition{Value: 5},
			stats: AchievementStats{CoursesCompleted: 5},
			want:  true,
		},
		{
			name:  "courses count short",
			cond:  model.CompleteCoursesCondition{Value: 5},
			stats: AchievementStats{CoursesCompleted: 4},
			want:  false,
		},
		{
			name:  "custom never unlocks",
			cond:  model.CustomCondition{Value: 1},
			stats: AchievementStats{QuizPercentage: 100, SkillsCompleted: 100, CoursesCompleted: 100},
			want:  false,
		},
		{
			name:  "nil condition",
			cond:  nil,
			stats: AchievementStats{QuizPercentage: 100},
			want:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EvaluateCondition(tc.cond, tc.stats); got != tc.want {
				t.Errorf("EvaluateCondition(%#v, %+v) = %v, want %v", tc.cond, tc.stats, got, tc.want)
			}
		})
	}
}
