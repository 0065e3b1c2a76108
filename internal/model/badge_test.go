package model

import "testing"

func TestRawBadgeConditionDecode(t *testing.T) {
	testCases := []struct {
		name    string
		raw     RawBadgeCondition
		want    BadgeCondition
		wantErr bool
	}{
		{
			name: "quiz score",
			raw:  RawBadgeCondition{Type: ConditionQuizScore, Value: 80, QuizID: "q1"},
			want: QuizScoreCondition{Value: 80, QuizID: "q1"},
		},
		{
			name: "complete skills",
			raw:  RawBadgeCondition{Type: ConditionCompleteSkills, Value: 3, SkillIDs: []string{"s1"}},
			want: CompleteSkillsCondition{Value: 3, SkillIDs: []string{"s1"}},
		},
		{
			name: "complete courses",
			raw:  RawBadgeCondition{Type: ConditionCompleteCourses, Value: 5},
			want: CompleteCoursesCondition{Value: 5},
		},
		{
			name: "custom",
			raw:  RawBadgeCondition{Type: ConditionCustom, Value: 1},
			want: CustomCondition{Value: 1},
		},
		{
			name:    "unknown type",
			raw:     RawBadgeCondition{Type: "streak"},
			wantErr: true,
		},
		{
			name:    "empty type",
			raw:     RawBadgeCondition{},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.raw.Decode()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for type %q, got %#v", tc.raw.Type, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			switch want := tc.want.(type) {
			case QuizScoreCondition:
				cond, ok := got.(QuizScoreCondition)
				if !ok || cond.Value != want.Value || cond.QuizID != want.QuizID {
					t.Errorf("got %#v, want %#v", got, want)
				}
			case CompleteSkillsCondition:
				cond, ok := got.(CompleteSkillsCondition)
				if !ok || cond.Value != want.Value || len(cond.SkillIDs) != len(want.SkillIDs) {
					t.Errorf("got %#v, want %#v", got, want)
				}
			case CompleteCoursesCondition:
				cond, ok := got.(CompleteCoursesCondition)
				if !ok || cond.Value != want.Value {
					t.Errorf("got %#v, want %#v", got, want)
				}
			case CustomCondition:
				cond, ok := got.(CustomCondition)
				if !ok || cond.Value != want.Value {
					t.Errorf("got %#v, want %#v", got, want)
				}
			}
		})
	}
}
