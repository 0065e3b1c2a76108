package service

import "testing"

func TestPercentage(t *testing.T) {
	testCases := []struct {
		name  string
		part  int
		total int
		want  int
	}{
		{"zero of zero", 0, 0, 0},
		{"negative total", 5, -1, 0},
		{"none done", 0, 4, 0},
		{"all done", 4, 4, 100},
		{"half", 2, 4, 50},
		{"one third rounds down", 1, 3, 33},
		{"two thirds rounds up", 2, 3, 67},
		{"one of eight", 1, 8, 13},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Percentage(tc.part, tc.total); got != tc.want {
				t.Errorf("Percentage(%d, %d) = %d, want %d", tc.part, tc.total, got, tc.want)
			}
		})
	}
}
