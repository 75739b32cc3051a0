package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "senior go developer",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "golang",
			limit:  10,
			expect: "golang",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "python django",
			limit:  6,
			expect: "python...",
		},
		{
			name:   "collapses job description whitespace",
			input:  "  Python\n\n  Django\tREST  ",
			limit:  50,
			expect: "Python Django REST",
		},
		{
			name:   "counts runes",
			input:  "Пожалуйста",
			limit:  3,
			expect: "Пож...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
