package tfidf

import "testing"

func TestCosine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		a, b   Vector
		expect float64
	}{
		{name: "identical", a: Vector{1, 2, 3}, b: Vector{1, 2, 3}, expect: 1},
		{name: "scaled", a: Vector{1, 2, 0}, b: Vector{2, 4, 0}, expect: 1},
		{name: "orthogonal", a: Vector{1, 0}, b: Vector{0, 1}, expect: 0},
		{name: "opposite", a: Vector{1, 0}, b: Vector{-1, 0}, expect: -1},
		{name: "zero norm left", a: Vector{0, 0}, b: Vector{0, 1}, expect: 0},
		{name: "zero norm right", a: Vector{3, 4}, b: Vector{}, expect: 0},
		{name: "both empty", a: nil, b: nil, expect: 0},
		{name: "shorter vector padded with zeros", a: Vector{1, 1}, b: Vector{1}, expect: 0.7071067811865475},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Cosine(tt.a, tt.b)
			if !almostEqual(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestCosineBounds(t *testing.T) {
	t.Parallel()

	docs := [][]string{
		{"go", "grpc", "kafka", "go"},
		{"go", "kafka"},
		{"grpc", "grpc", "postgres"},
		{"rust"},
		{},
	}
	vectors, _ := Vectorizer{}.Vectorize(docs)

	for i := range vectors {
		for j := range vectors {
			sim := Cosine(vectors[i], vectors[j])
			if sim < -1 || sim > 1 {
				t.Fatalf("cosine(%d,%d)=%v out of bounds", i, j, sim)
			}
		}
	}

	if sim := Cosine(vectors[0], vectors[4]); sim != 0 {
		t.Fatalf("expected empty document similarity 0, got %v", sim)
	}
}
