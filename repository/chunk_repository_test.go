package repository

import (
	"strings"
	"testing"
)

func TestFormatVector(t *testing.T) {
	tests := []struct {
		name      string
		embedding []float32
		want      string
	}{
		{"empty", nil, "[]"},
		{"single", []float32{0.5}, "[0.500000]"},
		{"multi", []float32{0.1, -0.25, 1}, "[0.100000,-0.250000,1.000000]"},
		{"zero", []float32{0}, "[0.000000]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatVector(tt.embedding); got != tt.want {
				t.Errorf("formatVector(%v) = %q, want %q", tt.embedding, got, tt.want)
			}
		})
	}
}

func TestFormatVectorFullDimensions(t *testing.T) {
	embedding := make([]float32, embeddingDimensions)
	for i := range embedding {
		embedding[i] = float32(i) / float32(embeddingDimensions)
	}

	got := formatVector(embedding)
	if !strings.HasPrefix(got, "[") || !strings.HasSuffix(got, "]") {
		t.Errorf("vector literal should be bracketed, got %q...", got[:20])
	}
	if n := strings.Count(got, ",") + 1; n != embeddingDimensions {
		t.Errorf("expected %d components, got %d", embeddingDimensions, n)
	}
}
