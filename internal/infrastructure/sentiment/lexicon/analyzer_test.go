package lexicon

import (
	"context"
	"testing"
)

func TestPolarityPositiveReview(t *testing.T) {
	analyzer := New()

	score, err := analyzer.Polarity(context.Background(), "Great quality! Exactly what I was looking for.")
	if err != nil {
		t.Fatalf("Polarity() error = %v", err)
	}
	if score <= 0.1 {
		t.Fatalf("expected clearly positive polarity, got %v", score)
	}
}

func TestPolarityNegativeReview(t *testing.T) {
	analyzer := New()

	score, err := analyzer.Polarity(context.Background(), "Poor quality materials. Broke after a few uses.")
	if err != nil {
		t.Fatalf("Polarity() error = %v", err)
	}
	if score >= -0.1 {
		t.Fatalf("expected clearly negative polarity, got %v", score)
	}
}

func TestPolarityEmptyText(t *testing.T) {
	analyzer := New()

	score, err := analyzer.Polarity(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Polarity() error = %v", err)
	}
	if score != 0 {
		t.Fatalf("expected neutral polarity for empty text, got %v", score)
	}
}

func TestPolarityNeutralText(t *testing.T) {
	analyzer := New()

	score, err := analyzer.Polarity(context.Background(), "The package arrived on Tuesday.")
	if err != nil {
		t.Fatalf("Polarity() error = %v", err)
	}
	if score != 0 {
		t.Fatalf("expected neutral polarity without lexicon hits, got %v", score)
	}
}

func TestPolarityNegationLowersScore(t *testing.T) {
	analyzer := New()

	plain, err := analyzer.Polarity(context.Background(), "good product")
	if err != nil {
		t.Fatalf("Polarity() error = %v", err)
	}
	negated, err := analyzer.Polarity(context.Background(), "not good product")
	if err != nil {
		t.Fatalf("Polarity() error = %v", err)
	}
	if negated >= plain {
		t.Fatalf("expected negation to lower the score: %v vs %v", negated, plain)
	}
}

func TestPolarityBoosterRaisesScore(t *testing.T) {
	analyzer := New()

	plain, err := analyzer.Polarity(context.Background(), "good product")
	if err != nil {
		t.Fatalf("Polarity() error = %v", err)
	}
	boosted, err := analyzer.Polarity(context.Background(), "very good product")
	if err != nil {
		t.Fatalf("Polarity() error = %v", err)
	}
	if boosted <= plain {
		t.Fatalf("expected booster to raise the score: %v vs %v", boosted, plain)
	}
}

func TestPolarityStaysInRange(t *testing.T) {
	analyzer := New()
	texts := []string{
		"amazing excellent perfect love best great amazing excellent",
		"terrible waste broken poor disappointed damaged terrible waste",
	}
	for _, text := range texts {
		score, err := analyzer.Polarity(context.Background(), text)
		if err != nil {
			t.Fatalf("Polarity() error = %v", err)
		}
		if score < -1 || score > 1 {
			t.Fatalf("polarity out of range for %q: %v", text, score)
		}
	}
}
