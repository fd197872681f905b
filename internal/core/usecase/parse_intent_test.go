package usecase

import (
	"context"
	"errors"
	"testing"
)

type completerFake struct {
	reply string
	err   error

	lastSystem string
	lastUser   string
}

func (f *completerFake) Complete(_ context.Context, systemPrompt, userText string) (string, error) {
	f.lastSystem = systemPrompt
	f.lastUser = userText
	return f.reply, f.err
}

func TestParseStructuredReply(t *testing.T) {
	llm := &completerFake{reply: `{"product_type":"wallet","features":["leather","RFID blocking"],"price_constraint":{"max":30},"brand_preference":null,"use_case":"daily carry"}`}
	parser := NewIntentParser(llm)

	intent, err := parser.Parse(context.Background(), "leather wallet under $30")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if intent.ProductType != "wallet" {
		t.Fatalf("expected product type wallet, got %s", intent.ProductType)
	}
	if len(intent.Features) != 2 || intent.Features[1] != "RFID blocking" {
		t.Fatalf("unexpected features %v", intent.Features)
	}
	if intent.PriceConstraint == nil || intent.PriceConstraint.Max == nil || *intent.PriceConstraint.Max != 30 {
		t.Fatalf("expected max price 30, got %+v", intent.PriceConstraint)
	}
	if intent.UseCase != "daily carry" {
		t.Fatalf("expected use case daily carry, got %s", intent.UseCase)
	}
}

func TestParseReplyWrappedInProse(t *testing.T) {
	llm := &completerFake{reply: "Sure, here is the analysis:\n{\"product_type\":\"mouse\",\"features\":[\"wireless\"],\"use_case\":\"gaming\"}\nLet me know if you need more."}
	parser := NewIntentParser(llm)

	intent, err := parser.Parse(context.Background(), "wireless gaming mouse")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if intent.ProductType != "mouse" {
		t.Fatalf("expected product type mouse, got %s", intent.ProductType)
	}
}

func TestParseUndecodableReplyFallsBack(t *testing.T) {
	llm := &completerFake{reply: "I could not understand the query."}
	parser := NewIntentParser(llm)

	intent, err := parser.Parse(context.Background(), "gibberish")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if intent.ProductType != "unknown" {
		t.Fatalf("expected fallback product type, got %s", intent.ProductType)
	}
	if intent.UseCase != "general" {
		t.Fatalf("expected fallback use case, got %s", intent.UseCase)
	}
	if intent.Features == nil || len(intent.Features) != 0 {
		t.Fatalf("expected empty features, got %v", intent.Features)
	}
}

func TestParseCompleterFailure(t *testing.T) {
	llm := &completerFake{err: errors.New("connection refused")}
	parser := NewIntentParser(llm)

	intent, err := parser.Parse(context.Background(), "wallet")
	if err == nil {
		t.Fatalf("expected error")
	}
	if intent.ProductType != "unknown" {
		t.Fatalf("expected fallback intent on transport failure, got %s", intent.ProductType)
	}
}

func TestParseFeatureAsSingleString(t *testing.T) {
	llm := &completerFake{reply: `{"product_type":"headphones","features":"noise cancelling","use_case":"travel"}`}
	parser := NewIntentParser(llm)

	intent, err := parser.Parse(context.Background(), "noise cancelling headphones")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(intent.Features) != 1 || intent.Features[0] != "noise cancelling" {
		t.Fatalf("expected single feature, got %v", intent.Features)
	}
}

func TestParsePriceConstraintShapes(t *testing.T) {
	cases := []struct {
		name    string
		reply   string
		wantMax float64
	}{
		{"bare number", `{"product_type":"wallet","price_constraint":30}`, 30},
		{"dollar string", `{"product_type":"wallet","price_constraint":"$45.50"}`, 45.50},
		{"bounds object", `{"product_type":"wallet","price_constraint":{"max":25}}`, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parser := NewIntentParser(&completerFake{reply: tc.reply})
			intent, err := parser.Parse(context.Background(), "wallet")
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if intent.PriceConstraint == nil || intent.PriceConstraint.Max == nil {
				t.Fatalf("expected max bound, got %+v", intent.PriceConstraint)
			}
			if *intent.PriceConstraint.Max != tc.wantMax {
				t.Fatalf("expected max %v, got %v", tc.wantMax, *intent.PriceConstraint.Max)
			}
		})
	}
}

func TestParseNullPriceConstraint(t *testing.T) {
	parser := NewIntentParser(&completerFake{reply: `{"product_type":"wallet","price_constraint":null}`})

	intent, err := parser.Parse(context.Background(), "wallet")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if intent.PriceConstraint != nil {
		t.Fatalf("expected nil price constraint, got %+v", intent.PriceConstraint)
	}
}
