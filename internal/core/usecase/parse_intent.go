package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kirillkom/shopping-assistant/internal/core/domain"
	"github.com/kirillkom/shopping-assistant/internal/core/ports"
)

const intentSystemPrompt = `You are an expert at parsing shopping queries.
Extract the following information from the user's query:
1. Product type (e.g., "wallet", "mouse", "headphones")
2. Key features mentioned (e.g., "leather", "RGB", "wireless")
3. Budget/price constraints if mentioned
4. Brand preferences if any
5. Use case or purpose

Return your analysis as a JSON object with these fields:
- product_type (string)
- features (array of strings)
- price_constraint (object with optional "min" and "max" numbers, or null)
- brand_preference (string or null)
- use_case (string)
No markdown, no extra keys.`

// IntentParser turns a free-text query into a structured intent via the
// language-model collaborator.
type IntentParser struct {
	llm ports.Completer
}

func NewIntentParser(llm ports.Completer) *IntentParser {
	return &IntentParser{llm: llm}
}

// Parse asks the model for a structured intent. A reply that cannot be
// decoded falls back to the default intent and never returns an error; only
// a failed collaborator call is reported to the caller.
func (p *IntentParser) Parse(ctx context.Context, query string) (domain.Intent, error) {
	raw, err := p.llm.Complete(ctx, intentSystemPrompt, "Parse this shopping query: "+query)
	if err != nil {
		return domain.DefaultIntent(), fmt.Errorf("llm complete: %w", err)
	}
	return decodeIntent(raw), nil
}

// rawIntent tolerates the loose shapes models actually emit: features as a
// single string, price constraints as a bare number or a "$30" string.
type rawIntent struct {
	ProductType     string          `json:"product_type"`
	Features        json.RawMessage `json:"features"`
	PriceConstraint json.RawMessage `json:"price_constraint"`
	BrandPreference string          `json:"brand_preference"`
	UseCase         string          `json:"use_case"`
}

func decodeIntent(reply string) domain.Intent {
	var raw rawIntent
	if err := json.Unmarshal([]byte(extractJSONObject(reply)), &raw); err != nil {
		return domain.DefaultIntent()
	}

	intent := domain.Intent{
		ProductType:     strings.TrimSpace(raw.ProductType),
		Features:        decodeFeatures(raw.Features),
		PriceConstraint: decodePriceConstraint(raw.PriceConstraint),
		BrandPreference: strings.TrimSpace(raw.BrandPreference),
		UseCase:         strings.TrimSpace(raw.UseCase),
	}
	return intent.Normalize()
}

// extractJSONObject cuts the substring between the first '{' and the last
// '}' so prose around the object does not break decoding.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}

func decodeFeatures(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, f := range list {
			if f = strings.TrimSpace(f); f != "" {
				out = append(out, f)
			}
		}
		return out
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single = strings.TrimSpace(single); single != "" {
			return []string{single}
		}
	}
	return []string{}
}

func decodePriceConstraint(raw json.RawMessage) *domain.PriceRange {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var bounds struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	}
	if err := json.Unmarshal(raw, &bounds); err == nil && (bounds.Min != nil || bounds.Max != nil) {
		return &domain.PriceRange{Min: bounds.Min, Max: bounds.Max}
	}

	// A bare number or a "$30" style string is treated as an upper bound.
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil && number > 0 {
		return &domain.PriceRange{Max: &number}
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if value := domain.ParsePrice(text); value > 0 {
			return &domain.PriceRange{Max: &value}
		}
	}
	return nil
}
