package lexicon

import (
	"context"
	"math"
	"strings"
	"unicode"
)

// valence maps sentiment-bearing words to weights, loosely following the
// VADER lexicon scale (-4..4 before normalization).
var valence = map[string]float64{
	"great":        3.1,
	"excellent":    3.2,
	"perfect":      3.4,
	"love":         3.2,
	"amazing":      3.3,
	"good":         1.9,
	"best":         3.2,
	"worth":        1.7,
	"satisfied":    2.1,
	"recommend":    2.0,
	"sturdy":       1.6,
	"comfortable":  1.8,
	"premium":      1.5,
	"exceeded":     2.0,
	"fast":         1.2,
	"quality":      0.9,
	"poor":         -2.6,
	"broke":        -2.4,
	"broken":       -2.4,
	"cheap":        -1.4,
	"disappointed": -2.3,
	"damaged":      -2.2,
	"waste":        -2.6,
	"terrible":     -3.2,
	"misleading":   -2.0,
	"overpriced":   -2.1,
	"uncomfortable": -1.9,
	"mushy":        -1.3,
	"inconsistent": -1.4,
	"unhelpful":    -1.8,
	"peeling":      -1.5,
}

var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "isnt": {}, "wasnt": {}, "doesnt": {}, "dont": {}, "wouldnt": {},
}

var boosters = map[string]float64{
	"very": 0.293, "really": 0.293, "extremely": 0.293, "highly": 0.293, "so": 0.293,
}

// Analyzer scores review text polarity on [-1, 1] from two independent
// lexical signals: a valence-weighted score with negation and booster
// handling, and a plain positive/negative token ratio. The blend weights
// follow the 0.7/0.3 reference policy.
type Analyzer struct {
	valenceWeight float64
	ratioWeight   float64
}

func New() *Analyzer {
	return &Analyzer{valenceWeight: 0.7, ratioWeight: 0.3}
}

func (a *Analyzer) Polarity(_ context.Context, text string) (float64, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0, nil
	}

	combined := a.valenceWeight*valenceScore(tokens) + a.ratioWeight*ratioScore(tokens)
	return clamp(combined), nil
}

// valenceScore sums word valences, flipping on a preceding negation and
// scaling on a preceding booster, then squashes the sum the way the VADER
// compound score does.
func valenceScore(tokens []string) float64 {
	var sum float64
	for i, token := range tokens {
		weight, ok := valence[token]
		if !ok {
			continue
		}
		if i > 0 {
			prev := tokens[i-1]
			if _, negated := negations[prev]; negated {
				weight = -weight * 0.74
			} else if boost, boosted := boosters[prev]; boosted {
				if weight > 0 {
					weight += boost
				} else {
					weight -= boost
				}
			}
		}
		sum += weight
	}
	return sum / math.Sqrt(sum*sum+15)
}

func ratioScore(tokens []string) float64 {
	var positive, negative int
	for _, token := range tokens {
		weight, ok := valence[token]
		if !ok {
			continue
		}
		if weight > 0 {
			positive++
		} else {
			negative++
		}
	}
	if positive+negative == 0 {
		return 0
	}
	return float64(positive-negative) / float64(positive+negative)
}

func tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
