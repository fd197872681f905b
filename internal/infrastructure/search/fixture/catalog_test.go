package fixture

import (
	"context"
	"math/rand"
	"strings"
	"testing"
)

func newTestCatalog(t *testing.T) *Catalog {
	catalog, err := NewCatalog(rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return catalog
}

func TestSearchMatchesCategory(t *testing.T) {
	catalog := newTestCatalog(t)

	products, err := catalog.Search(context.Background(), "wallet", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 wallet fixtures, got %d", len(products))
	}
	for _, p := range products {
		if !strings.Contains(strings.ToLower(p.Title), "wallet") {
			t.Fatalf("expected wallet product, got %q", p.Title)
		}
	}
}

func TestSearchMatchesCategoryInsideLongerQuery(t *testing.T) {
	catalog := newTestCatalog(t)

	products, err := catalog.Search(context.Background(), "a leather wallet under $30", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected wallet category match, got %d products", len(products))
	}
}

func TestSearchUnknownQueryMixedPool(t *testing.T) {
	catalog := newTestCatalog(t)

	products, err := catalog.Search(context.Background(), "submarine", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(products) != 9 {
		t.Fatalf("expected full mixed pool, got %d", len(products))
	}
}

func TestSearchRespectsMaxResults(t *testing.T) {
	catalog := newTestCatalog(t)

	products, err := catalog.Search(context.Background(), "submarine", 4)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(products) != 4 {
		t.Fatalf("expected 4 products, got %d", len(products))
	}
}

func TestSynthesizedFieldsStayPlausible(t *testing.T) {
	catalog := newTestCatalog(t)

	products, err := catalog.Search(context.Background(), "headphones", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	for _, p := range products {
		if p.PriceNumeric <= 0 {
			t.Fatalf("expected positive price for %q", p.Title)
		}
		if !strings.HasPrefix(p.Price, "$") {
			t.Fatalf("expected dollar display price, got %q", p.Price)
		}
		if p.Purchases < 50 || p.Purchases > 5000 {
			t.Fatalf("purchases out of range for %q: %d", p.Title, p.Purchases)
		}
		if p.Rating <= 0 || p.ReviewsCount <= 0 {
			t.Fatalf("expected rating and review count for %q", p.Title)
		}
	}
}

func TestPriceJitterStaysWithinBounds(t *testing.T) {
	catalog := newTestCatalog(t)

	// Base price of the noise-cancelling fixture is 129.99; jitter is ±10%.
	for i := 0; i < 20; i++ {
		products, err := catalog.Search(context.Background(), "headphones", 10)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		for _, p := range products {
			if strings.Contains(p.Title, "Noise-Cancelling") {
				if p.PriceNumeric < 129.99*0.9-0.01 || p.PriceNumeric > 129.99*1.1+0.01 {
					t.Fatalf("jittered price out of bounds: %v", p.PriceNumeric)
				}
			}
		}
	}
}
