package fixture

import (
	"context"
	_ "embed"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/shopping-assistant/internal/core/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogEntry struct {
	Title        string  `yaml:"title"`
	Price        float64 `yaml:"price"`
	ImageURL     string  `yaml:"image_url"`
	ProductURL   string  `yaml:"product_url"`
	Source       string  `yaml:"source"`
	Rating       float64 `yaml:"rating"`
	ReviewsCount int     `yaml:"reviews_count"`
}

type catalogFile struct {
	Categories map[string][]catalogEntry `yaml:"categories"`
}

// Catalog is the deterministic fixture-backed retriever used when the
// retrieval collaborator is unavailable. Price jitter and purchase counts
// stand in for real marketplace variation; the rand source is injectable so
// tests stay reproducible.
type Catalog struct {
	categories map[string][]catalogEntry

	mu  sync.Mutex
	rng *rand.Rand
}

func NewCatalog(rng *rand.Rand) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(catalogYAML, &file); err != nil {
		return nil, fmt.Errorf("decode fixture catalog: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("fixture catalog has no categories")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Catalog{
		categories: file.Categories,
		rng:        rng,
	}, nil
}

// Search matches the query against category keys by substring in either
// direction. With no category hit it samples a mixed pool across all
// categories.
func (c *Catalog) Search(_ context.Context, query string, maxResults int) ([]domain.Product, error) {
	if maxResults <= 0 {
		maxResults = 10
	}
	needle := strings.ToLower(strings.TrimSpace(query))

	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.matchCategory(needle)
	if entries == nil {
		entries = c.mixedPool(maxResults)
	}
	if len(entries) > maxResults {
		entries = entries[:maxResults]
	}

	products := make([]domain.Product, 0, len(entries))
	for _, entry := range entries {
		products = append(products, c.synthesize(entry))
	}
	return products, nil
}

func (c *Catalog) matchCategory(needle string) []catalogEntry {
	if needle == "" {
		return nil
	}
	// Deterministic key order: map iteration would make the match depend on
	// runtime hashing when the needle overlaps several keys.
	keys := make([]string, 0, len(c.categories))
	for key := range c.categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.Contains(needle, key) || strings.Contains(key, needle) {
			return c.categories[key]
		}
	}
	return nil
}

func (c *Catalog) mixedPool(maxResults int) []catalogEntry {
	pool := make([]catalogEntry, 0, 9)
	keys := make([]string, 0, len(c.categories))
	for key := range c.categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		pool = append(pool, c.categories[key]...)
	}

	c.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > maxResults {
		pool = pool[:maxResults]
	}
	return pool
}

// synthesize applies bounded price jitter (±10%) and a purchases count so
// fixture results resemble live search variation.
func (c *Catalog) synthesize(entry catalogEntry) domain.Product {
	jitter := 0.9 + c.rng.Float64()*0.2
	price := math.Round(entry.Price*jitter*100) / 100

	return domain.Product{
		Title:        entry.Title,
		Price:        fmt.Sprintf("$%.2f", price),
		PriceNumeric: price,
		ImageURL:     entry.ImageURL,
		ProductURL:   entry.ProductURL,
		Source:       entry.Source,
		Rating:       entry.Rating,
		ReviewsCount: entry.ReviewsCount,
		Purchases:    50 + c.rng.Intn(4951),
	}
}
