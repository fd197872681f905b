package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kirillkom/shopping-assistant/internal/core/domain"
	"github.com/kirillkom/shopping-assistant/internal/infrastructure/resilience"
)

const defaultBaseURL = "https://serpapi.com"

// Client queries the SerpAPI Google Shopping engine. It implements
// ports.ProductSearcher and is the primary retrieval collaborator.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, apiKey string, executor *resilience.Executor) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		executor:   executor,
	}
}

type shoppingResult struct {
	Title     string          `json:"title"`
	Price     string          `json:"price"`
	Thumbnail string          `json:"thumbnail"`
	Link      string          `json:"link"`
	Source    string          `json:"source"`
	Rating    float64         `json:"rating"`
	Reviews   json.RawMessage `json:"reviews"`
}

func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]domain.Product, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("engine", "google_shopping")
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(maxResults))
	endpoint := c.baseURL + "/search.json?" + params.Encode()

	var response struct {
		ShoppingResults []shoppingResult `json:"shopping_results"`
	}

	call := func(callCtx context.Context) error {
		return c.getJSON(callCtx, endpoint, &response)
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "serpapi.search", call, classifySearchError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("serpapi search: %w", err)
	}

	products := make([]domain.Product, 0, maxResults)
	for _, item := range response.ShoppingResults {
		if len(products) == maxResults {
			break
		}
		products = append(products, domain.Product{
			Title:        item.Title,
			Price:        item.Price,
			PriceNumeric: domain.ParsePrice(item.Price),
			ImageURL:     item.Thumbnail,
			ProductURL:   item.Link,
			Source:       item.Source,
			Rating:       item.Rating,
			ReviewsCount: decodeReviewCount(item.Reviews),
		})
	}
	return products, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &statusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode search response: %w", err)
	}
	return nil
}

// decodeReviewCount tolerates both the integer and "1,234" string shapes the
// API returns for the reviews field.
func decodeReviewCount(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		parsed, convErr := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
		if convErr == nil {
			return parsed
		}
	}
	return 0
}
