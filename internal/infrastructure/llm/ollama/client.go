package ollama

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/shopping-assistant/internal/infrastructure/resilience"
)

// Client talks to a local Ollama instance. It implements ports.Completer:
// the pipeline treats it as an opaque text-in/text-out collaborator.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, model string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		executor:   executor,
	}
}

// Complete sends the system prompt and user text to the generation endpoint
// and returns the raw reply. Retryable faults surface wrapped as temporary.
func (c *Client) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	reqBody := map[string]any{
		"model":  c.model,
		"system": systemPrompt,
		"prompt": userText,
		"stream": false,
	}

	var response struct {
		Response string `json:"response"`
	}

	call := func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/api/generate", reqBody, &response, "generate")
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "ollama.generate", call, classifyOllamaError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", wrapTemporaryIfNeeded("ollama generate", err)
	}
	return strings.TrimSpace(response.Response), nil
}
