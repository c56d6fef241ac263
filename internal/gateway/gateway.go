// Package gateway talks to the generation model. It is the only place
// the process suspends: everything it returns has already been parsed
// and schema-checked, and every way a call can fail collapses into
// GenerationError.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/velin-dev/uisketch/internal/config"
	"github.com/velin-dev/uisketch/internal/models"
)

// GenerationError is the single failure kind for gateway calls:
// transport, parse, and schema failures all land here. The message is
// surfaced verbatim on the region.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func failed(message string, err error) *GenerationError {
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	return &GenerationError{Message: message, Err: err}
}

const systemPrompt = `You generate user interface descriptions as JSON.
Respond with a single JSON object of the recursive form:
{"element": "tag", "className": "classes", "props": {"name": "value"}, "content": "text", "children": [...]}
"element" is mandatory on every node and must be a common HTML tag name.
All other fields are optional. Use literal coordinates from the provided
context to judge proportions. Respond with JSON only, no prose.`

// Client is the OpenAI-backed generator.
type Client struct {
	api   *openai.Client
	model string
}

// New builds a gateway client from the active profile. Returns nil when
// the profile carries no credentials; callers treat a nil client as
// "generation unavailable".
func New(cfg *config.Config) *Client {
	if !cfg.IsValid() {
		return nil
	}
	clientConfig := openai.DefaultConfig(cfg.GetAPIKey())
	if cfg.GetBaseURL() != "" {
		clientConfig.BaseURL = cfg.GetBaseURL()
	}
	return &Client{
		api:   openai.NewClientWithConfig(clientConfig),
		model: cfg.GetModel(),
	}
}

// NewWithClient wires a prebuilt API client, for tests and custom
// transports.
func NewWithClient(api *openai.Client, model string) *Client {
	return &Client{api: api, model: model}
}

// Generate produces a component tree for a prompt plus positional
// context.
func (c *Client) Generate(ctx context.Context, prompt string, genCtx models.GenerationContext) (*models.ComponentNode, error) {
	contextJSON, err := json.Marshal(genCtx)
	if err != nil {
		return nil, failed("encoding generation context", err)
	}

	user := fmt.Sprintf("Context: %s\n\nDescribe this UI region: %s", contextJSON, prompt)
	return c.complete(ctx, user)
}

// Refine replaces an existing tree according to a free-text instruction.
func (c *Client) Refine(ctx context.Context, component *models.ComponentNode, instruction string) (*models.ComponentNode, error) {
	current, err := json.Marshal(component)
	if err != nil {
		return nil, failed("encoding current component", err)
	}

	user := fmt.Sprintf("Current component: %s\n\nRevise it per this instruction and return the full replacement: %s", current, instruction)
	return c.complete(ctx, user)
}

func (c *Client) complete(ctx context.Context, user string) (*models.ComponentNode, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, failed("gateway call failed", err)
	}
	if len(resp.Choices) == 0 {
		return nil, failed("gateway returned no choices", nil)
	}

	return DecodeComponent(resp.Choices[0].Message.Content)
}

// DecodeComponent parses a model reply into a component tree. Markdown
// code fences around the JSON are tolerated; anything else that fails to
// parse or lacks the mandatory element field is a GenerationError.
func DecodeComponent(reply string) (*models.ComponentNode, error) {
	node, err := models.ParseComponent([]byte(stripFences(reply)))
	if err != nil {
		return nil, failed("gateway returned invalid component", err)
	}
	return node, nil
}

// stripFences removes a surrounding markdown code fence, with or without
// a language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// Drop the language tag line (```json).
		if !strings.ContainsAny(s[:i], "{[") {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
