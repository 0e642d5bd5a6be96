package processing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/saaabbasi2121-ai/Vidra-AI/internal/platform"
)

// ErrMissingAPIKey is returned before any network call when no credential is
// configured; the dashboard turns it into a blocking configuration prompt.
var ErrMissingAPIKey = errors.New("generation API key not configured")

// Generator wraps the AI backend used for script, image and speech synthesis.
type Generator struct {
	client      openai.Client
	chatModel   string
	imageModel  string
	speechModel string
	placeholder string
	concurrency int
}

// NewGenerator builds a Generator from the platform config.
func NewGenerator(cfg platform.Config) (*Generator, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAI.APIKey)}
	if cfg.OpenAI.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAI.BaseURL))
	}

	concurrency := cfg.Generation.ImageConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	placeholder := cfg.Generation.PlaceholderImageURL
	if placeholder == "" {
		placeholder = platform.DefaultPlaceholderImage
	}

	return &Generator{
		client:      openai.NewClient(opts...),
		chatModel:   cfg.OpenAI.ChatModel,
		imageModel:  cfg.OpenAI.ImageModel,
		speechModel: cfg.OpenAI.SpeechModel,
		placeholder: placeholder,
		concurrency: concurrency,
	}, nil
}

// PlaceholderImage is the frame substituted for a failed scene image.
func (g *Generator) PlaceholderImage() string {
	return g.placeholder
}

// TestConnection issues a minimal prompt to validate the credential before a
// full bundle is attempted.
func (g *Generator) TestConnection(ctx context.Context) error {
	_, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage("ping"),
		},
		Model: openai.ChatModel(g.chatModel),
	})
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

// getStructuredResponse is a helper to call the chat API with JSON schema enforcement
func getStructuredResponse[T any](ctx context.Context, g *Generator, prompt string, schema interface{}) (*T, error) {
	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "structured_response",
		Description: openai.String("Structured data response"),
		Schema:      schema,
		Strict:      openai.Bool(true),
	}

	chatCompletion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(g.chatModel),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("generation API error: %w", err)
	}

	if len(chatCompletion.Choices) == 0 {
		return nil, errors.New("no response from generation API")
	}

	rawResponse := chatCompletion.Choices[0].Message.Content

	var structuredResponse T
	if err := json.Unmarshal([]byte(rawResponse), &structuredResponse); err != nil {
		return nil, fmt.Errorf("failed to parse generation JSON response: %w\nRaw content: %s", err, rawResponse)
	}

	return &structuredResponse, nil
}
