package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-2.5-flash"

type geminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a client for the Gemini API.
func NewGeminiClient(ctx context.Context, apiKey string, modelName string) (Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if strings.TrimSpace(modelName) == "" {
		modelName = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiClient{client: client, modelName: modelName}, nil
}

// model builds a fresh model handle per call; GenerativeModel carries
// per-request configuration and must not be shared between goroutines.
func (c *geminiClient) model(systemInstruction string) *genai.GenerativeModel {
	model := c.client.GenerativeModel(c.modelName)
	if systemInstruction != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	}
	return model
}

func (c *geminiClient) Chat(ctx context.Context, systemInstruction string, history []Message, prompt string) (Reply, error) {
	session := c.model(systemInstruction).StartChat()
	session.History = toContents(history)

	started := time.Now()
	resp, err := session.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return Reply{}, fmt.Errorf("failed to send chat message: %w", err)
	}
	return c.reply(resp, time.Since(started))
}

func (c *geminiClient) Generate(ctx context.Context, systemInstruction string, prompt string) (Reply, error) {
	started := time.Now()
	resp, err := c.model(systemInstruction).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Reply{}, fmt.Errorf("failed to generate content: %w", err)
	}
	return c.reply(resp, time.Since(started))
}

func (c *geminiClient) Close() error {
	return c.client.Close()
}

func (c *geminiClient) reply(resp *genai.GenerateContentResponse, latency time.Duration) (Reply, error) {
	text := responseText(resp)
	if text == "" {
		return Reply{}, ErrEmptyResponse
	}

	reply := Reply{Text: text, Model: c.modelName, Latency: latency}
	if resp.UsageMetadata != nil {
		reply.Usage = Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	return reply, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}
	return strings.TrimSpace(builder.String())
}

func toContents(history []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, message := range history {
		role := RoleUser
		if message.Role == RoleModel {
			role = RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(message.Text)},
		})
	}
	return contents
}
