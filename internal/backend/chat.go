package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ChatModel calls an OpenAI-compatible chat completions API.
type ChatModel struct {
	provider  Provider
	model     string
	maxTokens int
	client    *openai.Client
	now       func() time.Time
}

// Name returns provider/model.
func (m *ChatModel) Name() string {
	return string(m.provider) + "/" + m.model
}

// Complete sends a system+user chat completion and measures its latency.
func (m *ChatModel) Complete(ctx context.Context, req Request) (Response, error) {
	now := m.now
	if now == nil {
		now = time.Now
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = m.maxTokens
	}
	chatReq := openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: float32(req.Temperature),
		MaxTokens:   maxTokens,
	}

	started := now()
	resp, err := m.client.CreateChatCompletion(ctx, chatReq)
	latency := now().Sub(started)
	if err != nil {
		return Response{Latency: latency}, &BackendError{Provider: m.provider, Op: string(req.Purpose), Err: err}
	}
	if len(resp.Choices) == 0 {
		return Response{Latency: latency}, &BackendError{Provider: m.provider, Op: string(req.Purpose), Err: errors.New("no choices returned")}
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return Response{Latency: latency}, &BackendError{
			Provider: m.provider,
			Op:       string(req.Purpose),
			Err:      fmt.Errorf("empty content (finish_reason=%s)", resp.Choices[0].FinishReason),
		}
	}
	return Response{Text: text, Latency: latency}, nil
}
