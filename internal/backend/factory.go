package backend

import (
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Default endpoints and models per provider.
const (
	DefaultXAIBaseURL  = "https://api.x.ai/v1"
	DefaultXAIModel    = "grok-4"
	DefaultOpenAIModel = "gpt-4.1-mini"
	DefaultMaxTokens   = 4096
)

// Settings selects and configures a backend variant.
type Settings struct {
	Provider    Provider
	Model       string
	BaseURL     string
	APIKey      string
	MaxTokens   int
	StubAnswer  string
	StubVerdict string
	HTTPClient  openai.HTTPDoer
}

// New builds the Model for settings.Provider. It is called once at startup.
func New(settings Settings) (Model, error) {
	switch settings.Provider {
	case ProviderStub:
		return NewStub(settings.StubAnswer, settings.StubVerdict), nil
	case ProviderOpenAI:
		return newChatModel(settings, "", DefaultOpenAIModel)
	case ProviderXAI:
		return newChatModel(settings, DefaultXAIBaseURL, DefaultXAIModel)
	default:
		return nil, fmt.Errorf("unsupported provider %q", settings.Provider)
	}
}

func newChatModel(settings Settings, defaultBaseURL, defaultModel string) (*ChatModel, error) {
	apiKey := strings.TrimSpace(settings.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%s: api key is required", settings.Provider)
	}
	model := strings.TrimSpace(settings.Model)
	if model == "" {
		model = defaultModel
	}
	clientConfig := openai.DefaultConfig(apiKey)
	baseURL := strings.TrimSpace(settings.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if baseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if settings.HTTPClient != nil {
		clientConfig.HTTPClient = settings.HTTPClient
	}
	maxTokens := settings.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &ChatModel{
		provider:  settings.Provider,
		model:     model,
		maxTokens: maxTokens,
		client:    openai.NewClientWithConfig(clientConfig),
	}, nil
}
