package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Errorf("Content = %s, want {\"a\":1}", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Errorf("InputTokens = %d, want 10", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Errorf("Content = %s, want {\"b\":2}", resp2.Content)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("empty queue: expected ErrProviderUnavailable, got: %T", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("CallCount() = %d, want 3", mock.CallCount())
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"headline":"only"}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: briefingTestSchema})
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestMockProvider_Truncated(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"headline":"cut`), Stop: StopMaxTokens})
	_, err := mock.Generate(context.Background(), Request{Schema: briefingTestSchema})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
	if string(maxTok.Content) != `{"headline":"cut` {
		t.Errorf("Content = %s, want the partial reply", maxTok.Content)
	}
}

func TestReplyResponse(t *testing.T) {
	r := reply{text: `{"headline":"h","summary":"s","first_step_tip":"t"}`, model: "m", usage: Usage{InputTokens: 3}}
	resp, err := r.response(Request{Schema: briefingTestSchema})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StopReason != StopEnd {
		t.Errorf("StopReason = %q, want %q", resp.StopReason, StopEnd)
	}
	if resp.Model != "m" || resp.Usage.InputTokens != 3 {
		t.Errorf("Response = %+v, want model m with 3 input tokens", resp)
	}

	// Without a schema any text passes through.
	if _, err := (reply{text: "plain"}).response(Request{}); err != nil {
		t.Errorf("schemaless reply: unexpected error %v", err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unspecified" {
		t.Errorf("PurposeFrom(empty) = %q, want unspecified", p)
	}
	ctx = WithPurpose(ctx, "pathway-briefing")
	if p := PurposeFrom(ctx); p != "pathway-briefing" {
		t.Errorf("PurposeFrom() = %q, want pathway-briefing", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai with key", Config{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: ProviderGemini}, true},
		{"openrouter with key", Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}, false},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "cohere"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if err := (Config{}).Validate(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Validate(empty) = %v, want ErrNotConfigured", err)
	}
}

func TestDiscover(t *testing.T) {
	for _, env := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(env, "")
	}

	if _, ok := Discover(DefaultConfig()); ok {
		t.Fatal("Discover() with no keys reported a provider")
	}

	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	cfg, ok := Discover(DefaultConfig())
	if !ok || cfg.Provider != ProviderGemini || cfg.Gemini.APIKey != "g-key" {
		t.Errorf("Discover() = %q/%q, %v; want gemini with env key", cfg.Provider, cfg.Gemini.APIKey, ok)
	}

	// A configured key wins over the environment.
	in := DefaultConfig()
	in.OpenRouter.APIKey = "from-config"
	cfg, _ = Discover(in)
	if cfg.Provider != ProviderOpenRouter || cfg.OpenRouter.APIKey != "from-config" {
		t.Errorf("Discover() = %q/%q, want openrouter/from-config", cfg.Provider, cfg.OpenRouter.APIKey)
	}

	// An explicit provider is left alone.
	in = DefaultConfig()
	in.Provider = ProviderMock
	if cfg, _ = Discover(in); cfg.Provider != ProviderMock {
		t.Errorf("Discover() provider = %q, want mock", cfg.Provider)
	}
}

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewProvider(mock) error: %v", err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Errorf("NewProvider() = %T, want *RetryProvider", p)
	}

	cfg.Provider = ProviderAnthropic
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Error("NewProvider(anthropic without key) succeeded")
	}

	cfg.Provider = ProviderOpenRouter
	cfg.OpenRouter.APIKey = "sk-or"
	p, err = NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewProvider(openrouter) error: %v", err)
	}
	if p.ModelID() != cfg.OpenRouter.Model {
		t.Errorf("ModelID() = %q, want %q", p.ModelID(), cfg.OpenRouter.Model)
	}
}

func TestLookupCost(t *testing.T) {
	c, ok := LookupCost("gpt-4o-mini")
	if !ok {
		t.Fatal("gpt-4o-mini has no price")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Cost(1M,1M) = %v, want 0.75", got)
	}
	if _, ok := LookupCost("google/gemini-2.0-flash-001"); !ok {
		t.Error("vendor-qualified id not priced")
	}
	if _, ok := LookupCost("mock"); ok {
		t.Error("mock should be unpriced")
	}

	usd, unpriced := TotalCost([]CostedRequest{
		{Model: "gemini-2.0-flash", InputTokens: 1_000_000},
		{Model: "mock", InputTokens: 50},
	})
	if math.Abs(usd-0.1) > 1e-9 || unpriced != 1 {
		t.Errorf("TotalCost() = %v, %d; want 0.1, 1", usd, unpriced)
	}
}
