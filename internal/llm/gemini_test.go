package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	schema := geminiSchema(briefingTestSchema.Definition)

	if schema.Type != genai.TypeObject {
		t.Fatalf("Type = %s, want OBJECT", schema.Type)
	}
	if len(schema.Properties) != 5 {
		t.Fatalf("len(Properties) = %d, want 5", len(schema.Properties))
	}
	if got := schema.Properties["headline"].Type; got != genai.TypeString {
		t.Errorf("headline type = %s, want STRING", got)
	}
	if got := len(schema.Properties["focus"].Enum); got != 2 {
		t.Errorf("focus enum size = %d, want 2", got)
	}
	skills := schema.Properties["skills"]
	if skills.Type != genai.TypeArray || skills.Items == nil || skills.Items.Type != genai.TypeString {
		t.Errorf("skills = %+v, want ARRAY of STRING", skills)
	}
	if len(schema.Required) != 3 {
		t.Errorf("len(Required) = %d, want 3", len(schema.Required))
	}
}

func TestGeminiStop(t *testing.T) {
	truncated := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonMaxTokens}},
	}
	if got := geminiStop(truncated); got != StopMaxTokens {
		t.Errorf("geminiStop(MAX_TOKENS) = %q, want %q", got, StopMaxTokens)
	}
	if got := geminiStop(&genai.GenerateContentResponse{}); got != StopEnd {
		t.Errorf("geminiStop(empty) = %q, want %q", got, StopEnd)
	}
}

func TestGeminiSchema_StringRequired(t *testing.T) {
	schema := geminiSchema(map[string]any{
		"type":     "object",
		"required": []string{"headline"},
		"properties": map[string]any{
			"headline": map[string]any{"type": "string", "description": "one line"},
			"weird":    map[string]any{"type": "null"},
		},
	})
	if len(schema.Required) != 1 || schema.Required[0] != "headline" {
		t.Errorf("Required = %v, want [headline]", schema.Required)
	}
	if got := schema.Properties["headline"].Description; got != "one line" {
		t.Errorf("headline description = %q, want %q", got, "one line")
	}
	if got := schema.Properties["weird"].Type; got != genai.TypeString {
		t.Errorf("unknown type mapped to %s, want STRING", got)
	}
}
