// Package coach turns deterministic engine output into a short
// LLM-written briefing. It never changes the plan it explains.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/pathwise/internal/llm"
	"github.com/abhisek/pathwise/internal/pathway"
	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/recommend"
)

// Request purposes recorded with each llm_requests row.
const (
	PurposePathway         = "pathway-briefing"
	PurposeRecommendations = "recommendation-briefing"
)

// ErrNothingToBrief is returned for an empty plan; no request is sent.
var ErrNothingToBrief = errors.New("nothing to brief")

// Briefing is the coach's explanation of a plan.
type Briefing struct {
	Headline     string `json:"headline"`
	Summary      string `json:"summary"`
	FirstStepTip string `json:"first_step_tip"`
}

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.4,
	}
}

// Coach generates briefings through an llm.Provider.
type Coach struct {
	provider llm.Provider
	cfg      Config
}

func New(provider llm.Provider, cfg Config) *Coach {
	return &Coach{provider: provider, cfg: cfg}
}

// BriefPathway explains lp to the learner described by p.
func (c *Coach) BriefPathway(ctx context.Context, p profile.LearnerProfile, lp *pathway.LearningPathway) (*Briefing, error) {
	if lp == nil || len(lp.Steps) == 0 {
		return nil, ErrNothingToBrief
	}
	ctx = llm.WithPurpose(ctx, PurposePathway)
	return c.generate(ctx, buildPathwayMessage(p, lp))
}

// BriefRecommendations explains recs to the learner described by p.
func (c *Coach) BriefRecommendations(ctx context.Context, p profile.LearnerProfile, recs []recommend.Recommendation) (*Briefing, error) {
	if len(recs) == 0 {
		return nil, ErrNothingToBrief
	}
	ctx = llm.WithPurpose(ctx, PurposeRecommendations)
	return c.generate(ctx, buildRecommendationsMessage(p, recs))
}

func (c *Coach) generate(ctx context.Context, userMsg string) (*Briefing, error) {
	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		Schema:      BriefingSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("briefing generation: %w", err)
	}

	var out Briefing
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse briefing response: %w", err)
	}
	return &out, nil
}
