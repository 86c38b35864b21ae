package agents

import (
	"context"

	"github.com/scene-forge/scenes/internal/llm"
)

// PromptAgentImpl wraps llm.Client for scene prompt generation.
type PromptAgentImpl struct {
	Client *llm.Client
}

// NewPromptAgent returns a PromptAgent that delegates to the LLM client.
func NewPromptAgent(client *llm.Client) PromptAgent {
	return &PromptAgentImpl{Client: client}
}

// GenerateScenePrompts delegates to llm.Client.GenerateScenePrompts.
func (a *PromptAgentImpl) GenerateScenePrompts(ctx context.Context, script, style, niche string) (*llm.ScenePrompts, error) {
	return a.Client.GenerateScenePrompts(ctx, script, style, niche)
}
