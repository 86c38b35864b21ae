package agents

import (
	"context"

	"github.com/scene-forge/scenes/internal/llm"
)

// StyleAgentImpl wraps llm.Client for image style analysis.
type StyleAgentImpl struct {
	Client *llm.Client
}

// NewStyleAgent returns a StyleAgent that delegates to the LLM client.
func NewStyleAgent(client *llm.Client) StyleAgent {
	return &StyleAgentImpl{Client: client}
}

// AnalyzeImageStyle delegates to llm.Client.AnalyzeImageStyle.
func (a *StyleAgentImpl) AnalyzeImageStyle(ctx context.Context, data []byte, mimeType string) (string, error) {
	return a.Client.AnalyzeImageStyle(ctx, data, mimeType)
}
