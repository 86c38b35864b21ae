package agents

import (
	"context"

	"github.com/scene-forge/scenes/internal/llm"
)

// ImageAgentImpl wraps llm.Client for image generation.
type ImageAgentImpl struct {
	Client *llm.Client
}

// NewImageAgent returns an ImageAgent that delegates to the LLM client.
func NewImageAgent(client *llm.Client) ImageAgent {
	return &ImageAgentImpl{Client: client}
}

// GenerateImage delegates to llm.Client.GenerateImage.
func (a *ImageAgentImpl) GenerateImage(ctx context.Context, prompt, aspectRatio string) *llm.ImageResult {
	return a.Client.GenerateImage(ctx, prompt, aspectRatio)
}
