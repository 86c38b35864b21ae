package agents

import (
	"context"

	"github.com/scene-forge/scenes/internal/llm"
)

// PromptAgent turns a script into per-scene image generation prompts.
type PromptAgent interface {
	GenerateScenePrompts(ctx context.Context, script, style, niche string) (*llm.ScenePrompts, error)
}

// StyleAgent describes an image's visual style as keywords.
type StyleAgent interface {
	AnalyzeImageStyle(ctx context.Context, data []byte, mimeType string) (string, error)
}

// ImageAgent generates a single image per prompt. Service-level failures are
// reported inside the result pair, never as an error, so callers looping over
// a prompt list get per-item partial failure.
type ImageAgent interface {
	GenerateImage(ctx context.Context, prompt, aspectRatio string) *llm.ImageResult
}
