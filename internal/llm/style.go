package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
)

// styleInstruction is the fixed instruction sent alongside the image part.
const styleInstruction = `Describe the visual style of this image as a concise, comma-separated list of keywords covering lighting, color palette, composition, medium, and mood. Keywords only, no full sentences.`

// AnalyzeImageStyle describes an image's visual style as comma-separated
// keywords. Any failure, including an empty response, is logged in full and
// replaced with ErrStyleAnalysis so service detail never reaches the caller.
func (c *Client) AnalyzeImageStyle(ctx context.Context, data []byte, mimeType string) (string, error) {
	log.Debug().
		Str("mime_type", mimeType).
		Int("image_size_bytes", len(data)).
		Msg("Analyzing image style")

	style, err := c.analyzeImageStyle(ctx, data, mimeType)
	if err != nil {
		log.Error().Err(err).Str("mime_type", mimeType).Msg("Image style analysis failed")
		return "", ErrStyleAnalysis
	}

	log.Info().
		Int("style_length", len(style)).
		Msg("Image style analysis complete")

	return style, nil
}

func (c *Client) analyzeImageStyle(ctx context.Context, data []byte, mimeType string) (string, error) {
	if c.genaiClient == nil {
		return "", fmt.Errorf("genai client not initialized")
	}

	model := c.genaiClient.GenerativeModel(c.modelVision)
	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: data},
		genai.Text(styleInstruction),
	)
	if err != nil {
		return "", fmt.Errorf("gemini vision failed: %w", err)
	}

	text := strings.TrimSpace(extractTextFromGenaiResponse(resp))
	logGeminiResponse("AnalyzeImageStyle", text)
	if text == "" {
		return "", fmt.Errorf("empty style analysis response (finish reason: %s)", finishReasonOf(resp))
	}
	return text, nil
}
