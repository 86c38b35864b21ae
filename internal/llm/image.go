package llm

import (
	"context"
	"encoding/base64"

	"github.com/rs/zerolog/log"
	unifiedgenai "google.golang.org/genai"
)

// GenerateImage generates a single JPEG image for the prompt at the given
// aspect ratio. Unlike the other operations it never returns an error value:
// callers generating an image per prompt want per-item partial failure, so
// every outcome is reported through the ImageResult pair. Exactly one of
// Base64 and Error is populated.
func (c *Client) GenerateImage(ctx context.Context, prompt, aspectRatio string) *ImageResult {
	log.Debug().
		Str("prompt", prompt[:min(80, len(prompt))]).
		Str("aspect_ratio", aspectRatio).
		Msg("Generating image")

	if c.imageClient == nil {
		log.Error().Msg("Image client not initialized")
		return &ImageResult{Error: imageErrGeneric}
	}

	config := &unifiedgenai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    aspectRatio,
		OutputMIMEType: "image/jpeg",
	}

	resp, err := c.imageClient.Models.GenerateImages(ctx, c.modelImage, prompt, config)
	if err != nil {
		log.Error().Err(err).
			Str("model", c.modelImage).
			Str("prompt_preview", prompt[:min(80, len(prompt))]).
			Msg("Image generation request failed")
		return &ImageResult{Error: classifyImageError(err)}
	}

	for _, img := range resp.GeneratedImages {
		if img.Image == nil || len(img.Image.ImageBytes) == 0 {
			continue
		}
		log.Info().
			Str("model", c.modelImage).
			Int("image_size_bytes", len(img.Image.ImageBytes)).
			Str("aspect_ratio", aspectRatio).
			Msg("Image generated")
		return &ImageResult{Base64: base64.StdEncoding.EncodeToString(img.Image.ImageBytes)}
	}

	// Soft failure: the call succeeded but no image came back.
	log.Warn().
		Str("model", c.modelImage).
		Int("generated_images", len(resp.GeneratedImages)).
		Msg("Image generation returned no image")
	return &ImageResult{Error: imageErrNoImage}
}
