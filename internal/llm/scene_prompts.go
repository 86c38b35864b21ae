package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
)

// GenerateScenePrompts turns a script into one image generation prompt per
// visual scene. The instruction embeds the script, the visual style, and the
// optional niche, and requests strict JSON shaped as {"prompts": ["..."]}.
// Known failure modes (safety block, recitation block, malformed or
// misshapen JSON) surface as distinct errors; anything else is logged and
// collapsed into ErrServiceUnexpected.
func (c *Client) GenerateScenePrompts(ctx context.Context, script, style, niche string) (*ScenePrompts, error) {
	instruction := buildScenePromptInstruction(script, style, niche)

	log.Debug().
		Int("script_length", len(script)).
		Str("style", style).
		Str("niche", niche).
		Msg("Generating scene prompts")

	response, err := c.generatePromptJSON(ctx, instruction)
	if err != nil {
		log.Error().Err(err).Msg("Scene prompt generation request failed")
		return nil, sanitizeErr(err)
	}

	logGeminiResponse("GenerateScenePrompts", response)

	prompts, err := parseScenePrompts(response)
	if err != nil {
		log.Error().Err(err).Str("response", response).Msg("Scene prompt response rejected")
		return nil, sanitizeErr(err)
	}

	log.Info().
		Int("prompt_count", len(prompts)).
		Msg("Scene prompt generation complete")

	return &ScenePrompts{Prompts: prompts, RequestPrompt: instruction}, nil
}

// generatePromptJSON dispatches the instruction and returns the raw response text.
// Primary path is the genai client with a response schema for structured JSON
// output; when it is unavailable, langchaingo with a JSON MIME type is used.
func (c *Client) generatePromptJSON(ctx context.Context, instruction string) (string, error) {
	if c.genaiClient != nil {
		model := c.genaiClient.GenerativeModel(c.modelText)
		model.SetTemperature(0.7)
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = scenePromptSchema()

		resp, err := model.GenerateContent(ctx, genai.Text(instruction))
		if err != nil {
			return "", err
		}
		text := strings.TrimSpace(extractTextFromGenaiResponse(resp))
		if text == "" {
			reason := finishReasonOf(resp)
			log.Warn().
				Str("finish_reason", reason.String()).
				Msg("Empty scene prompt response")
			return "", classifyEmptyResponse(reason)
		}
		return text, nil
	}

	if c.llmFallback != nil {
		response, err := llms.GenerateFromSinglePrompt(ctx, c.llmFallback, instruction,
			llms.WithTemperature(0.7),
			llms.WithResponseMIMEType("application/json"),
		)
		if err != nil {
			return "", err
		}
		text := strings.TrimSpace(response)
		if text == "" {
			// langchaingo exposes no finish reason, so this stays the generic empty case
			return "", ErrEmptyResponse
		}
		return text, nil
	}

	return "", fmt.Errorf("no text model available")
}

// parseScenePrompts validates the response text: it must be valid JSON, an
// object, and carry an array-of-strings prompts field.
func parseScenePrompts(response string) ([]string, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var raw any
	if err := json.Unmarshal([]byte(response), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrBadShape
	}
	arr, ok := obj["prompts"].([]any)
	if !ok {
		return nil, ErrBadShape
	}

	prompts := make([]string, 0, len(arr))
	for _, v := range arr {
		s, ok := v.(string)
		if !ok {
			return nil, ErrBadShape
		}
		prompts = append(prompts, s)
	}
	return prompts, nil
}

// buildScenePromptInstruction assembles the instruction text. The script and
// style are embedded verbatim; the niche line is present only when non-empty.
func buildScenePromptInstruction(script, style, niche string) string {
	var b strings.Builder
	b.WriteString(`You are a visual director for short-form video. Break the script below into its distinct visual scenes, in order, and write one detailed image generation prompt per scene.

Each prompt must:
- Describe a single still image: subject, setting, composition, lighting.
- Apply the requested visual style consistently across all scenes.
- Stand alone; never reference other scenes or the script itself.

Safety policy: if the script contains violent, sexual, or otherwise sensitive
material, do not refuse. Abstract it into safe, symbolic imagery (silhouettes,
shadows, empty settings, metaphor) that preserves the scene's mood.

`)
	fmt.Fprintf(&b, "Visual style: %s\n", style)
	if niche != "" {
		fmt.Fprintf(&b, "Content niche: %s\n", niche)
	}
	fmt.Fprintf(&b, "\nScript:\n%s\n", script)
	b.WriteString(`
Respond with JSON only, shaped exactly as {"prompts": ["..."]}. No markdown, no commentary.`)
	return b.String()
}

// scenePromptSchema returns the genai.Schema for the prompt JSON: {"prompts": ["..."]}.
func scenePromptSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"prompts": {
				Type:        genai.TypeArray,
				Description: "One image generation prompt per visual scene, in script order",
				Items: &genai.Schema{
					Type: genai.TypeString,
				},
			},
		},
		Required: []string{"prompts"},
	}
}
