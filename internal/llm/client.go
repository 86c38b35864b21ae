package llm

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"google.golang.org/api/option"
	unifiedgenai "google.golang.org/genai"
)

// maxGeminiResponseLogBytes is the max length of a Gemini response body to log in full (to avoid huge logs).
const maxGeminiResponseLogBytes = 8192

// Config holds everything the client needs; the credential is injected
// explicitly so tests and callers never depend on ambient environment lookups.
type Config struct {
	APIKey      string
	APIEndpoint string // optional Gemini API base URL override
	ModelText   string // prompt generation, e.g. gemini-2.5-flash
	ModelVision string // style analysis, e.g. gemini-2.5-flash
	ModelImage  string // image synthesis, e.g. imagen-4.0-generate-001
}

// Client wraps the Gemini API clients for scene prompt generation,
// image style analysis, and image generation. The three operations share
// no mutable state and are safe for concurrent use.
type Client struct {
	modelText   string
	modelVision string
	modelImage  string
	genaiClient *genai.Client        // text + vision, supports response schemas
	imageClient *unifiedgenai.Client // unified genai SDK for Imagen
	llmFallback llms.Model           // langchaingo fallback for prompt generation
}

// ScenePrompts is the result of prompt generation: one prompt per visual
// scene, plus the exact instruction text that was sent, for caller auditability.
type ScenePrompts struct {
	Prompts       []string
	RequestPrompt string
}

// ImageResult pairs base64-encoded image bytes with a human-readable error;
// exactly one of the two is populated.
type ImageResult struct {
	Base64 string `json:"base64,omitempty"`
	Error  string `json:"error,omitempty"`
}

// httpClientForEndpoint returns an http.Client that rewrites request URLs to the given base endpoint.
func httpClientForEndpoint(baseEndpoint string) *http.Client {
	base, err := url.Parse(baseEndpoint)
	if err != nil {
		log.Warn().Err(err).Str("endpoint", baseEndpoint).Msg("Invalid GEMINI_API_ENDPOINT, using default")
		return nil
	}
	base.Path = strings.TrimSuffix(base.Path, "/")
	return &http.Client{
		Transport: &endpointRoundTripper{base: base, next: http.DefaultTransport},
	}
}

// endpointRoundTripper rewrites request URLs to a custom base (scheme, host, path prefix).
type endpointRoundTripper struct {
	base *url.URL
	next http.RoundTripper
}

func (e *endpointRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	req2.URL.Scheme = e.base.Scheme
	req2.URL.Host = e.base.Host
	req2.URL.Path = path.Join(e.base.Path, strings.TrimPrefix(req.URL.Path, "/"))
	if req.URL.RawQuery != "" {
		req2.URL.RawQuery = req.URL.RawQuery
	}
	return e.next.RoundTrip(req2)
}

// logGeminiResponse logs Gemini response text, truncating if over maxGeminiResponseLogBytes.
func logGeminiResponse(caller, raw string) {
	if len(raw) <= maxGeminiResponseLogBytes {
		log.Info().Str("caller", caller).Str("gemini_response", raw).Msg("Gemini response")
		return
	}
	log.Info().
		Str("caller", caller).
		Str("gemini_response", raw[:maxGeminiResponseLogBytes]+"... [truncated]").
		Int("gemini_response_len", len(raw)).
		Msg("Gemini response")
}

// NewClient creates the AI service client. An empty API key is a
// configuration error and fails immediately, before any operation runs.
// Individual SDK clients that fail to initialize are logged and left nil;
// the affected operation falls back or reports a service error at call time.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.ModelText == "" {
		cfg.ModelText = "gemini-2.5-flash"
	}
	if cfg.ModelVision == "" {
		cfg.ModelVision = "gemini-2.5-flash"
	}
	if cfg.ModelImage == "" {
		cfg.ModelImage = "imagen-4.0-generate-001"
	}

	// genai client for text with response schema and vision parts
	genaiOpts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.APIEndpoint != "" {
		genaiOpts = append(genaiOpts, option.WithEndpoint(cfg.APIEndpoint))
	}
	genaiClient, err := genai.NewClient(context.Background(), genaiOpts...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize genai client, prompt generation will use fallback")
		genaiClient = nil
	}

	// Unified genai client for Imagen image generation
	unifiedCfg := &unifiedgenai.ClientConfig{APIKey: cfg.APIKey}
	if cfg.APIEndpoint != "" {
		unifiedCfg.HTTPOptions = unifiedgenai.HTTPOptions{BaseURL: cfg.APIEndpoint}
	}
	imageClient, err := unifiedgenai.NewClient(context.Background(), unifiedCfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize unified genai client for image generation")
		imageClient = nil
	}

	// langchaingo fallback for prompt generation (no response schema, JSON MIME type only)
	fallbackOpts := []googleai.Option{googleai.WithAPIKey(cfg.APIKey), googleai.WithDefaultModel(cfg.ModelText)}
	if cfg.APIEndpoint != "" {
		if hc := httpClientForEndpoint(cfg.APIEndpoint); hc != nil {
			fallbackOpts = append(fallbackOpts, googleai.WithHTTPClient(hc))
		}
	}
	var llmFallback llms.Model
	if fb, err := googleai.New(context.Background(), fallbackOpts...); err != nil {
		log.Error().Err(err).Msg("Failed to initialize langchaingo fallback model")
	} else {
		llmFallback = fb
	}

	log.Info().
		Str("model_text", cfg.ModelText).
		Str("model_vision", cfg.ModelVision).
		Str("model_image", cfg.ModelImage).
		Str("api_endpoint", cfg.APIEndpoint).
		Bool("genai_client", genaiClient != nil).
		Bool("image_client", imageClient != nil).
		Bool("fallback_model", llmFallback != nil).
		Msg("LLM client initialized")

	return &Client{
		modelText:   cfg.ModelText,
		modelVision: cfg.ModelVision,
		modelImage:  cfg.ModelImage,
		genaiClient: genaiClient,
		imageClient: imageClient,
		llmFallback: llmFallback,
	}, nil
}

// extractTextFromGenaiResponse concatenates the text parts of the first candidate.
func extractTextFromGenaiResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

// finishReasonOf returns the first candidate's finish reason, or unspecified when absent.
func finishReasonOf(resp *genai.GenerateContentResponse) genai.FinishReason {
	if resp == nil || len(resp.Candidates) == 0 {
		return genai.FinishReasonUnspecified
	}
	return resp.Candidates[0].FinishReason
}
