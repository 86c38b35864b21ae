package models

// ScenePromptRequest is the request body for POST /v1/scene-prompts.
type ScenePromptRequest struct {
	Script string `json:"script"`
	Style  string `json:"style"`
	Niche  string `json:"niche,omitempty"`
}

// ScenePromptResponse carries the generated prompts and the exact
// instruction text that was sent to the model, for auditability.
type ScenePromptResponse struct {
	Prompts       []string `json:"prompts"`
	RequestPrompt string   `json:"request_prompt"`
}

// StyleAnalysisRequest is the request body for POST /v1/style.
type StyleAnalysisRequest struct {
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// StyleAnalysisResponse carries comma-separated style keywords.
type StyleAnalysisResponse struct {
	Style string `json:"style"`
}

// ImageRequest is the request body for POST /v1/images. AspectRatio is
// validated at the HTTP boundary and passed through unchanged below it.
type ImageRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
}

// DefaultAspectRatio is used when a request omits the aspect ratio.
const DefaultAspectRatio = "16:9"

// aspectRatios are the output ratios Imagen accepts.
var aspectRatios = map[string]bool{
	"1:1":  true,
	"16:9": true,
	"9:16": true,
	"4:3":  true,
	"3:4":  true,
}

// ValidAspectRatio reports whether s is a supported aspect ratio.
func ValidAspectRatio(s string) bool {
	return aspectRatios[s]
}
