package llm

import (
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// Errors surfaced to callers. The messages are user-facing: anything not in
// this taxonomy is logged in full and collapsed into ErrServiceUnexpected so
// service-internal detail never leaks past this package.
var (
	// ErrMissingAPIKey is a configuration error, fatal at startup.
	ErrMissingAPIKey = errors.New("gemini api key is required")

	// ErrBlockedSafety is returned when prompt generation stopped with a safety block.
	ErrBlockedSafety = errors.New("prompt generation was blocked for safety reasons, please soften the script and try again")

	// ErrBlockedRecitation is returned when prompt generation stopped with a recitation block.
	ErrBlockedRecitation = errors.New("prompt generation was blocked due to recitation concerns, please rephrase the script")

	// ErrStoppedEarly is returned when the model stopped for a known non-stop reason other than safety or recitation.
	ErrStoppedEarly = errors.New("the AI stopped before returning any prompts")

	// ErrEmptyResponse is returned when the model returned no usable text and no known finish reason.
	ErrEmptyResponse = errors.New("the AI returned an empty response")

	// ErrNotJSON is returned when the response text is not parseable JSON.
	ErrNotJSON = errors.New("the AI returned a response that was not valid JSON")

	// ErrBadShape is returned when the response parses but lacks an array-valued prompts field.
	ErrBadShape = errors.New("the AI response did not contain a prompts array")

	// ErrStyleAnalysis replaces every style analysis failure; detail is only logged.
	ErrStyleAnalysis = errors.New("failed to analyze the image style")

	// ErrServiceUnexpected replaces any failure outside the known taxonomy.
	ErrServiceUnexpected = errors.New("an unexpected AI service error occurred")
)

// User-facing messages for the image generation result pair. Image generation
// never returns an error value; soft failures are reported through ImageResult.
const (
	imageErrNoImage = "The API did not return an image."
	imageErrSafety  = "Image generation was blocked for safety reasons. Please adjust the prompt."
	imageErrGeneric = "Image generation failed."
)

// knownErrors is the set of errors that pass through sanitizeErr unchanged.
var knownErrors = []error{
	ErrBlockedSafety,
	ErrBlockedRecitation,
	ErrStoppedEarly,
	ErrEmptyResponse,
	ErrNotJSON,
	ErrBadShape,
}

// sanitizeErr returns err unchanged when it belongs to the known taxonomy,
// otherwise ErrServiceUnexpected. Callers must log the original beforehand.
func sanitizeErr(err error) error {
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return ErrServiceUnexpected
}

// classifyEmptyResponse maps a finish reason to the matching empty-response error.
func classifyEmptyResponse(reason genai.FinishReason) error {
	switch reason {
	case genai.FinishReasonSafety:
		return ErrBlockedSafety
	case genai.FinishReasonRecitation:
		return ErrBlockedRecitation
	case genai.FinishReasonMaxTokens, genai.FinishReasonOther:
		return ErrStoppedEarly
	default:
		return ErrEmptyResponse
	}
}

// classifyImageError maps an image generation failure to a user-facing message.
// Detection is substring matching on the service's error wording, which is a
// known fragility: the wording is version-coupled and can change without
// notice. Keep every such pattern here until the API exposes a structured
// error code we can switch on instead.
func classifyImageError(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "sensitive words") || strings.Contains(msg, "Responsible AI practices") {
		return imageErrSafety
	}
	return imageErrGeneric
}
