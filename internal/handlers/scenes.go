package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/scene-forge/scenes/internal/llm"
	"github.com/scene-forge/scenes/internal/models"
)

// GenerateScenePrompts handles POST /v1/scene-prompts
func (h *Handler) GenerateScenePrompts(w http.ResponseWriter, r *http.Request) {
	var req models.ScenePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Script == "" {
		writeJSONError(w, http.StatusBadRequest, "script is required")
		return
	}
	if req.Style == "" {
		writeJSONError(w, http.StatusBadRequest, "style is required")
		return
	}

	result, err := h.prompts.GenerateScenePrompts(r.Context(), req.Script, req.Style, req.Niche)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate scene prompts")
		writeJSONError(w, promptErrorStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.ScenePromptResponse{
		Prompts:       result.Prompts,
		RequestPrompt: result.RequestPrompt,
	})
}

// AnalyzeStyle handles POST /v1/style
func (h *Handler) AnalyzeStyle(w http.ResponseWriter, r *http.Request) {
	var req models.StyleAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ImageBase64 == "" || req.MimeType == "" {
		writeJSONError(w, http.StatusBadRequest, "image_base64 and mime_type are required")
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "image_base64 is not valid base64")
		return
	}

	style, err := h.style.AnalyzeImageStyle(r.Context(), data, req.MimeType)
	if err != nil {
		log.Error().Err(err).Msg("Failed to analyze image style")
		writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.StyleAnalysisResponse{Style: style})
}

// GenerateImage handles POST /v1/images. The response is always 200 with an
// ImageResult pair; per-prompt failures are reported inside the body so a
// caller looping over many prompts can continue past a failed one.
func (h *Handler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req models.ImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" {
		writeJSONError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	if req.AspectRatio == "" {
		req.AspectRatio = models.DefaultAspectRatio
	}
	if !models.ValidAspectRatio(req.AspectRatio) {
		writeJSONError(w, http.StatusBadRequest, "invalid aspect_ratio")
		return
	}

	result := h.images.GenerateImage(r.Context(), req.Prompt, req.AspectRatio)
	writeJSON(w, http.StatusOK, result)
}

// promptErrorStatus maps prompt generation errors to HTTP statuses: known
// service-side failures are 422 (the caller can adjust the script and retry),
// unexpected ones are 502.
func promptErrorStatus(err error) int {
	if errors.Is(err, llm.ErrServiceUnexpected) {
		return http.StatusBadGateway
	}
	return http.StatusUnprocessableEntity
}
