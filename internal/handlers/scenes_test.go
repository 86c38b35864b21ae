package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scene-forge/scenes/internal/llm"
	"github.com/scene-forge/scenes/internal/models"
)

// fakePromptAgent is a minimal PromptAgent for tests.
type fakePromptAgent struct {
	generate func(context.Context, string, string, string) (*llm.ScenePrompts, error)
}

func (f *fakePromptAgent) GenerateScenePrompts(ctx context.Context, script, style, niche string) (*llm.ScenePrompts, error) {
	if f.generate != nil {
		return f.generate(ctx, script, style, niche)
	}
	return &llm.ScenePrompts{Prompts: []string{"a", "b"}, RequestPrompt: "instruction"}, nil
}

type fakeStyleAgent struct {
	analyze func(context.Context, []byte, string) (string, error)
}

func (f *fakeStyleAgent) AnalyzeImageStyle(ctx context.Context, data []byte, mimeType string) (string, error) {
	if f.analyze != nil {
		return f.analyze(ctx, data, mimeType)
	}
	return "soft lighting, pastel palette", nil
}

type fakeImageAgent struct {
	generate func(context.Context, string, string) *llm.ImageResult
}

func (f *fakeImageAgent) GenerateImage(ctx context.Context, prompt, aspectRatio string) *llm.ImageResult {
	if f.generate != nil {
		return f.generate(ctx, prompt, aspectRatio)
	}
	return &llm.ImageResult{Base64: "aGVsbG8="}
}

func newTestHandler() *Handler {
	return NewHandler(&fakePromptAgent{}, &fakeStyleAgent{}, &fakeImageAgent{})
}

func TestGenerateScenePrompts_OK(t *testing.T) {
	h := newTestHandler()

	body := bytes.NewBufferString(`{"script":"A hiker crosses a lake.","style":"cinematic","niche":"survival"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/scene-prompts", body)
	rec := httptest.NewRecorder()

	h.GenerateScenePrompts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp models.ScenePromptResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Prompts) != 2 || resp.Prompts[0] != "a" || resp.Prompts[1] != "b" {
		t.Errorf("prompts = %v, want [a b]", resp.Prompts)
	}
	if resp.RequestPrompt != "instruction" {
		t.Errorf("request_prompt = %q, want %q", resp.RequestPrompt, "instruction")
	}
}

func TestGenerateScenePrompts_InvalidBody(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/v1/scene-prompts", bytes.NewBufferString(`{invalid`))
	rec := httptest.NewRecorder()

	h.GenerateScenePrompts(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGenerateScenePrompts_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing script", `{"style":"cinematic"}`},
		{"missing style", `{"script":"text"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler()
			req := httptest.NewRequest(http.MethodPost, "/v1/scene-prompts", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			h.GenerateScenePrompts(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestGenerateScenePrompts_ErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"safety block", llm.ErrBlockedSafety, http.StatusUnprocessableEntity},
		{"not json", llm.ErrNotJSON, http.StatusUnprocessableEntity},
		{"unexpected", llm.ErrServiceUnexpected, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakePromptAgent{
				generate: func(context.Context, string, string, string) (*llm.ScenePrompts, error) {
					return nil, tt.err
				},
			}, &fakeStyleAgent{}, &fakeImageAgent{})

			body := bytes.NewBufferString(`{"script":"text","style":"cinematic"}`)
			req := httptest.NewRequest(http.MethodPost, "/v1/scene-prompts", body)
			rec := httptest.NewRecorder()

			h.GenerateScenePrompts(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestAnalyzeStyle_OK(t *testing.T) {
	h := newTestHandler()

	body := bytes.NewBufferString(`{"image_base64":"aGVsbG8=","mime_type":"image/jpeg"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/style", body)
	rec := httptest.NewRecorder()

	h.AnalyzeStyle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp models.StyleAnalysisResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Style != "soft lighting, pastel palette" {
		t.Errorf("style = %q", resp.Style)
	}
}

func TestAnalyzeStyle_BadBase64(t *testing.T) {
	h := newTestHandler()

	body := bytes.NewBufferString(`{"image_base64":"%%%not-base64%%%","mime_type":"image/jpeg"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/style", body)
	rec := httptest.NewRecorder()

	h.AnalyzeStyle(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeStyle_ServiceFailure(t *testing.T) {
	h := NewHandler(&fakePromptAgent{}, &fakeStyleAgent{
		analyze: func(context.Context, []byte, string) (string, error) {
			return "", llm.ErrStyleAnalysis
		},
	}, &fakeImageAgent{})

	body := bytes.NewBufferString(`{"image_base64":"aGVsbG8=","mime_type":"image/jpeg"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/style", body)
	rec := httptest.NewRecorder()

	h.AnalyzeStyle(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502: %s", rec.Code, rec.Body.String())
	}
}

func TestGenerateImage_OK(t *testing.T) {
	var gotAspect string
	h := NewHandler(&fakePromptAgent{}, &fakeStyleAgent{}, &fakeImageAgent{
		generate: func(_ context.Context, prompt, aspectRatio string) *llm.ImageResult {
			gotAspect = aspectRatio
			return &llm.ImageResult{Base64: "aGVsbG8="}
		},
	})

	body := bytes.NewBufferString(`{"prompt":"a lake at dawn","aspect_ratio":"9:16"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/images", body)
	rec := httptest.NewRecorder()

	h.GenerateImage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if gotAspect != "9:16" {
		t.Errorf("aspect ratio passed through = %q, want 9:16", gotAspect)
	}
	var resp llm.ImageResult
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Base64 == "" || resp.Error != "" {
		t.Errorf("result = %+v, want base64 populated and error empty", resp)
	}
}

func TestGenerateImage_DefaultAspectRatio(t *testing.T) {
	var gotAspect string
	h := NewHandler(&fakePromptAgent{}, &fakeStyleAgent{}, &fakeImageAgent{
		generate: func(_ context.Context, prompt, aspectRatio string) *llm.ImageResult {
			gotAspect = aspectRatio
			return &llm.ImageResult{Base64: "aGVsbG8="}
		},
	})

	body := bytes.NewBufferString(`{"prompt":"a lake at dawn"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/images", body)
	rec := httptest.NewRecorder()

	h.GenerateImage(rec, req)

	if gotAspect != models.DefaultAspectRatio {
		t.Errorf("aspect ratio = %q, want default %q", gotAspect, models.DefaultAspectRatio)
	}
}

func TestGenerateImage_InvalidAspectRatio(t *testing.T) {
	h := newTestHandler()

	body := bytes.NewBufferString(`{"prompt":"a lake","aspect_ratio":"2:1"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/images", body)
	rec := httptest.NewRecorder()

	h.GenerateImage(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGenerateImage_SoftFailureIs200(t *testing.T) {
	h := NewHandler(&fakePromptAgent{}, &fakeStyleAgent{}, &fakeImageAgent{
		generate: func(context.Context, string, string) *llm.ImageResult {
			return &llm.ImageResult{Error: "The API did not return an image."}
		},
	})

	body := bytes.NewBufferString(`{"prompt":"a lake at dawn"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/images", body)
	rec := httptest.NewRecorder()

	h.GenerateImage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (soft failure stays in the result pair)", rec.Code)
	}
	var resp llm.ImageResult
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Base64 != "" || resp.Error != "The API did not return an image." {
		t.Errorf("result = %+v", resp)
	}
}
