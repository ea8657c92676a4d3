package handlers

import (
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"persona-admin/internal/contextutil"
	"persona-admin/internal/service"
)

// SystemPromptHandler serves the system prompt endpoints under /admin.
type SystemPromptHandler struct {
	personas service.PersonaService
	analysis service.AnalysisService
}

// NewSystemPromptHandler creates a new SystemPromptHandler.
func NewSystemPromptHandler(personas service.PersonaService, analysis service.AnalysisService) *SystemPromptHandler {
	return &SystemPromptHandler{
		personas: personas,
		analysis: analysis,
	}
}

// Test runs a test input against a system prompt on the LLM.
// LLM failures respond 502.
//
// swagger:route POST /admin/system-prompt/test systemPrompt testSystemPrompt
func (h *SystemPromptHandler) Test(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SystemPromptTestRequest
	if err := decodeJSON(r, w, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.analysis.TestPrompt(ctx, req.PromptContent, req.TestInput, req.PersonaCode)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to test system prompt")
		return
	}

	data, err := reportData(r, result)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to render test result")
		return
	}
	writeSuccess(ctx, w, http.StatusOK, data, "System prompt test completed")
}

// Update appends a new prompt version to an existing persona.
//
// swagger:route PUT /admin/system-prompt/{code} systemPrompt updateSystemPrompt
func (h *SystemPromptHandler) Update(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	ctx := contextutil.WithAttrs(r.Context(), "persona_code", code)
	logger := contextutil.LoggerFromContext(ctx)

	var req SystemPromptUpdateRequest
	if err := decodeJSON(r, w, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.personas.UpdateSystemPrompt(ctx, code, req.SystemPrompt)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to update system prompt")
		return
	}

	logger.InfoContext(ctx, "system prompt updated", "persona_code", code, "length", utf8.RuneCountInString(req.SystemPrompt))
	writeSuccess(ctx, w, http.StatusOK, toPersonaDTO(*updated), "System prompt updated successfully")
}

// Validate checks a prompt without storing it. Invalid prompts still
// respond 200 with valid=false.
func (h *SystemPromptHandler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SystemPromptUpdateRequest
	if err := decodeJSON(r, w, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := ValidationResultDTO{
		Valid:  true,
		Length: utf8.RuneCountInString(req.SystemPrompt),
	}
	if verr := service.ValidatePrompt(req.SystemPrompt); verr != nil {
		result.Valid = false
		result.Message = verr.Message
	}
	writeSuccess(ctx, w, http.StatusOK, result, "System prompt validated")
}
