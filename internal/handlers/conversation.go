package handlers

import (
	"net/http"

	"persona-admin/internal/contextutil"
	"persona-admin/internal/service"
)

// ConversationHandler serves the conversation log endpoints under /admin.
type ConversationHandler struct {
	conversations service.ConversationService
	analysis      service.AnalysisService
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(conversations service.ConversationService, analysis service.AnalysisService) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		analysis:      analysis,
	}
}

// List returns one page of conversations.
// Query params: page (zero-based), size, personaCode, userId, startDate, endDate.
//
// swagger:route GET /admin/conversations conversations listConversations
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	page, err := optionalInt(q.Get("page"))
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "page must be an integer")
		return
	}
	size := service.DefaultPageSize
	if s := q.Get("size"); s != "" {
		if size, err = optionalInt(s); err != nil {
			writeError(ctx, w, http.StatusBadRequest, "size must be an integer")
			return
		}
	}

	result := h.conversations.List(ctx, service.ConversationQuery{
		Page:        page,
		Size:        size,
		PersonaCode: q.Get("personaCode"),
		UserID:      q.Get("userId"),
		StartDate:   q.Get("startDate"),
		EndDate:     q.Get("endDate"),
	})
	writeSuccess(ctx, w, http.StatusOK, toConversationPageDTO(result), "Conversations retrieved successfully")
}

// Record appends one conversation to the log.
func (h *ConversationHandler) Record(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req RecordConversationRequest
	if err := decodeJSON(r, w, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	createdAt, err := parseTimestamp(req.CreatedAt)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "createdAt must use format "+TimestampLayout)
		return
	}

	conv, err := h.conversations.Record(ctx, service.Conversation{
		PersonaCode: req.PersonaCode,
		UserQuery:   req.UserQuery,
		AIResponse:  req.AIResponse,
		UserID:      req.UserID,
		CreatedAt:   createdAt,
	})
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to record conversation")
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, toConversationDTO(*conv), "Conversation recorded")
}

// Stats analyzes conversations for ?personaCode= over ?period=.
//
// swagger:route GET /admin/conversations/stats conversations conversationStats
func (h *ConversationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	report, err := h.analysis.Analysis(ctx, q.Get("personaCode"), q.Get("period"))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to get conversation statistics")
		return
	}
	h.writeReport(w, r, report, "Conversation statistics loaded successfully")
}

// Summary analyzes the last 30 days of conversations.
func (h *ConversationHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.analysis.Summary(ctx, r.URL.Query().Get("personaCode"))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to get conversation summary")
		return
	}
	h.writeReport(w, r, report, "Conversation summary loaded successfully")
}

func (h *ConversationHandler) writeReport(w http.ResponseWriter, r *http.Request, report, message string) {
	ctx := r.Context()
	data, err := reportData(r, report)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to render report")
		return
	}
	writeSuccess(ctx, w, http.StatusOK, data, message)
}
