package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"persona-admin/internal/contextutil"
	"persona-admin/internal/service"
)

// PersonaHandler serves the persona endpoints under /admin.
type PersonaHandler struct {
	personas service.PersonaService
}

// NewPersonaHandler creates a new PersonaHandler.
func NewPersonaHandler(personas service.PersonaService) *PersonaHandler {
	return &PersonaHandler{personas: personas}
}

// ListWithPrompts returns every current persona including its system prompt.
//
// swagger:route GET /admin/personas-with-prompts personas listPersonasWithPrompts
func (h *PersonaHandler) ListWithPrompts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personas := h.personas.GetAll(ctx)
	writeSuccess(ctx, w, http.StatusOK, toPersonaDTOs(personas), "Personas with prompts loaded successfully")
}

// List returns current personas, optionally filtered by ?category= or
// restricted to ?active=true.
func (h *PersonaHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var personas []service.Persona
	switch {
	case strings.TrimSpace(q.Get("category")) != "":
		personas = h.personas.ByCategory(ctx, q.Get("category"))
	case strings.EqualFold(q.Get("active"), "true"):
		personas = h.personas.Active(ctx)
	default:
		personas = h.personas.GetAll(ctx)
	}

	writeSuccess(ctx, w, http.StatusOK, toPersonaDTOs(personas), "Personas loaded successfully")
}

// Get returns one persona.
func (h *PersonaHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := chi.URLParam(r, "code")

	p, err := h.personas.GetByCode(ctx, code)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to load persona")
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toPersonaDTO(*p), "Persona loaded successfully")
}

// Create stores a new persona. Responds 409 when the code is taken.
//
// swagger:route POST /admin/personas personas createPersona
func (h *PersonaHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req PersonaDTO
	if err := decodeJSON(r, w, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.personas.Create(ctx, req.toPersona())
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to create persona")
		return
	}

	logger.InfoContext(ctx, "persona created", "persona_code", created.PersonaCode)
	writeSuccess(ctx, w, http.StatusCreated, toPersonaDTO(*created), "Persona created successfully")
}

// Update appends a new version of an existing persona.
//
// swagger:route PUT /admin/personas/{code} personas updatePersona
func (h *PersonaHandler) Update(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	ctx := contextutil.WithAttrs(r.Context(), "persona_code", code)
	logger := contextutil.LoggerFromContext(ctx)

	var req PersonaDTO
	if err := decodeJSON(r, w, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PersonaCode != code {
		logger.WarnContext(ctx, "persona code mismatch", "path_code", code, "body_code", req.PersonaCode)
		writeError(ctx, w, http.StatusBadRequest, "PersonaCode mismatch between URL and request body")
		return
	}

	updated, err := h.personas.Update(ctx, req.toPersona())
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to update persona")
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toPersonaDTO(*updated), "Persona updated successfully")
}

// Delete always answers 404: personas keep their full history and cannot
// be removed.
//
// swagger:route DELETE /admin/personas/{code} personas deletePersona
func (h *PersonaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := chi.URLParam(r, "code")

	if !h.personas.Delete(ctx, code) {
		writeError(ctx, w, http.StatusNotFound, fmt.Sprintf("Persona deletion is not supported: %s", code))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, nil, "Persona deleted successfully")
}

// Search matches ?keyword= against persona codes and prompts.
func (h *PersonaHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personas := h.personas.Search(ctx, r.URL.Query().Get("keyword"))
	writeSuccess(ctx, w, http.StatusOK, toPersonaDTOs(personas), fmt.Sprintf("%d personas found", len(personas)))
}

// Similar ranks personas by prompt similarity to ?q=, returning at most ?k=.
func (h *PersonaHandler) Similar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	k, err := optionalInt(q.Get("k"))
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "k must be an integer")
		return
	}

	matches, err := h.personas.Similar(ctx, q.Get("q"), k)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to search similar personas")
		return
	}

	out := make([]SimilarPersonaDTO, 0, len(matches))
	for _, m := range matches {
		out = append(out, SimilarPersonaDTO{PersonaDTO: toPersonaDTO(m.Persona), Score: m.Score})
	}
	writeSuccess(ctx, w, http.StatusOK, out, fmt.Sprintf("%d similar personas found", len(out)))
}

// History returns stored versions of a persona, newest first.
func (h *PersonaHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := chi.URLParam(r, "code")

	limit, err := optionalInt(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	versions, err := h.personas.History(ctx, code, limit)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to load persona history")
		return
	}
	total, err := h.personas.HistoryCount(ctx, code)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to load persona history")
		return
	}

	dto := PersonaHistoryDTO{
		PersonaCode: code,
		Total:       total,
		Versions:    toPromptVersionDTOs(versions),
	}
	writeSuccess(ctx, w, http.StatusOK, dto, "Persona history loaded successfully")
}

// Codes lists every persona code that has at least one stored version.
//
// swagger:route GET /admin/personas/codes personas listPersonaCodes
func (h *PersonaHandler) Codes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	codes, err := h.personas.Codes(ctx)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to load persona codes")
		return
	}
	writeSuccess(ctx, w, http.StatusOK, codes, "Persona codes loaded successfully")
}

// Changes lists prompt versions of all personas stored between from and to.
// A day-only to covers that whole day; to defaults to now.
//
// swagger:route GET /admin/personas/changes personas listPersonaChanges
func (h *PersonaHandler) Changes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	fromParam := strings.TrimSpace(query.Get("from"))
	if fromParam == "" {
		writeError(ctx, w, http.StatusBadRequest, "from is required")
		return
	}
	from, err := service.ParseDate(fromParam)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "from must be yyyy-MM-dd or yyyy-MM-dd HH:mm:ss")
		return
	}

	to := time.Now().UTC()
	if toParam := strings.TrimSpace(query.Get("to")); toParam != "" {
		if to, err = service.ParseDate(toParam); err != nil {
			writeError(ctx, w, http.StatusBadRequest, "to must be yyyy-MM-dd or yyyy-MM-dd HH:mm:ss")
			return
		}
		if len(toParam) == len("2006-01-02") {
			to = to.Add(24*time.Hour - time.Second)
		}
	}

	versions, err := h.personas.ChangesBetween(ctx, from, to)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to load persona changes")
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toPromptVersionDTOs(versions), "Persona changes loaded successfully")
}

// Export returns all current personas in the import format.
func (h *PersonaHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	personas, err := h.personas.Export(ctx)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to export personas")
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toPersonaDTOs(personas), fmt.Sprintf("%d personas exported", len(personas)))
}

// Import stores every persona in the body that does not exist yet.
func (h *PersonaHandler) Import(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req []PersonaDTO
	if err := decodeJSON(r, w, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	personas := make([]service.Persona, 0, len(req))
	for _, d := range req {
		personas = append(personas, d.toPersona())
	}

	result := h.personas.Import(ctx, personas)
	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}

	logger.InfoContext(ctx, "personas imported", "imported", result.Imported, "skipped", result.Skipped, "errors", len(result.Errors))
	writeSuccess(ctx, w, http.StatusOK, ImportResultDTO{
		Imported: result.Imported,
		Skipped:  result.Skipped,
		Errors:   errs,
		Report:   result.Message(),
	}, fmt.Sprintf("Import completed: %d imported, %d skipped, %d errors", result.Imported, result.Skipped, len(result.Errors)))
}

// Categories returns the fixed list of persona categories.
//
// swagger:route GET /admin/categories personas listCategories
func (h *PersonaHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, service.Categories, "Categories retrieved successfully")
}

// optionalInt parses s, treating an empty string as zero.
func optionalInt(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return strconv.Atoi(strings.TrimSpace(s))
}
