package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_persona_index.go -package=mocks persona-admin/internal/service PersonaIndex
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_persona_service.go -package=mocks persona-admin/internal/service PersonaService

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"persona-admin/internal/contextutil"
	"persona-admin/internal/indexer"
	"persona-admin/internal/storage"
)

// PersonaIndex is the similarity index over persona prompts.
type PersonaIndex interface {
	// IndexPersona stores or replaces the embedding of a persona's current prompt.
	IndexPersona(ctx context.Context, personaCode, promptText string) error
	// Similar returns up to k persona codes ranked by similarity to query.
	Similar(ctx context.Context, query string, k int) ([]indexer.Match, error)
}

// Persona is the current state of a persona, derived from its latest record.
type Persona struct {
	PersonaCode   string
	Title         string
	Description   string
	DescriptionEn string
	Category      string
	WelcomeMsg    string
	SystemPrompt  string
	Active        bool
	CreatedDate   time.Time
	UpdatedDate   time.Time
}

// PromptVersion is one stored version of a persona prompt.
type PromptVersion struct {
	RecordID    int64
	PersonaCode string
	PromptText  string
	CreatedAt   time.Time
}

// SimilarPersona is a persona with its similarity score.
type SimilarPersona struct {
	Persona Persona
	Score   float32
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []string
}

// Message renders the result the way import reports are shown to operators.
func (r ImportResult) Message() string {
	msg := fmt.Sprintf("Import completed: %d imported, %d skipped, %d errors", r.Imported, r.Skipped, len(r.Errors))
	if len(r.Errors) > 0 {
		msg += "\n\nError details:\n" + strings.Join(r.Errors, "\n")
	}
	return msg
}

// PersonaService manages personas on top of the append-only prompt store.
type PersonaService interface {
	// GetAll returns the current view of every persona. Storage failures yield an empty list.
	GetAll(ctx context.Context) []Persona
	// GetByCode returns the current view of one persona or ErrNotFound.
	GetByCode(ctx context.Context, code string) (*Persona, error)
	// Exists reports whether the persona has at least one record.
	Exists(ctx context.Context, code string) (bool, error)
	// Create stores the first version of a persona.
	Create(ctx context.Context, p Persona) (*Persona, error)
	// Update appends a new version. Returns ErrNotFound if the persona does not exist.
	Update(ctx context.Context, p Persona) (*Persona, error)
	// Delete is unsupported in the history model and always returns false.
	Delete(ctx context.Context, code string) bool
	// SaveSystemPromptOnly appends a new prompt version and prunes old history.
	SaveSystemPromptOnly(ctx context.Context, code, promptText string) (bool, error)
	// UpdateSystemPrompt validates and appends a prompt, returning the refreshed view.
	UpdateSystemPrompt(ctx context.Context, code, promptText string) (*Persona, error)
	// Search matches keyword against persona code and current prompt, case-insensitive.
	Search(ctx context.Context, keyword string) []Persona
	// History returns stored versions newest first.
	History(ctx context.Context, code string, limit int) ([]PromptVersion, error)
	// HistoryCount returns the number of stored versions.
	HistoryCount(ctx context.Context, code string) (int, error)
	// Codes returns every persona code with at least one version, sorted.
	Codes(ctx context.Context) ([]string, error)
	// ChangesBetween returns the versions of all personas stored within
	// [start, end], newest first.
	ChangesBetween(ctx context.Context, start, end time.Time) ([]PromptVersion, error)
	// ByCategory returns current personas in category sorted by title. Blank means all.
	ByCategory(ctx context.Context, category string) []Persona
	// Active returns all current personas sorted by title.
	Active(ctx context.Context) []Persona
	// Export returns all current personas.
	Export(ctx context.Context) ([]Persona, error)
	// Import stores personas that do not exist yet.
	Import(ctx context.Context, personas []Persona) ImportResult
	// Similar returns the personas whose prompts are closest to query.
	Similar(ctx context.Context, query string, k int) ([]SimilarPersona, error)
}

// personaService implements PersonaService.
type personaService struct {
	store       storage.PersonaStore
	index       PersonaIndex
	historyKeep int
}

// PersonaOption configures a PersonaService.
type PersonaOption func(*personaService)

// WithPersonaIndex enables similarity search and re-indexing on writes.
func WithPersonaIndex(index PersonaIndex) PersonaOption {
	return func(s *personaService) {
		s.index = index
	}
}

// WithHistoryKeep sets how many versions survive pruning. Values below 1 are ignored.
func WithHistoryKeep(keep int) PersonaOption {
	return func(s *personaService) {
		if keep >= 1 {
			s.historyKeep = keep
		}
	}
}

// NewPersonaService creates a new PersonaService.
func NewPersonaService(store storage.PersonaStore, opts ...PersonaOption) PersonaService {
	s := &personaService{
		store:       store,
		historyKeep: defaultHistoryKeep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *personaService) GetAll(ctx context.Context) []Persona {
	logger := contextutil.LoggerFromContext(ctx)

	records, err := s.store.LatestAll(ctx, storage.PromptTypePersona)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load personas", "operation", "get_all", "error", err)
		return []Persona{}
	}
	return toPersonas(records)
}

func (s *personaService) GetByCode(ctx context.Context, code string) (*Persona, error) {
	if strings.TrimSpace(code) == "" {
		return nil, &ValidationError{Field: "personaCode", Message: "is required"}
	}

	rec, err := s.store.Latest(ctx, code, storage.PromptTypePersona)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to load persona")
	}
	p := PersonaFromRecord(*rec)
	return &p, nil
}

func (s *personaService) Exists(ctx context.Context, code string) (bool, error) {
	if strings.TrimSpace(code) == "" {
		return false, nil
	}
	ok, err := s.store.Exists(ctx, code, storage.PromptTypePersona)
	if err != nil {
		return false, WrapError(err, "failed to check persona existence")
	}
	return ok, nil
}

func (s *personaService) Create(ctx context.Context, p Persona) (*Persona, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if verr := validatePersona(p); verr != nil {
		logger.WarnContext(ctx, "invalid persona data", "persona_code", p.PersonaCode, "field", verr.Field)
		return nil, verr
	}

	promptText := p.SystemPrompt
	if strings.TrimSpace(promptText) == "" {
		promptText = DefaultSystemPrompt(p.Title, p.Description)
	} else if verr := ValidatePrompt(promptText); verr != nil {
		return nil, verr
	}

	// The existence check and insert are one statement, so concurrent creates
	// of the same code cannot both succeed.
	id, err := s.store.AppendIfAbsent(ctx, p.PersonaCode, storage.PromptTypePersona, promptText)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			logger.WarnContext(ctx, "duplicate persona code", "persona_code", p.PersonaCode)
			return nil, &DuplicateError{PersonaCode: p.PersonaCode}
		}
		logger.ErrorContext(ctx, "failed to create persona", "persona_code", p.PersonaCode, "error", err)
		return nil, WrapError(err, "failed to create persona")
	}

	logger.InfoContext(ctx, "persona created", "persona_code", p.PersonaCode, "record_id", id)
	s.reindex(ctx, p.PersonaCode, promptText)
	return s.GetByCode(ctx, p.PersonaCode)
}

func (s *personaService) Update(ctx context.Context, p Persona) (*Persona, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if verr := validatePersona(p); verr != nil {
		logger.WarnContext(ctx, "invalid persona data", "persona_code", p.PersonaCode, "field", verr.Field)
		return nil, verr
	}
	if verr := ValidatePrompt(p.SystemPrompt); verr != nil {
		return nil, verr
	}

	exists, err := s.Exists(ctx, p.PersonaCode)
	if err != nil {
		logger.ErrorContext(ctx, "failed to update persona", "persona_code", p.PersonaCode, "error", err)
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	if _, err := s.SaveSystemPromptOnly(ctx, p.PersonaCode, p.SystemPrompt); err != nil {
		return nil, err
	}
	return s.GetByCode(ctx, p.PersonaCode)
}

// Delete never removes records: persona history is append-only.
func (s *personaService) Delete(ctx context.Context, code string) bool {
	contextutil.LoggerFromContext(ctx).WarnContext(ctx, "persona deletion is not supported", "persona_code", code)
	return false
}

func (s *personaService) SaveSystemPromptOnly(ctx context.Context, code, promptText string) (bool, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(code) == "" {
		return false, &ValidationError{Field: "personaCode", Message: "is required"}
	}
	if verr := ValidatePrompt(promptText); verr != nil {
		return false, verr
	}

	id, err := s.store.Append(ctx, code, storage.PromptTypePersona, promptText)
	if err != nil {
		logger.ErrorContext(ctx, "failed to save system prompt", "persona_code", code, "error", err)
		return false, WrapError(err, "failed to save system prompt")
	}
	logger.InfoContext(ctx, "system prompt saved", "persona_code", code, "record_id", id)

	// Pruning never affects the append that triggered it.
	deleted, err := s.store.PruneHistory(ctx, code, storage.PromptTypePersona, s.historyKeep)
	if err != nil {
		logger.WarnContext(ctx, "failed to prune persona history", "persona_code", code, "keep", s.historyKeep, "error", err)
	} else if deleted > 0 {
		logger.DebugContext(ctx, "pruned persona history", "persona_code", code, "deleted", deleted)
	}

	s.reindex(ctx, code, promptText)
	return true, nil
}

func (s *personaService) UpdateSystemPrompt(ctx context.Context, code, promptText string) (*Persona, error) {
	if verr := ValidatePrompt(promptText); verr != nil {
		return nil, verr
	}

	exists, err := s.Exists(ctx, code)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	if _, err := s.SaveSystemPromptOnly(ctx, code, promptText); err != nil {
		return nil, err
	}
	return s.GetByCode(ctx, code)
}

func (s *personaService) Search(ctx context.Context, keyword string) []Persona {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.GetAll(ctx)
	}

	records, err := s.store.SearchLatest(ctx, keyword, storage.PromptTypePersona)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to search personas", "keyword", keyword, "error", err)
		return []Persona{}
	}
	return toPersonas(records)
}

func (s *personaService) History(ctx context.Context, code string, limit int) ([]PromptVersion, error) {
	if strings.TrimSpace(code) == "" {
		return nil, &ValidationError{Field: "personaCode", Message: "is required"}
	}
	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	records, err := s.store.History(ctx, code, storage.PromptTypePersona, limit)
	if err != nil {
		return nil, WrapError(err, "failed to load persona history")
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return toPromptVersions(records), nil
}

func (s *personaService) HistoryCount(ctx context.Context, code string) (int, error) {
	if strings.TrimSpace(code) == "" {
		return 0, nil
	}
	n, err := s.store.Count(ctx, code, storage.PromptTypePersona)
	if err != nil {
		return 0, WrapError(err, "failed to count persona history")
	}
	return n, nil
}

func (s *personaService) Codes(ctx context.Context) ([]string, error) {
	codes, err := s.store.Codes(ctx, storage.PromptTypePersona)
	if err != nil {
		return nil, WrapError(err, "failed to list persona codes")
	}
	if codes == nil {
		codes = []string{}
	}
	return codes, nil
}

func (s *personaService) ChangesBetween(ctx context.Context, start, end time.Time) ([]PromptVersion, error) {
	if end.Before(start) {
		return nil, &ValidationError{Field: "to", Message: "must not be before from"}
	}

	records, err := s.store.InRange(ctx, start, end, storage.PromptTypePersona)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to load persona changes",
			"from", start, "to", end, "error", err)
		return nil, WrapError(err, "failed to load persona changes")
	}
	return toPromptVersions(records), nil
}

func (s *personaService) ByCategory(ctx context.Context, category string) []Persona {
	all := s.GetAll(ctx)
	category = strings.TrimSpace(category)

	out := make([]Persona, 0, len(all))
	for _, p := range all {
		if category == "" || strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	sortByTitle(out)
	return out
}

func (s *personaService) Active(ctx context.Context) []Persona {
	all := s.GetAll(ctx)
	out := all[:0]
	for _, p := range all {
		if p.Active {
			out = append(out, p)
		}
	}
	sortByTitle(out)
	return out
}

func (s *personaService) Export(ctx context.Context) ([]Persona, error) {
	records, err := s.store.LatestAll(ctx, storage.PromptTypePersona)
	if err != nil {
		return nil, WrapError(err, "failed to export personas")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "personas exported", "count", len(records))
	return toPersonas(records), nil
}

func (s *personaService) Import(ctx context.Context, personas []Persona) ImportResult {
	logger := contextutil.LoggerFromContext(ctx)

	var result ImportResult
	for _, p := range personas {
		_, err := s.Create(ctx, p)
		var dup *DuplicateError
		switch {
		case err == nil:
			result.Imported++
		case errors.As(err, &dup):
			result.Skipped++
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to import persona %s: %v", p.PersonaCode, err))
		}
	}

	logger.InfoContext(ctx, "persona import finished",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
	)
	return result
}

func (s *personaService) Similar(ctx context.Context, query string, k int) ([]SimilarPersona, error) {
	if s.index == nil {
		return nil, ErrUnavailable
	}
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Field: "q", Message: "cannot be empty"}
	}
	if k <= 0 {
		k = 5
	}

	matches, err := s.index.Similar(ctx, query, k)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "persona similarity search failed", "k", k, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	out := make([]SimilarPersona, 0, len(matches))
	for _, m := range matches {
		p, err := s.GetByCode(ctx, m.PersonaCode)
		if err != nil {
			// Index entries can outlive their records after a database reset.
			continue
		}
		out = append(out, SimilarPersona{Persona: *p, Score: m.Score})
	}
	return out, nil
}

func (s *personaService) reindex(ctx context.Context, code, promptText string) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexPersona(ctx, code, promptText); err != nil {
		logger := contextutil.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "failed to index persona", "persona_code", code, "error", err)
	}
}

func toPromptVersions(records []storage.PersonaRecord) []PromptVersion {
	versions := make([]PromptVersion, 0, len(records))
	for _, rec := range records {
		versions = append(versions, PromptVersion{
			RecordID:    rec.RecordID,
			PersonaCode: rec.PersonaCode,
			PromptText:  rec.PromptText,
			CreatedAt:   rec.CreatedAt,
		})
	}
	return versions
}

func toPersonas(records []storage.PersonaRecord) []Persona {
	out := make([]Persona, 0, len(records))
	for _, rec := range records {
		out = append(out, PersonaFromRecord(rec))
	}
	return out
}

func sortByTitle(personas []Persona) {
	sort.SliceStable(personas, func(i, j int) bool {
		return personas[i].Title < personas[j].Title
	})
}
