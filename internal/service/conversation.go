package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_conversation_service.go -package=mocks persona-admin/internal/service ConversationService

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"persona-admin/internal/contextutil"
	"persona-admin/internal/storage"
)

const (
	// DefaultPageSize is used when a list request does not give a positive size.
	DefaultPageSize = 20
	maxPageSize     = 500

	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Conversation is one logged exchange between a user and a persona.
type Conversation struct {
	ID          int64
	PersonaCode string
	UserQuery   string
	AIResponse  string
	UserID      string
	CreatedAt   time.Time
}

// ConversationQuery holds list parameters as received from clients.
// Dates are "2006-01-02" or "2006-01-02 15:04:05" strings.
type ConversationQuery struct {
	Page        int
	Size        int
	PersonaCode string
	UserID      string
	StartDate   string
	EndDate     string
}

// ConversationPage is one page of conversations plus paging metadata.
type ConversationPage struct {
	Conversations []Conversation
	CurrentPage   int
	PageSize      int
	TotalPages    int
	TotalElements int64
	First         bool
	Last          bool
	HasNext       bool
	HasPrevious   bool
	PersonaCode   string
	UserID        string
	StartDate     string
	EndDate       string
}

// ConversationService provides read access to the conversation log.
type ConversationService interface {
	// List returns one page of conversations. Query failures yield an empty page.
	List(ctx context.Context, q ConversationQuery) ConversationPage
	// ForAnalysis returns up to limit conversations in [start, end], newest first.
	// Nil bounds are open.
	ForAnalysis(ctx context.Context, personaCode string, start, end *time.Time, limit int) ([]Conversation, error)
	// Record appends a conversation to the log.
	Record(ctx context.Context, c Conversation) (*Conversation, error)
}

// conversationService implements ConversationService.
type conversationService struct {
	store storage.ConversationStore
}

// NewConversationService creates a new ConversationService.
func NewConversationService(store storage.ConversationStore) ConversationService {
	return &conversationService{store: store}
}

func (s *conversationService) List(ctx context.Context, q ConversationQuery) ConversationPage {
	logger := contextutil.LoggerFromContext(ctx)

	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if q.Size > maxPageSize {
		q.Size = maxPageSize
	}

	filter := storage.ConversationFilter{
		PersonaCode: strings.TrimSpace(q.PersonaCode),
		UserID:      strings.TrimSpace(q.UserID),
		Start:       parseDateFilter(ctx, "startDate", q.StartDate),
		End:         parseDateFilter(ctx, "endDate", q.EndDate),
	}

	total, err := s.store.Count(ctx, filter)
	if err != nil {
		logger.ErrorContext(ctx, "failed to count conversations", "page", q.Page, "size", q.Size, "error", err)
		return emptyPage(q)
	}

	// Pages past the end, including ones whose offset would overflow, carry no rows.
	var records []storage.ConversationRecord
	if q.Page <= math.MaxInt/q.Size && int64(q.Page)*int64(q.Size) < total {
		records, err = s.store.List(ctx, filter, q.Page*q.Size, q.Size)
		if err != nil {
			logger.ErrorContext(ctx, "failed to list conversations", "page", q.Page, "size", q.Size, "error", err)
			return emptyPage(q)
		}
	}

	page := NewConversationPage(toConversations(records), q.Page, q.Size, total)
	page.PersonaCode = q.PersonaCode
	page.UserID = q.UserID
	page.StartDate = q.StartDate
	page.EndDate = q.EndDate

	logger.InfoContext(ctx, "conversations retrieved", "count", len(records), "page", q.Page, "total", total)
	return page
}

func (s *conversationService) ForAnalysis(ctx context.Context, personaCode string, start, end *time.Time, limit int) ([]Conversation, error) {
	filter := storage.ConversationFilter{
		PersonaCode: strings.TrimSpace(personaCode),
		Start:       start,
		End:         end,
	}
	records, err := s.store.List(ctx, filter, 0, limit)
	if err != nil {
		return nil, WrapError(err, "failed to load conversations for analysis")
	}
	return toConversations(records), nil
}

func (s *conversationService) Record(ctx context.Context, c Conversation) (*Conversation, error) {
	if strings.TrimSpace(c.PersonaCode) == "" {
		return nil, &ValidationError{Field: "personaCode", Message: "is required"}
	}
	if strings.TrimSpace(c.UserQuery) == "" {
		return nil, &ValidationError{Field: "userQuery", Message: "is required"}
	}

	rec := storage.ConversationRecord{
		PersonaCode: c.PersonaCode,
		UserQuery:   c.UserQuery,
		AIResponse:  c.AIResponse,
		UserID:      c.UserID,
		CreatedAt:   c.CreatedAt,
	}
	if err := s.store.Insert(ctx, &rec); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to record conversation", "persona_code", c.PersonaCode, "error", err)
		return nil, WrapError(err, "failed to record conversation")
	}

	out := toConversation(rec)
	return &out, nil
}

// NewConversationPage computes paging metadata for a zero-based page.
func NewConversationPage(conversations []Conversation, page, size int, total int64) ConversationPage {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	if conversations == nil {
		conversations = []Conversation{}
	}
	return ConversationPage{
		Conversations: conversations,
		CurrentPage:   page,
		PageSize:      size,
		TotalPages:    totalPages,
		TotalElements: total,
		First:         page == 0,
		Last:          page >= totalPages-1,
		HasNext:       page < totalPages-1,
		HasPrevious:   page > 0,
	}
}

func emptyPage(q ConversationQuery) ConversationPage {
	return ConversationPage{
		Conversations: []Conversation{},
		CurrentPage:   q.Page,
		PageSize:      q.Size,
		First:         true,
		Last:          true,
	}
}

// ParseDate accepts "2006-01-02" (start of day) or "2006-01-02 15:04:05", in UTC.
func ParseDate(s string) (time.Time, error) {
	if len(s) == len(dateLayout) {
		return time.ParseInLocation(dateLayout, s, time.UTC)
	}
	return time.ParseInLocation(dateTimeLayout, s, time.UTC)
}

// parseDateFilter returns nil for blank or unparseable input.
func parseDateFilter(ctx context.Context, field, s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "ignoring unparseable date filter", "field", field, "value", s)
		return nil
	}
	return &t
}

// PeriodStart returns the lower bound of an analysis period relative to now.
// ok is false when the period is not recognised; the result is then nil,
// the same as for "all".
func PeriodStart(period string, now time.Time) (start *time.Time, ok bool) {
	p := strings.ToLower(strings.TrimSpace(period))
	days := 0
	switch p {
	case "", "all":
		return nil, true
	case "today", "1day":
		days = 1
	case "7days", "week":
		days = 7
	case "30days", "month":
		days = 30
	case "90days", "quarter":
		days = 90
	case "365days", "year":
		days = 365
	default:
		n, err := strconv.Atoi(strings.TrimSuffix(p, "days"))
		if !strings.HasSuffix(p, "days") || err != nil || n < 0 {
			return nil, false
		}
		days = n
	}
	t := now.AddDate(0, 0, -days)
	return &t, true
}

func toConversations(records []storage.ConversationRecord) []Conversation {
	out := make([]Conversation, 0, len(records))
	for _, rec := range records {
		out = append(out, toConversation(rec))
	}
	return out
}

func toConversation(rec storage.ConversationRecord) Conversation {
	return Conversation{
		ID:          rec.ID,
		PersonaCode: rec.PersonaCode,
		UserQuery:   rec.UserQuery,
		AIResponse:  rec.AIResponse,
		UserID:      rec.UserID,
		CreatedAt:   rec.CreatedAt,
	}
}
