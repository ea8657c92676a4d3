package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm_client.go -package=mocks persona-admin/internal/service LLMClient
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_report_cache.go -package=mocks persona-admin/internal/service ReportCache
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_analysis_service.go -package=mocks persona-admin/internal/service AnalysisService

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"persona-admin/internal/contextutil"
)

// LLMClient is an interface for interacting with an LLM API.
// This interface is defined from the service layer's perspective (consumer-first).
type LLMClient interface {
	// Complete sends a system and user prompt and returns the reply text.
	// An empty model selects the client's default.
	Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
}

// ReportCache stores rendered analysis reports.
type ReportCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, report string) error
}

const (
	// NoDataReport is returned by Analyze for an empty batch.
	NoDataReport = "No conversation data available for analysis."
	// NoMatchingDataReport is returned by Analysis when the filters match nothing.
	NoMatchingDataReport = "No conversation data to analyze. Check the filter conditions."
	// AnalysisErrorPrefix opens the report returned when conversations cannot be loaded.
	AnalysisErrorPrefix = "An error occurred during analysis: "
	// FallbackHeader opens the report produced when the LLM is unavailable.
	FallbackHeader = "# Conversation Analysis (Basic Statistics)"

	// DefaultAnalysisLimit caps the conversations loaded for one analysis.
	DefaultAnalysisLimit = 1000
	summaryPeriod        = "30days"
	maxPromptSamples     = 50
	maxQueryExcerpt      = 100
	allLabel             = "all"
	reportTimeLayout     = "2006-01-02 15:04:05"
	sampleTimeLayout     = "2006-01-02 15:04"
)

const analysisSystemPrompt = `You are an operations data analyst for a conversational assistant platform.

Analyze the conversation data provided and give insights on the following:

1. **Usage patterns**
- Usage by time of day
- Activity per user
- Popularity of each persona

2. **Conversation quality**
- Average conversation length
- Types of user questions
- Quality of the AI responses

3. **Operational statistics**
- Total number of conversations
- Number of active users
- Most used persona

4. **Recommendations**
- Performance improvements
- User experience improvements
- Operational recommendations

Format the result as follows:
- Clear, specific, data-driven insights
- Actionable recommendations
- Markdown formatting`

// AnalysisService turns conversation logs into reports and runs prompt tests.
type AnalysisService interface {
	// Analyze builds a report for a batch. LLM failures produce a fallback report.
	Analyze(ctx context.Context, conversations []Conversation, personaCode, period string) string
	// Analysis loads conversations for a period and analyzes them. A load
	// failure yields an error report rather than an error.
	Analysis(ctx context.Context, personaCode, period string) (string, error)
	// Summary is Analysis over the last 30 days.
	Summary(ctx context.Context, personaCode string) (string, error)
	// TestPrompt runs testInput against systemPrompt and formats the result.
	TestPrompt(ctx context.Context, systemPrompt, testInput, personaCode string) (string, error)
}

// analysisService implements AnalysisService.
type analysisService struct {
	llmClient     LLMClient
	conversations ConversationService
	cache         ReportCache
	model         string
	limit         int
	now           func() time.Time
}

// AnalysisOption configures an AnalysisService.
type AnalysisOption func(*analysisService)

// WithReportCache caches LLM-produced reports.
func WithReportCache(cache ReportCache) AnalysisOption {
	return func(s *analysisService) {
		s.cache = cache
	}
}

// WithModel sets the model passed to the LLM client.
func WithModel(model string) AnalysisOption {
	return func(s *analysisService) {
		s.model = model
	}
}

// WithAnalysisLimit caps the conversations loaded per analysis.
func WithAnalysisLimit(limit int) AnalysisOption {
	return func(s *analysisService) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(llmClient LLMClient, conversations ConversationService, opts ...AnalysisOption) AnalysisService {
	s := &analysisService{
		llmClient:     llmClient,
		conversations: conversations,
		limit:         DefaultAnalysisLimit,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *analysisService) Analyze(ctx context.Context, conversations []Conversation, personaCode, period string) string {
	report, _ := s.analyze(ctx, conversations, personaCode, period)
	return report
}

// analyze reports whether the result came from the LLM.
func (s *analysisService) analyze(ctx context.Context, conversations []Conversation, personaCode, period string) (string, bool) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(conversations) == 0 {
		return NoDataReport, false
	}

	userPrompt := BuildAnalysisPrompt(conversations, personaCode, period)
	report, err := s.llmClient.Complete(ctx, s.model, analysisSystemPrompt, userPrompt)
	if err != nil {
		logger.ErrorContext(ctx, "LLM analysis failed, using fallback report",
			"persona_code", personaCode,
			"period", period,
			"conversations", len(conversations),
			"error", err,
		)
		return FallbackReport(conversations, personaCode, period), false
	}

	logger.InfoContext(ctx, "LLM analysis completed",
		"persona_code", personaCode,
		"period", period,
		"conversations", len(conversations),
	)
	return report, true
}

func (s *analysisService) Analysis(ctx context.Context, personaCode, period string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	key := cacheKey(personaCode, period)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			logger.WarnContext(ctx, "report cache read failed", "key", key, "error", err)
		case ok:
			logger.DebugContext(ctx, "report cache hit", "key", key)
			return cached, nil
		}
	}

	now := s.now()
	start, ok := PeriodStart(period, now)
	if !ok {
		logger.WarnContext(ctx, "unrecognised analysis period, using all data", "period", period)
	}

	conversations, err := s.conversations.ForAnalysis(ctx, personaCode, start, &now, s.limit)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load conversations for analysis", "persona_code", personaCode, "period", period, "error", err)
		return AnalysisErrorPrefix + err.Error(), nil
	}
	if len(conversations) == 0 {
		return NoMatchingDataReport, nil
	}

	report, fromLLM := s.analyze(ctx, conversations, personaCode, period)
	if fromLLM && s.cache != nil {
		if err := s.cache.Set(ctx, key, report); err != nil {
			logger.WarnContext(ctx, "report cache write failed", "key", key, "error", err)
		}
	}
	return report, nil
}

func (s *analysisService) Summary(ctx context.Context, personaCode string) (string, error) {
	return s.Analysis(ctx, personaCode, summaryPeriod)
}

func (s *analysisService) TestPrompt(ctx context.Context, systemPrompt, testInput, personaCode string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(systemPrompt) == "" {
		return "", &ValidationError{Field: "systemPrompt", Message: "cannot be empty"}
	}
	if strings.TrimSpace(testInput) == "" {
		return "", &ValidationError{Field: "testInput", Message: "cannot be empty"}
	}

	reply, err := s.llmClient.Complete(ctx, s.model, systemPrompt, testInput)
	if err != nil {
		logger.ErrorContext(ctx, "system prompt test failed", "persona_code", personaCode, "error", err)
		return "", fmt.Errorf("%w: failed to test system prompt: %v", ErrExternalService, err)
	}

	logger.InfoContext(ctx, "system prompt test completed", "persona_code", personaCode, "reply_length", len(reply))
	return FormatTestResult(reply, systemPrompt, testInput, personaCode, s.now()), nil
}

// BuildAnalysisPrompt renders the user prompt for a batch of conversations.
// At most 50 conversations are summarized.
func BuildAnalysisPrompt(conversations []Conversation, personaCode, period string) string {
	var b strings.Builder

	b.WriteString("## Analysis Request\n\n")
	fmt.Fprintf(&b, "- **Period**: %s\n", orAll(period))
	fmt.Fprintf(&b, "- **Persona**: %s\n", orAll(personaCode))
	fmt.Fprintf(&b, "- **Total conversations**: %d\n\n", len(conversations))

	b.WriteString("## Conversation Data\n\n")
	n := min(len(conversations), maxPromptSamples)
	for i, c := range conversations[:n] {
		fmt.Fprintf(&b, "### Conversation %d\n", i+1)
		fmt.Fprintf(&b, "- **Persona**: %s\n", c.PersonaCode)
		fmt.Fprintf(&b, "- **User**: %s\n", c.UserID)
		fmt.Fprintf(&b, "- **Time**: %s\n", c.CreatedAt.Format(sampleTimeLayout))
		fmt.Fprintf(&b, "- **Query length**: %d chars\n", utf8.RuneCountInString(c.UserQuery))
		fmt.Fprintf(&b, "- **Response length**: %d chars\n", utf8.RuneCountInString(c.AIResponse))
		if c.UserQuery != "" {
			fmt.Fprintf(&b, "- **Query**: %s\n", truncate(c.UserQuery, maxQueryExcerpt))
		}
		b.WriteString("\n")
	}
	if len(conversations) > n {
		fmt.Fprintf(&b, "*(showing %d of %d conversations)*\n\n", n, len(conversations))
	}

	b.WriteString("Perform a comprehensive analysis based on the data above.")
	return b.String()
}

// FallbackReport computes basic statistics locally when the LLM is unavailable.
func FallbackReport(conversations []Conversation, personaCode, period string) string {
	var b strings.Builder

	b.WriteString(FallbackHeader + "\n\n")
	b.WriteString("*The LLM analysis service is unavailable; showing basic statistics.*\n\n")

	b.WriteString("## Basic Statistics\n\n")
	fmt.Fprintf(&b, "- **Total conversations**: %d\n", len(conversations))
	fmt.Fprintf(&b, "- **Period**: %s\n", orAll(period))
	fmt.Fprintf(&b, "- **Persona**: %s\n\n", orAll(personaCode))

	if len(conversations) > 0 {
		users := make(map[string]struct{})
		var queryChars, responseChars int
		for _, c := range conversations {
			users[c.UserID] = struct{}{}
			queryChars += utf8.RuneCountInString(c.UserQuery)
			responseChars += utf8.RuneCountInString(c.AIResponse)
		}
		total := float64(len(conversations))
		fmt.Fprintf(&b, "- **Active users**: %d\n", len(users))
		fmt.Fprintf(&b, "- **Average query length**: %.1f chars\n", float64(queryChars)/total)
		fmt.Fprintf(&b, "- **Average response length**: %.1f chars\n\n", float64(responseChars)/total)
	}

	b.WriteString("## Recommendations\n\n")
	b.WriteString("- Check the connection to the LLM analysis service for a detailed analysis.\n")
	b.WriteString("- Monitor conversation quality regularly.\n")
	b.WriteString("- Collect user feedback to improve the service.\n")
	return b.String()
}

// FormatTestResult wraps an LLM reply in the prompt test report template.
func FormatTestResult(reply, systemPrompt, testInput, personaCode string, at time.Time) string {
	var b strings.Builder

	b.WriteString("# System Prompt Test Result\n\n")
	fmt.Fprintf(&b, "**Persona**: %s\n", personaCode)
	fmt.Fprintf(&b, "**Test time**: %s\n\n", at.Format(reportTimeLayout))

	b.WriteString("## Test Input\n")
	fmt.Fprintf(&b, "```\n%s\n```\n\n", testInput)

	b.WriteString("## AI Response\n")
	b.WriteString(reply)
	b.WriteString("\n\n")

	b.WriteString("## System Prompt Info\n")
	fmt.Fprintf(&b, "- **Length**: %d chars\n", utf8.RuneCountInString(systemPrompt))
	fmt.Fprintf(&b, "- **Response length**: %d chars\n", utf8.RuneCountInString(reply))
	return b.String()
}

func cacheKey(personaCode, period string) string {
	return "analysis:" + orAll(strings.TrimSpace(personaCode)) + ":" + orAll(strings.ToLower(strings.TrimSpace(period)))
}

func orAll(s string) string {
	if s == "" {
		return allLabel
	}
	return s
}
