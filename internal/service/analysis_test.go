package service_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"persona-admin/internal/service"
	"persona-admin/internal/service/mocks"

	"go.uber.org/mock/gomock"
)

func sampleConversations(n int) []service.Conversation {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	out := make([]service.Conversation, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, service.Conversation{
			ID:          int64(i + 1),
			PersonaCode: "demo_bot",
			UserQuery:   strings.Repeat("q", 10*(i+1)),
			AIResponse:  strings.Repeat("r", 20*(i+1)),
			UserID:      fmt.Sprintf("user%d", i%2),
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}

func TestAnalysisService_Analyze(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mocks.NewMockLLMClient(ctrl)
	svc := service.NewAnalysisService(mockLLM, nil, service.WithModel("analysis-model"))

	tests := []struct {
		name          string
		conversations []service.Conversation
		mockSetup     func()
		check         func(t *testing.T, report string)
	}{
		{
			name:          "empty batch never calls LLM",
			conversations: nil,
			mockSetup:     func() {},
			check: func(t *testing.T, report string) {
				if report != service.NoDataReport {
					t.Errorf("Analyze() = %q, want no-data report", report)
				}
			},
		},
		{
			name:          "LLM report returned verbatim",
			conversations: sampleConversations(2),
			mockSetup: func() {
				mockLLM.EXPECT().
					Complete(gomock.Any(), "analysis-model", gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, _ string, system, user string) (string, error) {
						if !strings.Contains(system, "Usage patterns") || !strings.Contains(system, "Recommendations") {
							t.Errorf("system prompt missing sections: %q", system)
						}
						if !strings.Contains(user, "- **Period**: 7days") || !strings.Contains(user, "- **Total conversations**: 2") {
							t.Errorf("user prompt missing header: %q", user)
						}
						return "# LLM report", nil
					})
			},
			check: func(t *testing.T, report string) {
				if report != "# LLM report" {
					t.Errorf("Analyze() = %q", report)
				}
			},
		},
		{
			name:          "LLM failure yields fallback statistics",
			conversations: sampleConversations(3),
			mockSetup: func() {
				mockLLM.EXPECT().
					Complete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("context deadline exceeded"))
			},
			check: func(t *testing.T, report string) {
				for _, want := range []string{
					service.FallbackHeader,
					"- **Total conversations**: 3",
					"- **Active users**: 2",
					"- **Average query length**: 20.0 chars",
					"- **Average response length**: 40.0 chars",
					"- **Period**: 7days",
				} {
					if !strings.Contains(report, want) {
						t.Errorf("fallback report missing %q:\n%s", want, report)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			tt.check(t, svc.Analyze(testContext(), tt.conversations, "", "7days"))
		})
	}
}

func TestBuildAnalysisPrompt(t *testing.T) {
	convs := sampleConversations(52)
	convs[0].UserQuery = strings.Repeat("a", 150)

	prompt := service.BuildAnalysisPrompt(convs, "", "")

	if !strings.Contains(prompt, "- **Period**: all\n- **Persona**: all\n- **Total conversations**: 52") {
		t.Errorf("prompt header wrong:\n%s", prompt[:200])
	}
	if !strings.Contains(prompt, "### Conversation 50\n") || strings.Contains(prompt, "### Conversation 51") {
		t.Error("prompt should summarize exactly 50 conversations")
	}
	if !strings.Contains(prompt, "*(showing 50 of 52 conversations)*") {
		t.Error("prompt should note truncation")
	}
	if !strings.Contains(prompt, "- **Query**: "+strings.Repeat("a", 100)+"...\n") {
		t.Error("query excerpt should be capped at 100 characters")
	}
	if !strings.Contains(prompt, "- **Time**: 2024-05-01 09:00\n") || !strings.Contains(prompt, "- **Query length**: 150 chars") {
		t.Error("prompt should include timestamp and lengths")
	}

	small := service.BuildAnalysisPrompt(sampleConversations(3), "demo_bot", "week")
	if strings.Contains(small, "showing") {
		t.Error("untruncated prompt should not carry a truncation note")
	}
	if !strings.Contains(small, "- **Persona**: demo_bot") {
		t.Error("prompt should name the persona filter")
	}
}

func TestAnalysisService_Analysis(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mocks.NewMockLLMClient(ctrl)
	mockConvs := mocks.NewMockConversationService(ctrl)
	mockCache := mocks.NewMockReportCache(ctrl)
	svc := service.NewAnalysisService(mockLLM, mockConvs,
		service.WithReportCache(mockCache),
		service.WithAnalysisLimit(250),
	)

	tests := []struct {
		name      string
		persona   string
		period    string
		mockSetup func()
		want      string
		wantErr   bool
	}{
		{
			name:    "cache hit skips loading",
			persona: "demo_bot",
			period:  "7days",
			mockSetup: func() {
				mockCache.EXPECT().Get(gomock.Any(), "analysis:demo_bot:7days").Return("cached report", true, nil)
			},
			want: "cached report",
		},
		{
			name:   "LLM report is cached",
			period: "week",
			mockSetup: func() {
				mockCache.EXPECT().Get(gomock.Any(), "analysis:all:week").Return("", false, nil)
				mockConvs.EXPECT().
					ForAnalysis(gomock.Any(), "", gomock.Not(gomock.Nil()), gomock.Not(gomock.Nil()), 250).
					Return(sampleConversations(2), nil)
				mockLLM.EXPECT().Complete(gomock.Any(), "", gomock.Any(), gomock.Any()).Return("fresh report", nil)
				mockCache.EXPECT().Set(gomock.Any(), "analysis:all:week", "fresh report").Return(nil)
			},
			want: "fresh report",
		},
		{
			name:   "fallback report is not cached",
			period: "all",
			mockSetup: func() {
				mockCache.EXPECT().Get(gomock.Any(), "analysis:all:all").Return("", false, errors.New("redis down"))
				mockConvs.EXPECT().
					ForAnalysis(gomock.Any(), "", gomock.Nil(), gomock.Any(), 250).
					Return(sampleConversations(3), nil)
				mockLLM.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("503"))
			},
			want: service.FallbackHeader,
		},
		{
			name:   "no matching conversations",
			period: "30days",
			mockSetup: func() {
				mockCache.EXPECT().Get(gomock.Any(), "analysis:all:30days").Return("", false, nil)
				mockConvs.EXPECT().ForAnalysis(gomock.Any(), "", gomock.Any(), gomock.Any(), 250).Return(nil, nil)
			},
			want: service.NoMatchingDataReport,
		},
		{
			name:   "store failure degrades to an uncached error report",
			period: "year",
			mockSetup: func() {
				mockCache.EXPECT().Get(gomock.Any(), "analysis:all:year").Return("", false, nil)
				mockConvs.EXPECT().ForAnalysis(gomock.Any(), "", gomock.Any(), gomock.Any(), 250).Return(nil, errors.New("db closed"))
			},
			want: service.AnalysisErrorPrefix + "db closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			got, err := svc.Analysis(testContext(), tt.persona, tt.period)
			if tt.wantErr {
				if err == nil {
					t.Error("Analysis() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Analysis() unexpected error: %v", err)
			}
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("Analysis() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestAnalysisService_SummaryUsesThirtyDays(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mocks.NewMockLLMClient(ctrl)
	mockConvs := mocks.NewMockConversationService(ctrl)
	svc := service.NewAnalysisService(mockLLM, mockConvs)

	before := time.Now()
	mockConvs.EXPECT().
		ForAnalysis(gomock.Any(), "ops_helper", gomock.Any(), gomock.Any(), service.DefaultAnalysisLimit).
		DoAndReturn(func(_ any, _ string, start, end *time.Time, _ int) ([]service.Conversation, error) {
			if start == nil || end == nil {
				t.Fatal("Summary() should bound both ends of the window")
			}
			if d := end.Sub(*start); d < 29*24*time.Hour || d > 31*24*time.Hour {
				t.Errorf("Summary() window = %v, want about 30 days", d)
			}
			if end.Before(before) {
				t.Errorf("Summary() window should end now")
			}
			return nil, nil
		})

	got, err := svc.Summary(testContext(), "ops_helper")
	if err != nil || got != service.NoMatchingDataReport {
		t.Errorf("Summary() = %q, %v", got, err)
	}
}

func TestAnalysisService_TestPrompt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mocks.NewMockLLMClient(ctrl)
	svc := service.NewAnalysisService(mockLLM, nil)
	prompt := "# Demo Bot\nYou help with demos."

	tests := []struct {
		name      string
		system    string
		input     string
		mockSetup func()
		check     func(t *testing.T, got string, err error)
	}{
		{
			name:      "blank system prompt",
			system:    " ",
			input:     "hello",
			mockSetup: func() {},
			check: func(t *testing.T, _ string, err error) {
				if !isValidationError("systemPrompt")(err) {
					t.Errorf("TestPrompt() error = %v", err)
				}
			},
		},
		{
			name:      "blank test input",
			system:    prompt,
			input:     "",
			mockSetup: func() {},
			check: func(t *testing.T, _ string, err error) {
				if !isValidationError("testInput")(err) {
					t.Errorf("TestPrompt() error = %v", err)
				}
			},
		},
		{
			name:   "formats reply",
			system: prompt,
			input:  "hello",
			mockSetup: func() {
				mockLLM.EXPECT().Complete(gomock.Any(), "", prompt, "hello").Return("Hi there!", nil)
			},
			check: func(t *testing.T, got string, err error) {
				if err != nil {
					t.Fatalf("TestPrompt() error = %v", err)
				}
				for _, want := range []string{
					"# System Prompt Test Result\n\n**Persona**: demo_bot\n",
					"## Test Input\n```\nhello\n```\n\n",
					"## AI Response\nHi there!\n\n",
					fmt.Sprintf("- **Length**: %d chars\n", len(prompt)),
					"- **Response length**: 9 chars\n",
				} {
					if !strings.Contains(got, want) {
						t.Errorf("TestPrompt() result missing %q:\n%s", want, got)
					}
				}
			},
		},
		{
			name:   "LLM failure is surfaced",
			system: prompt,
			input:  "hello",
			mockSetup: func() {
				mockLLM.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bad status 500"))
			},
			check: func(t *testing.T, _ string, err error) {
				if !errors.Is(err, service.ErrExternalService) {
					t.Errorf("TestPrompt() error = %v, want ErrExternalService", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			got, err := svc.TestPrompt(testContext(), tt.system, tt.input, "demo_bot")
			tt.check(t, got, err)
		})
	}
}

func TestFormatTestResult_Timestamp(t *testing.T) {
	at := time.Date(2024, 7, 1, 8, 5, 3, 0, time.UTC)
	got := service.FormatTestResult("ok", "prompt text", "input", "demo_bot", at)
	if !strings.Contains(got, "**Test time**: 2024-07-01 08:05:03\n") {
		t.Errorf("FormatTestResult() = %q", got)
	}
}
