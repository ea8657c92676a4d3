package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"persona-admin/internal/service"
	service_mocks "persona-admin/internal/service/mocks"
)

// envelope mirrors Response with raw data for decoding in tests.
type envelope struct {
	Success      bool            `json:"success"`
	Data         json.RawMessage `json:"data"`
	Message      string          `json:"message"`
	ErrorMessage string          `json:"errorMessage"`
	Timestamp    string          `json:"timestamp"`
}

// serve routes a single request through a chi router so URL params resolve.
func serve(t *testing.T, method, pattern, target string, body any, h http.HandlerFunc) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	r := chi.NewRouter()
	r.Method(method, pattern, h)

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if _, err := time.Parse(TimestampLayout, env.Timestamp); err != nil {
		t.Errorf("timestamp %q does not match layout: %v", env.Timestamp, err)
	}
	return rec, env
}

func demoPersona() service.Persona {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return service.Persona{
		PersonaCode:  "demo_bot",
		Title:        "Demo Bot",
		Description:  "Helps with demos",
		Category:     "general",
		SystemPrompt: "# Demo Bot\n\nHelps with demos",
		Active:       true,
		CreatedDate:  created,
		UpdatedDate:  created,
	}
}

func TestPersonaHandler_ListWithPrompts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	personas := service_mocks.NewMockPersonaService(ctrl)
	h := NewPersonaHandler(personas)

	personas.EXPECT().GetAll(gomock.Any()).Return([]service.Persona{demoPersona()})

	rec, env := serve(t, http.MethodGet, "/admin/personas-with-prompts", "/admin/personas-with-prompts", nil, h.ListWithPrompts)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d, success = %v", rec.Code, env.Success)
	}

	var got []PersonaDTO
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if len(got) != 1 || got[0].PersonaCode != "demo_bot" || got[0].CreatedDate != "2024-03-01T09:30:00" {
		t.Errorf("data = %+v", got)
	}
	if !strings.Contains(string(env.Data), `"systemPrompt"`) {
		t.Error("expected systemPrompt in output")
	}
}

func TestPersonaHandler_ListEmptyIsArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	personas := service_mocks.NewMockPersonaService(ctrl)
	h := NewPersonaHandler(personas)
	personas.EXPECT().GetAll(gomock.Any()).Return(nil)

	_, env := serve(t, http.MethodGet, "/admin/personas", "/admin/personas", nil, h.List)
	if string(env.Data) != "[]" {
		t.Errorf("data = %s, want []", env.Data)
	}
}

func TestPersonaHandler_ListFilters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	personas := service_mocks.NewMockPersonaService(ctrl)
	h := NewPersonaHandler(personas)

	tests := []struct {
		name      string
		target    string
		mockSetup func()
	}{
		{
			name:   "category",
			target: "/admin/personas?category=operation",
			mockSetup: func() {
				personas.EXPECT().ByCategory(gomock.Any(), "operation").Return([]service.Persona{demoPersona()})
			},
		},
		{
			name:   "active",
			target: "/admin/personas?active=true",
			mockSetup: func() {
				personas.EXPECT().Active(gomock.Any()).Return([]service.Persona{demoPersona()})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			rec, _ := serve(t, http.MethodGet, "/admin/personas", tt.target, nil, h.List)
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
		})
	}
}

func TestPersonaHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	personas := service_mocks.NewMockPersonaService(ctrl)
	h := NewPersonaHandler(personas)

	tests := []struct {
		name         string
		body         any
		mockSetup    func()
		wantStatus   int
		wantSuccess  bool
		wantErrorMsg string
	}{
		{
			name: "created",
			body: PersonaDTO{PersonaCode: "demo_bot", Title: "Demo Bot", Description: "Helps with demos", Category: "general"},
			mockSetup: func() {
				personas.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p service.Persona) (*service.Persona, error) {
						if p.PersonaCode != "demo_bot" || p.Title != "Demo Bot" || p.SystemPrompt != "" {
							t.Errorf("Create() got %+v", p)
						}
						out := demoPersona()
						return &out, nil
					})
			},
			wantStatus:  http.StatusCreated,
			wantSuccess: true,
		},
		{
			name: "duplicate",
			body: PersonaDTO{PersonaCode: "demo_bot", Title: "Demo Bot", Category: "general"},
			mockSetup: func() {
				personas.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, &service.DuplicateError{PersonaCode: "demo_bot"})
			},
			wantStatus:   http.StatusConflict,
			wantErrorMsg: "PersonaCode already exists",
		},
		{
			name: "invalid code",
			body: PersonaDTO{PersonaCode: "bad code!", Title: "Bad", Category: "general"},
			mockSetup: func() {
				personas.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil,
					&service.ValidationError{Field: "personaCode", Message: "may contain only letters, digits and underscores"})
			},
			wantStatus:   http.StatusBadRequest,
			wantErrorMsg: "personaCode may contain only letters, digits and underscores",
		},
		{
			name:         "malformed body",
			body:         "{not json",
			mockSetup:    func() {},
			wantStatus:   http.StatusBadRequest,
			wantErrorMsg: "Invalid request body",
		},
		{
			name: "storage failure",
			body: PersonaDTO{PersonaCode: "demo_bot", Title: "Demo Bot", Category: "general"},
			mockSetup: func() {
				personas.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("database is locked"))
			},
			wantStatus:   http.StatusInternalServerError,
			wantErrorMsg: "Failed to create persona: database is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			rec, env := serve(t, http.MethodPost, "/admin/personas", "/admin/personas", tt.body, h.Create)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if env.Success != tt.wantSuccess {
				t.Errorf("success = %v, want %v", env.Success, tt.wantSuccess)
			}
			if tt.wantErrorMsg != "" && env.ErrorMessage != tt.wantErrorMsg {
				t.Errorf("errorMessage = %q, want %q", env.ErrorMessage, tt.wantErrorMsg)
			}
		})
	}
}

func TestPersonaHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	personas := service_mocks.NewMockPersonaService(ctrl)
	h := NewPersonaHandler(personas)

	tests := []struct {
		name       string
		target     string
		body       PersonaDTO
		mockSetup  func()
		wantStatus int
	}{
		{
			name:   "updated",
			target: "/admin/personas/demo_bot",
			body:   PersonaDTO{PersonaCode: "demo_bot", Title: "Demo Bot", Category: "general", SystemPrompt: "# Demo Bot\nNew prompt text"},
			mockSetup: func() {
				out := demoPersona()
				personas.EXPECT().Update(gomock.Any(), gomock.Any()).Return(&out, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "code mismatch",
			target:     "/admin/personas/other_bot",
			body:       PersonaDTO{PersonaCode: "demo_bot", Title: "Demo Bot", Category: "general"},
			mockSetup:  func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "not found",
			target: "/admin/personas/ghost_bot",
			body:   PersonaDTO{PersonaCode: "ghost_bot", Title: "Ghost", Category: "general"},
			mockSetup: func() {
				personas.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("persona %s: %w", "ghost_bot", service.ErrNotFound))
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			rec, _ := serve(t, http.MethodPut, "/admin/personas/{code}", tt.target, tt.body, h.Update)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestPersonaHandler_DeleteUnsupported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	personas := service_mocks.NewMockPersonaService(ctrl)
	h := NewPersonaHandler(personas)
	personas.EXPECT().Delete(gomock.Any(), "demo_bot").Return(false)

	rec, env := serve(t, http.MethodDelete, "/admin/personas/{code}", "/admin/personas/demo_bot", nil, h.Delete)
	if rec.Code != http.StatusNotFound || env.Success {
		t.Errorf("status = %d, success = %v; want 404 and false", rec.Code, env.Success)
	}
}

func TestPersonaHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	personas := service_mocks.NewMockPersonaService(ctrl)
	h := NewPersonaHandler(personas)

	out := demoPersona()
	personas.EXPECT().GetByCode(gomock.Any(), "demo_bot").Return(&out, nil)
	personas.EXPECT().GetByCode(gomock.Any(), "ghost_bot").Return(nil, service.ErrNotFound)

	if rec, _ := serve(t, http.MethodGet, "/admin/personas/{code}", "/admin/personas/demo_bot", nil, h.Get); rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec, _ := serve(t, http.MethodGet, "/admin/personas/{code}", "/admin/personas/ghost_bot", nil, h.Get); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestPersonaHandler_Similar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	personas := service_mocks.NewMockPersonaService(ctrl)
	h := NewPersonaHandler(personas)

	tests := []struct {
		name       string
		target     string
		mockSetup  func()
		wantStatus int
	}{
		{
			name:   "ranked results",
			target: "/admin/personas/similar?q=demo&k=3",
			mockSetup: func() {
				personas.EXPECT().Similar(gomock.Any(), "demo", 3).Return([]service.SimilarPersona{
					{Persona: demoPersona(), Score: 0.87},
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "index disabled",
			target: "/admin/personas/similar?q=demo",
			mockSetup: func() {
				personas.EXPECT().Similar(gomock.Any(), "demo", 0).Return(nil, service.ErrUnavailable)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:   "embedding server down",
			target: "/admin/personas/similar?q=demo",
			mockSetup: func() {
				personas.EXPECT().Similar(gomock.Any(), "demo", 0).Return(nil, fmt.Errorf("%w: connection refused", service.ErrExternalService))
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "bad k",
			target:     "/admin/personas/similar?q=demo&k=many",
			mockSetup:  func() {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			rec, env := serve(t, http.MethodGet, "/admin/personas/similar", tt.target, nil, h.Similar)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if rec.Code == http.StatusOK && !strings.Contains(string(env.Data), `"score":0.87`) {
				t.Errorf("data = %s, want score", env.Data)
			}
		})
	}
}

func TestPersonaHandler_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	personas := service_mocks.NewMockPersonaService(ctrl)
	h := NewPersonaHandler(personas)

	at := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	personas.EXPECT().History(gomock.Any(), "demo_bot", 2).Return([]service.PromptVersion{
		{RecordID: 7, PersonaCode: "demo_bot", PromptText: "v3 prompt text", CreatedAt: at},
		{RecordID: 5, PersonaCode: "demo_bot", PromptText: "v2 prompt text", CreatedAt: at.Add(-time.Hour)},
	}, nil)
	personas.EXPECT().HistoryCount(gomock.Any(), "demo_bot").Return(3, nil)

	rec, env := serve(t, http.MethodGet, "/admin/personas/{code}/history", "/admin/personas/demo_bot/history?limit=2", nil, h.History)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got PersonaHistoryDTO
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if got.Total != 3 || len(got.Versions) != 2 || got.Versions[0].RecordID != 7 {
		t.Errorf("history = %+v", got)
	}
}

func TestPersonaHandler_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	personas := service_mocks.NewMockPersonaService(ctrl)
	h := NewPersonaHandler(personas)

	personas.EXPECT().Import(gomock.Any(), gomock.Len(2)).Return(service.ImportResult{
		Imported: 1,
		Skipped:  1,
	})

	body := []PersonaDTO{
		{PersonaCode: "a_bot", Title: "A", Category: "general"},
		{PersonaCode: "demo_bot", Title: "Demo Bot", Category: "general"},
	}
	rec, env := serve(t, http.MethodPost, "/admin/personas/import", "/admin/personas/import", body, h.Import)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got ImportResultDTO
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if got.Imported != 1 || got.Skipped != 1 || got.Errors == nil {
		t.Errorf("import result = %+v", got)
	}
	if env.Message != "Import completed: 1 imported, 1 skipped, 0 errors" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestPersonaHandler_Categories(t *testing.T) {
	h := NewPersonaHandler(nil)

	_, env := serve(t, http.MethodGet, "/admin/categories", "/admin/categories", nil, h.Categories)

	var got []string
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	want := []string{"personal", "general", "operation", "extension"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("categories = %v, want %v", got, want)
	}
}

func TestPersonaHandler_Codes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	personas := service_mocks.NewMockPersonaService(ctrl)
	h := NewPersonaHandler(personas)

	personas.EXPECT().Codes(gomock.Any()).Return([]string{"demo_bot", "ops_helper"}, nil)

	rec, env := serve(t, http.MethodGet, "/admin/personas/codes", "/admin/personas/codes", nil, h.Codes)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []string
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if len(got) != 2 || got[0] != "demo_bot" {
		t.Errorf("codes = %v", got)
	}
}

func TestPersonaHandler_Changes(t *testing.T) {
	day := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	at := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		target     string
		mockSetup  func(personas *service_mocks.MockPersonaService)
		wantStatus int
		wantCount  int
	}{
		{
			name:   "day-only range covers the whole last day",
			target: "/admin/personas/changes?from=2024-03-01&to=2024-03-02",
			mockSetup: func(personas *service_mocks.MockPersonaService) {
				personas.EXPECT().
					ChangesBetween(gomock.Any(), day.AddDate(0, 0, -1), day.Add(24*time.Hour-time.Second)).
					Return([]service.PromptVersion{{RecordID: 9, PersonaCode: "demo_bot", PromptText: "v2", CreatedAt: at}}, nil)
			},
			wantStatus: http.StatusOK,
			wantCount:  1,
		},
		{
			name:   "timestamps are used as given",
			target: "/admin/personas/changes?from=2024-03-02+09:00:00&to=2024-03-02+11:00:00",
			mockSetup: func(personas *service_mocks.MockPersonaService) {
				personas.EXPECT().
					ChangesBetween(gomock.Any(), day.Add(9*time.Hour), day.Add(11*time.Hour)).
					Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantCount:  0,
		},
		{
			name:       "from is required",
			target:     "/admin/personas/changes",
			mockSetup:  func(*service_mocks.MockPersonaService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unparseable from",
			target:     "/admin/personas/changes?from=last-week",
			mockSetup:  func(*service_mocks.MockPersonaService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unparseable to",
			target:     "/admin/personas/changes?from=2024-03-01&to=soon",
			mockSetup:  func(*service_mocks.MockPersonaService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "reversed range",
			target: "/admin/personas/changes?from=2024-03-02&to=2024-03-01",
			mockSetup: func(personas *service_mocks.MockPersonaService) {
				personas.EXPECT().ChangesBetween(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, &service.ValidationError{Field: "to", Message: "must not be before from"})
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			personas := service_mocks.NewMockPersonaService(ctrl)
			tt.mockSetup(personas)
			h := NewPersonaHandler(personas)

			rec, env := serve(t, http.MethodGet, "/admin/personas/changes", tt.target, nil, h.Changes)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, env.ErrorMessage)
			}
			if tt.wantStatus != http.StatusOK {
				if env.Success {
					t.Error("expected success=false")
				}
				return
			}

			var got []PromptVersionDTO
			if err := json.Unmarshal(env.Data, &got); err != nil {
				t.Fatalf("failed to decode data: %v", err)
			}
			if got == nil || len(got) != tt.wantCount {
				t.Errorf("versions = %v, want %d entries", got, tt.wantCount)
			}
		})
	}
}
